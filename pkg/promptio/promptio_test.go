package promptio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReader struct {
	data map[string]string
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	s, ok := m.data[uri]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewBufferString(s)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *PromptFile
		wantErr bool
	}{
		{"JSON文字列", `"How does AI work?"`, &PromptFile{Prompt: "How does AI work?"}, false},
		{
			"オブジェクト",
			`{"prompt": "A cheerful robot", "numberOfImages": 2, "aspectRatio": "16:9"}`,
			&PromptFile{Prompt: "A cheerful robot", NumberOfImages: 2, AspectRatio: "16:9"},
			false,
		},
		{"前後の空白は無視", "\n  \"hi\"  \n", &PromptFile{Prompt: "hi"}, false},
		{"promptなしのオブジェクト", `{"numberOfImages": 2}`, nil, true},
		{"空文字列", `""`, nil, true},
		{"配列は不可", `["a"]`, nil, true},
		{"壊れたJSON", `{"prompt": `, nil, true},
		{"空ファイル", ``, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	reader := &mockReader{data: map[string]string{
		"gs://bucket/prompt.json": `{"prompt": "Compare recipes"}`,
		"bad.json":                `42`,
	}}

	t.Run("readerから読み込める", func(t *testing.T) {
		pf, err := Load(ctx, reader, "gs://bucket/prompt.json")
		require.NoError(t, err)
		assert.Equal(t, "Compare recipes", pf.Prompt)
	})

	t.Run("存在しないファイル", func(t *testing.T) {
		_, err := Load(ctx, reader, "missing.json")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("形式不正", func(t *testing.T) {
		_, err := Load(ctx, reader, "bad.json")
		assert.True(t, errors.Is(err, ErrInvalidPromptFile))
	})
}

func TestLoadSchema(t *testing.T) {
	ctx := context.Background()
	reader := &mockReader{data: map[string]string{
		"gs://bucket/output-structure.json": "  {\"type\": \"object\", \"properties\": {\"recipe\": {\"type\": \"string\"}}}\n",
		"array.json":                        `[1, 2]`,
		"broken.json":                       `{"type": `,
	}}

	t.Run("前後の空白を除いて読み込める", func(t *testing.T) {
		schema, err := LoadSchema(ctx, reader, "gs://bucket/output-structure.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"object","properties":{"recipe":{"type":"string"}}}`, string(schema))
	})

	t.Run("オブジェクト以外は拒否する", func(t *testing.T) {
		_, err := LoadSchema(ctx, reader, "array.json")
		assert.True(t, errors.Is(err, ErrInvalidSchemaFile))
	})

	t.Run("壊れた JSON は拒否する", func(t *testing.T) {
		_, err := LoadSchema(ctx, reader, "broken.json")
		assert.True(t, errors.Is(err, ErrInvalidSchemaFile))
	})

	t.Run("存在しないファイル", func(t *testing.T) {
		_, err := LoadSchema(ctx, reader, "missing.json")
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
