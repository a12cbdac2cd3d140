// Package promptio はプロンプトファイルの読み込みを扱います。
//
// プロンプトファイルは JSON 文字列、または {"prompt": "...", "numberOfImages": 2}
// 形式のオブジェクトです。
package promptio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

var (
	// ErrInvalidPromptFile はプロンプトファイルの形式が不正な場合のエラーです。
	ErrInvalidPromptFile = errors.New(`prompt file must be a string or {"prompt": "..."}`)
	ErrInvalidSchemaFile = errors.New("schema file must be a JSON object")
)

// PromptFile はプロンプトファイルの内容です。
type PromptFile struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	NumberOfImages int    `json:"numberOfImages,omitempty"`
}

// Load は reader 経由で uri を読み込み、PromptFile に変換します。
func Load(ctx context.Context, reader remoteio.InputReader, uri string) (*PromptFile, error) {
	rc, err := reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("プロンプトファイルを開けません (%s): %w", uri, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("プロンプトファイルの読み込みに失敗しました (%s): %w", uri, err)
	}
	return Parse(raw)
}

// LoadSchema は応答の JSON スキーマを reader 経由で読み込みます。
// 中身は JSON オブジェクトでなければなりません。
func LoadSchema(ctx context.Context, reader remoteio.InputReader, uri string) (json.RawMessage, error) {
	rc, err := reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("スキーマファイルを開けません (%s): %w", uri, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("スキーマファイルの読み込みに失敗しました (%s): %w", uri, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' || !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSchemaFile, uri)
	}
	return json.RawMessage(raw), nil
}

// Parse はプロンプトファイルの中身を解釈します。
func Parse(raw []byte) (*PromptFile, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrInvalidPromptFile
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("prompt file is not valid JSON: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			return nil, ErrInvalidPromptFile
		}
		return &PromptFile{Prompt: s}, nil
	case '{':
		var pf PromptFile
		if err := json.Unmarshal(raw, &pf); err != nil {
			return nil, fmt.Errorf("prompt file is not valid JSON: %w", err)
		}
		if strings.TrimSpace(pf.Prompt) == "" {
			return nil, ErrInvalidPromptFile
		}
		return &pf, nil
	default:
		return nil, ErrInvalidPromptFile
	}
}
