package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, s := range texts {
		parts = append(parts, &genai.Part{Text: s})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: parts, Role: "model"},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func TestGeminiTextGenerator_GenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: 素のリクエストは設定なしで送られる", func(t *testing.T) {
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				assert.Equal(t, DefaultTextModel, model)
				require.Len(t, contents, 1)
				require.Len(t, contents[0].Parts, 1)
				assert.Equal(t, "How does AI work?", contents[0].Parts[0].Text)
				assert.Nil(t, cfg)
				return textResponse("Okay, let's break down how AI works."), nil
			},
		}
		gen, err := NewGeminiTextGenerator(models, nil, "")
		require.NoError(t, err)

		resp, err := gen.GenerateText(ctx, domain.TextGenerationRequest{Prompt: "How does AI work?"})

		require.NoError(t, err)
		assert.Equal(t, "Okay, let's break down how AI works.", resp.Text)
	})

	t.Run("成功: URLコンテキストツールとTEXTモダリティが設定される", func(t *testing.T) {
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				assert.Equal(t, "gemini-2.5-pro", model)
				require.NotNil(t, cfg)
				require.Len(t, cfg.Tools, 1)
				assert.NotNil(t, cfg.Tools[0].URLContext)
				assert.Equal(t, []string{"TEXT"}, cfg.ResponseModalities)

				resp := textResponse("part one", "part two")
				resp.Candidates[0].URLContextMetadata = &genai.URLContextMetadata{
					URLMetadata: []*genai.URLMetadata{{RetrievedURL: "https://example.com/recipe1"}},
				}
				return resp, nil
			},
		}
		gen, _ := NewGeminiTextGenerator(models, nil, "")

		resp, err := gen.GenerateText(ctx, domain.TextGenerationRequest{
			Model:         "gemini-2.5-pro",
			Prompt:        "Compare recipes from https://example.com/recipe1 and https://example.com/recipe2",
			UseURLContext: true,
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"part one", "part two"}, resp.Parts)
		require.Len(t, resp.URLContext, 1)
		assert.Equal(t, "https://example.com/recipe1", resp.URLContext[0].RetrievedURL)
	})

	t.Run("成功: 生成パラメータとシステム指示が渡される", func(t *testing.T) {
		temp := float32(0.8)
		topP := float32(0.95)
		topK := float32(40)
		budget := int32(0)
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				require.NotNil(t, cfg)
				require.NotNil(t, cfg.SystemInstruction)
				assert.Equal(t, "You are Neko, a cheerful cat guide.", cfg.SystemInstruction.Parts[0].Text)
				assert.Equal(t, &temp, cfg.Temperature)
				assert.Equal(t, &topP, cfg.TopP)
				assert.Equal(t, &topK, cfg.TopK)
				assert.Equal(t, int32(250), cfg.MaxOutputTokens)
				require.NotNil(t, cfg.ThinkingConfig)
				assert.Equal(t, int32(0), *cfg.ThinkingConfig.ThinkingBudget)
				assert.Equal(t, "application/json", cfg.ResponseMIMEType)
				assert.Empty(t, cfg.Tools)
				return textResponse("{}"), nil
			},
		}
		gen, _ := NewGeminiTextGenerator(models, nil, "")

		_, err := gen.GenerateText(ctx, domain.TextGenerationRequest{
			Prompt:            "What is machine learning?",
			SystemInstruction: "You are Neko, a cheerful cat guide.",
			Temperature:       &temp,
			TopP:              &topP,
			TopK:              &topK,
			MaxOutputTokens:   250,
			ThinkingBudget:    &budget,
			JSONOutput:        true,
		})
		require.NoError(t, err)
	})

	t.Run("成功: 参照画像はパーツに追加され、失敗分と空URLはスキップされる", func(t *testing.T) {
		preparer := &mockPreparer{prepare: func(url string) *genai.Part {
			if url == "https://8.8.8.8/bad.png" {
				return nil
			}
			return &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: []byte("img")}}
		}}
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				// テキスト(1) + 画像(1)
				assert.Len(t, contents[0].Parts, 2)
				return textResponse("a robot"), nil
			},
		}
		gen, _ := NewGeminiTextGenerator(models, preparer, "")

		_, err := gen.GenerateText(ctx, domain.TextGenerationRequest{
			Prompt:             "Describe the image",
			ReferenceImageURLs: []string{"https://8.8.8.8/ok.png", "", "https://8.8.8.8/bad.png"},
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"https://8.8.8.8/ok.png", "https://8.8.8.8/bad.png"}, preparer.calls)
	})

	t.Run("成功: スキーマを渡すと JSON Schema と JSON MIME が設定される", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"title":{"type":"string"}},"required":["title"]}`)
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				require.NotNil(t, cfg)
				assert.Equal(t, "application/json", cfg.ResponseMIMEType)
				assert.Equal(t, schema, cfg.ResponseJsonSchema)
				return textResponse(`{"title":"Neko"}`), nil
			},
		}
		gen, _ := NewGeminiTextGenerator(models, nil, "")

		resp, err := gen.GenerateText(ctx, domain.TextGenerationRequest{
			Prompt:         "Give me a title",
			ResponseSchema: schema,
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Neko"}`, resp.Text)
	})

	t.Run("失敗: 不正なスキーマは送信前にエラー", func(t *testing.T) {
		called := false
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				called = true
				return nil, nil
			},
		}
		gen, _ := NewGeminiTextGenerator(models, nil, "")

		_, err := gen.GenerateText(ctx, domain.TextGenerationRequest{
			Prompt:         "p",
			ResponseSchema: json.RawMessage(`{"type":`),
		})
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.False(t, called)
	})

	t.Run("失敗: APIエラーはラップされて返る", func(t *testing.T) {
		expectedErr := errors.New("network down")
		models := &mockModels{
			generateContentFunc: func(model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return nil, expectedErr
			},
		}
		gen, _ := NewGeminiTextGenerator(models, nil, "")

		_, err := gen.GenerateText(ctx, domain.TextGenerationRequest{Prompt: "p"})

		assert.True(t, errors.Is(err, expectedErr))
	})

	t.Run("失敗: 空のプロンプト", func(t *testing.T) {
		gen, _ := NewGeminiTextGenerator(&mockModels{}, nil, "")
		_, err := gen.GenerateText(ctx, domain.TextGenerationRequest{})
		assert.True(t, errors.Is(err, ErrEmptyPrompt))
	})

	t.Run("nilチェック", func(t *testing.T) {
		_, err := NewGeminiTextGenerator(nil, nil, "")
		assert.Error(t, err)
	})
}
