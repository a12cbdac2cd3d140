package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"google.golang.org/genai"
)

// GeminiTextGenerator は Gemini でテキストを生成するジェネレーターです。
// URL コンテキストツールや参照画像の添付にも対応します。
type GeminiTextGenerator struct {
	models   ModelsAPI
	images   ImagePreparer
	defModel string
}

// NewGeminiTextGenerator は GeminiTextGenerator を初期化します。
// images は参照画像を使わない場合 nil で構いません。
func NewGeminiTextGenerator(models ModelsAPI, images ImagePreparer, defaultModel string) (*GeminiTextGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("models (ModelsAPI) is required")
	}
	if defaultModel == "" {
		defaultModel = DefaultTextModel
	}
	return &GeminiTextGenerator{models: models, images: images, defModel: defaultModel}, nil
}

// GenerateText はプロンプトを送信し、生成されたテキストを返します。
func (g *GeminiTextGenerator) GenerateText(ctx context.Context, req domain.TextGenerationRequest) (*domain.TextResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if len(req.ResponseSchema) > 0 && !json.Valid(req.ResponseSchema) {
		return nil, ErrInvalidSchema
	}

	model := req.Model
	if model == "" {
		model = g.defModel
	}

	parts := []*genai.Part{{Text: req.Prompt}}
	for i, url := range req.ReferenceImageURLs {
		if url == "" {
			continue
		}
		if g.images == nil {
			slog.WarnContext(ctx, "参照画像の準備機能が未設定のため無視します", "index", i, "url", url)
			continue
		}
		if imgPart := g.images.PrepareImagePart(ctx, url); imgPart != nil {
			parts = append(parts, imgPart)
		}
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	slog.InfoContext(ctx, "テキスト生成をリクエストします",
		"model", model,
		"url_context", req.UseURLContext,
		"total_parts", len(parts),
	)

	resp, err := g.models.GenerateContent(ctx, model, contents, buildContentConfig(req))
	if err != nil {
		return nil, fmt.Errorf("Geminiテキスト生成エラー: %w", err)
	}

	out, err := parseTextResponse(resp)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "テキスト生成が完了しました",
		"model", model,
		"finish_reason", out.FinishReason,
		"retrieved_urls", len(out.URLContext),
	)
	return out, nil
}

// buildContentConfig は指定された項目だけを設定します。何も指定がなければ nil を返します。
func buildContentConfig(req domain.TextGenerationRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	used := false

	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
		used = true
	}
	if req.Temperature != nil {
		cfg.Temperature = req.Temperature
		used = true
	}
	if req.TopP != nil {
		cfg.TopP = req.TopP
		used = true
	}
	if req.TopK != nil {
		cfg.TopK = req.TopK
		used = true
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
		used = true
	}
	if req.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: req.ThinkingBudget}
		used = true
	}
	if req.UseURLContext {
		cfg.Tools = []*genai.Tool{{URLContext: &genai.URLContext{}}}
		cfg.ResponseModalities = []string{responseModalityText}
		used = true
	}
	if req.JSONOutput || len(req.ResponseSchema) > 0 {
		cfg.ResponseMIMEType = jsonMIMEType
		used = true
	}
	if len(req.ResponseSchema) > 0 {
		cfg.ResponseJsonSchema = req.ResponseSchema
	}

	if !used {
		return nil
	}
	return cfg
}
