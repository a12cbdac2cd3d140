package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"google.golang.org/genai"
)

// ImagenGenerator は Imagen 系モデルで画像を生成するジェネレーターです。
type ImagenGenerator struct {
	models ModelsAPI
	model  string
}

// NewImagenGenerator は ImagenGenerator を初期化します。model が空なら DefaultImageModel を使います。
func NewImagenGenerator(models ModelsAPI, model string) (*ImagenGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("models (ModelsAPI) is required")
	}
	if model == "" {
		model = DefaultImageModel
	}
	return &ImagenGenerator{models: models, model: model}, nil
}

// GenerateImages はプロンプト、ネガティブプロンプト、アスペクト比を渡して画像を生成します。
func (g *ImagenGenerator) GenerateImages(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if err := ValidateSeed(req.Seed); err != nil {
		return nil, err
	}

	cfg := buildImagesConfig(req)
	slog.InfoContext(ctx, "画像生成をリクエストします",
		"model", g.model,
		"aspect_ratio", cfg.AspectRatio,
		"number_of_images", cfg.NumberOfImages,
		"negative_prompt", req.NegativePrompt != "",
	)

	resp, err := g.models.GenerateImages(ctx, g.model, req.Prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("Imagen画像生成エラー: %w", err)
	}

	out, err := parseImagesResponse(resp, dereferenceSeed(req.Seed))
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "画像生成が完了しました", "model", g.model, "images", len(out.Images))
	return out, nil
}

func buildImagesConfig(req domain.ImageGenerationRequest) *genai.GenerateImagesConfig {
	n := req.NumberOfImages
	if n <= 0 {
		n = 1
	}
	if n > MaxImagesPerRequest {
		n = MaxImagesPerRequest
	}

	cfg := &genai.GenerateImagesConfig{
		NumberOfImages:   int32(n),
		AspectRatio:      req.AspectRatio,
		NegativePrompt:   req.NegativePrompt,
		Seed:             seedToPtrInt32(req.Seed),
		IncludeRAIReason: true,
	}
	if req.PersonGeneration != "" {
		cfg.PersonGeneration = genai.PersonGeneration(strings.ToUpper(req.PersonGeneration))
	}
	return cfg
}
