package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"google.golang.org/genai"
)

const defaultVideoPollInterval = 10 * time.Second

// VeoGenerator は Veo 系モデルで動画を生成するジェネレーターです。
// 生成は長時間オペレーションとして開始され、完了するまでポーリングします。
type VeoGenerator struct {
	models       VideoModelsAPI
	ops          OperationsAPI
	files        FileDownloader
	model        string
	pollInterval time.Duration
}

// NewVeoGenerator は VeoGenerator を初期化します。
// files は nil を許容し、その場合は動画の URI のみを返します。
func NewVeoGenerator(models VideoModelsAPI, ops OperationsAPI, files FileDownloader, model string, pollInterval time.Duration) (*VeoGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("models (VideoModelsAPI) is required")
	}
	if ops == nil {
		return nil, fmt.Errorf("ops (OperationsAPI) is required")
	}
	if model == "" {
		model = DefaultVideoModel
	}
	if pollInterval <= 0 {
		pollInterval = defaultVideoPollInterval
	}
	return &VeoGenerator{
		models:       models,
		ops:          ops,
		files:        files,
		model:        model,
		pollInterval: pollInterval,
	}, nil
}

// GenerateVideos は動画生成を開始し、完了を待って結果を返します。
// ctx のキャンセルやタイムアウトでポーリングを打ち切ります。
func (g *VeoGenerator) GenerateVideos(ctx context.Context, req domain.VideoGenerationRequest) (*domain.VideoResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if err := ValidateSeed(req.Seed); err != nil {
		return nil, err
	}

	cfg := buildVideosConfig(req)
	slog.InfoContext(ctx, "動画生成をリクエストします",
		"model", g.model,
		"aspect_ratio", cfg.AspectRatio,
		"resolution", cfg.Resolution,
		"number_of_videos", cfg.NumberOfVideos,
	)

	op, err := g.models.GenerateVideos(ctx, g.model, req.Prompt, nil, cfg)
	if err != nil {
		return nil, fmt.Errorf("Veo動画生成エラー: %w", err)
	}

	op, err = g.waitOperation(ctx, op)
	if err != nil {
		return nil, err
	}
	return g.collectVideos(ctx, op)
}

func (g *VeoGenerator) waitOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	started := time.Now()
	for op != nil && !op.Done {
		slog.DebugContext(ctx, "動画生成の完了を待機しています", "operation", op.Name, "elapsed", time.Since(started).Round(time.Second))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("動画生成の待機を中断しました (operation=%s): %w", op.Name, ctx.Err())
		case <-time.After(g.pollInterval):
		}

		next, err := g.ops.GetVideosOperation(ctx, op, nil)
		if err != nil {
			return nil, fmt.Errorf("オペレーションの取得に失敗しました (operation=%s): %w", op.Name, err)
		}
		op = next
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operation is nil", ErrNoVideos)
	}
	if len(op.Error) > 0 {
		return nil, fmt.Errorf("動画生成オペレーションが失敗しました (operation=%s): %v", op.Name, op.Error)
	}
	return op, nil
}

func (g *VeoGenerator) collectVideos(ctx context.Context, op *genai.GenerateVideosOperation) (*domain.VideoResponse, error) {
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		if op.Response != nil && len(op.Response.RAIMediaFilteredReasons) > 0 {
			return nil, fmt.Errorf("%w: filtered (%s)", ErrNoVideos, strings.Join(op.Response.RAIMediaFilteredReasons, "; "))
		}
		return nil, ErrNoVideos
	}

	out := &domain.VideoResponse{RAIFilteredReasons: op.Response.RAIMediaFilteredReasons}
	for i, gv := range op.Response.GeneratedVideos {
		if gv == nil || gv.Video == nil {
			slog.WarnContext(ctx, "空の動画をスキップします", "index", i)
			continue
		}
		v := domain.GeneratedVideo{
			Data:     gv.Video.VideoBytes,
			MimeType: gv.Video.MIMEType,
			URI:      gv.Video.URI,
		}
		if !v.HasData() && g.files != nil && v.URI != "" && !strings.HasPrefix(v.URI, "gs://") {
			data, err := g.files.Download(ctx, genai.NewDownloadURIFromGeneratedVideo(gv), nil)
			if err != nil {
				return nil, fmt.Errorf("動画のダウンロードに失敗しました (index=%d): %w", i, err)
			}
			v.Data = data
		}
		if v.MimeType == "" {
			v.MimeType = "video/mp4"
		}
		out.Videos = append(out.Videos, v)
	}
	if len(out.Videos) == 0 {
		return nil, ErrNoVideos
	}
	slog.InfoContext(ctx, "動画生成が完了しました", "model", g.model, "videos", len(out.Videos))
	return out, nil
}

func buildVideosConfig(req domain.VideoGenerationRequest) *genai.GenerateVideosConfig {
	n := req.NumberOfVideos
	if n <= 0 {
		n = 1
	}
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: int32(n),
		AspectRatio:    req.AspectRatio,
		Resolution:     req.Resolution,
		NegativePrompt: req.NegativePrompt,
		OutputGCSURI:   req.OutputGCSURI,
		Seed:           seedToPtrInt32(req.Seed),
		GenerateAudio:  req.GenerateAudio,
	}
	if req.DurationSeconds > 0 {
		d := req.DurationSeconds
		cfg.DurationSeconds = &d
	}
	return cfg
}
