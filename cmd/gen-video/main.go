// gen-video は Veo でプロンプトから動画を生成し、完了を待って保存先に書き出します。
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/shouni/gemini-gen-kit/internal/app"
	"github.com/shouni/gemini-gen-kit/internal/config"
	"github.com/shouni/gemini-gen-kit/internal/output"
	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/shouni/gemini-gen-kit/pkg/generator"
)

const defaultPrompt = "A close-up shot of a cat surfing a small wave at sunset, cinematic lighting"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	var (
		prompt      = flag.String("prompt", defaultPrompt, "動画生成のプロンプト")
		promptFile  = flag.String("prompt-file", "", "プロンプトファイル (ローカルパスまたは gs://)")
		negative    = flag.String("negative-prompt", "", "ネガティブプロンプト")
		aspectRatio = flag.String("aspect-ratio", "16:9", "アスペクト比 (16:9, 9:16)")
		resolution  = flag.String("resolution", "", "解像度 (720p, 1080p)")
		duration    = flag.Int("duration", 0, "動画の長さ (秒、0 はモデルのデフォルト)")
		count       = flag.Int("n", 1, "生成本数")
		seed        = flag.Int64("seed", -1, "シード値 (負の値は指定なし)")
		audio       = flag.String("audio", "", "音声を生成するか (true|false、空はモデルのデフォルト)")
		outputGCS   = flag.String("output-gcs", "", "Vertex AI で動画を直接書き出す gs:// プレフィックス")
		prefix      = flag.String("prefix", "video", "保存するファイル名の接頭辞")
	)
	flag.StringVar(&cfg.VideoModel, "model", cfg.VideoModel, "動画生成モデル")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "保存先ディレクトリ (ローカルパスまたは gs://bucket/prefix)")
	flag.DurationVar(&cfg.VideoPollInterval, "poll", cfg.VideoPollInterval, "完了確認の間隔")
	flag.DurationVar(&cfg.VideoTimeout, "timeout", cfg.VideoTimeout, "完了を待つ最大時間")
	flag.Parse()

	// 動画の生成はテキストや画像より大幅に時間がかかる
	cfg.RequestTimeout = cfg.VideoTimeout

	os.Exit(app.Run(cfg, os.Stderr, func(ctx context.Context) error {
		store, closeStore, err := app.NewStore(ctx, cfg.OutputDir, *promptFile)
		if err != nil {
			return err
		}
		defer closeStore()

		pf, err := app.ResolvePrompt(ctx, store, *prompt, *promptFile)
		if err != nil {
			return err
		}

		req := domain.VideoGenerationRequest{
			Prompt:          pf.Prompt,
			NegativePrompt:  *negative,
			AspectRatio:     *aspectRatio,
			Resolution:      *resolution,
			DurationSeconds: int32(*duration),
			NumberOfVideos:  *count,
			OutputGCSURI:    *outputGCS,
		}
		if pf.NegativePrompt != "" {
			req.NegativePrompt = pf.NegativePrompt
		}
		if pf.AspectRatio != "" {
			req.AspectRatio = pf.AspectRatio
		}
		if *seed >= 0 {
			req.Seed = seed
		}
		if *audio != "" {
			b, err := strconv.ParseBool(*audio)
			if err != nil {
				return fmt.Errorf("-audio は true か false で指定してください: %w", err)
			}
			req.GenerateAudio = &b
		}

		client, err := app.NewGenAIClient(ctx, cfg)
		if err != nil {
			return err
		}
		// Files.Download は Gemini API バックエンドでのみ使える
		var files generator.FileDownloader
		if !cfg.UseVertexAI {
			files = client.Files
		}
		gen, err := generator.NewVeoGenerator(client.Models, client.Operations, files, cfg.VideoModel, cfg.VideoPollInterval)
		if err != nil {
			return err
		}

		resp, err := gen.GenerateVideos(ctx, req)
		if err != nil {
			return err
		}
		saved, err := output.SaveVideos(ctx, store, cfg.OutputDir, *prefix, resp)
		if err != nil {
			return err
		}
		for _, uri := range saved {
			fmt.Println(uri)
		}
		return nil
	}))
}
