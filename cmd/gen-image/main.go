// gen-image はプロンプトから画像を生成し、保存先に書き出します。
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/gemini-gen-kit/internal/app"
	"github.com/shouni/gemini-gen-kit/internal/config"
	"github.com/shouni/gemini-gen-kit/internal/output"
	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/shouni/gemini-gen-kit/pkg/generator"
	"github.com/shouni/gemini-gen-kit/pkg/vertex"
)

const defaultPrompt = "A cheerful robot holding a bright red skateboard in a neon-lit city"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	var (
		prompt     = flag.String("prompt", defaultPrompt, "画像生成のプロンプト")
		promptFile = flag.String("prompt-file", "", "プロンプトファイル (ローカルパスまたは gs://)")
		negative   = flag.String("negative-prompt", "", "ネガティブプロンプト (Vertex AI のみ)")
		person     = flag.String("person-generation", "", "人物描写: dont_allow|allow_adult|allow_all")
		seed       = flag.Int64("seed", -1, "シード値 (負の値は指定なし)")
		prefix     = flag.String("prefix", "image", "保存するファイル名の接頭辞")
		saveAll    = flag.Bool("all", false, "返却されたすべての画像を保存する")
	)
	flag.BoolVar(&cfg.PredictREST, "rest", cfg.PredictREST, "SDK ではなく :predict REST エンドポイントを使う (ADC 認証、GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION が必須)")
	flag.StringVar(&cfg.ImageModel, "model", cfg.ImageModel, "画像生成モデル")
	flag.StringVar(&cfg.AspectRatio, "aspect-ratio", cfg.AspectRatio, "アスペクト比 (1:1, 3:4, 4:3, 9:16, 16:9)")
	flag.IntVar(&cfg.NumberOfImages, "n", cfg.NumberOfImages, "生成枚数 (1-4)")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "保存先ディレクトリ (ローカルパスまたは gs://bucket/prefix)")
	flag.Parse()

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

		req := domain.ImageGenerationRequest{
			Prompt:           pf.Prompt,
			NegativePrompt:   *negative,
			AspectRatio:      cfg.AspectRatio,
			NumberOfImages:   cfg.NumberOfImages,
			PersonGeneration: *person,
		}
		if pf.NegativePrompt != "" {
			req.NegativePrompt = pf.NegativePrompt
		}
		if pf.AspectRatio != "" {
			req.AspectRatio = pf.AspectRatio
		}
		if pf.NumberOfImages > 0 {
			req.NumberOfImages = pf.NumberOfImages
		}
		if *seed >= 0 {
			req.Seed = seed
		}

		gen, err := newImageGenerator(ctx, cfg)
		if err != nil {
			return err
		}

		resp, err := gen.GenerateImages(ctx, req)
		if err != nil {
			return err
		}

		if *saveAll {
			saved, err := output.SaveImages(ctx, store, cfg.OutputDir, *prefix, resp)
			if err != nil {
				return err
			}
			for _, uri := range saved {
				fmt.Println(uri)
			}
			return nil
		}

		uri, err := output.SaveFirst(ctx, store, cfg.OutputDir, *prefix, resp)
		if err != nil {
			return err
		}
		fmt.Println(uri)
		return nil
	}))
}

func newImageGenerator(ctx context.Context, cfg *config.Config) (generator.ImageGenerator, error) {
	if cfg.PredictREST {
		return vertex.NewDefaultClient(ctx, vertex.Config{
			ProjectID: cfg.Project,
			Location:  cfg.Location,
			Model:     cfg.ImageModel,
		}, vertex.WithTimeout(cfg.RequestTimeout))
	}

	client, err := app.NewGenAIClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewImagenGenerator(client.Models, cfg.ImageModel)
}
