// gen-text-urlcontext は URL コンテキストツールを有効にしてテキストを生成し、
// 各パーツと取得した URL のメタデータを出力します。
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/shouni/gemini-gen-kit/internal/app"
	"github.com/shouni/gemini-gen-kit/internal/config"
	"github.com/shouni/gemini-gen-kit/internal/output"
	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/shouni/gemini-gen-kit/pkg/generator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	var (
		prompt     = flag.String("prompt", "", "URL を含むプロンプト (例: Compare recipes from <URL1> and <URL2>)")
		promptFile = flag.String("prompt-file", "", "プロンプトファイル (ローカルパスまたは gs://)")
	)
	flag.StringVar(&cfg.TextModel, "model", cfg.TextModel, "テキスト生成モデル")
	flag.Parse()

	os.Exit(app.Run(cfg, os.Stderr, func(ctx context.Context) error {
		store, closeStore, err := app.NewStore(ctx, *promptFile)
		if err != nil {
			return err
		}
		defer closeStore()

		pf, err := app.ResolvePrompt(ctx, store, *prompt, *promptFile)
		if err != nil {
			return err
		}

		client, err := app.NewGenAIClient(ctx, cfg)
		if err != nil {
			return err
		}
		gen, err := generator.NewGeminiTextGenerator(client.Models, nil, cfg.TextModel)
		if err != nil {
			return err
		}

		resp, err := gen.GenerateText(ctx, domain.TextGenerationRequest{
			Prompt:        pf.Prompt,
			UseURLContext: true,
		})
		if err != nil {
			return err
		}
		return output.PrintText(os.Stdout, resp, output.TextOptions{ShowParts: true, ShowURLContext: true})
	}))
}
