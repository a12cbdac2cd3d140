// gen-text はプロンプトを送信し、生成されたテキストを標準出力に書き出します。
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
	"github.com/shouni/gemini-gen-kit/pkg/promptio"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}

	var (
		prompt      = flag.String("prompt", "How does AI work?", "プロンプト")
		promptFile  = flag.String("prompt-file", "", "プロンプトファイル (ローカルパスまたは gs://)")
		system      = flag.String("system", "", "システムインストラクション")
		temperature = flag.Float64("temperature", -1, "temperature (負の値はモデルのデフォルト)")
		topP        = flag.Float64("top-p", -1, "top-p (負の値はモデルのデフォルト)")
		topK        = flag.Float64("top-k", -1, "top-k (負の値はモデルのデフォルト)")
		maxTokens   = flag.Int("max-tokens", 0, "最大出力トークン数 (0 はモデルのデフォルト)")
		thinking    = flag.Int("thinking-budget", -1, "thinking のトークン予算 (0 で無効、負の値はモデルのデフォルト)")
		jsonOut     = flag.Bool("json", false, "JSON で応答させる")
		schemaFile  = flag.String("schema", "", "応答の JSON スキーマファイル (ローカルパスまたは gs://)。指定すると JSON で応答させる")
		showParts   = flag.Bool("parts", false, "パーツごとに出力する")
		images      app.StringList
	)
	flag.Var(&images, "image", "参照画像の URL (https:// または gs://)。繰り返し指定またはカンマ区切り")
	flag.StringVar(&cfg.TextModel, "model", cfg.TextModel, "テキスト生成モデル")
	flag.Parse()

	os.Exit(app.Run(cfg, os.Stderr, func(ctx context.Context) error {
		uris := append([]string{*promptFile, *schemaFile}, images...)
		store, closeStore, err := app.NewStore(ctx, uris...)
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

		var preparer generator.ImagePreparer
		if len(images) > 0 {
			core, err := app.NewImagePreparer(store, cfg)
			if err != nil {
				return err
			}
			preparer = core
		}

		gen, err := generator.NewGeminiTextGenerator(client.Models, preparer, cfg.TextModel)
		if err != nil {
			return err
		}

		req := domain.TextGenerationRequest{
			Prompt:             pf.Prompt,
			SystemInstruction:  *system,
			MaxOutputTokens:    int32(*maxTokens),
			ReferenceImageURLs: images,
			JSONOutput:         *jsonOut,
		}
		if *temperature >= 0 {
			t := float32(*temperature)
			req.Temperature = &t
		}
		if *topP >= 0 {
			p := float32(*topP)
			req.TopP = &p
		}
		if *topK >= 0 {
			k := float32(*topK)
			req.TopK = &k
		}
		if *thinking >= 0 {
			b := int32(*thinking)
			req.ThinkingBudget = &b
		}
		if *schemaFile != "" {
			schema, err := promptio.LoadSchema(ctx, store, *schemaFile)
			if err != nil {
				return err
			}
			req.ResponseSchema = schema
		}

		resp, err := gen.GenerateText(ctx, req)
		if err != nil {
			return err
		}
		return output.PrintText(os.Stdout, resp, output.TextOptions{
			ShowParts:  *showParts,
			PrettyJSON: *jsonOut || *schemaFile != "",
		})
	}))
}
