// Package app はコマンド間で共通の初期化処理をまとめます。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/gemini-gen-kit/internal/config"
	"github.com/shouni/gemini-gen-kit/pkg/generator"
	"github.com/shouni/gemini-gen-kit/pkg/promptio"
	"github.com/shouni/gemini-gen-kit/pkg/storage"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// Run は設定を検証してロガーを準備し、タイムアウト付きのコンテキストで fn を実行します。
// 戻り値は終了コードです。
func Run(cfg *config.Config, logOut io.Writer, fn func(ctx context.Context) error) int {
	if err := cfg.Validate(); err != nil {
		// ロガー設定自体が不正な場合もあるためデフォルトのまま出力する
		slog.Error("設定の検証に失敗しました", "error", err)
		return 1
	}
	cfg.SetupLogger(logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		slog.ErrorContext(ctx, "処理に失敗しました", "error", err)
		return 1
	}
	return 0
}

// ClientConfig は設定から genai のクライアント設定を組み立てます。
func ClientConfig(cfg *config.Config) *genai.ClientConfig {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: cfg.APIVersion},
	}
	if cfg.UseVertexAI {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		return cc
	}
	cc.Backend = genai.BackendGeminiAPI
	cc.APIKey = cfg.APIKey
	return cc
}

// NewGenAIClient は genai クライアントを作成します。
func NewGenAIClient(ctx context.Context, cfg *config.Config) (*genai.Client, error) {
	cc := ClientConfig(cfg)
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("genai クライアントの作成に失敗しました: %w", err)
	}
	slog.DebugContext(ctx, "genai クライアントを作成しました",
		"backend", cc.Backend.String(),
		"api_version", cc.HTTPOptions.APIVersion,
	)
	return client, nil
}

// NewStore は入出力先を作成します。uris のいずれかが gs:// の場合のみ GCS クライアントを初期化します。
// 戻り値の close は必ず呼び出してください。
func NewStore(ctx context.Context, uris ...string) (*storage.Store, func(), error) {
	for _, u := range uris {
		if !storage.IsGCSURI(u) {
			continue
		}
		gcs, err := storage.NewGCSStore(ctx)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewStore(gcs), func() {
			if err := gcs.Close(); err != nil {
				slog.Warn("GCS クライアントのクローズに失敗しました", "error", err)
			}
		}, nil
	}
	return storage.NewStore(nil), func() {}, nil
}

// NewImagePreparer は参照画像の取得に使う GeminiCore を作成します。
// IMAGE_CACHE_TTL が 0 の場合はキャッシュを使いません。
func NewImagePreparer(reader remoteio.InputReader, cfg *config.Config) (*generator.GeminiCore, error) {
	var c generator.ImageCacher
	if cfg.ImageCacheTTL > 0 {
		c = cache.New(cfg.ImageCacheTTL, 2*cfg.ImageCacheTTL)
	}
	return generator.NewGeminiCore(reader, httpkit.New(cfg.RequestTimeout), c, cfg.ImageCacheTTL)
}

// ResolvePrompt はプロンプトファイルが指定されていればそれを読み込み、なければ inline を使います。
func ResolvePrompt(ctx context.Context, reader remoteio.InputReader, inline, file string) (*promptio.PromptFile, error) {
	if file != "" {
		return promptio.Load(ctx, reader, file)
	}
	if strings.TrimSpace(inline) == "" {
		return nil, generator.ErrEmptyPrompt
	}
	return &promptio.PromptFile{Prompt: inline}, nil
}
