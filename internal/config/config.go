// Package config は .env・環境変数・フラグからコマンド共通の設定を組み立てます。
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shouni/gemini-gen-kit/pkg/generator"
)

// ErrNoCredentials は API キーも Vertex AI の設定もない場合のエラーです。
var ErrNoCredentials = errors.New("GEMINI_API_KEY か、GOOGLE_GENAI_USE_VERTEXAI=true と GOOGLE_CLOUD_PROJECT / GOOGLE_CLOUD_LOCATION のいずれかが必要です")

type Config struct {
	// 認証・接続先
	APIKey      string `env:"GEMINI_API_KEY"`
	UseVertexAI bool   `env:"GOOGLE_GENAI_USE_VERTEXAI"`
	Project     string `env:"GOOGLE_CLOUD_PROJECT" validate:"required_if=UseVertexAI true,required_if=PredictREST true"`
	Location    string `env:"GOOGLE_CLOUD_LOCATION" validate:"required_if=UseVertexAI true,required_if=PredictREST true"`
	// PredictREST は :predict を ADC で直接呼ぶモードです。フラグからのみ設定されます。
	PredictREST bool
	APIVersion  string `env:"GENAI_API_VERSION" validate:"required"`

	// モデル
	TextModel  string `env:"TEXT_MODEL" validate:"required"`
	ImageModel string `env:"IMAGE_MODEL" validate:"required"`
	VideoModel string `env:"VIDEO_MODEL" validate:"required"`

	// 画像生成
	AspectRatio    string `env:"ASPECT_RATIO" validate:"omitempty,oneof=1:1 3:4 4:3 9:16 16:9"`
	NumberOfImages int    `env:"NUMBER_OF_IMAGES" validate:"gte=1,lte=4"`
	OutputDir      string `env:"OUTPUT_DIR" validate:"required"` // ローカルパスまたは gs://bucket/prefix

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0"`
	ImageCacheTTL  time.Duration `env:"IMAGE_CACHE_TTL" validate:"gte=0"` // 0 はキャッシュなし

	// 動画生成は完了まで数分かかるため REQUEST_TIMEOUT とは別に持つ
	VideoTimeout      time.Duration `env:"VIDEO_TIMEOUT" validate:"gt=0"`
	VideoPollInterval time.Duration `env:"VIDEO_POLL_INTERVAL" validate:"gt=0"`

	LogLevel  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" validate:"oneof=text json"`
}

// Defaults はデフォルト値を設定した Config を返します。
// .env、環境変数、フラグの順に上書きされます。
func Defaults() *Config {
	return &Config{
		APIVersion:        "v1",
		TextModel:         generator.DefaultTextModel,
		ImageModel:        generator.DefaultImageModel,
		VideoModel:        generator.DefaultVideoModel,
		AspectRatio:       "1:1",
		NumberOfImages:    1,
		OutputDir:         "output",
		RequestTimeout:    2 * time.Minute,
		ImageCacheTTL:     30 * time.Minute,
		VideoTimeout:      10 * time.Minute,
		VideoPollInterval: 10 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// Load は .env (存在すれば) と環境変数を読み込みます。
// 検証はフラグで上書きした後に Validate で行います。
func Load() (*Config, error) {
	// .env がないのは正常
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗しました: %w", err)
	}
	return cfg, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("設定値が不正です: %w", err)
	}
	if c.APIKey == "" && !c.UseVertexAI && !c.PredictREST {
		return ErrNoCredentials
	}
	return nil
}
