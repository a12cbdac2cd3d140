// Package vertex は Vertex AI の画像生成 :predict エンドポイントを REST で直接呼び出します。
package vertex

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/shouni/gemini-gen-kit/pkg/generator"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	predictPathFormat  = "/v1/projects/%s/locations/%s/publishers/google/models/%s:predict"

	defaultTimeout = 120 * time.Second
	// エラーボディはログ用に先頭だけ読む
	maxErrorBody = 4096
)

// Config は :predict の呼び出し先です。
type Config struct {
	ProjectID string
	Location  string
	Model     string
}

// Client は :predict の REST クライアントです。generator.ImageGenerator を満たします。
type Client struct {
	cfg        Config
	httpClient httpkit.ClientInterface
	baseURL    string
}

var _ generator.ImageGenerator = (*Client)(nil)

type options struct {
	baseURL   string
	transport http.RoundTripper
	timeout   time.Duration
}

// Option はクライアントの設定オプションです。
type Option func(*options)

// WithTransport はトークン付与の下で使うトランスポートを差し替えます。
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

// WithTimeout はリクエストのタイムアウトを設定します。
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithBaseURL は https://{LOCATION}-aiplatform.googleapis.com の部分を差し替えます。
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewClient はトークンソースを指定してクライアントを作成します。
// Authorization ヘッダーは oauth2.Transport が付与し、送信は httpkit を経由します。
func NewClient(tokens oauth2.TokenSource, cfg Config, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, fmt.Errorf("tokens (oauth2.TokenSource) is required")
	}
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("project id and location are required")
	}
	if cfg.Model == "" {
		cfg.Model = generator.DefaultImageModel
	}

	o := options{
		baseURL:   fmt.Sprintf("https://%s-aiplatform.googleapis.com", cfg.Location),
		transport: http.DefaultTransport,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	authed := &http.Client{
		Timeout: o.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, tokens),
			Base:   o.transport,
		},
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpkit.New(o.timeout, httpkit.WithHTTPClient(authed)),
		baseURL:    o.baseURL,
	}, nil
}

// NewDefaultClient は ADC (Application Default Credentials) からトークンを取得するクライアントを作成します。
// gcloud auth print-access-token で得られるトークンと同じものが使われます。
func NewDefaultClient(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("ADC credentials not found. Set GOOGLE_APPLICATION_CREDENTIALS or run on GCP: %w", err)
	}
	return NewClient(ts, cfg, opts...)
}

// Endpoint は :predict の URL を返します。
func (c *Client) Endpoint() string {
	return c.baseURL + fmt.Sprintf(predictPathFormat, c.cfg.ProjectID, c.cfg.Location, c.cfg.Model)
}

// Predict は :predict を 1 回だけ呼び出します。
// httpkit の DoRequest 系はリトライを伴うため、Do で送信してレスポンス処理のみ httpkit に任せます。
func (c *Client) Predict(ctx context.Context, body PredictRequest) (*PredictResponse, error) {
	payload, err := json.Marshal(&body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vertex predict request failed: %w", err)
	}

	slog.InfoContext(ctx, "Vertex predict request completed",
		"model", c.cfg.Model,
		"status", resp.StatusCode,
		"took", time.Since(started).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := httpkit.HandleLimitedResponse(resp, maxErrorBody)
		if len(b) == 0 {
			b = []byte(resp.Status)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	raw, err := httpkit.HandleResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("vertex predict: %w", err)
	}

	var out PredictResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("vertex predict: decode json response: %w", err)
	}
	return &out, nil
}

// GenerateImages はドメインのリクエストを :predict の形式に変換して実行します。
func (c *Client) GenerateImages(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, generator.ErrEmptyPrompt
	}
	if err := generator.ValidateSeed(req.Seed); err != nil {
		return nil, err
	}

	resp, err := c.Predict(ctx, toPredictRequest(req))
	if err != nil {
		return nil, fmt.Errorf("Vertex画像生成エラー: %w", err)
	}

	out := &domain.ImageResponse{}
	if req.Seed != nil {
		out.UsedSeed = *req.Seed
	}
	for i, p := range resp.Predictions {
		img := domain.GeneratedImage{MimeType: p.MimeType, RAIFilteredReason: p.RAIFilteredReason}
		if p.BytesBase64Encoded != "" {
			data, err := base64.StdEncoding.DecodeString(p.BytesBase64Encoded)
			if err != nil {
				return nil, fmt.Errorf("prediction %d: base64 デコードに失敗しました: %w", i, err)
			}
			img.Data = data
		}
		out.Images = append(out.Images, img)
	}
	if len(out.Images) == 0 {
		return nil, generator.ErrNoImages
	}
	return out, nil
}

func toPredictRequest(req domain.ImageGenerationRequest) PredictRequest {
	n := req.NumberOfImages
	if n <= 0 {
		n = 1
	}
	if n > generator.MaxImagesPerRequest {
		n = generator.MaxImagesPerRequest
	}

	params := Parameters{
		SampleCount:      n,
		NegativePrompt:   req.NegativePrompt,
		AspectRatio:      req.AspectRatio,
		PersonGeneration: strings.ToLower(req.PersonGeneration),
	}
	if req.Seed != nil {
		s := int32(*req.Seed)
		params.Seed = &s
	}

	return PredictRequest{
		Instances:  []Instance{{Prompt: req.Prompt}},
		Parameters: params,
	}
}
