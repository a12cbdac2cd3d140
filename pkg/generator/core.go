package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/gemini-gen-kit/pkg/imgutil"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// GeminiCore は参照画像の取得・圧縮・キャッシュを担う基盤です。
// テキスト生成時に画像を添付する場合に ImagePreparer として利用されます。
type GeminiCore struct {
	reader     remoteio.InputReader
	httpClient httpkit.ClientInterface
	cache      ImageCacher
	expiration time.Duration
}

// NewGeminiCore は依存関係を注入して GeminiCore を初期化します。
func NewGeminiCore(reader remoteio.InputReader, httpClient httpkit.ClientInterface, cache ImageCacher, cacheTTL time.Duration) (*GeminiCore, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	// reader が nil の場合 gs:// は扱えない。cache は nil を許容（キャッシュなし動作）

	return &GeminiCore{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
	}, nil
}

// PrepareImagePart は URL から画像を準備して genai.Part に変換します。
// 失敗した場合は警告ログを残して nil を返し、呼び出し側はテキストのみで続行します。
func (c *GeminiCore) PrepareImagePart(ctx context.Context, rawURL string) *genai.Part {
	key := cacheKeyReferenceImage + rawURL
	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			if data, ok := cached.([]byte); ok {
				return c.toPart(data)
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	data, err := c.fetchImageData(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像の取得に失敗しました。テキストのみで続行します", "url", rawURL, "error", err)
		return nil
	}

	finalData := data
	if UseImageCompression {
		if compressed, err := imgutil.CompressToJPEG(data, ImageCompressionQuality); err == nil {
			finalData = compressed
		}
	}

	part := c.toPart(finalData)
	if part != nil && c.cache != nil {
		c.cache.Set(key, finalData, c.expiration)
	}
	return part
}

func (c *GeminiCore) fetchImageData(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		if c.reader == nil {
			return nil, fmt.Errorf("gs:// を読むための reader が設定されていません: %s", rawURL)
		}
		rc, err := c.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := c.httpClient.IsSafeURL(rawURL); !safe {
		if err == nil {
			err = fmt.Errorf("blocked: %s", rawURL)
		}
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return c.httpClient.FetchBytes(ctx, rawURL)
}

func (c *GeminiCore) toPart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		slog.Warn("MIMEタイプが画像ではないためPartに変換できませんでした", "detected_mime_type", mimeType)
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}
