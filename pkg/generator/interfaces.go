package generator

import (
	"context"
	"time"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"google.golang.org/genai"
)

// ModelsAPI は genai.Client.Models のうち本パッケージが利用する操作です。
// *genai.Models がこれを満たします。
type ModelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// ImageGenerator はビジネスロジック層が利用する画像生成の窓口です。
type ImageGenerator interface {
	GenerateImages(ctx context.Context, req domain.ImageGenerationRequest) (*domain.ImageResponse, error)
}

// TextGenerator はテキスト生成の窓口です。
type TextGenerator interface {
	GenerateText(ctx context.Context, req domain.TextGenerationRequest) (*domain.TextResponse, error)
}

// ImagePreparer は参照画像 URL からリクエストに添付するパーツを作成します。
type ImagePreparer interface {
	// PrepareImagePart は取得できなかった場合 nil を返します。
	PrepareImagePart(ctx context.Context, rawURL string) *genai.Part
}

// ImageCacher は、画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}

// VideoModelsAPI は Veo の長時間オペレーションを開始する操作です。*genai.Models が満たします。
type VideoModelsAPI interface {
	GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

// OperationsAPI は *genai.Operations のうちポーリングに使う操作です。
type OperationsAPI interface {
	GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error)
}

// FileDownloader は生成済み動画の本体を取得します。*genai.Files が満たします。
// Vertex AI バックエンドでは Download が使えないため nil を渡してください。
type FileDownloader interface {
	Download(ctx context.Context, uri genai.DownloadURI, config *genai.DownloadFileConfig) ([]byte, error)
}

// VideoGenerator は動画生成の窓口です。
type VideoGenerator interface {
	GenerateVideos(ctx context.Context, req domain.VideoGenerationRequest) (*domain.VideoResponse, error)
}
