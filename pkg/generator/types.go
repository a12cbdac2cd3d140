package generator

import "errors"

const (
	UseImageCompression     = true
	ImageCompressionQuality = 75
	cacheKeyReferenceImage  = "refimg:"

	// Default*Model はモデル未指定時に使われます。
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-4.0-generate-001"
	DefaultVideoModel = "veo-3.0-fast-generate-001"

	// MaxImagesPerRequest は Imagen が 1 リクエストで返せる最大枚数です。
	MaxImagesPerRequest = 4

	responseModalityText = "TEXT"
	jsonMIMEType         = "application/json"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is required")
	ErrNoImages      = errors.New("no images returned")
	ErrNoCandidates  = errors.New("no candidates returned")
	ErrInvalidSeed   = errors.New("seed is out of range")
	ErrNoVideos      = errors.New("no videos returned")
	ErrInvalidSchema = errors.New("response schema is not valid JSON")
)
