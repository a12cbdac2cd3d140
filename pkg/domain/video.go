package domain

// VideoGenerationRequest は動画生成の要求です。
type VideoGenerationRequest struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string // 16:9 または 9:16
	Resolution     string // 720p / 1080p
	// DurationSeconds が 0 の場合はモデルのデフォルト長になります。
	DurationSeconds int32
	NumberOfVideos  int
	Seed            *int64
	GenerateAudio   *bool
	// OutputGCSURI を指定すると Vertex AI は動画を直接 GCS に書き出し、バイト列は返りません。
	OutputGCSURI string
}

// GeneratedVideo は生成された動画 1 本分です。
// Data が空で URI だけがある場合は、動画が URI の場所に保存されています。
type GeneratedVideo struct {
	Data     []byte
	MimeType string
	URI      string
}

// HasData は動画バイト列を保持しているかを返します。
func (v GeneratedVideo) HasData() bool {
	return len(v.Data) > 0
}

// VideoResponse は生成された動画群です。
type VideoResponse struct {
	Videos             []GeneratedVideo
	RAIFilteredReasons []string
}
