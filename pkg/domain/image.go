package domain

// ImageGenerationRequest は単一の画像生成要求です。
type ImageGenerationRequest struct {
	Prompt         string
	NegativePrompt string // Gemini API バックエンドでは未サポート。Vertex AI 経由でのみ有効
	AspectRatio    string
	NumberOfImages int
	// PersonGeneration は人物描写の許可レベルです (dont_allow / allow_adult / allow_all)。
	PersonGeneration string
	Seed             *int64
}

// GeneratedImage は API が返した画像 1 枚分のデータです。
type GeneratedImage struct {
	Data              []byte
	MimeType          string
	RAIFilteredReason string // 安全フィルターで除外された場合の理由
	EnhancedPrompt    string
}

// HasData は画像バイト列を保持しているかを返します。
func (g GeneratedImage) HasData() bool {
	return len(g.Data) > 0
}

// ImageResponse は生成された画像群とそのメタデータです。
type ImageResponse struct {
	Images   []GeneratedImage
	UsedSeed int64 // 戻り値は情報欠落を防ぐため int64
}

// First は返却された画像のうち先頭の 1 枚を返します。
// 画像が 1 枚もない場合は false を返します。
func (r *ImageResponse) First() (GeneratedImage, bool) {
	if r == nil || len(r.Images) == 0 {
		return GeneratedImage{}, false
	}
	return r.Images[0], true
}
