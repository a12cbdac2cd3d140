package vertex

import "fmt"

// Instance は :predict の instances 要素です。
type Instance struct {
	Prompt string `json:"prompt"`
}

// Parameters は :predict の parameters オブジェクトです。
type Parameters struct {
	SampleCount      int    `json:"sampleCount"`
	NegativePrompt   string `json:"negativePrompt,omitempty"`
	AspectRatio      string `json:"aspectRatio,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
	Seed             *int32 `json:"seed,omitempty"`
}

// PredictRequest は :predict のリクエストボディです。
type PredictRequest struct {
	Instances  []Instance `json:"instances"`
	Parameters Parameters `json:"parameters"`
}

// Prediction は生成された画像 1 枚分です。画像は base64 で返ります。
type Prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded,omitempty"`
	MimeType           string `json:"mimeType,omitempty"`
	RAIFilteredReason  string `json:"raiFilteredReason,omitempty"`
}

// PredictResponse は :predict のレスポンスボディです。
type PredictResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// APIError は 2xx 以外のステータスが返った場合のエラーです。
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vertex predict error: status=%d, body=%s", e.StatusCode, e.Body)
}
