package domain

import "encoding/json"

// TextGenerationRequest はテキスト生成の要求です。
// 任意項目はポインタで受け取り、nil の場合はモデルのデフォルトを使います。
type TextGenerationRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string

	Temperature     *float32
	TopP            *float32
	TopK            *float32
	MaxOutputTokens int32
	// ThinkingBudget が 0 の場合は thinking を無効化します。
	ThinkingBudget *int32

	// UseURLContext はプロンプト中の URL を取得して文脈に含めるツールを有効化します。
	UseURLContext bool
	// ReferenceImageURLs はプロンプトと一緒に送る参照画像です。
	ReferenceImageURLs []string
	// JSONOutput はレスポンスの MIME タイプを application/json に固定します。
	JSONOutput bool
	// ResponseSchema は応答の形を指定する JSON Schema です。指定時は JSONOutput も有効になります。
	ResponseSchema json.RawMessage
}

// URLMetadata は URL コンテキストツールが取得した URL 1 件分の情報です。
type URLMetadata struct {
	RetrievedURL string `json:"retrievedUrl"`
	Status       string `json:"urlRetrievalStatus"`
}

// Usage はトークン使用量です。
type Usage struct {
	PromptTokens    int32 `json:"promptTokenCount"`
	CandidateTokens int32 `json:"candidatesTokenCount"`
	TotalTokens     int32 `json:"totalTokenCount"`
}

// TextResponse はテキスト生成の結果です。
type TextResponse struct {
	Text         string
	Parts        []string // 先頭候補の各パーツのテキスト
	URLContext   []URLMetadata
	FinishReason string
	Usage        *Usage
}
