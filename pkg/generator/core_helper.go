package generator

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"google.golang.org/genai"
)

// parseImagesResponse は GenerateImages の応答を返却順のまま ImageResponse に変換します。
func parseImagesResponse(resp *genai.GenerateImagesResponse, seed int64) (*domain.ImageResponse, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImages
	}

	out := &domain.ImageResponse{UsedSeed: seed}
	for _, gi := range resp.GeneratedImages {
		if gi == nil {
			continue
		}
		img := domain.GeneratedImage{
			RAIFilteredReason: gi.RAIFilteredReason,
			EnhancedPrompt:    gi.EnhancedPrompt,
		}
		if gi.Image != nil {
			img.Data = gi.Image.ImageBytes
			img.MimeType = gi.Image.MIMEType
		}
		if img.MimeType == "" && img.HasData() {
			img.MimeType = http.DetectContentType(img.Data)
		}
		out.Images = append(out.Images, img)
	}

	if len(out.Images) == 0 {
		return nil, ErrNoImages
	}
	return out, nil
}

// parseTextResponse は GenerateContent の応答からテキスト、パーツ、URL コンテキスト情報を取り出します。
// 最初の候補 (Candidate) のみを利用する。
func parseTextResponse(resp *genai.GenerateContentResponse) (*domain.TextResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, ErrNoCandidates
	}
	candidate := resp.Candidates[0]

	out := &domain.TextResponse{
		FinishReason: string(candidate.FinishReason),
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			out.Parts = append(out.Parts, part.Text)
		}
	}
	out.Text = strings.Join(out.Parts, "")

	if md := candidate.URLContextMetadata; md != nil {
		for _, m := range md.URLMetadata {
			if m == nil {
				continue
			}
			out.URLContext = append(out.URLContext, domain.URLMetadata{
				RetrievedURL: m.RetrievedURL,
				Status:       string(m.URLRetrievalStatus),
			})
		}
	}

	if u := resp.UsageMetadata; u != nil {
		out.Usage = &domain.Usage{
			PromptTokens:    u.PromptTokenCount,
			CandidateTokens: u.CandidatesTokenCount,
			TotalTokens:     u.TotalTokenCount,
		}
	}

	// 安全フィルター等によるブロックの確認
	if out.Text == "" && candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("テキスト生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}

	return out, nil
}
