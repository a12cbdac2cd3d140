package output

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/shouni/gemini-gen-kit/pkg/imgutil"
	"github.com/shouni/gemini-gen-kit/pkg/storage"
)

// SaveImages は返却されたすべての画像を dir 配下に <prefix>-<n>.<ext> で保存し、保存先を返します。
// 画像データがないもの (安全フィルターで除外された等) は警告を出してスキップします。
func SaveImages(ctx context.Context, w storage.Writer, dir, prefix string, resp *domain.ImageResponse) ([]string, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	var saved []string
	for i, img := range resp.Images {
		if !img.HasData() {
			slog.WarnContext(ctx, "画像データがないためスキップします",
				"index", i+1,
				"rai_filtered_reason", img.RAIFilteredReason,
			)
			continue
		}
		uri, err := saveImage(ctx, w, dir, fmt.Sprintf("%s-%d", prefix, i+1), img)
		if err != nil {
			return saved, err
		}
		saved = append(saved, uri)
	}
	return saved, nil
}

// SaveFirst は先頭の画像だけを保存します。
func SaveFirst(ctx context.Context, w storage.Writer, dir, prefix string, resp *domain.ImageResponse) (string, error) {
	img, ok := resp.First()
	if !ok {
		return "", fmt.Errorf("保存する画像がありません")
	}
	if !img.HasData() {
		return "", fmt.Errorf("先頭の画像にデータがありません (reason: %s)", img.RAIFilteredReason)
	}
	return saveImage(ctx, w, dir, prefix, img)
}

func saveImage(ctx context.Context, w storage.Writer, dir, name string, img domain.GeneratedImage) (string, error) {
	uri := storage.JoinURI(dir, name+imgutil.ExtensionForMIME(img.MimeType, img.Data))
	contentType := img.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := w.Write(ctx, uri, img.Data, contentType); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました (%s): %w", uri, err)
	}
	slog.InfoContext(ctx, "画像を保存しました", "uri", uri, "bytes", len(img.Data))
	return uri, nil
}
