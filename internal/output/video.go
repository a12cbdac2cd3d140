package output

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
	"github.com/shouni/gemini-gen-kit/pkg/imgutil"
	"github.com/shouni/gemini-gen-kit/pkg/storage"
)

// SaveVideos は動画を dir 配下に <prefix>-<n>.<ext> で保存し、保存先を返します。
// バイト列を持たず URI だけの動画 (GCS へ直接出力された等) は URI をそのまま返します。
func SaveVideos(ctx context.Context, w storage.Writer, dir, prefix string, resp *domain.VideoResponse) ([]string, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}

	var saved []string
	for i, v := range resp.Videos {
		if !v.HasData() {
			if v.URI != "" {
				slog.InfoContext(ctx, "動画は生成先に保存済みです", "index", i+1, "uri", v.URI)
				saved = append(saved, v.URI)
			}
			continue
		}
		uri := storage.JoinURI(dir, fmt.Sprintf("%s-%d%s", prefix, i+1, imgutil.ExtensionForVideoMIME(v.MimeType)))
		if err := w.Write(ctx, uri, v.Data, v.MimeType); err != nil {
			return saved, fmt.Errorf("動画の保存に失敗しました (%s): %w", uri, err)
		}
		slog.InfoContext(ctx, "動画を保存しました", "uri", uri, "bytes", len(v.Data))
		saved = append(saved, uri)
	}
	return saved, nil
}
