package imgutil

import (
	"net/http"
	"strings"
)

// ExtensionForMIME は MIME タイプから保存用の拡張子を返します。
// MIME タイプが空の場合はバイト列から推定し、不明なら .png とします。
func ExtensionForMIME(mimeType string, data []byte) string {
	if mimeType == "" && len(data) > 0 {
		mimeType = http.DetectContentType(data)
	}
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// ExtensionForVideoMIME は動画の MIME タイプから拡張子を返します。不明なら .mp4 です。
func ExtensionForVideoMIME(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ".mp4"
	}
}
