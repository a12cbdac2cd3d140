package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger は LOG_LEVEL / LOG_FORMAT に従ったロガーを作成します。
// 結果の出力に stdout を使うため、w には通常 os.Stderr を渡します。
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetupLogger は設定からロガーを作成し、デフォルトロガーとして登録します。
func (c *Config) SetupLogger(w io.Writer) *slog.Logger {
	logger := NewLogger(w, c.LogLevel, c.LogFormat)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lv
}
