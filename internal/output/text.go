// Package output は生成結果を標準出力や保存先へ書き出します。
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shouni/gemini-gen-kit/pkg/domain"
)

const (
	urlContextHeader = "--- URL Context Metadata ---"
	jsonHeader       = "--- Parsed JSON ---"
)

// TextOptions は PrintText の出力形式です。
type TextOptions struct {
	// ShowParts は連結済みのテキストではなくパーツを 1 行ずつ出力します。
	ShowParts bool
	// ShowURLContext は取得結果が空でも URL コンテキストのセクションを出力します。
	// false の場合は取得結果があるときだけ出力します。
	ShowURLContext bool
	// PrettyJSON は応答が JSON の場合に整形したものを続けて出力します。
	PrettyJSON bool
}

// PrintText はテキスト生成の結果を w に書き出します。
func PrintText(w io.Writer, resp *domain.TextResponse, opts TextOptions) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if opts.ShowParts {
		for _, p := range resp.Parts {
			if _, err := fmt.Fprintln(w, p); err != nil {
				return err
			}
		}
	} else if _, err := fmt.Fprintln(w, resp.Text); err != nil {
		return err
	}

	if opts.PrettyJSON {
		if err := printPrettyJSON(w, resp.Text); err != nil {
			return err
		}
	}

	if opts.ShowURLContext || len(resp.URLContext) > 0 {
		if err := PrintURLContext(w, resp.URLContext); err != nil {
			return err
		}
	}

	if resp.Usage != nil {
		_, err := fmt.Fprintf(w, "--- Usage ---\nprompt=%d candidates=%d total=%d\n",
			resp.Usage.PromptTokens, resp.Usage.CandidateTokens, resp.Usage.TotalTokens)
		return err
	}
	return nil
}

// PrintURLContext は URL コンテキストの取得結果を整形済み JSON で書き出します。
// 結果が空の場合は [] を出力します。
func PrintURLContext(w io.Writer, md []domain.URLMetadata) error {
	if md == nil {
		md = []domain.URLMetadata{}
	}
	if _, err := fmt.Fprintln(w, urlContextHeader); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(md)
}

func printPrettyJSON(w io.Writer, text string) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(text)), "", "  "); err != nil {
		slog.Warn("応答が JSON として解釈できないため整形を省略します", "error", err)
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", jsonHeader, buf.String())
	return err
}
