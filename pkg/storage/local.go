package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore はローカルファイルシステムへの読み書きです。
type LocalStore struct{}

// Open はファイルを開きます。
func (l *LocalStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	return os.Open(uri)
}

// List はディレクトリ直下のファイルを名前順に列挙します。
func (l *LocalStore) List(ctx context.Context, uri string, fn func(string) error) error {
	entries, err := os.ReadDir(uri)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := fn(filepath.Join(uri, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Write は親ディレクトリを作成してからファイルを書き込みます。
func (l *LocalStore) Write(ctx context.Context, uri string, data []byte, contentType string) error {
	if dir := filepath.Dir(uri); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ディレクトリ作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(uri, data, 0o644); err != nil {
		return fmt.Errorf("ファイル書き込みに失敗しました: %w", err)
	}
	return nil
}
