// Package storage は生成結果の保存先とプロンプトファイルの読み込み元を扱います。
// ローカルパスと gs:// URI の両方に対応します。
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

const gcsScheme = "gs://"

// Writer は URI にバイト列を書き込みます。
type Writer interface {
	Write(ctx context.Context, uri string, data []byte, contentType string) error
}

// Store は URI のスキームに応じてローカルと GCS を振り分けます。
type Store struct {
	local *LocalStore
	gcs   *GCSStore
}

var (
	_ remoteio.InputReader = (*Store)(nil)
	_ Writer               = (*Store)(nil)
)

// NewStore は Store を作成します。gcs が nil の場合 gs:// はエラーになります。
func NewStore(gcs *GCSStore) *Store {
	return &Store{local: &LocalStore{}, gcs: gcs}
}

// IsGCSURI は gs:// 形式かどうかを返します。
func IsGCSURI(uri string) bool {
	return strings.HasPrefix(uri, gcsScheme)
}

// Open は URI を読み込み用に開きます。
func (s *Store) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if IsGCSURI(uri) {
		if s.gcs == nil {
			return nil, fmt.Errorf("GCS クライアントが設定されていません: %s", uri)
		}
		return s.gcs.Open(ctx, uri)
	}
	return s.local.Open(ctx, uri)
}

// List は URI 配下のオブジェクトを列挙し fn を呼び出します。
func (s *Store) List(ctx context.Context, uri string, fn func(string) error) error {
	if IsGCSURI(uri) {
		if s.gcs == nil {
			return fmt.Errorf("GCS クライアントが設定されていません: %s", uri)
		}
		return s.gcs.List(ctx, uri, fn)
	}
	return s.local.List(ctx, uri, fn)
}

// Write は URI にデータを書き込みます。
func (s *Store) Write(ctx context.Context, uri string, data []byte, contentType string) error {
	if IsGCSURI(uri) {
		if s.gcs == nil {
			return fmt.Errorf("GCS クライアントが設定されていません: %s", uri)
		}
		return s.gcs.Write(ctx, uri, data, contentType)
	}
	return s.local.Write(ctx, uri, data, contentType)
}

// JoinURI は保存先ディレクトリとファイル名を連結します。
func JoinURI(base, name string) string {
	if IsGCSURI(base) {
		return gcsScheme + path.Join(strings.TrimPrefix(base, gcsScheme), name)
	}
	return filepath.Join(base, name)
}

// ParseGCSURI は gs://bucket/object をバケット名とオブジェクト名に分解します。
func ParseGCSURI(uri string) (bucket, object string, err error) {
	if !IsGCSURI(uri) {
		return "", "", fmt.Errorf("gs:// 形式ではありません: %s", uri)
	}
	rest := strings.TrimPrefix(uri, gcsScheme)
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("バケット名がありません: %s", uri)
	}
	return bucket, object, nil
}
