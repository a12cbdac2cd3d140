package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSStore は Cloud Storage への読み書きです。
type GCSStore struct {
	client *gcs.Client
}

// NewGCSStore は ADC で Cloud Storage クライアントを作成します。
func NewGCSStore(ctx context.Context) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("GCS クライアントの作成に失敗しました: %w", err)
	}
	return &GCSStore{client: client}, nil
}

// Close はクライアントを閉じます。
func (g *GCSStore) Close() error {
	return g.client.Close()
}

func (g *GCSStore) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	return g.client.Bucket(bucket).Object(object).NewReader(ctx)
}

func (g *GCSStore) List(ctx context.Context, uri string, fn func(string) error) error {
	bucket, prefix, err := ParseGCSURI(uri)
	if err != nil {
		return err
	}

	it := g.client.Bucket(bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(gcsScheme + bucket + "/" + attrs.Name); err != nil {
			return err
		}
	}
}

func (g *GCSStore) Write(ctx context.Context, uri string, data []byte, contentType string) error {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return err
	}
	if object == "" {
		return fmt.Errorf("オブジェクト名がありません: %s", uri)
	}

	w := g.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("GCS への書き込みに失敗しました: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("GCS への書き込みに失敗しました: %w", err)
	}
	return nil
}
