package generator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"google.golang.org/genai"
)

// --- Mocks ---

type mockModels struct {
	generateContentFunc func(model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	generateImagesFunc  func(model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if m.generateContentFunc != nil {
		return m.generateContentFunc(model, contents, config)
	}
	return nil, nil
}

func (m *mockModels) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	if m.generateImagesFunc != nil {
		return m.generateImagesFunc(model, prompt, config)
	}
	return nil, nil
}

type mockPreparer struct {
	calls   []string
	prepare func(url string) *genai.Part
}

func (m *mockPreparer) PrepareImagePart(ctx context.Context, url string) *genai.Part {
	m.calls = append(m.calls, url)
	if m.prepare != nil {
		return m.prepare(url)
	}
	return nil
}

type mockReader struct {
	data map[string][]byte
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	b, ok := m.data[uri]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

type mockHTTPClient struct {
	data    []byte
	err     error
	fetched int
	// unsafe が true の場合 IsSafeURL は拒否を返します
	unsafe bool
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.fetched++
	return m.data, m.err
}

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) {
	if m.unsafe {
		return false, errors.New("blocked by policy")
	}
	return true, nil
}

// インターフェースを満たすための空実装群
func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return nil, nil
}

func (m *mockHTTPClient) IsSecureServiceURL(serviceURL string) bool {
	return true
}

func (m *mockHTTPClient) DoRequest(req *http.Request) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	return nil
}

func (m *mockHTTPClient) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	return nil, nil
}

var _ httpkit.ClientInterface = (*mockHTTPClient)(nil)

type mockCache struct {
	data map[string]any
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	m.data[key] = value
}

type mockVideoModels struct {
	generateVideosFunc func(model, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
}

func (m *mockVideoModels) GenerateVideos(ctx context.Context, model string, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	if m.generateVideosFunc != nil {
		return m.generateVideosFunc(model, prompt, config)
	}
	return nil, nil
}

// mockOperations は呼ばれるたびに ops を先頭から返します。
type mockOperations struct {
	ops   []*genai.GenerateVideosOperation
	err   error
	calls int
}

func (m *mockOperations) GetVideosOperation(ctx context.Context, operation *genai.GenerateVideosOperation, config *genai.GetOperationConfig) (*genai.GenerateVideosOperation, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.ops) == 0 {
		return operation, nil
	}
	op := m.ops[0]
	m.ops = m.ops[1:]
	return op, nil
}

type mockDownloader struct {
	data  []byte
	err   error
	calls int
}

func (m *mockDownloader) Download(ctx context.Context, uri genai.DownloadURI, config *genai.DownloadFileConfig) ([]byte, error) {
	m.calls++
	return m.data, m.err
}
