package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"wp-lite/pkg/config"
	"wp-lite/pkg/llm"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/s3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	mu          sync.Mutex
	objects     map[string][]byte
	contentType map[string]string
	err         error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (m *memoryStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.contentType[key] = contentType
	return nil
}

func (m *memoryStorage) PublicURL(key string) string {
	return "https://cdn.example.com/blog-images/" + key
}

var (
	_ ObjectStorage = (*memoryStorage)(nil)
	_ ObjectStorage = (*s3.Client)(nil)
	_ Model         = (*llm.Client)(nil)
)

var pngBytes = []byte("\x89PNG fake image")

// fakeOpenAI serves chat completions, image generations and the generated image itself.
func fakeOpenAI(t *testing.T, chatBody map[string]interface{}) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat/completions":
			if chatBody != nil {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&chatBody))
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"## Intro\n\nKeep your books tidy"}}]}`))
		case "/v1/images/generations":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"created":1,"data":[{"url":"` + srv.URL + `/files/img.png"}]}`))
		case "/files/img.png":
			w.Header().Set("Content-Type", "image/png")
			w.Write(pngBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newUseCase(t *testing.T, srvURL, apiKey string, storage ObjectStorage) GeneratorUseCase {
	t.Helper()
	deps := DefaultDependencies()
	deps.LoadCredentials = func() config.GeneratorCredentials {
		return config.GeneratorCredentials{
			OpenAIAPIKey:  apiKey,
			OpenAIBaseURL: srvURL + "/v1",
			Storage:       config.StorageCredentials{AccessKeyID: "a", SecretAccessKey: "b", Bucket: "blog-images"},
		}
	}
	deps.NewStorage = func(creds config.StorageCredentials) (ObjectStorage, error) {
		if !creds.Complete() {
			return nil, s3.ErrMissingCredentials
		}
		return storage, nil
	}
	var buf bytes.Buffer
	return NewGeneratorUseCase(deps, logger.NewWithWriters(&buf, &buf))
}

func TestPrompts(t *testing.T) {
	assert.True(t, strings.HasPrefix(ContentPrompt("Cash Flow"), `Write a comprehensive 800-word blog post about "Cash Flow" for an accounting services website.`))
	assert.Contains(t, ImagePrompt("Cash Flow"), `an article titled "Cash Flow"`)
	assert.Equal(t, `Professional blog header image for "Cash Flow"`, AltText("Cash Flow"))
}

func TestGeneratedImageKey(t *testing.T) {
	key := GeneratedImageKey(time.UnixMilli(1700000000000))
	assert.Regexp(t, regexp.MustCompile(`^generated-1700000000000-[0-9a-f]{11}\.png$`), key)
}

func TestGenerateContent(t *testing.T) {
	chat := map[string]interface{}{}
	srv := fakeOpenAI(t, chat)
	uc := newUseCase(t, srv.URL, "sk-test", newMemoryStorage())

	got, err := uc.GenerateContent(context.Background(), "Cash Flow")
	require.NoError(t, err)
	assert.Equal(t, "## Intro\n\nKeep your books tidy", got.Content)
	assert.Equal(t, 6, got.WordCount)

	assert.Equal(t, "gpt-4.1-2025-04-14", chat["model"])
	assert.EqualValues(t, 2000, chat["max_tokens"])
	messages := chat["messages"].([]interface{})
	assert.Equal(t, systemPrompt, messages[0].(map[string]interface{})["content"])
	assert.Equal(t, ContentPrompt("Cash Flow"), messages[1].(map[string]interface{})["content"])
}

func TestGenerateContent_MissingKey(t *testing.T) {
	srv := fakeOpenAI(t, nil)
	uc := newUseCase(t, srv.URL, "", newMemoryStorage())

	_, err := uc.GenerateContent(context.Background(), "Cash Flow")
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Equal(t, "OpenAI API key not configured", err.Error())
}

func TestGenerateContent_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	}))
	defer srv.Close()
	uc := newUseCase(t, srv.URL, "sk-test", newMemoryStorage())

	_, err := uc.GenerateContent(context.Background(), "Cash Flow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API error: Rate limit reached")
}

func TestGenerateImage(t *testing.T) {
	srv := fakeOpenAI(t, nil)
	storage := newMemoryStorage()
	uc := newUseCase(t, srv.URL, "sk-test", storage)

	got, err := uc.GenerateImage(context.Background(), "Cash Flow")
	require.NoError(t, err)
	assert.Equal(t, `Professional blog header image for "Cash Flow"`, got.AltText)
	require.True(t, strings.HasPrefix(got.ImageURL, "https://cdn.example.com/blog-images/generated-"))

	key := strings.TrimPrefix(got.ImageURL, "https://cdn.example.com/blog-images/")
	assert.Equal(t, pngBytes, storage.objects[key])
	assert.Equal(t, "image/png", storage.contentType[key])
}

func TestGenerateImage_UploadFailure(t *testing.T) {
	srv := fakeOpenAI(t, nil)
	storage := newMemoryStorage()
	storage.err = errors.New("access denied")
	uc := newUseCase(t, srv.URL, "sk-test", storage)

	_, err := uc.GenerateImage(context.Background(), "Cash Flow")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload image: access denied")
}

func TestGenerateImage_DownloadFailure(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/images/generations" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"created":1,"data":[{"url":"` + srv.URL + `/expired.png"}]}`))
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	uc := newUseCase(t, srv.URL, "sk-test", newMemoryStorage())

	_, err := uc.GenerateImage(context.Background(), "Cash Flow")
	assert.ErrorIs(t, err, ErrImageDownload)
}

func TestGenerateImage_OversizedDownload(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/images/generations" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"created":1,"data":[{"url":"` + srv.URL + `/huge.png"}]}`))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(bytes.Repeat([]byte{0}, MaxImageBytes+1))
	}))
	defer srv.Close()
	storage := newMemoryStorage()
	uc := newUseCase(t, srv.URL, "sk-test", storage)

	_, err := uc.GenerateImage(context.Background(), "Cash Flow")
	assert.ErrorIs(t, err, ErrImageDownload)
	assert.Empty(t, storage.objects)
}

func TestGenerateImage_MissingStorageCredentials(t *testing.T) {
	srv := fakeOpenAI(t, nil)
	deps := DefaultDependencies()
	deps.LoadCredentials = func() config.GeneratorCredentials {
		return config.GeneratorCredentials{OpenAIAPIKey: "sk-test", OpenAIBaseURL: srv.URL + "/v1"}
	}
	var buf bytes.Buffer
	uc := NewGeneratorUseCase(deps, logger.NewWithWriters(&buf, &buf))

	_, err := uc.GenerateImage(context.Background(), "Cash Flow")
	assert.ErrorIs(t, err, s3.ErrMissingCredentials)
}
