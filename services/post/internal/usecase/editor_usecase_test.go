package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"wp-lite/pkg/cache"
	"wp-lite/services/post/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockImageStorage) PublicURL(key string) string {
	return "https://cdn.example.com/blog-images/" + key
}

type MockGeneratorClient struct {
	mock.Mock
}

func (m *MockGeneratorClient) GenerateContent(ctx context.Context, title string) (*entity.GeneratedContent, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GeneratedContent), args.Error(1)
}

func (m *MockGeneratorClient) GenerateImage(ctx context.Context, title string) (*entity.GeneratedImage, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GeneratedImage), args.Error(1)
}

var (
	_ ImageStorage    = (*MockImageStorage)(nil)
	_ GeneratorClient = (*MockGeneratorClient)(nil)
	_ Locker          = (*cache.Locker)(nil)
)

func newLocker(t *testing.T) *cache.Locker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewLocker(client, time.Minute)
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage("image/png", 1024))
	assert.NoError(t, ValidateImage("image/jpeg", MaxImageSize))
	assert.ErrorIs(t, ValidateImage("application/pdf", 10), ErrNotAnImage)
	assert.ErrorIs(t, ValidateImage("image/png", MaxImageSize+1), ErrImageTooLarge)
}

func TestUploadKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	key := UploadKey("photo.final.JPG", now)
	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[0-9a-f]{12}\.JPG$`), key)
	assert.NotEqual(t, key, UploadKey("photo.final.JPG", now))
}

func TestUploadImage_Success(t *testing.T) {
	storage := new(MockImageStorage)
	uc := NewEditorUseCase(storage, nil, nil, testLogger())

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".png")
	}), mock.Anything, "image/png").Return(nil)

	url, err := uc.UploadImage(context.Background(), ImageUpload{
		Filename:    "chart.png",
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/blog-images/"))
	storage.AssertExpectations(t)
}

func TestUploadImage_Rejections(t *testing.T) {
	storage := new(MockImageStorage)
	uc := NewEditorUseCase(storage, nil, nil, testLogger())
	ctx := context.Background()

	_, err := uc.UploadImage(ctx, ImageUpload{Filename: "a.txt", ContentType: "text/plain", Size: 1})
	assert.ErrorIs(t, err, ErrNotAnImage)

	_, err = uc.UploadImage(ctx, ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 6 * 1024 * 1024})
	assert.ErrorIs(t, err, ErrImageTooLarge)

	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png").Return(errors.New("bucket gone"))
	_, err = uc.UploadImage(ctx, ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrUploadFailed)

	noStorage := NewEditorUseCase(nil, nil, nil, testLogger())
	_, err = noStorage.UploadImage(ctx, ImageUpload{Filename: "a.png", ContentType: "image/png", Size: 1})
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestGenerateContent(t *testing.T) {
	generator := new(MockGeneratorClient)
	uc := NewEditorUseCase(nil, generator, newLocker(t), testLogger())
	ctx := context.Background()

	_, err := uc.GenerateContent(ctx, "user-1", "  ")
	assert.ErrorIs(t, err, entity.ErrTitleRequired)

	generator.On("GenerateContent", mock.Anything, "Year-end planning").
		Return(&entity.GeneratedContent{Content: "# Plan", WordCount: 2}, nil).Twice()

	got, err := uc.GenerateContent(ctx, "user-1", " Year-end planning ")
	require.NoError(t, err)
	assert.Equal(t, 2, got.WordCount)

	// the lock is released after each call
	_, err = uc.GenerateContent(ctx, "user-1", "Year-end planning")
	assert.NoError(t, err)
	generator.AssertExpectations(t)
}

func TestGenerateContent_UpstreamFailure(t *testing.T) {
	generator := new(MockGeneratorClient)
	uc := NewEditorUseCase(nil, generator, nil, testLogger())

	generator.On("GenerateContent", mock.Anything, "Title").Return(nil, errors.New("OpenAI API error: quota"))
	_, err := uc.GenerateContent(context.Background(), "user-1", "Title")
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateImage_RejectsConcurrentRun(t *testing.T) {
	generator := new(MockGeneratorClient)
	locker := newLocker(t)
	uc := NewEditorUseCase(nil, generator, locker, testLogger())
	ctx := context.Background()

	release, ok, err := locker.Acquire(ctx, "generation:image:user-1")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.GenerateImage(ctx, "user-1", "Busy")
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	generator.On("GenerateImage", mock.Anything, "Busy").
		Return(&entity.GeneratedImage{ImageURL: "https://cdn/x.png", AltText: `Professional blog header image for "Busy"`}, nil)

	// another user is not blocked
	img, err := uc.GenerateImage(ctx, "user-2", "Busy")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.png", img.ImageURL)

	release()
	_, err = uc.GenerateImage(ctx, "user-1", "Busy")
	assert.NoError(t, err)
}
