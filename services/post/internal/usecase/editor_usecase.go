package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"wp-lite/pkg/logger"
	"wp-lite/services/post/internal/entity"

	"github.com/google/uuid"
)

const MaxImageSize = 5 * 1024 * 1024

var (
	ErrNotAnImage           = errors.New("please select an image file")
	ErrImageTooLarge        = errors.New("image size should be less than 5MB")
	ErrGenerationInProgress = errors.New("a generation is already running for this user")
	ErrUploadFailed         = errors.New("failed to upload image")
	ErrGenerationFailed     = errors.New("failed to generate, please try again")
)

// ImageStorage is the object store images are uploaded to.
type ImageStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}

// GeneratorClient calls the AI request handlers.
type GeneratorClient interface {
	GenerateContent(ctx context.Context, title string) (*entity.GeneratedContent, error)
	GenerateImage(ctx context.Context, title string) (*entity.GeneratedImage, error)
}

// Locker grants one holder per key at a time.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type EditorUseCase interface {
	UploadImage(ctx context.Context, file ImageUpload) (string, error)
	GenerateContent(ctx context.Context, userID, title string) (*entity.GeneratedContent, error)
	GenerateImage(ctx context.Context, userID, title string) (*entity.GeneratedImage, error)
}

type editorUseCase struct {
	storage   ImageStorage
	generator GeneratorClient
	locker    Locker
	logger    *logger.Logger
	now       func() time.Time
}

// NewEditorUseCase wires the editor operations. locker may be nil, in which
// case concurrent generations are not limited.
func NewEditorUseCase(storage ImageStorage, generator GeneratorClient, locker Locker, logger *logger.Logger) EditorUseCase {
	return &editorUseCase{
		storage:   storage,
		generator: generator,
		locker:    locker,
		logger:    logger,
		now:       time.Now,
	}
}

// ValidateImage rejects non-images and files over 5 MiB.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// UploadKey names an upload <unix-millis>-<token>.<ext>, keeping the original extension.
func UploadKey(filename string, now time.Time) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = filename
	}
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), token, ext)
}

func (uc *editorUseCase) UploadImage(ctx context.Context, file ImageUpload) (string, error) {
	if err := ValidateImage(file.ContentType, file.Size); err != nil {
		return "", err
	}
	if uc.storage == nil {
		uc.logger.Error("Image upload requested but storage is not configured")
		return "", ErrUploadFailed
	}

	key := UploadKey(file.Filename, uc.now())
	if err := uc.storage.Upload(ctx, key, file.Body, file.ContentType); err != nil {
		uc.logger.Error("Error uploading image: %v", err)
		return "", ErrUploadFailed
	}

	uc.logger.Info("Image uploaded: %s", key)
	return uc.storage.PublicURL(key), nil
}

func (uc *editorUseCase) GenerateContent(ctx context.Context, userID, title string) (*entity.GeneratedContent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, entity.ErrTitleRequired
	}

	release, err := uc.acquire(ctx, "content", userID)
	if err != nil {
		return nil, err
	}
	defer release()

	generated, err := uc.generator.GenerateContent(ctx, title)
	if err != nil {
		uc.logger.Error("Error generating content: %v", err)
		return nil, ErrGenerationFailed
	}
	return generated, nil
}

func (uc *editorUseCase) GenerateImage(ctx context.Context, userID, title string) (*entity.GeneratedImage, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, entity.ErrTitleRequired
	}

	release, err := uc.acquire(ctx, "image", userID)
	if err != nil {
		return nil, err
	}
	defer release()

	generated, err := uc.generator.GenerateImage(ctx, title)
	if err != nil {
		uc.logger.Error("Error generating image: %v", err)
		return nil, ErrGenerationFailed
	}
	return generated, nil
}

func (uc *editorUseCase) acquire(ctx context.Context, kind, userID string) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	release, ok, err := uc.locker.Acquire(ctx, fmt.Sprintf("generation:%s:%s", kind, userID))
	if err != nil {
		uc.logger.Error("Failed to acquire generation lock: %v", err)
		return nil, ErrGenerationFailed
	}
	if !ok {
		return nil, ErrGenerationInProgress
	}
	return release, nil
}
