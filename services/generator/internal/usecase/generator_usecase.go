package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wp-lite/pkg/config"
	"wp-lite/pkg/content"
	"wp-lite/pkg/llm"
	"wp-lite/pkg/logger"
	"wp-lite/pkg/s3"
	"wp-lite/services/generator/internal/entity"

	"github.com/google/uuid"
)

const (
	systemPrompt = "You are an expert content writer specializing in accounting and business finance topics. Write engaging, informative blog posts that help small business owners understand financial concepts and see the value of professional accounting services."

	contentPromptTemplate = `Write a comprehensive 800-word blog post about "%s" for an accounting services website. 

Structure the blog post as follows:
1. Engaging introduction (100-150 words)
2. Main content with 3-4 key sections (500-600 words total)
3. FAQ section with 4-5 relevant questions and answers (150-200 words)
4. Conclusion with call-to-action (50-100 words)

Make it professional, informative, and relevant for small business owners who might need accounting services. Include practical tips and actionable advice. Use a conversational but authoritative tone.

Format the response as clean markdown with proper headers (##, ###) and structure.`

	imagePromptTemplate = `Create a professional, modern blog header image for an article titled "%s". The image should be suitable for an accounting/business website. Style: clean, corporate, professional with a modern aesthetic. Include relevant business or accounting imagery but keep it sophisticated and not too literal. Use a color palette that works well with professional websites. Aspect ratio should be 16:9 for a blog header. High quality, ultra-realistic.`

	maxTokens   = 2000
	temperature = 0.7

	// MaxImageBytes caps how much of a generated image is downloaded.
	MaxImageBytes = 20 << 20
)

var ErrImageDownload = errors.New("failed to fetch generated image")

// Model is the LLM surface the generator needs.
type Model interface {
	Complete(ctx context.Context, req llm.ChatRequest) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ObjectStorage receives generated images.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}

type GeneratorUseCase interface {
	GenerateContent(ctx context.Context, title string) (*entity.GeneratedContent, error)
	GenerateImage(ctx context.Context, title string) (*entity.GeneratedImage, error)
}

// Dependencies are built per request from credentials read at call time.
type Dependencies struct {
	LoadCredentials func() config.GeneratorCredentials
	NewModel        func(config.GeneratorCredentials) (Model, error)
	NewStorage      func(config.StorageCredentials) (ObjectStorage, error)
	HTTPClient      *http.Client
}

// DefaultDependencies reads the process environment and talks to OpenAI and S3.
func DefaultDependencies() Dependencies {
	return Dependencies{
		LoadCredentials: config.LoadGeneratorCredentials,
		NewModel: func(creds config.GeneratorCredentials) (Model, error) {
			client, err := llm.NewClient(creds)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		NewStorage: func(creds config.StorageCredentials) (ObjectStorage, error) {
			client, err := s3.NewClient(creds)
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type generatorUseCase struct {
	deps   Dependencies
	logger *logger.Logger
	now    func() time.Time
}

func NewGeneratorUseCase(deps Dependencies, logger *logger.Logger) GeneratorUseCase {
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	return &generatorUseCase{
		deps:   deps,
		logger: logger,
		now:    time.Now,
	}
}

func ContentPrompt(title string) string {
	return fmt.Sprintf(contentPromptTemplate, title)
}

func ImagePrompt(title string) string {
	return fmt.Sprintf(imagePromptTemplate, title)
}

func AltText(title string) string {
	return fmt.Sprintf(`Professional blog header image for "%s"`, title)
}

func (uc *generatorUseCase) GenerateContent(ctx context.Context, title string) (*entity.GeneratedContent, error) {
	uc.logger.Info("Generating blog content for title: %s", title)

	model, err := uc.deps.NewModel(uc.deps.LoadCredentials())
	if err != nil {
		return nil, err
	}

	generated, err := model.Complete(ctx, llm.ChatRequest{
		System:      systemPrompt,
		Prompt:      ContentPrompt(title),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		uc.logger.Error("OpenAI API error: %v", err)
		return nil, err
	}

	uc.logger.Info("Blog content generated successfully")
	return &entity.GeneratedContent{
		Content:   generated,
		WordCount: content.WordCount(generated),
	}, nil
}

func (uc *generatorUseCase) GenerateImage(ctx context.Context, title string) (*entity.GeneratedImage, error) {
	uc.logger.Info("Generating image for blog title: %s", title)

	creds := uc.deps.LoadCredentials()
	model, err := uc.deps.NewModel(creds)
	if err != nil {
		return nil, err
	}
	storage, err := uc.deps.NewStorage(creds.Storage)
	if err != nil {
		return nil, err
	}

	imageURL, err := model.GenerateImage(ctx, ImagePrompt(title))
	if err != nil {
		uc.logger.Error("OpenAI API error: %v", err)
		return nil, err
	}

	data, err := uc.download(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	key := GeneratedImageKey(uc.now())
	if err := storage.Upload(ctx, key, bytes.NewReader(data), "image/png"); err != nil {
		uc.logger.Error("Upload error: %v", err)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	publicURL := storage.PublicURL(key)
	uc.logger.Info("Image generated and uploaded successfully: %s", publicURL)

	return &entity.GeneratedImage{
		ImageURL: publicURL,
		AltText:  AltText(title),
	}, nil
}

// GeneratedImageKey names a generated image generated-<unix-millis>-<token>.png.
func GeneratedImageKey(now time.Time) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:11]
	return fmt.Sprintf("generated-%d-%s.png", now.UnixMilli(), token)
}

func (uc *generatorUseCase) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := uc.deps.HTTPClient.Do(req)
	if err != nil {
		uc.logger.Error("Failed to fetch generated image: %v", err)
		return nil, ErrImageDownload
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		uc.logger.Error("Fetching generated image returned %d", resp.StatusCode)
		return nil, ErrImageDownload
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, ErrImageDownload
	}
	if len(data) > MaxImageBytes {
		uc.logger.Error("Generated image exceeds %d bytes", MaxImageBytes)
		return nil, ErrImageDownload
	}
	return data, nil
}
