// Package llm wraps the OpenAI API calls the generator makes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wp-lite/pkg/config"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrMissingAPIKey = errors.New("OpenAI API key not configured")
	ErrNoContent     = errors.New("no content generated")
	ErrNoImageURL    = errors.New("no image URL returned")
)

type Client struct {
	api        *openai.Client
	textModel  string
	imageModel string
}

func NewClient(creds config.GeneratorCredentials) (*Client, error) {
	if creds.OpenAIAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	clientConfig := openai.DefaultConfig(creds.OpenAIAPIKey)
	if creds.OpenAIBaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(creds.OpenAIBaseURL, "/")
	}

	textModel := creds.OpenAITextModel
	if textModel == "" {
		textModel = "gpt-4.1-2025-04-14"
	}
	imageModel := creds.OpenAIImageModel
	if imageModel == "" {
		imageModel = openai.CreateImageModelDallE3
	}

	return &Client{
		api:        openai.NewClientWithConfig(clientConfig),
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

type ChatRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

func (c *Client) Complete(ctx context.Context, req ChatRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.textModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", apiError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoContent
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage asks for a single 1024x1024 HD image and returns its temporary URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityHD,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", apiError(err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrNoImageURL
	}
	return resp.Data[0].URL, nil
}

func apiError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("OpenAI API error: %s", apiErr.Message)
	}
	return fmt.Errorf("OpenAI API error: %w", err)
}
