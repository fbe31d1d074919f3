package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wp-lite/services/post/internal/entity"
)

const (
	contentPath = "/functions/v1/generate-blog-content"
	imagePath   = "/functions/v1/generate-blog-image"
)

// GeneratorClient calls the generator service over HTTP.
type GeneratorClient struct {
	baseURL string
	client  *http.Client
}

func NewGeneratorClient(baseURL string) *GeneratorClient {
	return &GeneratorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *GeneratorClient) GenerateContent(ctx context.Context, title string) (*entity.GeneratedContent, error) {
	var out entity.GeneratedContent
	if err := g.post(ctx, contentPath, title, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *GeneratorClient) GenerateImage(ctx context.Context, title string) (*entity.GeneratedImage, error) {
	var out entity.GeneratedImage
	if err := g.post(ctx, imagePath, title, &out); err != nil {
		return nil, err
	}
	if out.ImageURL == "" {
		return nil, fmt.Errorf("generator returned no image url")
	}
	return &out, nil
}

func (g *GeneratorClient) post(ctx context.Context, path, title string, out interface{}) error {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var failure struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &failure) == nil && failure.Error != "" {
			return fmt.Errorf("generator service returned %d: %s", resp.StatusCode, failure.Error)
		}
		return fmt.Errorf("generator service returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode generator response: %w", err)
	}
	return nil
}
