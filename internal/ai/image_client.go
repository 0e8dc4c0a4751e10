package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
)

// ImageClient генерирует картинки через Images API.
type ImageClient struct {
	client *openai.Client
	params openai.ImageGenerateParams
}

// NewImageClient size — сторона квадрата в пикселях, format — url|b64_json.
func NewImageClient(client *openai.Client, model string, size int, n int, format string) *ImageClient {
	params := openai.ImageGenerateParams{
		Model: openai.ImageModel(model),
		Size:  openai.ImageGenerateParamsSize(fmt.Sprintf("%dx%d", size, size)),
	}
	if n > 0 {
		params.N = openai.Int(int64(n))
	}
	// gpt-image-1 всегда отвечает b64 и не принимает response_format
	if format != "" && !strings.HasPrefix(model, "gpt-image") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormat(format)
	}
	return &ImageClient{client: client, params: params}
}

func (c *ImageClient) Generate(ctx context.Context, prompt string) ([]GeneratedImage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	params := c.params
	params.Prompt = prompt

	resp, err := c.client.Images.Generate(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoImages
	}

	out := make([]GeneratedImage, 0, len(resp.Data))
	for i, d := range resp.Data {
		img := GeneratedImage{URL: d.URL, RevisedPrompt: d.RevisedPrompt}
		if d.B64JSON != "" {
			data, derr := base64.StdEncoding.DecodeString(d.B64JSON)
			if derr != nil {
				return nil, fmt.Errorf("image %d: base64 decode: %w", i, derr)
			}
			img.Data = data
		}
		if img.URL == "" && len(img.Data) == 0 {
			continue
		}
		out = append(out, img)
	}
	if len(out) == 0 {
		return nil, ErrNoImages
	}
	return out, nil
}
