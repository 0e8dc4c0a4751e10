package ai

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
)

// StubClient заглушка, которая не делает реальных запросов. Удобна для -stub и тестов.
type StubClient struct {
	turns int
}

func NewStubClient() *StubClient { return &StubClient{} }

func (c *StubClient) Send(_ context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}
	c.turns++
	return fmt.Sprintf("request received (%d): %s", c.turns, text), nil
}

func (c *StubClient) Reset() { c.turns = 0 }

// SendRequest отвечает фиксированной викториной в JSON.
func (c *StubClient) SendRequest(_ context.Context, _ string, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}
	return `{"title":"Stub quiz","questions":[` +
		`{"question":"Was the text received?","options":["Yes","No"],"answer":0},` +
		`{"question":"Is this a real model?","options":["Yes","No"],"answer":1}]}`, nil
}

// Generate возвращает однотонную картинку 16x16.
func (c *StubClient) Generate(_ context.Context, prompt string) ([]GeneratedImage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	fill := color.RGBA{R: uint8(len(prompt) * 37), G: 128, B: 200, A: 255}
	for y := range 16 {
		for x := range 16 {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return []GeneratedImage{{Data: buf.Bytes(), RevisedPrompt: prompt}}, nil
}
