package ai

import (
	"context"
	"errors"
)

var (
	ErrEmptyPrompt = errors.New("empty prompt")
	ErrNoImages    = errors.New("no images in response")
)

// Chatter — диалог с историей на стороне приложения.
type Chatter interface {
	Send(ctx context.Context, text string) (string, error)
	Reset()
}

// Requester отправляет одиночный запрос без истории: инструкции + текст.
type Requester interface {
	SendRequest(ctx context.Context, instructions string, text string) (string, error)
}

// Painter генерирует картинки по текстовому описанию.
type Painter interface {
	Generate(ctx context.Context, prompt string) ([]GeneratedImage, error)
}

// GeneratedImage — одна картинка из ответа: либо ссылка, либо уже декодированные байты.
type GeneratedImage struct {
	URL           string
	Data          []byte
	RevisedPrompt string
}
