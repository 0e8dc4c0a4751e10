package ai

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
)

// ChatClient ведёт диалог поверх Responses API. Контекст хранится локально:
// системные инструкции и последние maxRecords пар вопрос/ответ.
type ChatClient struct {
	client       *openai.Client
	model        openai.ChatModel
	instructions string
	maxRecords   int

	mu      sync.Mutex
	id      string
	history []turn
}

type turn struct {
	user      string
	assistant string
}

func NewChatClient(client *openai.Client, model string, instructions string, maxRecords int) *ChatClient {
	return &ChatClient{
		client:       client,
		model:        openai.ChatModel(model),
		instructions: instructions,
		maxRecords:   max(0, maxRecords),
		id:           uuid.NewString(),
	}
}

// ID идентификатор текущего диалога; меняется после Reset.
func (c *ChatClient) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *ChatClient) Send(ctx context.Context, text string) (string, error) {
	if c.client == nil {
		return "", errors.New("nil openai client")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyPrompt
	}

	c.mu.Lock()
	history := make([]turn, len(c.history))
	copy(history, c.history)
	c.mu.Unlock()

	// Собираем вход: system + история + текущее сообщение пользователя
	inputItems := make(responses.ResponseInputParam, 0, 2+2*len(history))
	if st := strings.TrimSpace(c.instructions); st != "" {
		inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(st, responses.EasyInputMessageRoleSystem))
	}
	for _, h := range history {
		inputItems = append(inputItems,
			responses.ResponseInputItemParamOfMessage(h.user, responses.EasyInputMessageRoleUser),
			responses.ResponseInputItemParamOfMessage(h.assistant, responses.EasyInputMessageRoleAssistant),
		)
	}
	inputItems = append(inputItems, responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser))

	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: inputItems},
	})
	if err != nil {
		return "", err
	}
	out := resp.OutputText()

	// Пустой ответ (incomplete, отказ) в историю не попадает
	if c.maxRecords > 0 && out != "" {
		c.mu.Lock()
		c.history = append(c.history, turn{user: text, assistant: out})
		if len(c.history) > c.maxRecords {
			// Оставляем последние maxRecords пар
			c.history = c.history[len(c.history)-c.maxRecords:]
		}
		c.mu.Unlock()
	}
	return out, nil
}

// Reset забывает историю и начинает новый диалог.
func (c *ChatClient) Reset() {
	c.mu.Lock()
	c.history = nil
	c.id = uuid.NewString()
	c.mu.Unlock()
}

// Len количество запомненных пар.
func (c *ChatClient) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}
