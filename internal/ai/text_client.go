package ai

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
)

// TextClient отправляет одиночный текстовый запрос в OpenAI
type TextClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewTextClient(client *openai.Client, model string) *TextClient {
	return &TextClient{
		client: client,
		model:  openai.ChatModel(model),
	}
}

func (c *TextClient) SendRequest(ctx context.Context, instructions string, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}
	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(
					responses.ResponseInputMessageContentListParam{
						{
							OfInputText: &responses.ResponseInputTextParam{
								Text: text,
							},
						},
					},
					responses.EasyInputMessageRoleUser,
				),
			},
		},
	}
	if in := strings.TrimSpace(instructions); in != "" {
		params.Instructions = openai.String(in)
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}

	return resp.OutputText(), nil
}
