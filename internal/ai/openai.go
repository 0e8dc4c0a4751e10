package ai

import (
	"OpenAIConsole/internal/config"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// NewOpenAI создаёт клиента SDK. Если ключ в конфиге пуст, SDK берёт OPENAI_API_KEY из окружения.
func NewOpenAI(cfg *config.Config, opts ...option.RequestOption) *openai.Client {
	base := make([]option.RequestOption, 0, 4+len(opts))
	if key := strings.TrimSpace(cfg.OpenAIAPIKey); key != "" {
		base = append(base, option.WithAPIKey(key))
	}
	if u := strings.TrimSpace(cfg.OpenAIBaseURL); u != "" {
		base = append(base, option.WithBaseURL(u))
	}
	base = append(base, option.WithMaxRetries(cfg.MaxRetries))
	if cfg.RequestTimeout > 0 {
		base = append(base, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	client := openai.NewClient(append(base, opts...)...)
	return &client
}
