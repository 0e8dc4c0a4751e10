package main

import (
	"OpenAIConsole/internal/ai"
	"OpenAIConsole/internal/config"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Одиночный запрос в чат: текст из аргументов или из stdin.
//
//	chat -chat-model gpt-4o "Why is the sky blue?"
//	echo "Summarize this" | chat
func main() {
	os.Exit(run())
}

// run возвращает код выхода; os.Exit вызывается только после отложенного Sync.
func run() int {

	cfg := config.NewConfig()
	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	text := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if text == "" {
		b, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			sugar.Errorw("failed to read stdin", "error", rerr)
			return 1
		}
		text = strings.TrimSpace(string(b))
	}

	var chat ai.Chatter
	if cfg.StubMode {
		chat = ai.NewStubClient()
	} else {
		chat = ai.NewChatClient(ai.NewOpenAI(cfg), cfg.ChatModel, cfg.SystemPrompt, 0)
	}

	ctx, cancel := context.WithTimeoutCause(context.Background(), cfg.RequestTimeout, errors.New("request timeout"))
	defer cancel()

	return ask(ctx, chat, text, os.Stdout, sugar)
}

func ask(ctx context.Context, chat ai.Chatter, text string, out io.Writer, logger *zap.SugaredLogger) int {
	reply, err := chat.Send(ctx, text)
	if err != nil {
		logger.Errorw("Chat request failed", "error", err)
		return 1
	}
	fmt.Fprintf(out, "OpenAI: %s\n", reply)
	return 0
}
