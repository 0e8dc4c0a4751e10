package main

import (
	"OpenAIConsole/internal/ai"
	"OpenAIConsole/internal/config"
	"OpenAIConsole/internal/service/image"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Генерация картинки одной командой: image -image-size 512 "a lighthouse at night"
func main() {
	os.Exit(run())
}

// run возвращает код выхода, чтобы отложенный Sync успел выполниться.
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

	prompt := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: image [flags] <prompt>")
		return 2
	}

	var painter ai.Painter
	if cfg.StubMode {
		painter = ai.NewStubClient()
	} else {
		painter = ai.NewImageClient(ai.NewOpenAI(cfg), cfg.ImageModel, cfg.ImageSize, cfg.ImageCount, cfg.ImageResponseFormat)
	}

	svc := image.NewService(
		painter,
		image.NewDownloader(cfg.MaxDownloadBytes, cfg.ImageInsecureTLS),
		image.NewProcessor(cfg.ImagesOutputDir),
		image.NewViewer(cfg.ImageOpenViewer),
		sugar,
	)

	ctx, cancel := context.WithTimeoutCause(context.Background(), cfg.RequestTimeout, errors.New("request timeout"))
	defer cancel()

	return create(ctx, svc, prompt, os.Stdout, sugar)
}

func create(ctx context.Context, svc *image.Service, prompt string, out io.Writer, logger *zap.SugaredLogger) int {
	saved, err := svc.Create(ctx, prompt)
	if err != nil {
		logger.Errorw("Image generation failed", "error", err)
		return 1
	}
	for _, img := range saved {
		fmt.Fprintln(out, img.Path)
	}
	return 0
}
