package main

import (
	"OpenAIConsole/internal/ai"
	"OpenAIConsole/internal/app/console"
	"OpenAIConsole/internal/config"
	"OpenAIConsole/internal/service/image"
	"OpenAIConsole/internal/service/notify"
	"OpenAIConsole/internal/service/quiz"
	"OpenAIConsole/internal/service/tts"
	"OpenAIConsole/internal/service/tts/player"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {

	cfg := config.NewConfig()
	// Логи идут в stderr; без дебага показываем только предупреждения, чтобы не мешать диалогу
	zc := zap.NewDevelopmentConfig()
	if !cfg.DebugMode {
		zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"StubMode", cfg.StubMode,
		"ChatModel", cfg.ChatModel,
		"ImageModel", cfg.ImageModel,
	)

	image.NewCleaner(sugar).Clean(cfg.ImagesOutputDir, cfg.ImagesTTL, cfg.DebugMode)

	var (
		chat      ai.Chatter
		painter   ai.Painter
		requester ai.Requester
	)
	if cfg.StubMode {
		stub := ai.NewStubClient()
		chat, painter, requester = stub, stub, stub
	} else {
		// реальный клиент OpenAI (ключ из конфига или OPENAI_API_KEY)
		client := ai.NewOpenAI(cfg)
		chat = ai.NewChatClient(client, cfg.ChatModel, cfg.SystemPrompt, cfg.MaxHistoryRecords)
		painter = ai.NewImageClient(client, cfg.ImageModel, cfg.ImageSize, cfg.ImageCount, cfg.ImageResponseFormat)
		requester = ai.NewTextClient(client, cfg.QuizModel)
	}

	images := image.NewService(
		painter,
		image.NewDownloader(cfg.MaxDownloadBytes, cfg.ImageInsecureTLS),
		image.NewProcessor(cfg.ImagesOutputDir),
		image.NewViewer(cfg.ImageOpenViewer),
		sugar,
	)

	speaker, err := tts.New(cfg, sugar)
	if err != nil {
		sugar.Warnw("TTS отключён", "service", cfg.TTSService, "error", err)
		speaker = &tts.Speaker{}
	}

	deps := console.Deps{
		Chat:     chat,
		Images:   images,
		Quiz:     quiz.NewGenerator(requester, cfg.QuizQuestions),
		Speaker:  speaker,
		Notifier: notify.NewSoundNotifier(sugar, cfg.NotificationSoundPath, player.New()),
	}

	if err := console.New(deps, cfg.RequestTimeout, os.Stdin, os.Stdout, sugar).Run(ctx); err != nil {
		sugar.Errorw("Console stopped", "error", err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}
