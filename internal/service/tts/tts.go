package tts

import (
	"OpenAIConsole/internal/config"
	"OpenAIConsole/internal/service/tts/gemini"
	"OpenAIConsole/internal/service/tts/google"
	"OpenAIConsole/internal/service/tts/player"
	"OpenAIConsole/internal/service/tts/yandex"
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrDisabled возвращается, когда озвучка выключена (TTS_SERVICE=none).
var ErrDisabled = errors.New("tts is disabled, set -tts-service")

// Synthesizer абстракция TTS. Метод воспроизводит речь и не возвращает контент.
// cfg — провайдер-специфичная конфигурация (например, config.YandexTTSConfig).
// prompt — опциональный стилевой промпт (используется только Gemini; для остальных пустой).
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, prompt string, cfg any) error
}

// Speaker связывает выбранный синтезатор с его конфигурацией.
type Speaker struct {
	synth  Synthesizer
	cfg    any
	prompt string
}

// New выбирает провайдера по cfg.TTSService. Для none возвращает Speaker, отвечающий ErrDisabled.
func New(cfg *config.Config, logger *zap.SugaredLogger) (*Speaker, error) {
	switch cfg.TTSService {
	case "yandex":
		// Для Yandex громкость регулируем на стороне плеера
		v := max(0, min(100, cfg.YandexTTS.Volume))
		volDB := float64(v-100) / 5.0
		return &Speaker{synth: yandex.New(player.NewWithVolume(volDB)), cfg: cfg.YandexTTS}, nil
	case "gemini":
		return &Speaker{synth: gemini.New(player.New(), logger), cfg: cfg.GeminiTTS, prompt: cfg.GeminiTTS.Prompt}, nil
	case "google":
		if err := cfg.PrepareGoogleCredentials(); err != nil {
			return nil, err
		}
		return &Speaker{synth: google.New(player.New(), logger), cfg: cfg.GoogleTTS}, nil
	default:
		return &Speaker{}, nil
	}
}

// NewWith собирает Speaker из готового синтезатора.
func NewWith(synth Synthesizer, cfg any, prompt string) *Speaker {
	return &Speaker{synth: synth, cfg: cfg, prompt: prompt}
}

// Enabled сообщает, выбран ли сервис озвучки.
func (s *Speaker) Enabled() bool { return s != nil && s.synth != nil }

func (s *Speaker) Speak(ctx context.Context, text string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	return s.synth.Synthesize(ctx, text, s.prompt, s.cfg)
}
