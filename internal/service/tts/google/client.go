package google

import (
	"OpenAIConsole/internal/config"
	"OpenAIConsole/internal/service/tts/player"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
)

// Client реализует синтез речи через Google Cloud Text-to-Speech и воспроизводит результат.
type Client struct {
	player player.Player
	logger *zap.SugaredLogger
}

func New(p player.Player, logger *zap.SugaredLogger) *Client {
	return &Client{player: p, logger: logger}
}

// Synthesize выполняет запрос к Google TTS и воспроизводит аудио. cfg должен быть config.GoogleTTSConfig.
func (c *Client) Synthesize(ctx context.Context, text string, _ string, cfg any) error {
	gc, ok := cfg.(config.GoogleTTSConfig)
	if !ok {
		return errors.New("google tts: unexpected config type")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("google tts: empty text")
	}

	ttsClient, err := gctts.NewClient(ctx)
	if err != nil {
		return err
	}
	defer ttsClient.Close()

	started := time.Now()
	resp, err := ttsClient.SynthesizeSpeech(ctx, BuildRequest(text, gc))
	if err != nil {
		return err
	}
	if c.logger != nil {
		c.logger.Infow("Google TTS synthesize completed", "took", time.Since(started).String())
	}

	r := io.NopCloser(bytes.NewReader(resp.GetAudioContent()))
	return c.player.Play("mp3", r)
}

// BuildRequest собирает запрос синтеза. Тип входа: ssml|text, пусто — ssml, если текст начинается с <speak>.
func BuildRequest(text string, gc config.GoogleTTSConfig) *ttspb.SynthesizeSpeechRequest {
	it := strings.ToLower(strings.TrimSpace(gc.InputType))
	if it == "" && strings.HasPrefix(strings.TrimSpace(text), "<speak>") {
		it = "ssml"
	}
	var input *ttspb.SynthesisInput
	if it == "ssml" {
		input = &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Ssml{Ssml: text}}
	} else {
		input = &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: text}}
	}

	voice := &ttspb.VoiceSelectionParams{
		LanguageCode: gc.Language,
		Name:         gc.Voice,
	}

	// Только MP3
	audio := &ttspb.AudioConfig{
		AudioEncoding: ttspb.AudioEncoding_MP3,
		SpeakingRate:  gc.SpeakingRate,
		Pitch:         gc.Pitch,
		VolumeGainDb:  gc.VolumeGainDb,
	}
	if ep := strings.TrimSpace(gc.EffectsProfileID); ep != "" {
		audio.EffectsProfileId = []string{ep}
	}

	return &ttspb.SynthesizeSpeechRequest{Input: input, Voice: voice, AudioConfig: audio}
}
