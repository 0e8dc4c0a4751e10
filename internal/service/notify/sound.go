package notify

import (
	ttsplayer "OpenAIConsole/internal/service/tts/player"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SoundNotifier проигрывает короткий звук после ответа ИИ.
type SoundNotifier struct {
	logger *zap.SugaredLogger
	path   string
	ply    ttsplayer.Player
}

// NewSoundNotifier создаёт нотификатор. Пустой путь выключает звук.
// Относительный путь сначала ищем рядом с бинарём, затем от текущей директории.
func NewSoundNotifier(logger *zap.SugaredLogger, path string, ply ttsplayer.Player) *SoundNotifier {
	path = strings.TrimSpace(path)
	if path != "" && !filepath.IsAbs(path) {
		if exe, err := os.Executable(); err == nil {
			cand := filepath.Join(filepath.Dir(exe), path)
			if _, statErr := os.Stat(cand); statErr == nil {
				path = cand
			}
		}
	}
	return &SoundNotifier{logger: logger, path: filepath.FromSlash(path), ply: ply}
}

// Enabled сообщает, задан ли звук.
func (n *SoundNotifier) Enabled() bool { return n != nil && n.path != "" }

// PlayReply проигрывает звук уведомления получения ответа ИИ. Ошибки логируются и возвращаются,
// чтобы вызывающий мог принять решение (например, проигнорировать).
func (n *SoundNotifier) PlayReply(ctx context.Context) error {
	if !n.Enabled() {
		return nil
	}
	if err := context.Cause(ctx); err != nil {
		return err
	}

	f, err := os.Open(n.path)
	if err != nil {
		n.logger.Warnw("Не удалось открыть звуковой файл уведомления", "path", n.path, "error", err)
		return err
	}
	var rc io.ReadCloser = f
	defer rc.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(n.path), "."))
	if ext == "" {
		ext = "mp3" // по умолчанию
	}

	if err := n.ply.Play(ext, rc); err != nil {
		n.logger.Warnw("Не удалось воспроизвести звуковое уведомление", "path", n.path, "error", err)
		return err
	}
	return nil
}
