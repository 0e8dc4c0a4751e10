package image

import (
	"OpenAIConsole/internal/ai"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Opener interface {
	Open(ctx context.Context, path string) error
}

// Service: сгенерировать -> скачать -> сохранить -> открыть.
type Service struct {
	painter   ai.Painter
	fetcher   Fetcher
	processor *Processor
	viewer    Opener
	logger    *zap.SugaredLogger
}

func NewService(painter ai.Painter, fetcher Fetcher, processor *Processor, viewer Opener, logger *zap.SugaredLogger) *Service {
	return &Service{painter: painter, fetcher: fetcher, processor: processor, viewer: viewer, logger: logger}
}

// Create возвращает сохранённые картинки. Ошибки отдельных картинок логируются;
// ошибка возвращается, только если не удалось сохранить ни одной.
func (s *Service) Create(ctx context.Context, prompt string) ([]SavedImage, error) {
	generated, err := s.painter.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	saved := make([]SavedImage, 0, len(generated))
	var errs []error
	for i, g := range generated {
		img, serr := s.saveOne(ctx, g, prompt)
		if serr != nil {
			s.logger.Warnw("Не удалось получить картинку", "index", i, "error", serr)
			errs = append(errs, fmt.Errorf("image %d: %w", i, serr))
			continue
		}
		s.logger.Infow("Картинка сохранена", "path", img.Path, "width", img.Width, "height", img.Height, "bytes", img.SizeBytes)
		if g.RevisedPrompt != "" && g.RevisedPrompt != prompt {
			s.logger.Debugw("Revised prompt", "prompt", g.RevisedPrompt)
		}
		if verr := s.viewer.Open(ctx, img.Path); verr != nil {
			s.logger.Warnw("Не удалось открыть просмотрщик", "path", img.Path, "error", verr)
		}
		saved = append(saved, img)
	}
	if len(saved) == 0 {
		return nil, errors.Join(errs...)
	}
	return saved, nil
}

func (s *Service) saveOne(ctx context.Context, g ai.GeneratedImage, prompt string) (SavedImage, error) {
	data := g.Data
	if len(data) == 0 {
		if g.URL == "" {
			return SavedImage{}, ai.ErrNoImages
		}
		var err error
		data, err = s.fetcher.Fetch(ctx, g.URL)
		if err != nil {
			return SavedImage{}, err
		}
	}
	return s.processor.Save(data, prompt)
}
