package image

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Cleaner удаляет старые сгенерированные картинки по TTL в заданной директории.
type Cleaner struct {
	logger *zap.SugaredLogger
}

func NewCleaner(logger *zap.SugaredLogger) *Cleaner { return &Cleaner{logger: logger} }

// Clean удаляет файлы изображений старше ttl из dir и возвращает число удалённых. В режиме debug — ничего не делает.
func (c *Cleaner) Clean(dir string, ttl time.Duration, debug bool) int {
	if debug {
		c.logger.Infow("DEBUG: очистка старых изображений отключена", "dir", dir, "ttl", ttl.String())
		return 0
	}
	if ttl <= 0 || dir == "" {
		return 0
	}

	deadline := time.Now().Add(-ttl)
	exts := []string{".png", ".jpg", ".jpeg"}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0
		}
		c.logger.Warnw("Не удалось прочитать директорию для очистки", "dir", dir, "error", err)
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !slices.Contains(exts, strings.ToLower(filepath.Ext(name))) {
			continue
		}
		fi, statErr := e.Info()
		if statErr != nil {
			c.logger.Warnw("Не удалось получить информацию о файле при очистке", "name", name, "error", statErr)
			continue
		}
		if fi.ModTime().Before(deadline) {
			full := filepath.Join(dir, name)
			if err := os.Remove(full); err != nil {
				c.logger.Warnw("Не удалось удалить старый файл", "path", full, "error", err)
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		c.logger.Infow("Очистка старых изображений выполнена", "dir", dir, "removed", removed)
	}
	return removed
}
