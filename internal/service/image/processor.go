package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const maxHintLen = 32

var unsafeHint = regexp.MustCompile(`[^a-z0-9_-]+`)

type SavedImage struct {
	Path      string
	Width     int
	Height    int
	SizeBytes int
	Format    string // формат исходного потока: png|jpeg|gif
}

// Processor декодирует полученный поток байт и сохраняет его как PNG.
type Processor struct {
	outputDir string
	now       func() time.Time
}

func NewProcessor(outputDir string) *Processor {
	return &Processor{outputDir: outputDir, now: time.Now}
}

// Save декодирует data и пишет PNG в outputDir. hint становится префиксом имени файла.
func (p *Processor) Save(data []byte, hint string) (SavedImage, error) {
	if len(data) == 0 {
		return SavedImage{}, errors.New("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return SavedImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return SavedImage{}, fmt.Errorf("invalid image size: %dx%d", bounds.Dx(), bounds.Dy())
	}

	encoded := data
	if format != "png" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return SavedImage{}, err
		}
		encoded = buf.Bytes()
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return SavedImage{}, err
	}
	filename := fmt.Sprintf("%s_%s.png", SanitizeHint(hint), p.now().Format("2006-01-02_15-04-05.000"))
	outputPath := filepath.Join(p.outputDir, filename)
	// Несколько картинок за одну секунду: не перетираем уже сохранённые
	for i := 1; fileExists(outputPath); i++ {
		outputPath = filepath.Join(p.outputDir, fmt.Sprintf("%s_%d.png", strings.TrimSuffix(filename, ".png"), i))
	}
	if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
		return SavedImage{}, err
	}

	return SavedImage{
		Path:      outputPath,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		SizeBytes: len(encoded),
		Format:    format,
	}, nil
}

// SanitizeHint превращает промпт в безопасный префикс имени файла.
func SanitizeHint(hint string) string {
	h := strings.ToLower(strings.TrimSpace(hint))
	h = strings.ReplaceAll(h, " ", "_")
	h = unsafeHint.ReplaceAllString(h, "")
	h = strings.Trim(h, "_-")
	if len(h) > maxHintLen {
		h = strings.TrimRight(h[:maxHintLen], "_-")
	}
	if h == "" {
		return "image"
	}
	return h
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
