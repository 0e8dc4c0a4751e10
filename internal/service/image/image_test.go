package image

import (
	"OpenAIConsole/internal/ai"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func encodeTestImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	default:
		require.NoError(t, png.Encode(&buf, img))
	}
	return buf.Bytes()
}

func TestProcessorSave(t *testing.T) {
	dir := t.TempDir()
	p := NewProcessor(filepath.Join(dir, "out"))
	p.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	saved, err := p.Save(encodeTestImage(t, "png", 8, 4), "A red fox!")
	require.NoError(t, err)
	assert.Equal(t, 8, saved.Width)
	assert.Equal(t, 4, saved.Height)
	assert.Equal(t, "png", saved.Format)
	assert.Equal(t, "a_red_fox_2024-05-01_10-00-00.000.png", filepath.Base(saved.Path))

	second, err := p.Save(encodeTestImage(t, "jpeg", 8, 4), "A red fox!")
	require.NoError(t, err)
	assert.NotEqual(t, saved.Path, second.Path)
	assert.Equal(t, "jpeg", second.Format)

	// JPEG перекодирован в PNG
	f, err := os.Open(second.Path)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestProcessorSaveRejectsGarbage(t *testing.T) {
	p := NewProcessor(t.TempDir())

	_, err := p.Save(nil, "x")
	require.Error(t, err)
	_, err = p.Save([]byte("<html>not an image</html>"), "x")
	require.Error(t, err)
}

func TestSanitizeHint(t *testing.T) {
	assert.Equal(t, "image", SanitizeHint(""))
	assert.Equal(t, "image", SanitizeHint("!!!"))
	assert.Equal(t, "sunset_over_the_sea", SanitizeHint("  Sunset over the sea. "))
	assert.Equal(t, "a-b_c", SanitizeHint("a-b c/.."))
	long := SanitizeHint(strings.Repeat("abc ", 20))
	assert.LessOrEqual(t, len(long), maxHintLen)
	assert.False(t, strings.HasSuffix(long, "_"))
}

func TestDownloaderFetch(t *testing.T) {
	payload := encodeTestImage(t, "png", 2, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write(payload)
		case "/big.png":
			_, _ = w.Write(bytes.Repeat([]byte{1}, 64))
		default:
			http.Error(w, "expired", http.StatusForbidden)
		}
	}))
	defer srv.Close()

	d := NewDownloader(32, false)
	ctx := context.Background()

	_, err := d.Fetch(ctx, srv.URL+"/big.png")
	require.ErrorContains(t, err, "exceeds max size")

	_, err = d.Fetch(ctx, srv.URL+"/gone.png")
	require.ErrorContains(t, err, "status=403")
	require.ErrorContains(t, err, "expired")

	d = NewDownloader(1<<20, false)
	data, err := d.Fetch(ctx, srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloaderInsecureTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	_, err := NewDownloader(1024, false).Fetch(context.Background(), srv.URL)
	require.Error(t, err, "self-signed certificate must be rejected by default")

	data, err := NewDownloader(1024, true).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestCleanerClean(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-2 * time.Hour)
	write := func(name string, mod time.Time) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(p, mod, mod))
		return p
	}
	oldPNG := write("old.png", old)
	oldJPG := write("old.JPG", old)
	oldTxt := write("notes.txt", old)
	fresh := write("fresh.png", time.Now())

	c := NewCleaner(zaptest.NewLogger(t).Sugar())
	assert.Equal(t, 0, c.Clean(dir, time.Hour, true), "debug mode keeps everything")
	assert.Equal(t, 0, c.Clean(dir, 0, false))
	assert.Equal(t, 0, c.Clean(filepath.Join(dir, "missing"), time.Hour, false))

	assert.Equal(t, 2, c.Clean(dir, time.Hour, false))
	assert.NoFileExists(t, oldPNG)
	assert.NoFileExists(t, oldJPG)
	assert.FileExists(t, oldTxt)
	assert.FileExists(t, fresh)
}

type fakePainter struct {
	images []ai.GeneratedImage
	err    error
}

func (f *fakePainter) Generate(context.Context, string) ([]ai.GeneratedImage, error) {
	return f.images, f.err
}

type fakeFetcher map[string][]byte

func (f fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if b, ok := f[url]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}

type recordingViewer struct{ opened []string }

func (v *recordingViewer) Open(_ context.Context, path string) error {
	v.opened = append(v.opened, path)
	return nil
}

func TestServiceCreate(t *testing.T) {
	pngData := encodeTestImage(t, "png", 4, 4)
	painter := &fakePainter{images: []ai.GeneratedImage{
		{URL: "http://img/1"},
		{URL: "http://img/missing"},
		{Data: encodeTestImage(t, "jpeg", 6, 6)},
	}}
	viewer := &recordingViewer{}
	svc := NewService(painter, fakeFetcher{"http://img/1": pngData}, NewProcessor(t.TempDir()), viewer, zaptest.NewLogger(t).Sugar())

	saved, err := svc.Create(context.Background(), "two cats")
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, 4, saved[0].Width)
	assert.Equal(t, 6, saved[1].Width)
	assert.Equal(t, []string{saved[0].Path, saved[1].Path}, viewer.opened)
}

func TestServiceCreateFailures(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	viewer := &recordingViewer{}

	svc := NewService(&fakePainter{err: ai.ErrEmptyPrompt}, fakeFetcher{}, NewProcessor(t.TempDir()), viewer, logger)
	_, err := svc.Create(context.Background(), "")
	require.ErrorIs(t, err, ai.ErrEmptyPrompt)

	svc = NewService(&fakePainter{images: []ai.GeneratedImage{{URL: "http://img/x"}}}, fakeFetcher{}, NewProcessor(t.TempDir()), viewer, logger)
	_, err = svc.Create(context.Background(), "x")
	require.ErrorContains(t, err, "not found")
	assert.Empty(t, viewer.opened)
}

func TestViewerOpen(t *testing.T) {
	require.NoError(t, NewViewer(false).Open(context.Background(), "/nonexistent"))

	v := NewViewer(true)
	var got string
	v.command = func(path string) *exec.Cmd {
		got = path
		return exec.Command(os.Args[0], "-test.run=^$")
	}
	require.NoError(t, v.Open(context.Background(), "/tmp/a.png"))
	assert.Equal(t, "/tmp/a.png", got)
}
