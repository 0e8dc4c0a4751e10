package yandex

import (
	"OpenAIConsole/internal/config"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlayer struct {
	format string
	data   []byte
}

func (p *recordingPlayer) Play(format string, r io.ReadCloser) error {
	defer r.Close()
	p.format = format
	b, err := io.ReadAll(r)
	p.data = b
	return err
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if r.Header.Get("Authorization") != "Api-Key secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "hello", r.PostForm.Get("text"))
		assert.Equal(t, "alena", r.PostForm.Get("voice"))
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	p := &recordingPlayer{}
	c := New(p)
	c.endpoint = srv.URL

	cfg := config.Defaults().YandexTTS
	cfg.APIKey = "secret"
	require.NoError(t, c.Synthesize(context.Background(), "hello", "", cfg))
	assert.Equal(t, "mp3", p.format)
	assert.Equal(t, "mp3-bytes", string(p.data))

	cfg.APIKey = "wrong"
	err := c.Synthesize(context.Background(), "hello", "", cfg)
	require.ErrorContains(t, err, "status=401")
}

func TestSynthesizeValidation(t *testing.T) {
	c := New(&recordingPlayer{})
	require.Error(t, c.Synthesize(context.Background(), "hi", "", config.GoogleTTSConfig{}))
	require.Error(t, c.Synthesize(context.Background(), "hi", "", config.YandexTTSConfig{}))
	require.Error(t, c.Synthesize(context.Background(), " ", "", config.YandexTTSConfig{APIKey: "k"}))
}
