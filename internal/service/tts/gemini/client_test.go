package gemini

import (
	"OpenAIConsole/internal/config"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
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
	var got requestPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("mp3")),
		})
	}))
	defer srv.Close()

	p := &recordingPlayer{}
	c := New(p, zaptest.NewLogger(t).Sugar())
	c.httpClient = func(context.Context) (*http.Client, error) { return srv.Client(), nil }

	cfg := config.Defaults().GeminiTTS
	cfg.Endpoint = srv.URL
	require.NoError(t, c.Synthesize(context.Background(), "hello", "say it warmly", cfg))

	assert.Equal(t, "hello", got.Input.Text)
	assert.Equal(t, "say it warmly", got.Input.Prompt)
	assert.Equal(t, "MP3", got.AudioConfig.AudioEncoding)
	assert.Equal(t, cfg.VoiceName, got.Voice.VoiceName)
	assert.Equal(t, "mp3", p.format)
	assert.Equal(t, "mp3", string(p.data))
}

func TestSynthesizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(&recordingPlayer{}, nil)
	c.httpClient = func(context.Context) (*http.Client, error) { return srv.Client(), nil }
	cfg := config.GeminiTTSConfig{Endpoint: srv.URL}

	require.ErrorContains(t, c.Synthesize(context.Background(), "hello", "", cfg), "status=429")
	require.Error(t, c.Synthesize(context.Background(), "", "", cfg))
	require.Error(t, c.Synthesize(context.Background(), "hello", "", config.YandexTTSConfig{}))
}
