package player

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

func TestPlayUnsupportedFormat(t *testing.T) {
	r := &trackingReader{Reader: strings.NewReader("data")}
	err := New().Play("ogg", r)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, r.closed)
}

func TestPlayRejectsBrokenStream(t *testing.T) {
	require.Error(t, New().Play("WAV", &trackingReader{Reader: strings.NewReader("not a wav")}))
}
