package player

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

var ErrUnsupportedFormat = errors.New("unsupported format for direct playback; use mp3 or wav")

// Player воспроизводит аудио потоком в зависимости от формата.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

// Default реализует Player и поддерживает mp3 и wav.
type Default struct{ volumeDB float64 }

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{volumeDB: 0} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

// speaker — глобальный ресурс, одновременно играет только один поток
var mu sync.Mutex

func (d *Default) Play(format string, r io.ReadCloser) error {
	var decode func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)
	switch strings.ToLower(format) {
	case "wav":
		decode = func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(rc) }
	case "mp3":
		decode = mp3.Decode
	default:
		_ = r.Close()
		return ErrUnsupportedFormat
	}

	streamer, f, err := decode(r)
	if err != nil {
		return err
	}
	defer streamer.Close()

	mu.Lock()
	defer mu.Unlock()
	if err := speaker.Init(f.SampleRate, f.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   d.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
