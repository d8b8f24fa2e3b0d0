package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/sweet-swap/internal/config"
)

// Synth plays cues through the system speaker.
type Synth struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer
	ready  bool
}

// NewSynth creates a synth; call Init before Play has any effect.
func NewSynth(sampleRate int, volume float64) *Synth {
	return &Synth{
		rate:   beep.SampleRate(sampleRate),
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the audio device.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

// Play mixes the cue into the output. Unknown cues are ignored.
func (s *Synth) Play(cue string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}
	m := Melody(cue, s.rate)
	if m == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(withVolume(m, s.volume))
	speaker.Unlock()
}

// Close silences everything still playing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.ready = false
}

func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol)}
}

// New returns the cue player for cfg. Disabled audio or a missing audio
// device yields Muted.
func New(cfg config.AudioConfig, logger *log.Logger) Cues {
	if !cfg.Enabled {
		return Muted{}
	}
	s := NewSynth(cfg.SampleRate, cfg.Volume)
	if err := s.Init(); err != nil {
		if logger != nil {
			logger.Warn("Audio unavailable, continuing without sound", "error", err)
		}
		return Muted{}
	}
	return s
}
