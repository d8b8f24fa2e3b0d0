package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

type note struct {
	freq float64 // 0 is a rest
	dur  time.Duration
}

// melodies are tiny note sequences, one per cue.
var melodies = map[string][]note{
	CueClick:             {{1200, 20 * time.Millisecond}},
	CueSwapSuccess:       {{523, 50 * time.Millisecond}, {659, 60 * time.Millisecond}},
	CueSwapFail:          {{220, 60 * time.Millisecond}, {0, 20 * time.Millisecond}, {196, 90 * time.Millisecond}},
	CueMatch:             {{784, 70 * time.Millisecond}},
	CueChain:             {{784, 50 * time.Millisecond}, {988, 70 * time.Millisecond}},
	CueSpecialActivation: {{392, 40 * time.Millisecond}, {784, 40 * time.Millisecond}, {1568, 90 * time.Millisecond}},
	CueCombo:             {{659, 60 * time.Millisecond}, {784, 60 * time.Millisecond}, {1047, 120 * time.Millisecond}},
	CueLevelUp:           {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 90 * time.Millisecond}, {1047, 200 * time.Millisecond}},
	CueGameOver:          {{392, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {262, 300 * time.Millisecond}},
}

// tone is a sine oscillator with a short linear fade at both ends
// to avoid clicks.
type tone struct {
	freq   float64
	rate   beep.SampleRate
	phase  float64
	pos    int
	total  int
	fadeIn int
}

func newTone(freq float64, d time.Duration, rate beep.SampleRate) *tone {
	total := rate.N(d)
	return &tone{freq: freq, rate: rate, total: total, fadeIn: min(total/4, rate.N(5*time.Millisecond))}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		gain := 1.0
		if t.fadeIn > 0 {
			if t.pos < t.fadeIn {
				gain = float64(t.pos) / float64(t.fadeIn)
			} else if rem := t.total - t.pos; rem < t.fadeIn {
				gain = float64(rem) / float64(t.fadeIn)
			}
		}
		v := gain * math.Sin(2*math.Pi*t.phase)
		samples[i][0], samples[i][1] = v, v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// Melody returns a finite streamer for a cue, or nil for unknown cues.
func Melody(cue string, rate beep.SampleRate) beep.Streamer {
	notes, ok := melodies[cue]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		if n.freq == 0 {
			parts = append(parts, beep.Silence(rate.N(n.dur)))
			continue
		}
		parts = append(parts, newTone(n.freq, n.dur, rate))
	}
	return beep.Seq(parts...)
}
