// Package audio plays short synthesized cues for kitchen events.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = beep.SampleRate(44100)

// tone is a sine wave of the given length. A failed generator yields silence
// of the same length.
func tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

func silence(n int) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n <= 0 {
			return 0, false
		}
		count := min(len(samples), n)
		clear(samples[:count])
		n -= count
		return count, true
	})
}

// noise is white noise, used for the squish.
type noise struct {
	left int
	rng  *rand.Rand
}

func newNoise(d time.Duration, rate beep.SampleRate, seed int64) *noise {
	return &noise{left: rate.N(d), rng: rand.New(rand.NewSource(seed))}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.left <= 0 {
		return 0, false
	}
	count := min(len(samples), n.left)
	for i := 0; i < count; i++ {
		v := n.rng.Float64()*2 - 1
		samples[i][0], samples[i][1] = v, v
	}
	n.left -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// envelope fades a streamer in over attack and out over its last release.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{s: s, total: rate.N(d), attack: rate.N(attack), release: rate.N(release)}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if tail := e.total - e.pos; e.release > 0 && tail < e.release {
			gain = math.Max(float64(tail)/float64(e.release), 0)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a streamer linearly; zero or less is silent.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// note is a shaped sine.
func note(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return shape(tone(freq, d, rate), d, 5*time.Millisecond, d/2, rate)
}

// Cue lengths.
const (
	popLength    = 60 * time.Millisecond
	squishLength = 120 * time.Millisecond
	bellLength   = 400 * time.Millisecond
	chimeNote    = 90 * time.Millisecond
	buzzLength   = 600 * time.Millisecond
)

// Length returns how long the cue plays.
func (c Cue) Length() time.Duration {
	switch c {
	case CueSpawn:
		return popLength
	case CueHazard:
		return squishLength
	case CueOvenLeft:
		return bellLength
	case CueServe:
		return 3 * chimeNote
	case CueTimeUp:
		return buzzLength
	default:
		return 0
	}
}

// Streamer renders the cue at the given rate and volume, or returns nil for
// CueNone. The streamer always ends after Length.
func (c Cue) Streamer(rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueSpawn:
		s = note(660, popLength, rate)
	case CueHazard:
		s = shape(newNoise(squishLength, rate, 1), squishLength, 2*time.Millisecond, 100*time.Millisecond, rate)
	case CueOvenLeft:
		s = beep.Mix(
			gain(note(880, bellLength, rate), 0.7),
			gain(note(1760, bellLength, rate), 0.3),
		)
	case CueServe:
		s = beep.Seq(
			note(523.25, chimeNote, rate),
			note(659.25, chimeNote, rate),
			note(783.99, chimeNote, rate),
		)
	case CueTimeUp:
		s = beep.Mix(
			gain(note(110, buzzLength, rate), 0.5),
			gain(note(116.5, buzzLength, rate), 0.5),
		)
	default:
		return nil
	}
	return beep.Take(rate.N(c.Length()), gain(s, volume))
}
