package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/croissant-rush/internal/bakery"
)

// Cue is a sound played for a kitchen event.
type Cue int

const (
	CueNone     Cue = iota
	CueSpawn        // pop
	CueHazard       // squish
	CueOvenLeft     // bell
	CueServe        // chime
	CueTimeUp       // buzz
)

func (c Cue) String() string {
	switch c {
	case CueSpawn:
		return "spawn"
	case CueHazard:
		return "hazard"
	case CueOvenLeft:
		return "oven"
	case CueServe:
		return "serve"
	case CueTimeUp:
		return "time_up"
	default:
		return "none"
	}
}

// CueFor maps an engine event to its cue.
func CueFor(ev bakery.Event) Cue {
	switch ev.(type) {
	case bakery.FoodSpawned:
		return CueSpawn
	case bakery.HazardHit:
		return CueHazard
	case bakery.OvenLeft:
		return CueOvenLeft
	case bakery.FoodServed:
		return CueServe
	case bakery.TimeUp:
		return CueTimeUp
	}
	return CueNone
}

// Player mixes cues onto the speaker. A Player whose speaker failed to open
// stays silent.
type Player struct {
	mu      sync.Mutex
	log     *log.Logger
	rate    beep.SampleRate
	volume  float64
	mixer   *beep.Mixer
	enabled bool
}

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		log:    logger,
		rate:   SampleRate,
		volume: min(max(volume, 0), 1),
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.enabled = true
	return nil
}

// Enabled reports whether cues reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Handle plays the cue for ev, if any.
func (p *Player) Handle(ev bakery.Event) {
	p.Play(CueFor(ev))
}

// Play queues a cue on the mixer.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	s := c.Streamer(p.rate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.log.Debug("cue", "cue", c)
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.enabled = false
}
