// Package sim plays whole sessions headlessly on virtual time. With a fixed
// seed a run is reproducible down to the final snapshot hash.
package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
)

// Options configure a headless run.
type Options struct {
	Seed   int64
	Logger *log.Logger
	// Limit caps the simulated time. Zero means the session length plus a
	// second.
	Limit time.Duration
}

// Report is the outcome of a headless run.
type Report struct {
	Result bakery.Result
	Final  bakery.Snapshot
	Frames int
	Events map[string]int
}

// Hash returns the hash of the final snapshot.
func (r Report) Hash() uint64 {
	return r.Final.Hash()
}

// Run plays one session at difficulty d with the bot, one frame at a time.
func Run(cfg config.Config, d config.Difficulty, opts Options) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = cfg.Session.Duration + time.Second
	}

	report := Report{Events: make(map[string]int)}
	engine := bakery.New(cfg,
		bakery.WithSeed(opts.Seed),
		bakery.WithLogger(logger),
		bakery.WithEventSink(func(ev bakery.Event) {
			report.Events[EventName(ev)]++
		}),
	)
	engine.Start(d)

	bot := NewBot(cfg)
	frame := cfg.Cadence.Frame
	for elapsed := time.Duration(0); !engine.Ended() && elapsed < limit; elapsed += frame {
		engine.Step(frame, bot.Keys(engine.Snapshot()))
		report.Frames++
	}
	if !engine.Ended() {
		engine.End()
	}

	res, ok := engine.Result()
	if !ok {
		return report, fmt.Errorf("sim: session did not finish")
	}
	report.Result = res
	report.Final = engine.Snapshot()
	logger.Info("simulation finished", "difficulty", d, "seed", opts.Seed,
		"score", res.Score, "frames", report.Frames, "hash", fmt.Sprintf("%016x", report.Hash()))
	return report, nil
}

// EventName is a short lowercase name for an event kind.
func EventName(ev bakery.Event) string {
	switch ev.(type) {
	case bakery.FoodSpawned:
		return "spawned"
	case bakery.FoodBaked:
		return "baked"
	case bakery.FoodBurned:
		return "burned"
	case bakery.FoodServed:
		return "served"
	case bakery.FoodDiscarded:
		return "discarded"
	case bakery.OvenEntered:
		return "oven_entered"
	case bakery.OvenLeft:
		return "oven_left"
	case bakery.HazardSpawned:
		return "hazard"
	case bakery.HazardHit:
		return "hazard_hit"
	case bakery.TimeUp:
		return "time_up"
	case bakery.SessionEnded:
		return "ended"
	default:
		return "unknown"
	}
}
