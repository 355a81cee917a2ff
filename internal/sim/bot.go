package sim

import (
	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
)

// Bot plays the kitchen from snapshots: raw croissants go up into the oven,
// come out once perfect and are carried to the serving table. Burnt ones go
// to the bin.
type Bot struct {
	cfg  config.Config
	prev core.KeyState
}

// NewBot creates a bot for the given kitchen layout.
func NewBot(cfg config.Config) *Bot {
	return &Bot{cfg: cfg}
}

// Keys decides the controls for the next frame.
func (b *Bot) Keys(snap bakery.Snapshot) core.KeyState {
	var k core.KeyState
	f := snap.Food

	switch {
	case snap.Ended:
	case f.InOven:
		if f.State != bakery.StateRaw {
			k.Set(core.ActionRetrieve)
		}
	case f.State == bakery.StateRaw:
		if f.Y > b.cfg.Oven.TriggerMaxY {
			k.Set(core.ActionUp)
		} else {
			b.tap(&k, core.ActionStow)
		}
	case f.State == bakery.StatePerfect:
		b.deliver(&k, f, b.cfg.Stations.Serve, core.ActionServe)
	default:
		b.deliver(&k, f, b.cfg.Stations.Trash, core.ActionDiscard)
	}

	b.prev = k
	return k
}

// deliver steers toward z and taps a once inside it.
func (b *Bot) deliver(k *core.KeyState, f bakery.FoodView, z core.Zone, a core.Action) {
	if z.Holds(f.X, f.Y) {
		b.tap(k, a)
		return
	}
	switch {
	case f.X < z.MinX:
		k.Set(core.ActionRight)
	case f.X > z.MaxX:
		k.Set(core.ActionLeft)
	}
	switch {
	case f.Y < z.MinY:
		k.Set(core.ActionDown)
	case f.Y > z.MaxY:
		k.Set(core.ActionUp)
	}
}

// tap presses a unless it was held last frame, so the engine sees a fresh
// press every other frame.
func (b *Bot) tap(k *core.KeyState, a core.Action) {
	if !b.prev.Has(a) {
		k.Set(a)
	}
}
