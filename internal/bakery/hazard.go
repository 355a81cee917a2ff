package bakery

import (
	"time"

	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
)

// Hazard is a tomato lying on the floor.
type Hazard struct {
	ID        uint64
	X, Y      int
	SpawnedAt time.Duration
}

// Box returns the bounding box for the given hazard size.
func (h Hazard) Box(w, hgt int) core.Rect {
	return core.NewRect(h.X, h.Y, w, hgt)
}

// HazardField is the ordered set of live hazards, oldest first.
type HazardField struct {
	items  []Hazard
	cap    int
	order  config.EvictOrder
	nextID uint64
}

// NewHazardField returns an empty field holding at most limit hazards once
// settled. A cap of zero disables spawning.
func NewHazardField(limit int, order config.EvictOrder) *HazardField {
	return &HazardField{cap: max(limit, 0), order: order}
}

// Spawn adds a hazard at (x, y).
//
// With SpawnThenEvict the hazard is appended and the excess is left for
// Settle, so the field may briefly hold cap+1. Any excess left over from an
// earlier spawn is trimmed first, which keeps that bound. With EvictThenSpawn
// the oldest hazards are dropped before appending.
func (f *HazardField) Spawn(x, y int, at time.Duration) (Hazard, bool) {
	if f.cap == 0 {
		return Hazard{}, false
	}
	if f.order == config.EvictThenSpawn {
		f.evictDownTo(f.cap - 1)
	} else {
		f.evictDownTo(f.cap)
	}
	f.nextID++
	h := Hazard{ID: f.nextID, X: x, Y: y, SpawnedAt: at}
	f.items = append(f.items, h)
	return h, true
}

// Settle evicts the oldest hazards until the field is within its cap and
// returns how many were removed.
func (f *HazardField) Settle() int {
	return f.evictDownTo(f.cap)
}

func (f *HazardField) evictDownTo(n int) int {
	excess := len(f.items) - n
	if excess <= 0 {
		return 0
	}
	f.items = append(f.items[:0], f.items[excess:]...)
	return excess
}

// Remove deletes the hazard with the given id.
func (f *HazardField) Remove(id uint64) bool {
	for i, h := range f.items {
		if h.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of live hazards.
func (f *HazardField) Len() int {
	return len(f.items)
}

// Cap returns the settled capacity.
func (f *HazardField) Cap() int {
	return f.cap
}

// Hazards returns a copy of the live hazards, oldest first.
func (f *HazardField) Hazards() []Hazard {
	out := make([]Hazard, len(f.items))
	copy(out, f.items)
	return out
}
