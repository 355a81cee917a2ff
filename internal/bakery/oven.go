package bakery

import (
	"time"

	"github.com/vovakirdan/croissant-rush/internal/sched"
)

// Oven is the single baking slot.
//
// Every entry and every removal bumps the generation. The bake-complete and
// burn transitions scheduled by Enter remember the generation they were
// created under and do nothing once it has moved on, so a croissant that was
// taken out, or replaced, is never touched by an old bake.
type Oven struct {
	occupant   *Food
	generation uint64
	startedAt  time.Duration
	grace      time.Duration
}

// NewOven returns an empty oven whose PERFECT croissants burn after grace.
func NewOven(grace time.Duration) *Oven {
	return &Oven{grace: grace}
}

// Enter starts baking f and schedules its transitions on s. onChange runs
// after each transition that actually happens. Enter is a no-op returning
// false when the oven is occupied.
func (o *Oven) Enter(f *Food, s *sched.Scheduler, onChange func(*Food, State)) bool {
	if o.occupant != nil {
		return false
	}
	o.occupant = f
	o.generation++
	o.startedAt = s.Now()
	f.inOven = true

	gen := o.generation
	bake := f.kind.BakeTime()
	transition := func(to State) func() {
		return func() {
			if o.generation != gen || o.occupant != f {
				return
			}
			if f.advance(to) && onChange != nil {
				onChange(f, to)
			}
		}
	}
	s.After(bake, prioOven, transition(StatePerfect))
	s.After(bake+o.grace, prioOven, transition(StateBurn))
	return true
}

// Leave empties the oven and returns the croissant that was in it, or nil if
// it was already empty. Pending transitions of that bake are invalidated.
func (o *Oven) Leave() *Food {
	f := o.occupant
	if f == nil {
		return nil
	}
	o.occupant = nil
	o.generation++
	f.inOven = false
	return f
}

// Occupied reports whether a croissant is in the oven.
func (o *Oven) Occupied() bool {
	return o.occupant != nil
}

// Occupant returns the croissant in the oven, or nil.
func (o *Oven) Occupant() *Food {
	return o.occupant
}

// Generation returns the current baking generation.
func (o *Oven) Generation() uint64 {
	return o.generation
}

// Elapsed returns how long the current occupant has been baking at now.
func (o *Oven) Elapsed(now time.Duration) time.Duration {
	if o.occupant == nil {
		return 0
	}
	return now - o.startedAt
}
