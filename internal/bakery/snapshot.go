package bakery

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/vovakirdan/croissant-rush/internal/config"
)

// Stats counts what happened during a session.
type Stats struct {
	Served     int
	Perfect    int
	Burned     int
	Discarded  int
	HazardHits int
}

// OvenView describes the oven for display.
type OvenView struct {
	Occupied      bool
	Elapsed       time.Duration
	PerfectWindow bool // the bake so far is within a second of the bake time
	Generation    uint64
}

// Snapshot is an immutable copy of a session, safe to hand to other
// goroutines.
type Snapshot struct {
	Session    SessionID
	Difficulty config.Difficulty
	Elapsed    time.Duration
	Food       FoodView
	Hazards    []Hazard
	Oven       OvenView
	Remaining  time.Duration
	Score      int
	Stats      Stats
	Ended      bool
}

// Hash returns a hash of the observable state for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "S:%d;T:%d;R:%d;P:%d;E:%t;", s.Session, s.Elapsed, s.Remaining, s.Score, s.Ended)
	f := s.Food
	fmt.Fprintf(h, "F:%d,%d,%d,%d,%d,%t;", f.ID, f.Kind, f.State, f.X, f.Y, f.InOven)
	for _, hz := range s.Hazards {
		fmt.Fprintf(h, "H:%d,%d,%d;", hz.ID, hz.X, hz.Y)
	}
	fmt.Fprintf(h, "O:%t,%d;%+v", s.Oven.Occupied, s.Oven.Generation, s.Stats)
	return h.Sum64()
}

// Result is the outcome of a finished session.
type Result struct {
	Session    SessionID
	Difficulty config.Difficulty
	Score      int
	Stats      Stats
	Played     time.Duration
	Reason     EndReason
}
