// Package bakery implements the Croissant Rush kitchen: croissants that bake
// and burn, a single-slot oven, tomato hazards, the round countdown, the score
// ledger, and the Engine that owns and steps a session.
package bakery

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/croissant-rush/internal/core"
)

// Kind is a croissant variant. The set is closed.
type Kind int

const (
	KindClassic Kind = iota
	KindSalad
	KindRainbow
)

// Kinds lists every variant; spawns pick uniformly from it.
var Kinds = []Kind{KindClassic, KindSalad, KindRainbow}

type kindSpec struct {
	name  string
	bake  time.Duration
	score int
}

var kindSpecs = map[Kind]kindSpec{
	KindClassic: {name: "Classic Croissant", bake: 5 * time.Second, score: 100},
	KindSalad:   {name: "Salad Croissant", bake: 6 * time.Second, score: 120},
	KindRainbow: {name: "Rainbow Croissant", bake: 8 * time.Second, score: 250},
}

// Name returns the display name of the variant.
func (k Kind) Name() string {
	if s, ok := kindSpecs[k]; ok {
		return s.name
	}
	return "Unknown"
}

func (k Kind) String() string {
	return k.Name()
}

// BakeTime returns how long the variant stays RAW in the oven. Never below 1s.
func (k Kind) BakeTime() time.Duration {
	return max(kindSpecs[k].bake, time.Second)
}

// BaseScore returns the reward for serving the variant PERFECT. Never negative.
func (k Kind) BaseScore() int {
	return max(kindSpecs[k].score, 0)
}

// RandomKind picks a variant uniformly at random.
func RandomKind(rng *rand.Rand) Kind {
	return Kinds[rng.Intn(len(Kinds))]
}

// State is the doneness of a croissant. States only ever move forward.
type State int

const (
	StateRaw State = iota
	StatePerfect
	StateBurn
)

func (s State) String() string {
	switch s {
	case StateRaw:
		return "raw"
	case StatePerfect:
		return "perfect"
	case StateBurn:
		return "burnt"
	default:
		return "unknown"
	}
}

// perfectMargin is the tolerance of IsPerfectlyBaked.
const perfectMargin = time.Second

// Food is the croissant currently in play.
type Food struct {
	id     uint64
	kind   Kind
	state  State
	x, y   int
	inOven bool
}

func newFood(id uint64, kind Kind, x, y int) *Food {
	return &Food{id: id, kind: kind, state: StateRaw, x: x, y: y}
}

// ID returns the per-session identifier of the croissant.
func (f *Food) ID() uint64 { return f.id }

// Kind returns the variant.
func (f *Food) Kind() Kind { return f.kind }

// State returns the current doneness.
func (f *Food) State() State { return f.state }

// Pos returns the top-left corner in world units.
func (f *Food) Pos() (int, int) { return f.x, f.y }

// InOven reports whether the croissant is resting in the oven.
func (f *Food) InOven() bool { return f.inOven }

// Box returns the bounding box for the given croissant size.
func (f *Food) Box(w, h int) core.Rect {
	return core.NewRect(f.x, f.y, w, h)
}

// IsPerfectlyBaked reports whether a bake of the given length lands within
// one second of the variant's bake time.
func (f *Food) IsPerfectlyBaked(actual time.Duration) bool {
	diff := actual - f.kind.BakeTime()
	if diff < 0 {
		diff = -diff
	}
	return diff <= perfectMargin
}

// advance moves the croissant to a later state. Anything else is refused,
// so BURN is terminal and PERFECT never returns to RAW.
func (f *Food) advance(to State) bool {
	if to <= f.state || to > StateBurn {
		return false
	}
	f.state = to
	return true
}

// View returns an immutable copy for snapshots and events.
func (f *Food) View() FoodView {
	return FoodView{
		ID:     f.id,
		Kind:   f.kind,
		State:  f.state,
		X:      f.x,
		Y:      f.y,
		InOven: f.inOven,
	}
}

// FoodView is a read-only copy of a Food.
type FoodView struct {
	ID     uint64
	Kind   Kind
	State  State
	X, Y   int
	InOven bool
}
