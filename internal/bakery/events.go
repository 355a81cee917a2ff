package bakery

import "time"

// SessionID identifies one round. Each Start issues a larger one.
type SessionID uint64

// Event is something that happened in a session, reported to the engine's
// event sink in the order it happened.
type Event interface {
	bakeryEvent()
}

// FoodSpawned is emitted when a fresh croissant enters play.
type FoodSpawned struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
}

func (FoodSpawned) bakeryEvent() {}

// BurnCause tells why a croissant burnt.
type BurnCause int

const (
	BurnOverbaked BurnCause = iota // left in the oven past the grace period
	BurnHazard                     // touched a tomato
)

func (c BurnCause) String() string {
	if c == BurnHazard {
		return "hazard"
	}
	return "overbaked"
}

// FoodBurned is emitted when a croissant turns BURN.
type FoodBurned struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
	Cause   BurnCause
}

func (FoodBurned) bakeryEvent() {}

// FoodBaked is emitted when a croissant in the oven turns PERFECT.
type FoodBaked struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
}

func (FoodBaked) bakeryEvent() {}

// FoodServed is emitted when a croissant is served. Delta is the nominal
// score change; Total is the ledger afterwards.
type FoodServed struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
	Delta   int
	Total   int
}

func (FoodServed) bakeryEvent() {}

// FoodDiscarded is emitted when a croissant goes into the trash.
type FoodDiscarded struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
}

func (FoodDiscarded) bakeryEvent() {}

// OvenEntered is emitted when a croissant starts baking.
type OvenEntered struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
}

func (OvenEntered) bakeryEvent() {}

// OvenLeft is emitted when a croissant is taken out of the oven.
type OvenLeft struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
	Baked   time.Duration // time spent in the oven
}

func (OvenLeft) bakeryEvent() {}

// HazardSpawned is emitted when a tomato lands.
type HazardSpawned struct {
	Session SessionID
	At      time.Duration
	Hazard  Hazard
}

func (HazardSpawned) bakeryEvent() {}

// HazardHit is emitted for every tomato the croissant runs into, whatever
// state the croissant was in.
type HazardHit struct {
	Session SessionID
	At      time.Duration
	Food    FoodView
	Hazard  Hazard
}

func (HazardHit) bakeryEvent() {}

// TimeUp is emitted once, when the countdown reaches zero.
type TimeUp struct {
	Session SessionID
	At      time.Duration
}

func (TimeUp) bakeryEvent() {}

// EndReason describes why a session ended.
type EndReason int

const (
	EndTimeUp EndReason = iota // countdown reached zero
	EndQuit                    // ended on request
)

func (r EndReason) String() string {
	if r == EndQuit {
		return "quit"
	}
	return "time_up"
}

// SessionEnded is the last event of every session.
type SessionEnded struct {
	Session SessionID
	At      time.Duration
	Result  Result
}

func (SessionEnded) bakeryEvent() {}

// EventSession returns the session an event belongs to.
func EventSession(ev Event) SessionID {
	switch e := ev.(type) {
	case FoodSpawned:
		return e.Session
	case FoodBurned:
		return e.Session
	case FoodBaked:
		return e.Session
	case FoodServed:
		return e.Session
	case FoodDiscarded:
		return e.Session
	case OvenEntered:
		return e.Session
	case OvenLeft:
		return e.Session
	case HazardSpawned:
		return e.Session
	case HazardHit:
		return e.Session
	case TimeUp:
		return e.Session
	case SessionEnded:
		return e.Session
	default:
		return 0
	}
}
