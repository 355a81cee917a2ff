package bakery

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
	"github.com/vovakirdan/croissant-rush/internal/sched"
)

// Order of work falling due at the same instant.
const (
	prioOven sched.Priority = iota
	prioFrame
	prioCountdown
	prioHazard
	prioRender
)

// session is the mutable state of one round. Only the Engine touches it.
type session struct {
	id         SessionID
	difficulty config.Difficulty
	settings   config.DifficultyConfig

	sched     *sched.Scheduler
	food      *Food
	oven      *Oven
	hazards   *HazardField
	countdown Countdown
	ledger    Ledger
	stats     Stats

	keys, prev core.KeyState
	nextFood   uint64

	ended  bool
	result Result
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for session diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSeed seeds the engine's random source. Equal seeds and equal inputs
// give equal sessions.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSnapshotSink registers fn to receive a snapshot at every render cadence,
// at session start and at session end.
func WithSnapshotSink(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.onSnapshot = fn
	}
}

// WithEventSink registers fn to receive every event.
func WithEventSink(fn func(Event)) Option {
	return func(e *Engine) {
		e.onEvent = fn
	}
}

// Engine owns the kitchen state and is its only writer. All cadences run on
// a per-session virtual-time scheduler that Advance steps, so the engine is
// single-threaded by construction; callers that want wall-clock play drive it
// from one goroutine (see package session).
type Engine struct {
	cfg        config.Config
	log        *log.Logger
	rng        *rand.Rand
	onSnapshot func(Snapshot)
	onEvent    func(Event)

	lastID SessionID
	s      *session
}

// New creates an engine with no running session.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		log: log.New(io.Discard),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Start ends any running session and begins a new one at the given
// difficulty. It returns the new session's id.
func (e *Engine) Start(d config.Difficulty) SessionID {
	e.End()

	e.lastID++
	settings := e.cfg.Difficulty.For(d)
	s := &session{
		id:         e.lastID,
		difficulty: d,
		settings:   settings,
		sched:      sched.New(),
		oven:       NewOven(e.cfg.Oven.Grace),
		hazards:    NewHazardField(settings.HazardCap, e.cfg.Hazard.Order),
		countdown:  NewCountdown(e.cfg.Session.Duration),
	}
	e.s = s
	s.countdown.Start()

	cad := e.cfg.Cadence
	s.sched.Every("frame", cad.Frame, cad.Frame, prioFrame, func() { e.frame(s) })
	s.sched.Every("countdown", cad.Countdown, cad.Countdown, prioCountdown, func() { e.countdown(s) })
	s.sched.Every("hazard", 0, settings.SpawnInterval, prioHazard, func() { e.spawnHazard(s) })
	s.sched.Every("render", cad.Render, cad.Render, prioRender, func() { e.publish(s) })

	e.log.Debug("session started", "session", s.id, "difficulty", d,
		"hazard_cap", settings.HazardCap, "spawn_interval", settings.SpawnInterval)

	e.spawnFood(s)
	e.publish(s)
	return s.id
}

// End force-ends the running session. Its countdown is zeroed, every pending
// cadence and oven transition is dropped, and SessionEnded is emitted.
// Calling End without a live session does nothing.
func (e *Engine) End() {
	s := e.s
	if s == nil || s.ended {
		return
	}
	s.countdown.ForceEnd()
	e.finish(s, EndQuit)
}

// Ended reports whether there is no live session.
func (e *Engine) Ended() bool {
	return e.s == nil || e.s.ended
}

// SessionID returns the id of the current or last session, 0 before the first.
func (e *Engine) SessionID() SessionID {
	if e.s == nil {
		return 0
	}
	return e.s.id
}

// SetKeys records the controls held from now on.
func (e *Engine) SetKeys(k core.KeyState) {
	if e.s != nil {
		e.s.keys = k
	}
}

// Advance moves the session forward by dt, running every cadence and oven
// transition that falls due. It stops early if the session ends.
func (e *Engine) Advance(dt time.Duration) {
	if e.Ended() {
		return
	}
	e.s.sched.Advance(dt)
}

// Step is SetKeys followed by Advance.
func (e *Engine) Step(dt time.Duration, keys core.KeyState) {
	e.SetKeys(keys)
	e.Advance(dt)
}

// Result returns the outcome of the last session once it has ended.
func (e *Engine) Result() (Result, bool) {
	if e.s == nil || !e.s.ended {
		return Result{}, false
	}
	return e.s.result, true
}

// Snapshot returns a copy of the current session.
func (e *Engine) Snapshot() Snapshot {
	if e.s == nil {
		return Snapshot{Ended: true, Difficulty: config.DifficultyEasy}
	}
	return e.snapshot(e.s)
}

func (e *Engine) snapshot(s *session) Snapshot {
	now := s.sched.Now()
	snap := Snapshot{
		Session:    s.id,
		Difficulty: s.difficulty,
		Elapsed:    now,
		Hazards:    s.hazards.Hazards(),
		Remaining:  s.countdown.Remaining(),
		Score:      s.ledger.Total(),
		Stats:      s.stats,
		Ended:      s.ended,
		Oven: OvenView{
			Occupied:   s.oven.Occupied(),
			Elapsed:    s.oven.Elapsed(now),
			Generation: s.oven.Generation(),
		},
	}
	if s.food != nil {
		snap.Food = s.food.View()
	}
	if f := s.oven.Occupant(); f != nil {
		snap.Oven.PerfectWindow = f.IsPerfectlyBaked(snap.Oven.Elapsed)
	}
	return snap
}

func (e *Engine) live(s *session) bool {
	return s == e.s && !s.ended
}

func (e *Engine) emit(ev Event) {
	if e.onEvent != nil {
		e.onEvent(ev)
	}
}

func (e *Engine) publish(s *session) {
	if e.onSnapshot != nil && s == e.s {
		e.onSnapshot(e.snapshot(s))
	}
}

func (e *Engine) finish(s *session, reason EndReason) {
	if s.ended {
		return
	}
	s.ended = true
	s.sched.Stop()
	s.result = Result{
		Session:    s.id,
		Difficulty: s.difficulty,
		Score:      s.ledger.Total(),
		Stats:      s.stats,
		Played:     s.sched.Now(),
		Reason:     reason,
	}
	e.log.Debug("session ended", "session", s.id, "reason", reason,
		"score", s.result.Score, "served", s.stats.Served, "burned", s.stats.Burned)
	e.emit(SessionEnded{Session: s.id, At: s.sched.Now(), Result: s.result})
	e.publish(s)
}

func (e *Engine) spawnFood(s *session) {
	s.nextFood++
	n := e.cfg.Food.SpawnMax
	s.food = newFood(s.nextFood, RandomKind(e.rng), e.rng.Intn(n), e.rng.Intn(n))
	e.emit(FoodSpawned{Session: s.id, At: s.sched.Now(), Food: s.food.View()})
}

// frame runs one movement/collision/station step.
func (e *Engine) frame(s *session) {
	if !e.live(s) {
		return
	}
	s.hazards.Settle()
	e.collide(s)
	e.move(s)
	e.operateOven(s)
	if !e.serve(s) {
		e.discard(s)
	}
	s.prev = s.keys
}

func (e *Engine) collide(s *session) {
	fc, hc := e.cfg.Food, e.cfg.Hazard
	box := s.food.Box(fc.Width, fc.Height)
	for _, h := range s.hazards.Hazards() {
		if !box.Intersects(h.Box(hc.Width, hc.Height)) {
			continue
		}
		s.hazards.Remove(h.ID)
		s.stats.HazardHits++
		e.log.Debug("hazard hit", "session", s.id, "food", s.food.id, "hazard", h.ID)
		e.emit(HazardHit{Session: s.id, At: s.sched.Now(), Food: s.food.View(), Hazard: h})
		if s.food.advance(StateBurn) {
			s.stats.Burned++
			e.emit(FoodBurned{Session: s.id, At: s.sched.Now(), Food: s.food.View(), Cause: BurnHazard})
		}
	}
}

func (e *Engine) move(s *session) {
	f := s.food
	if f.inOven {
		return
	}
	fc := e.cfg.Food
	dx := core.Axis(s.keys.Left, s.keys.Right) * fc.Speed
	dy := core.Axis(s.keys.Up, s.keys.Down) * fc.Speed
	f.x = core.Clamp(f.x+dx, 0, fc.MaxX)
	f.y = core.Clamp(f.y+dy, 0, fc.MaxY)
}

func (e *Engine) operateOven(s *session) {
	f := s.food
	switch {
	case s.keys.Pressed(s.prev, core.ActionStow) && !f.inOven &&
		f.y <= e.cfg.Oven.TriggerMaxY && f.state == StateRaw:
		if s.oven.Enter(f, s.sched, func(f *Food, to State) { e.ovenTransition(s, f, to) }) {
			e.log.Debug("oven entered", "session", s.id, "food", f.id, "kind", f.kind)
			e.emit(OvenEntered{Session: s.id, At: s.sched.Now(), Food: f.View()})
		}

	case s.keys.Retrieve && f.inOven && s.oven.Occupied():
		baked := s.oven.Elapsed(s.sched.Now())
		out := s.oven.Leave()
		out.x, out.y = e.cfg.Oven.HandoffX, e.cfg.Oven.HandoffY
		e.log.Debug("oven left", "session", s.id, "food", out.id, "state", out.state, "baked", baked)
		e.emit(OvenLeft{Session: s.id, At: s.sched.Now(), Food: out.View(), Baked: baked})
	}
}

func (e *Engine) ovenTransition(s *session, f *Food, to State) {
	if !e.live(s) {
		return
	}
	switch to {
	case StatePerfect:
		e.emit(FoodBaked{Session: s.id, At: s.sched.Now(), Food: f.View()})
	case StateBurn:
		s.stats.Burned++
		e.emit(FoodBurned{Session: s.id, At: s.sched.Now(), Food: f.View(), Cause: BurnOverbaked})
	}
}

// serve reports whether the croissant was served and replaced.
func (e *Engine) serve(s *session) bool {
	f := s.food
	if f.inOven || !e.cfg.Stations.Serve.Holds(f.x, f.y) || !s.keys.Pressed(s.prev, core.ActionServe) {
		return false
	}
	delta := serveDelta(f.state, f.kind, e.cfg.Scoring.BurnPenalty, e.cfg.Scoring.RawPenalty)
	s.ledger.Add(delta)
	s.stats.Served++
	if f.state == StatePerfect {
		s.stats.Perfect++
	}
	e.emit(FoodServed{Session: s.id, At: s.sched.Now(), Food: f.View(), Delta: delta, Total: s.ledger.Total()})
	e.spawnFood(s)
	return true
}

func (e *Engine) discard(s *session) {
	f := s.food
	if f.inOven || !e.cfg.Stations.Trash.Holds(f.x, f.y) || !s.keys.Pressed(s.prev, core.ActionDiscard) {
		return
	}
	s.stats.Discarded++
	e.emit(FoodDiscarded{Session: s.id, At: s.sched.Now(), Food: f.View()})
	e.spawnFood(s)
}

func (e *Engine) countdown(s *session) {
	if !e.live(s) {
		return
	}
	if s.countdown.Tick(e.cfg.Cadence.Countdown) {
		e.emit(TimeUp{Session: s.id, At: s.sched.Now()})
		e.finish(s, EndTimeUp)
	}
}

func (e *Engine) spawnHazard(s *session) {
	if !e.live(s) {
		return
	}
	hc := e.cfg.Hazard
	x := e.rng.Intn(hc.SpawnMaxX)
	y := hc.SpawnMinY + e.rng.Intn(hc.SpawnMaxY-hc.SpawnMinY)
	if h, ok := s.hazards.Spawn(x, y, s.sched.Now()); ok {
		e.emit(HazardSpawned{Session: s.id, At: s.sched.Now(), Hazard: h})
	}
}
