package bakery

import (
	"testing"
	"time"

	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
)

const frame = 30 * time.Millisecond

// quietConfig returns the default kitchen without tomatoes on easy.
func quietConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Difficulty.Easy.HazardCap = 0
	return cfg
}

type recorder struct {
	events    []Event
	snapshots []Snapshot
}

func newTestEngine(t *testing.T, cfg config.Config) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e := New(cfg,
		WithSeed(42),
		WithEventSink(func(ev Event) { rec.events = append(rec.events, ev) }),
		WithSnapshotSink(func(s Snapshot) { rec.snapshots = append(rec.snapshots, s) }),
	)
	e.Start(config.DifficultyEasy)
	return e, rec
}

// place puts a fresh croissant of the given kind at (x, y).
func place(e *Engine, kind Kind, x, y int) *Food {
	f := e.s.food
	f.kind, f.x, f.y = kind, x, y
	return f
}

// armHazards lets the t=0 spawn pass while spawning is disabled, then installs
// an empty field the test can fill by hand.
func armHazards(e *Engine, limit int) {
	e.Advance(0)
	e.s.hazards = NewHazardField(limit, config.SpawnThenEvict)
}

// press holds keys for one frame, then releases everything for one frame.
func press(e *Engine, keys core.KeyState) {
	e.Step(frame, keys)
	e.Step(frame, core.KeyState{})
}

func count[T Event](events []Event) int {
	n := 0
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}

func last[T Event](t *testing.T, events []Event) T {
	t.Helper()
	for i := len(events) - 1; i >= 0; i-- {
		if ev, ok := events[i].(T); ok {
			return ev
		}
	}
	var zero T
	t.Fatalf("no %T event recorded", zero)
	return zero
}

func TestStartSpawnsFood(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())

	if e.Ended() {
		t.Fatal("Ended() = true right after Start")
	}
	if count[FoodSpawned](rec.events) != 1 {
		t.Errorf("expected one FoodSpawned event, got %d", count[FoodSpawned](rec.events))
	}
	snap := e.Snapshot()
	if snap.Food.State != StateRaw || snap.Food.InOven {
		t.Errorf("new croissant = %+v", snap.Food)
	}
	if snap.Food.X < 0 || snap.Food.X >= 392 || snap.Food.Y < 0 || snap.Food.Y >= 392 {
		t.Errorf("spawn position (%d, %d) out of range", snap.Food.X, snap.Food.Y)
	}
	if snap.Remaining != 90*time.Second {
		t.Errorf("Remaining = %v, expected 90s", snap.Remaining)
	}
	if len(rec.snapshots) != 1 {
		t.Errorf("Start should publish one snapshot, got %d", len(rec.snapshots))
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name         string
		startX       int
		startY       int
		keys         core.KeyState
		wantX, wantY int
	}{
		{"right", 100, 100, core.KeyState{Right: true}, 120, 100},
		{"up left", 100, 100, core.KeyState{Up: true, Left: true}, 80, 80},
		{"opposite horizontal cancels", 100, 100, core.KeyState{Left: true, Right: true, Down: true}, 100, 120},
		{"opposite vertical cancels", 100, 100, core.KeyState{Up: true, Down: true}, 100, 100},
		{"clamped at max", 385, 395, core.KeyState{Right: true, Down: true}, 392, 400},
		{"clamped at zero", 5, 10, core.KeyState{Left: true, Up: true}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(t, quietConfig())
			place(e, KindClassic, tc.startX, tc.startY)
			e.Step(frame, tc.keys)

			x, y := e.s.food.Pos()
			if x != tc.wantX || y != tc.wantY {
				t.Errorf("position = (%d, %d), expected (%d, %d)", x, y, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestMovementPerFrameOnly(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	place(e, KindClassic, 100, 200)

	e.Step(29*time.Millisecond, core.KeyState{Right: true})
	if x, _ := e.s.food.Pos(); x != 100 {
		t.Fatalf("moved before the first frame: x = %d", x)
	}
	e.Step(271*time.Millisecond, core.KeyState{Right: true}) // frames at 30..300ms
	if x, _ := e.s.food.Pos(); x != 300 {
		t.Errorf("x = %d after 10 frames, expected 300", x)
	}
}

func TestStowAndBake(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	f := place(e, KindClassic, 100, 40)

	e.Step(frame, core.KeyState{Stow: true}) // enters at t=30ms
	if !f.InOven() || !e.s.oven.Occupied() {
		t.Fatal("croissant in the trigger zone should enter the oven")
	}
	if count[OvenEntered](rec.events) != 1 {
		t.Errorf("OvenEntered events = %d", count[OvenEntered](rec.events))
	}

	// movement is frozen while baking
	e.Step(frame, core.KeyState{Down: true})
	if _, y := f.Pos(); y != 40 {
		t.Errorf("croissant moved inside the oven: y = %d", y)
	}

	e.Advance(5*time.Second - frame)
	if f.State() != StatePerfect {
		t.Fatalf("state at 5.03s = %v, expected perfect", f.State())
	}
	if count[FoodBaked](rec.events) != 1 {
		t.Errorf("FoodBaked events = %d", count[FoodBaked](rec.events))
	}
	if !e.Snapshot().Oven.PerfectWindow {
		t.Error("PerfectWindow should be set right at the bake time")
	}

	e.Advance(2 * time.Second)
	if f.State() != StateBurn {
		t.Fatalf("state at 7.03s = %v, expected burnt", f.State())
	}
	burned := last[FoodBurned](t, rec.events)
	if burned.Cause != BurnOverbaked {
		t.Errorf("burn cause = %v, expected overbaked", burned.Cause)
	}
	if e.Snapshot().Stats.Burned != 1 {
		t.Errorf("Stats.Burned = %d", e.Snapshot().Stats.Burned)
	}
}

func TestStowRequirements(t *testing.T) {
	tests := []struct {
		name  string
		y     int
		state State
		held  bool // stow already held on the previous frame
	}{
		{"outside trigger zone", 41, StateRaw, false},
		{"already perfect", 20, StatePerfect, false},
		{"burnt", 20, StateBurn, false},
		{"held, not newly pressed", 20, StateRaw, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestEngine(t, quietConfig())
			if tc.held {
				place(e, KindClassic, 100, 200)
				e.Step(frame, core.KeyState{Stow: true})
			}
			f := place(e, KindClassic, 100, tc.y)
			f.state = tc.state
			e.Step(frame, core.KeyState{Stow: true})

			if f.InOven() || e.s.oven.Occupied() {
				t.Error("croissant should not have entered the oven")
			}
		})
	}
}

func TestRetrieveMovesToHandoff(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	f := place(e, KindSalad, 300, 10)

	press(e, core.KeyState{Stow: true})
	e.Advance(6 * time.Second)
	if f.State() != StatePerfect {
		t.Fatalf("state = %v, expected perfect", f.State())
	}

	e.Step(frame, core.KeyState{Retrieve: true})
	if f.InOven() || e.s.oven.Occupied() {
		t.Fatal("retrieve should empty the oven")
	}
	if x, y := f.Pos(); x != 180 || y != 0 {
		t.Errorf("position after retrieve = (%d, %d), expected (180, 0)", x, y)
	}
	left := last[OvenLeft](t, rec.events)
	if left.Food.State != StatePerfect {
		t.Errorf("OvenLeft food state = %v", left.Food.State)
	}

	// the old burn transition must not fire
	e.Advance(5 * time.Second)
	if f.State() != StatePerfect {
		t.Errorf("retrieved croissant changed to %v", f.State())
	}
}

func TestRetrieveEarlyKeepsRaw(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	f := place(e, KindClassic, 100, 0)

	press(e, core.KeyState{Stow: true})
	e.Advance(2 * time.Second)
	e.Step(frame, core.KeyState{Retrieve: true})
	e.Advance(10 * time.Second)

	if f.State() != StateRaw {
		t.Errorf("state = %v, early retrieval should cancel the bake", f.State())
	}
}

func TestServe(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		state     State
		startWith int
		expected  int
	}{
		{"perfect classic", KindClassic, StatePerfect, 0, 100},
		{"perfect rainbow", KindRainbow, StatePerfect, 0, 250},
		{"burnt", KindClassic, StateBurn, 200, 50},
		{"raw", KindSalad, StateRaw, 250, 150},
		{"burnt at zero clamps", KindClassic, StateBurn, 0, 0},
		{"raw partially clamps", KindClassic, StateRaw, 40, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, rec := newTestEngine(t, quietConfig())
			e.s.ledger.Add(tc.startWith)
			f := place(e, tc.kind, 200, 360)
			f.state = tc.state

			e.Step(frame, core.KeyState{Serve: true})

			if got := e.Snapshot().Score; got != tc.expected {
				t.Errorf("Score = %d, expected %d", got, tc.expected)
			}
			served := last[FoodServed](t, rec.events)
			if served.Food.ID != f.ID() || served.Total != tc.expected {
				t.Errorf("FoodServed = %+v", served)
			}
			if e.s.food == f {
				t.Error("served croissant should be replaced")
			}
			if count[FoodSpawned](rec.events) != 2 {
				t.Errorf("FoodSpawned events = %d, expected 2", count[FoodSpawned](rec.events))
			}
		})
	}
}

func TestServeNeedsZoneAndFreshPress(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())

	place(e, KindClassic, 200, 300) // above the table
	e.Step(frame, core.KeyState{Serve: true})
	if count[FoodServed](rec.events) != 0 {
		t.Fatal("served outside the serve zone")
	}

	// still held while moving onto the table
	place(e, KindClassic, 200, 360)
	e.Step(frame, core.KeyState{Serve: true})
	if count[FoodServed](rec.events) != 0 {
		t.Fatal("held serve key should not count as a new press")
	}

	e.Step(frame, core.KeyState{})
	e.Step(frame, core.KeyState{Serve: true})
	if count[FoodServed](rec.events) != 1 {
		t.Errorf("FoodServed events = %d, expected 1", count[FoodServed](rec.events))
	}
}

func TestServeStats(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	f := place(e, KindClassic, 200, 360)
	f.state = StatePerfect
	press(e, core.KeyState{Serve: true})
	g := place(e, KindClassic, 200, 360)
	g.state = StateBurn
	press(e, core.KeyState{Serve: true})

	stats := e.Snapshot().Stats
	if stats.Served != 2 || stats.Perfect != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestDiscard(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	e.s.ledger.Add(100)
	f := place(e, KindRainbow, 360, 200)
	f.state = StateBurn

	e.Step(frame, core.KeyState{Discard: true})

	if e.s.food == f {
		t.Fatal("discarded croissant should be replaced")
	}
	if e.Snapshot().Score != 100 {
		t.Errorf("Score = %d, discarding must not change it", e.Snapshot().Score)
	}
	if count[FoodDiscarded](rec.events) != 1 || e.Snapshot().Stats.Discarded != 1 {
		t.Error("discard not recorded")
	}
}

func TestDiscardOutsideTrashIsNoop(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	f := place(e, KindClassic, 360, 320)
	e.Step(frame, core.KeyState{Discard: true})

	if e.s.food != f || count[FoodDiscarded](rec.events) != 0 {
		t.Error("discard outside the trash zone should do nothing")
	}
}

func TestHazardCollisionBurns(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	armHazards(e, 2)
	f := place(e, KindClassic, 150, 150)
	h, _ := e.s.hazards.Spawn(150, 150, 0)
	e.s.hazards.Spawn(300, 300, 0)

	e.Step(frame, core.KeyState{})

	if f.State() != StateBurn {
		t.Fatalf("state = %v, a tomato at the same position should burn it", f.State())
	}
	for _, left := range e.s.hazards.Hazards() {
		if left.ID == h.ID {
			t.Error("colliding hazard should be removed")
		}
	}
	if e.s.hazards.Len() != 1 {
		t.Errorf("hazards left = %d, expected 1", e.s.hazards.Len())
	}
	if last[FoodBurned](t, rec.events).Cause != BurnHazard {
		t.Error("burn cause should be hazard")
	}
	if count[HazardHit](rec.events) != 1 {
		t.Errorf("HazardHit events = %d, expected 1", count[HazardHit](rec.events))
	}
	if e.Snapshot().Stats.HazardHits != 1 {
		t.Errorf("HazardHits = %d", e.Snapshot().Stats.HazardHits)
	}
}

func TestHazardBurnsPerfectFood(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	armHazards(e, 2)
	f := place(e, KindClassic, 150, 150)
	f.state = StatePerfect
	e.s.hazards.Spawn(170, 160, 0)

	e.Step(frame, core.KeyState{})
	if f.State() != StateBurn {
		t.Errorf("state = %v, collision burns from any state", f.State())
	}
}

func TestHazardCannotBeOutrun(t *testing.T) {
	e, _ := newTestEngine(t, quietConfig())
	armHazards(e, 2)
	f := place(e, KindClassic, 150, 150)
	// overlaps the croissant where it stands, but not one step to the right
	e.s.hazards.Spawn(120, 150, 0)

	e.Step(frame, core.KeyState{Right: true})

	if f.State() != StateBurn {
		t.Errorf("state = %v, the collision resolves before the move", f.State())
	}
	if e.s.hazards.Len() != 0 {
		t.Errorf("hazards left = %d, expected 0", e.s.hazards.Len())
	}
	if f.x != 170 {
		t.Errorf("x = %d, expected the croissant to still move to 170", f.x)
	}
}

func TestHazardHitOnBurntFood(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	armHazards(e, 2)
	f := place(e, KindClassic, 150, 150)
	f.state = StateBurn
	h, _ := e.s.hazards.Spawn(150, 150, 0)
	burned := count[FoodBurned](rec.events)

	e.Step(frame, core.KeyState{})

	hit := last[HazardHit](t, rec.events)
	if hit.Hazard.ID != h.ID || hit.Food.State != StateBurn {
		t.Errorf("HazardHit = %+v", hit)
	}
	if n := count[FoodBurned](rec.events); n != burned {
		t.Errorf("FoodBurned events = %d, a burnt croissant cannot burn again", n)
	}
	if e.s.hazards.Len() != 0 {
		t.Errorf("hazards left = %d, expected 0", e.s.hazards.Len())
	}
	if e.Snapshot().Stats.HazardHits != 1 {
		t.Errorf("HazardHits = %d, expected 1", e.Snapshot().Stats.HazardHits)
	}
}

func TestHazardsStayWithinCap(t *testing.T) {
	for _, d := range config.Difficulties {
		t.Run(string(d), func(t *testing.T) {
			cfg := config.DefaultConfig()
			limit := cfg.Difficulty.For(d).HazardCap
			e := New(cfg, WithSeed(3))
			e.Start(d)

			for i := 0; i < 3000 && !e.Ended(); i++ {
				e.Advance(10 * time.Millisecond)
				if n := e.s.hazards.Len(); n > limit+1 {
					t.Fatalf("%d hazards at %v, cap %d", n, e.s.sched.Now(), limit)
				}
			}
		})
	}
}

func TestHazardSpawnCadence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Difficulty.Hard.HazardCap = 100
	e, rec := newTestEngine(t, cfg)
	e.Start(config.DifficultyHard)
	rec.events = nil

	// place the croissant out of reach of every spawn
	place(e, KindClassic, 0, 0)
	e.Advance(10 * time.Second)

	// at 0, 2, 4, 6, 8 and 10 seconds
	if n := count[HazardSpawned](rec.events); n != 6 {
		t.Errorf("HazardSpawned events = %d, expected 6", n)
	}
}

func TestTimeUpEndsSessionOnce(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())

	e.Advance(89 * time.Second)
	if e.Ended() {
		t.Fatal("session ended early")
	}
	e.Advance(time.Second)
	if !e.Ended() {
		t.Fatal("session should end at 90s")
	}
	e.Advance(10 * time.Second)
	e.End()

	if n := count[TimeUp](rec.events); n != 1 {
		t.Errorf("TimeUp events = %d, expected 1", n)
	}
	if n := count[SessionEnded](rec.events); n != 1 {
		t.Errorf("SessionEnded events = %d, expected 1", n)
	}
	snap := e.Snapshot()
	if snap.Remaining != 0 || !snap.Ended {
		t.Errorf("final snapshot = %+v", snap)
	}
	res, ok := e.Result()
	if !ok || res.Reason != EndTimeUp || res.Played != 90*time.Second {
		t.Errorf("Result() = %+v, %v", res, ok)
	}
}

func TestEndDropsPendingWork(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	f := place(e, KindClassic, 100, 0)
	press(e, core.KeyState{Stow: true})

	e.End()
	if !e.Ended() {
		t.Fatal("Ended() = false after End")
	}
	if e.s.sched.Pending() != 0 {
		t.Errorf("Pending() = %d after End", e.s.sched.Pending())
	}
	e.Advance(20 * time.Second)
	if f.State() != StateRaw {
		t.Errorf("oven transition ran after End: %v", f.State())
	}
	res := last[SessionEnded](t, rec.events).Result
	if res.Reason != EndQuit {
		t.Errorf("Reason = %v, expected quit", res.Reason)
	}
	if e.Snapshot().Remaining != 0 {
		t.Error("End should zero the countdown")
	}

	e.End()
	if count[SessionEnded](rec.events) != 1 {
		t.Error("second End emitted another SessionEnded")
	}
}

func TestRestartIsolatesSessions(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	first := e.SessionID()
	place(e, KindClassic, 100, 0)
	press(e, core.KeyState{Stow: true})

	second := e.Start(config.DifficultyHard)
	if second <= first {
		t.Fatalf("new session id %d should exceed %d", second, first)
	}
	ended := last[SessionEnded](t, rec.events)
	if ended.Session != first {
		t.Errorf("SessionEnded for %d, expected %d", ended.Session, first)
	}

	rec.events = nil
	e.Advance(10 * time.Second)
	for _, ev := range rec.events {
		if baked, ok := ev.(FoodBaked); ok && baked.Session == first {
			t.Error("old session's oven fired into the new session")
		}
	}
	snap := e.Snapshot()
	if snap.Session != second || snap.Difficulty != config.DifficultyHard || snap.Oven.Occupied {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestRenderCadencePublishes(t *testing.T) {
	e, rec := newTestEngine(t, quietConfig())
	rec.snapshots = nil
	e.Advance(time.Second)

	if len(rec.snapshots) != 10 {
		t.Errorf("snapshots = %d, expected 10 at 100ms", len(rec.snapshots))
	}
	for i := 1; i < len(rec.snapshots); i++ {
		if rec.snapshots[i].Remaining >= rec.snapshots[i-1].Remaining {
			t.Fatalf("remaining time did not decrease between snapshots %d and %d", i-1, i)
		}
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	cfg := config.DefaultConfig()
	e, _ := newTestEngine(t, cfg)
	place(e, KindClassic, 0, 0)
	e.Advance(time.Millisecond) // first hazard lands at t=0

	snap := e.Snapshot()
	if len(snap.Hazards) == 0 {
		t.Fatal("expected a hazard at session start")
	}
	snap.Hazards[0].X = -1
	snap.Food.X = -1

	again := e.Snapshot()
	if again.Hazards[0].X == -1 || again.Food.X == -1 {
		t.Error("mutating a snapshot leaked into the engine")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	script := []core.KeyState{
		{Up: true}, {Up: true, Left: true}, {Stow: true}, {}, {Down: true, Right: true},
		{Retrieve: true}, {Down: true}, {Serve: true}, {Right: true}, {Discard: true},
	}
	run := func() []uint64 {
		e := New(config.DefaultConfig(), WithSeed(99))
		e.Start(config.DifficultyHard)
		var hashes []uint64
		for i := 0; i < 600 && !e.Ended(); i++ {
			e.Step(50*time.Millisecond, script[(i/7)%len(script)])
			hashes = append(hashes, e.Snapshot().Hash())
		}
		return hashes
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at step %d", i)
		}
	}
}
