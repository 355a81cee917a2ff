// Package session drives a bakery engine in real time.
//
// A Runner owns the engine from a single goroutine. A pulse goroutine turns
// elapsed wall-clock time into advance intents and the presentation layer
// submits key intents; both are stamped with the session they belong to, so
// anything still queued from a previous session is dropped on arrival.
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
)

// DefaultPulse is how often the runner advances the engine by the real time
// that has passed.
const DefaultPulse = 10 * time.Millisecond

// errSessionOver stops the goroutine group once the engine ends on its own.
var errSessionOver = errors.New("session over")

// ResultSaver persists finished sessions.
// This allows the runner to save results without depending on the storage package.
type ResultSaver interface {
	SaveSessionResult(result ResultData) error
}

// ResultData is a finished session in storage-neutral form.
type ResultData struct {
	ID         string
	Difficulty string
	Score      int
	Served     int
	Perfect    int
	Burned     int
	Discarded  int
	HazardHits int
	Duration   time.Duration
	EndReason  string
}

// NewResultData converts an engine result, assigning it a fresh ID.
func NewResultData(res bakery.Result) ResultData {
	return ResultData{
		ID:         uuid.NewString(),
		Difficulty: string(res.Difficulty),
		Score:      res.Score,
		Served:     res.Stats.Served,
		Perfect:    res.Stats.Perfect,
		Burned:     res.Stats.Burned,
		Discarded:  res.Stats.Discarded,
		HazardHits: res.Stats.HazardHits,
		Duration:   res.Played,
		EndReason:  res.Reason.String(),
	}
}

type intentKind int

const (
	intentKeys intentKind = iota
	intentAdvance
)

// intent is a request for the owner goroutine.
type intent struct {
	session bakery.SessionID
	kind    intentKind
	keys    core.KeyState
	dt      time.Duration
}

// run is the goroutine group of one session.
type run struct {
	id     bakery.SessionID
	cancel context.CancelFunc
	group  *errgroup.Group
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for the runner and its engine.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithSeed makes the engine's random choices reproducible.
func WithSeed(seed int64) Option {
	return func(r *Runner) {
		r.seed = &seed
	}
}

// WithPulse sets the wall-clock advance period.
func WithPulse(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.pulse = d
		}
	}
}

// WithResultSaver stores every finished session. Failures are logged.
func WithResultSaver(s ResultSaver) Option {
	return func(r *Runner) {
		r.saver = s
	}
}

// Runner plays sessions of a bakery engine against the wall clock.
type Runner struct {
	log   *log.Logger
	seed  *int64
	pulse time.Duration
	saver ResultSaver

	engine  *bakery.Engine
	intents chan intent

	snapshots *Feed[bakery.Snapshot]
	events    *Feed[bakery.Event]
	latest    atomic.Pointer[bakery.Snapshot]
	result    atomic.Pointer[bakery.Result]
	dropped   atomic.Uint64

	mu    sync.Mutex
	cur   *run
	saves sync.WaitGroup
}

// NewRunner creates a runner with no session in progress.
func NewRunner(cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		log:       log.New(io.Discard),
		pulse:     DefaultPulse,
		intents:   make(chan intent, 128),
		snapshots: NewFeed[bakery.Snapshot](8),
		events:    NewFeed[bakery.Event](64),
	}
	for _, opt := range opts {
		opt(r)
	}

	engineOpts := []bakery.Option{
		bakery.WithLogger(r.log),
		bakery.WithSnapshotSink(r.onSnapshot),
		bakery.WithEventSink(r.onEvent),
	}
	if r.seed != nil {
		engineOpts = append(engineOpts, bakery.WithSeed(*r.seed))
	}
	r.engine = bakery.New(cfg, engineOpts...)
	return r
}

// Start ends any session in progress and begins a new one. It returns the
// session token that key intents must carry.
func (r *Runner) Start(ctx context.Context, d config.Difficulty) bakery.SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
	r.result.Store(nil)

	// The previous owner has exited, so the engine is ours until the new
	// owner starts.
	id := r.engine.Start(d)

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.own(ctx, id) })
	g.Go(func() error { return r.tick(ctx, id) })
	r.cur = &run{id: id, cancel: cancel, group: g}

	r.log.Info("session started", "session", id, "difficulty", d)
	return id
}

// End force-ends the session in progress and returns once every goroutine of
// that session has exited. It is a no-op without a session.
func (r *Runner) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Runner) stopLocked() {
	if r.cur == nil {
		return
	}
	r.cur.cancel()
	if err := r.cur.group.Wait(); err != nil && !errors.Is(err, errSessionOver) {
		r.log.Error("session stopped with error", "session", r.cur.id, "err", err)
	}
	r.saves.Wait()
	r.cur = nil
}

// Ended reports whether no session is in progress.
func (r *Runner) Ended() bool {
	snap := r.latest.Load()
	return snap == nil || snap.Ended
}

// Close ends the session in progress and stops both feeds.
func (r *Runner) Close() {
	r.End()
	r.snapshots.Close()
	r.events.Close()
}

// SetKeys submits the controls held for the given session. Keys for any other
// session are dropped by the owner. It reports false when the intent queue
// was full and the keys were not queued.
func (r *Runner) SetKeys(id bakery.SessionID, keys core.KeyState) bool {
	select {
	case r.intents <- intent{session: id, kind: intentKeys, keys: keys}:
		return true
	default:
		r.log.Warn("intent queue full, keys dropped", "session", id)
		return false
	}
}

// Snapshot returns the latest published snapshot.
func (r *Runner) Snapshot() (bakery.Snapshot, bool) {
	snap := r.latest.Load()
	if snap == nil {
		return bakery.Snapshot{}, false
	}
	return *snap, true
}

// Result returns the outcome of the last finished session.
func (r *Runner) Result() (bakery.Result, bool) {
	res := r.result.Load()
	if res == nil {
		return bakery.Result{}, false
	}
	return *res, true
}

// Snapshots returns the render feed.
func (r *Runner) Snapshots() <-chan bakery.Snapshot {
	return r.snapshots.C()
}

// Events returns the event feed.
func (r *Runner) Events() <-chan bakery.Event {
	return r.events.C()
}

// Closed returns a channel closed by Close.
func (r *Runner) Closed() <-chan struct{} {
	return r.events.Done()
}

// Dropped returns how many stale intents have been discarded.
func (r *Runner) Dropped() uint64 {
	return r.dropped.Load()
}

// own is the only goroutine touching the engine while a session runs.
func (r *Runner) own(ctx context.Context, id bakery.SessionID) error {
	for {
		select {
		case <-ctx.Done():
			r.engine.End()
			return nil

		case it := <-r.intents:
			if it.session != id {
				r.dropped.Add(1)
				r.log.Debug("dropped stale intent", "session", it.session, "current", id)
				continue
			}
			switch it.kind {
			case intentKeys:
				r.engine.SetKeys(it.keys)
			case intentAdvance:
				r.engine.Advance(it.dt)
			}
			if r.engine.Ended() {
				return errSessionOver
			}
		}
	}
}

// tick measures real elapsed time and asks the owner to advance by it. Time
// that could not be queued is carried into the next pulse.
func (r *Runner) tick(ctx context.Context, id bakery.SessionID) error {
	ticker := time.NewTicker(r.pulse)
	defer ticker.Stop()

	last := time.Now()
	var pending time.Duration
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			pending += now.Sub(last)
			last = now
			select {
			case r.intents <- intent{session: id, kind: intentAdvance, dt: pending}:
				pending = 0
			default:
			}
		}
	}
}

func (r *Runner) onSnapshot(s bakery.Snapshot) {
	r.latest.Store(&s)
	r.snapshots.Send(s)
}

func (r *Runner) onEvent(ev bakery.Event) {
	if ended, ok := ev.(bakery.SessionEnded); ok {
		res := ended.Result
		r.result.Store(&res)
		// storage runs off the owner; stopLocked waits for it
		r.saves.Go(func() { r.save(res) })
	}
	r.events.Send(ev)
}

func (r *Runner) save(res bakery.Result) {
	r.log.Info("session ended", "session", res.Session, "reason", res.Reason,
		"score", res.Score, "played", res.Played)
	if r.saver == nil {
		return
	}
	if err := r.saver.SaveSessionResult(NewResultData(res)); err != nil {
		r.log.Error("failed to save session result", "session", res.Session, "err", err)
	}
}
