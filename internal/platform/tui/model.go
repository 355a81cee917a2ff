package tui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/croissant-rush/internal/audio"
	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/core"
	"github.com/vovakirdan/croissant-rush/internal/session"
	"github.com/vovakirdan/croissant-rush/internal/storage"
)

// serveHighlight is how long the serving table lights up after a serve.
const serveHighlight = 2 * time.Second

// snapshotMsg carries a snapshot from the runner's render feed.
type snapshotMsg bakery.Snapshot

// eventMsg carries an engine event from the runner's event feed.
type eventMsg struct{ ev bakery.Event }

// Deps are the services a play model drives.
type Deps struct {
	Runner *session.Runner
	Store  *storage.Store // optional
	Player *audio.Player  // optional
	Config config.Config
	Logger *log.Logger
}

// Model is the Bubble Tea model for one or more rounds in the kitchen.
type Model struct {
	deps       Deps
	keys       PlayKeyMap
	help       help.Model
	tracker    *KeyTracker
	screen     *core.Screen
	runtime    core.RuntimeConfig
	difficulty config.Difficulty

	session  bakery.SessionID
	snap     bakery.Snapshot
	sent     core.KeyState
	servedAt time.Time
	now      time.Time

	ended    bool
	result   bakery.Result
	best     int
	toMenu   bool
	quitting bool
}

// NewModel creates a play model and starts the first round.
func NewModel(deps Deps, d config.Difficulty, rt core.RuntimeConfig) Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	w, h := KitchenSize()
	m := Model{
		deps:       deps,
		keys:       DefaultPlayKeyMap(),
		help:       help.New(),
		tracker:    NewKeyTracker(DefaultHold),
		screen:     core.NewScreen(max(rt.ScreenW, w), h),
		runtime:    rt,
		difficulty: d,
	}
	m.help.Width = rt.ScreenW
	m.start()
	return m
}

func (m *Model) start() {
	m.tracker.Reset()
	m.sent = core.KeyState{}
	m.ended = false
	m.servedAt = time.Time{}
	m.session = m.deps.Runner.Start(context.Background(), m.difficulty)
	if snap, ok := m.deps.Runner.Snapshot(); ok {
		m.snap = snap
	}
}

// Init starts the tick loop and the feed listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.runtime.TickRate), m.waitForSnapshot(), m.waitForEvent())
}

// waitForSnapshot returns a command that waits for the next render snapshot.
func (m Model) waitForSnapshot() tea.Cmd {
	r := m.deps.Runner
	return func() tea.Msg {
		select {
		case snap := <-r.Snapshots():
			return snapshotMsg(snap)
		case <-r.Closed():
			return nil
		}
	}
}

// waitForEvent returns a command that waits for the next engine event.
func (m Model) waitForEvent() tea.Cmd {
	r := m.deps.Runner
	return func() tea.Msg {
		select {
		case ev := <-r.Events():
			return eventMsg{ev: ev}
		case <-r.Closed():
			return nil
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		w, h := KitchenSize()
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(max(msg.Width, w), h)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		if msg.Session == m.session {
			m.snap = bakery.Snapshot(msg)
			if m.snap.Ended && !m.ended {
				if res, ok := m.deps.Runner.Result(); ok && res.Session == m.session {
					m.finish(res)
				}
			}
		}
		return m, m.waitForSnapshot()

	case eventMsg:
		m.handleEvent(msg.ev)
		return m, m.waitForEvent()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.deps.Runner.End()
		m.quitting = true
		return m, tea.Quit
	}

	if m.ended {
		switch {
		case key.Matches(msg, m.keys.Restart):
			m.start()
		case key.Matches(msg, m.keys.Menu):
			m.toMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.End) {
		// the SessionEnded event switches to the end screen
		m.deps.Runner.End()
		return m, nil
	}

	m.tracker.Press(m.keys.Action(msg), time.Now())
	return m, nil
}

// handleTick forwards the held controls to the runner when they change.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	if !m.ended {
		state := m.tracker.State(now)
		if state != m.sent && m.deps.Runner.SetKeys(m.session, state) {
			m.sent = state
		}
	}
	return m, tickCmd(m.runtime.TickRate)
}

func (m *Model) handleEvent(ev bakery.Event) {
	if bakery.EventSession(ev) != m.session {
		return
	}
	if m.deps.Player != nil {
		m.deps.Player.Handle(ev)
	}

	switch e := ev.(type) {
	case bakery.FoodServed:
		m.servedAt = time.Now()
	case bakery.SessionEnded:
		if !m.ended {
			m.finish(e.Result)
		}
	}
}

func (m *Model) finish(res bakery.Result) {
	m.ended = true
	m.result = res
	m.best = m.highScore()
	m.deps.Logger.Debug("round over", "session", res.Session, "score", res.Score, "best", m.best)
}

// highScore returns the stored best for the difficulty, including the round
// that just ended.
func (m Model) highScore() int {
	best := m.result.Score
	if m.deps.Store == nil {
		return best
	}
	stored, err := m.deps.Store.HighScore(string(m.difficulty))
	if err != nil {
		m.deps.Logger.Warn("failed to read high score", "err", err)
		return best
	}
	return max(best, stored)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.ended {
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(RenderResult(m.result, m.best, m.runtime.ScreenW))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(endKeys(m.keys)))
		return b.String()
	}

	serving := !m.servedAt.IsZero() && m.now.Sub(m.servedAt) < serveHighlight
	DrawKitchen(m.screen, m.snap, m.deps.Config, serving)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// WantsMenu reports whether the player asked to go back to the menu.
func (m Model) WantsMenu() bool {
	return m.toMenu
}

// Run plays rounds at the given difficulty until the player quits or asks
// for the menu. It reports whether the menu was requested.
func Run(deps Deps, d config.Difficulty, rt core.RuntimeConfig) (toMenu bool, err error) {
	model := NewModel(deps, d, rt)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	deps.Runner.End()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.WantsMenu(), nil
}
