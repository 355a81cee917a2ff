package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/croissant-rush/internal/core"
)

// PlayKeyMap defines the key bindings of the kitchen.
type PlayKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Stow     key.Binding
	Retrieve key.Binding
	Serve    key.Binding
	Discard  key.Binding
	End      key.Binding
	Quit     key.Binding
	Restart  key.Binding
	Menu     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Stow, k.Retrieve, k.Serve, k.Discard, k.End}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Stow, k.Retrieve, k.Serve, k.Discard},
		{k.End, k.Quit},
	}
}

// endKeys is the help shown on the end screen.
type endKeys PlayKeyMap

func (k endKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Menu, k.Quit}
}

func (k endKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPlayKeyMap returns default key bindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down:  key.NewBinding(key.WithKeys("s", "down")),
		Left:  key.NewBinding(key.WithKeys("a", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right")),
		Stow: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "oven in"),
		),
		Retrieve: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "oven out"),
		),
		Serve: key.NewBinding(
			key.WithKeys("r", " "),
			key.WithHelp("r", "serve"),
		),
		Discard: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "trash"),
		),
		End: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "end round"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "x"),
			key.WithHelp("x", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play again"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "esc"),
			key.WithHelp("m", "menu"),
		),
	}
}

// Action translates a key message to a kitchen control.
func (k PlayKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Stow):
		return core.ActionStow
	case key.Matches(msg, k.Retrieve):
		return core.ActionRetrieve
	case key.Matches(msg, k.Serve):
		return core.ActionServe
	case key.Matches(msg, k.Discard):
		return core.ActionDiscard
	}
	return core.ActionNone
}

// DefaultHold is how long a key counts as held after its last press.
const DefaultHold = 180 * time.Millisecond

// KeyTracker turns key presses into held controls. Terminals report presses
// and auto-repeats but never releases, so a control stays held until no press
// has arrived for the hold window.
type KeyTracker struct {
	hold time.Duration
	seen map[core.Action]time.Time
}

// NewKeyTracker creates a tracker with the given hold window.
func NewKeyTracker(hold time.Duration) *KeyTracker {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &KeyTracker{hold: hold, seen: make(map[core.Action]time.Time)}
}

// Press records a press of a at now.
func (t *KeyTracker) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	t.seen[a] = now
}

// State returns the controls held at now.
func (t *KeyTracker) State(now time.Time) core.KeyState {
	var k core.KeyState
	for a, at := range t.seen {
		if now.Sub(at) < t.hold {
			k.Set(a)
		}
	}
	return k
}

// Reset releases everything.
func (t *KeyTracker) Reset() {
	clear(t.seen)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "x":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
