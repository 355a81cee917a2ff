package core

// Action is a semantic kitchen control, abstracted from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionStow     // put the croissant into the oven
	ActionRetrieve // take it back out
	ActionServe
	ActionDiscard
)

// Actions lists every control that contributes to a KeyState.
var Actions = []Action{
	ActionUp, ActionDown, ActionLeft, ActionRight,
	ActionStow, ActionRetrieve, ActionServe, ActionDiscard,
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionStow:
		return "Stow"
	case ActionRetrieve:
		return "Retrieve"
	case ActionServe:
		return "Serve"
	case ActionDiscard:
		return "Discard"
	default:
		return "Unknown"
	}
}

// KeyState is the set of controls held during one simulation step.
// The engine reads it once per frame and keeps the previous one around to
// detect controls that became newly asserted.
type KeyState struct {
	Up, Down, Left, Right bool
	Stow, Retrieve        bool
	Serve, Discard        bool
}

// Set marks an action as held.
func (k *KeyState) Set(a Action) {
	switch a {
	case ActionUp:
		k.Up = true
	case ActionDown:
		k.Down = true
	case ActionLeft:
		k.Left = true
	case ActionRight:
		k.Right = true
	case ActionStow:
		k.Stow = true
	case ActionRetrieve:
		k.Retrieve = true
	case ActionServe:
		k.Serve = true
	case ActionDiscard:
		k.Discard = true
	}
}

// Has reports whether the action is held.
func (k KeyState) Has(a Action) bool {
	switch a {
	case ActionUp:
		return k.Up
	case ActionDown:
		return k.Down
	case ActionLeft:
		return k.Left
	case ActionRight:
		return k.Right
	case ActionStow:
		return k.Stow
	case ActionRetrieve:
		return k.Retrieve
	case ActionServe:
		return k.Serve
	case ActionDiscard:
		return k.Discard
	default:
		return false
	}
}

// Pressed reports whether a is held in k but was not held in prev.
func (k KeyState) Pressed(prev KeyState, a Action) bool {
	return k.Has(a) && !prev.Has(a)
}

// Axis folds a pair of opposing controls into -1, 0 or +1.
// Holding both cancels out.
func Axis(neg, pos bool) int {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	default:
		return 0
	}
}
