package session

import (
	"gridsnap/keys"
	"gridsnap/monitor"
)

// Input is a message posted to a Controller. Producers build inputs from
// already classified key presses and never touch the selection directly.
type Input interface {
	kind() string
}

// Activate opens a session on Monitor, or on the primary monitor when
// Monitor is empty or unknown. Activating while a session is open cancels it.
type Activate struct {
	Monitor monitor.ID
}

// Key is a grid key press.
type Key struct {
	Rune rune
}

// InvalidKey is a printable key that addresses no cell.
type InvalidKey struct {
	Rune rune
}

// Navigate moves the active monitor.
type Navigate struct {
	Direction monitor.Direction
}

// Cancel ends the session without a placement.
type Cancel struct{}

type timeout struct {
	gen uint64
}

type replace struct {
	snap Snapshot
}

func (Activate) kind() string   { return "activate" }
func (Key) kind() string        { return "key" }
func (InvalidKey) kind() string { return "invalid" }
func (Navigate) kind() string   { return "navigate" }
func (Cancel) kind() string     { return "cancel" }
func (timeout) kind() string    { return "timeout" }
func (replace) kind() string    { return "replace" }

// FromKeys converts a classified key press into an Input.
func FromKeys(in keys.Input) Input {
	switch in.Kind {
	case keys.Key:
		return Key{Rune: in.Rune}
	case keys.InvalidKey:
		return InvalidKey{Rune: in.Rune}
	case keys.Navigate:
		return Navigate{Direction: in.Direction}
	default:
		return Cancel{}
	}
}
