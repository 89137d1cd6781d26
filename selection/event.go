package selection

import "gridsnap/monitor"

// Event is an input to the machine. Producers never build events directly;
// the session controller translates classified inputs into events.
type Event interface {
	event()
}

// KeyEvent is a grid key pressed while Monitor was active.
type KeyEvent struct {
	Key     rune
	Monitor monitor.ID
}

// InvalidKeyEvent is a printable key outside the grid block.
type InvalidKeyEvent struct {
	Key rune
}

// NavigateEvent records a change of active monitor. It never affects the
// selection.
type NavigateEvent struct {
	Direction monitor.Direction
	Monitor   monitor.ID
}

type CancelEvent struct{}

type TimeoutEvent struct{}

// LayoutChangedEvent reports a hot-plug. Removed lists monitors that no
// longer exist.
type LayoutChangedEvent struct {
	Removed []monitor.ID
}

func (KeyEvent) event()           {}
func (InvalidKeyEvent) event()    {}
func (NavigateEvent) event()      {}
func (CancelEvent) event()        {}
func (TimeoutEvent) event()       {}
func (LayoutChangedEvent) event() {}

// Reason explains why a session ended without a placement.
type Reason int

const (
	ReasonCancelled Reason = iota
	ReasonTimedOut
	ReasonMonitorRemoved
	ReasonLayoutChanged
	ReasonNotAdjacent
	// ReasonToggled is a second activation while the session was open.
	ReasonToggled
)

func (r Reason) String() string {
	switch r {
	case ReasonCancelled:
		return "cancelled"
	case ReasonTimedOut:
		return "timed out"
	case ReasonMonitorRemoved:
		return "monitor removed"
	case ReasonLayoutChanged:
		return "layout changed"
	case ReasonNotAdjacent:
		return "monitors not adjacent"
	case ReasonToggled:
		return "toggled"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies the result of handling one event.
type OutcomeKind int

const (
	Ignored OutcomeKind = iota
	Progressed
	Done
	Cancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Progressed:
		return "progressed"
	case Done:
		return "finished"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the result of Machine.Handle.
type Outcome struct {
	Kind OutcomeKind
	// Selection is the state after the event. For Done it is the finished
	// selection; the machine itself is already back to Empty.
	Selection Selection
	// Reason is set for Cancelled.
	Reason Reason
	// Rearm asks the owner to restart the session timeout.
	Rearm bool
}
