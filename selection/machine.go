package selection

import (
	"slices"

	"gridsnap/grid"
	"gridsnap/keys"
	"gridsnap/monitor"
)

// Machine owns one Selection and advances it one event at a time. It is not
// safe for concurrent use; exactly one goroutine may call Handle.
type Machine struct {
	layout *monitor.Layout
	grids  grid.Set
	sel    Selection
	open   bool
}

// NewMachine binds a machine to a layout snapshot and its grids. The machine
// starts closed.
func NewMachine(layout *monitor.Layout, grids grid.Set) *Machine {
	return &Machine{layout: layout, grids: grids}
}

// Open starts a session with an empty selection.
func (m *Machine) Open() {
	m.sel = Selection{}
	m.open = true
}

// IsOpen reports whether a session is in progress.
func (m *Machine) IsOpen() bool {
	return m.open
}

// Selection returns a copy of the current selection.
func (m *Machine) Selection() Selection {
	return m.sel
}

// Reset closes the session and discards the selection.
func (m *Machine) Reset() {
	m.sel = Selection{}
	m.open = false
}

// Layout returns the snapshot the machine resolves keys against.
func (m *Machine) Layout() *monitor.Layout {
	return m.layout
}

// Grids returns the grids the machine resolves keys against.
func (m *Machine) Grids() grid.Set {
	return m.grids
}

// Handle applies ev and reports what happened. Events arriving while the
// machine is closed are ignored.
func (m *Machine) Handle(ev Event) Outcome {
	if !m.open {
		return Outcome{Kind: Ignored, Selection: m.sel}
	}

	switch e := ev.(type) {
	case KeyEvent:
		return m.handleKey(e)
	case InvalidKeyEvent:
		return Outcome{Kind: Ignored, Selection: m.sel, Rearm: true}
	case NavigateEvent:
		return Outcome{Kind: Progressed, Selection: m.sel, Rearm: true}
	case CancelEvent:
		return m.cancel(ReasonCancelled)
	case TimeoutEvent:
		return m.cancel(ReasonTimedOut)
	case LayoutChangedEvent:
		if m.sel.Phase == Started && slices.Contains(e.Removed, m.sel.MonitorStart) {
			return m.cancel(ReasonMonitorRemoved)
		}
		return m.cancel(ReasonLayoutChanged)
	default:
		return Outcome{Kind: Ignored, Selection: m.sel}
	}
}

func (m *Machine) handleKey(e KeyEvent) Outcome {
	g, ok := m.grids[e.Monitor]
	if !ok || !m.layout.Has(e.Monitor) {
		return Outcome{Kind: Ignored, Selection: m.sel, Rearm: true}
	}
	cell, err := keys.KeyToCell(e.Key, g.Shape())
	if err != nil {
		return Outcome{Kind: Ignored, Selection: m.sel, Rearm: true}
	}

	switch m.sel.Phase {
	case Empty:
		m.sel = Begin(e.Monitor, cell)
		return Outcome{Kind: Progressed, Selection: m.sel, Rearm: true}
	case Started:
		done := m.sel.Complete(e.Monitor, cell)
		m.Reset()
		return Outcome{Kind: Done, Selection: done}
	default:
		return Outcome{Kind: Ignored, Selection: m.sel}
	}
}

func (m *Machine) cancel(reason Reason) Outcome {
	m.Reset()
	return Outcome{Kind: Cancelled, Selection: m.sel, Reason: reason}
}
