// Package selection implements the two-key selection state machine.
package selection

import (
	"fmt"

	"gridsnap/grid"
	"gridsnap/monitor"
)

// Phase is the progress of a selection.
type Phase int

const (
	Empty Phase = iota
	Started
	Finished
)

func (p Phase) String() string {
	switch p {
	case Empty:
		return "empty"
	case Started:
		return "started"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Selection is a plain value. Fields beyond the phase are meaningful only
// when the phase sets them: Started fills MonitorStart and Start, Finished
// fills all four.
type Selection struct {
	Phase        Phase
	MonitorStart monitor.ID
	Start        grid.CellIndex
	MonitorEnd   monitor.ID
	End          grid.CellIndex
}

// Begin returns a Started selection.
func Begin(m monitor.ID, c grid.CellIndex) Selection {
	return Selection{Phase: Started, MonitorStart: m, Start: c}
}

// Complete returns the Finished selection that ends s at (m, c). s must be
// Started.
func (s Selection) Complete(m monitor.ID, c grid.CellIndex) Selection {
	s.Phase = Finished
	s.MonitorEnd = m
	s.End = c
	return s
}

// CrossMonitor reports whether a finished selection spans two monitors.
func (s Selection) CrossMonitor() bool {
	return s.Phase == Finished && s.MonitorStart != s.MonitorEnd
}

func (s Selection) String() string {
	switch s.Phase {
	case Started:
		return fmt.Sprintf("started{%s %s}", s.MonitorStart.Short(), s.Start)
	case Finished:
		return fmt.Sprintf("finished{%s %s -> %s %s}",
			s.MonitorStart.Short(), s.Start, s.MonitorEnd.Short(), s.End)
	default:
		return "empty"
	}
}
