// Package placement turns a finished selection into the rectangle a window
// is moved to.
package placement

import (
	"errors"
	"fmt"

	"gridsnap/geom"
	"gridsnap/grid"
	"gridsnap/monitor"
	"gridsnap/selection"
)

var (
	// ErrIncompleteSelection means Resolve was called before both keys were
	// pressed. The state machine never lets this happen.
	ErrIncompleteSelection = errors.New("selection is not finished")

	// ErrNotAdjacent is returned for a selection spanning two monitors that
	// are not horizontal neighbors.
	ErrNotAdjacent = errors.New("monitors are not adjacent")

	// ErrUnknownMonitor is returned when a selection names a monitor that has
	// no grid.
	ErrUnknownMonitor = errors.New("unknown monitor")
)

// Placement is a final rectangle in virtual-desktop pixels and the monitor
// that owns it. For cross-monitor selections the owner is the start monitor.
type Placement struct {
	Monitor monitor.ID `json:"monitor"`
	Rect    geom.Rect  `json:"rect"`
}

// Resolve computes the unsnapped rectangle covered by sel. No DPI scaling is
// applied: every rectangle is already in physical pixels.
func Resolve(sel selection.Selection, layout *monitor.Layout, grids grid.Set) (Placement, error) {
	if sel.Phase != selection.Finished {
		return Placement{}, ErrIncompleteSelection
	}
	gs, ok := grids[sel.MonitorStart]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %s", ErrUnknownMonitor, sel.MonitorStart)
	}

	if sel.MonitorStart == sel.MonitorEnd {
		return Placement{
			Monitor: sel.MonitorStart,
			Rect:    gs.BoundingRect(sel.Start, sel.End),
		}, nil
	}

	ge, ok := grids[sel.MonitorEnd]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %s", ErrUnknownMonitor, sel.MonitorEnd)
	}
	if !layout.AreNeighbors(sel.MonitorStart, sel.MonitorEnd) {
		return Placement{}, fmt.Errorf("%w: %s and %s",
			ErrNotAdjacent, sel.MonitorStart.Short(), sel.MonitorEnd.Short())
	}

	// Each side spans from its selected column to the edge it shares with
	// the other monitor, over the union of the selected rows.
	rowLo := min(sel.Start.Row, sel.End.Row)
	rowHi := max(sel.Start.Row, sel.End.Row)
	startIsLeft := gs.WorkArea().X < ge.WorkArea().X

	startEdge, endEdge := gs.Shape().Cols-1, 0
	if !startIsLeft {
		startEdge, endEdge = 0, ge.Shape().Cols-1
	}
	startRect := gs.BoundingRect(
		grid.CellIndex{Row: rowLo, Col: sel.Start.Col},
		grid.CellIndex{Row: rowHi, Col: startEdge},
	)
	endRect := ge.BoundingRect(
		grid.CellIndex{Row: rowLo, Col: endEdge},
		grid.CellIndex{Row: rowHi, Col: sel.End.Col},
	)
	return Placement{
		Monitor: sel.MonitorStart,
		Rect:    startRect.Union(endRect),
	}, nil
}
