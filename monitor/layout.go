// Package monitor models the set of connected monitors as an immutable
// snapshot taken when a selection session opens.
package monitor

import (
	"errors"
	"fmt"
	"sort"

	"gridsnap/geom"
)

// AdjacencyEpsilon is how far apart (or overlapping) two work areas may be
// horizontally and still count as touching. Some drivers report work areas a
// few pixels off.
const AdjacencyEpsilon = 4

var (
	// ErrNoMonitors is returned when a layout is built from an empty set.
	ErrNoMonitors = errors.New("no monitors")

	// ErrDuplicateMonitor is returned when two descriptors share an ID.
	ErrDuplicateMonitor = errors.New("duplicate monitor id")
)

// Descriptor is everything the engine knows about one monitor.
type Descriptor struct {
	ID ID
	// Name is the platform display name, informational only.
	Name string
	// Physical is the full monitor rectangle in virtual-desktop pixels.
	Physical geom.Rect
	// WorkArea excludes taskbars and other reserved regions.
	WorkArea geom.Rect
	// DPIScale is 1.0 at 96 DPI. Rectangles are already in real pixels, so
	// the engine never scales by it.
	DPIScale float64
	Primary  bool
}

// Layout is an immutable snapshot of all monitors.
type Layout struct {
	ordered []Descriptor
	byID    map[ID]int
	left    map[ID]ID
	right   map[ID]ID
}

// NewLayout validates the descriptors and computes left-to-right order and
// horizontal adjacency.
func NewLayout(descs []Descriptor) (*Layout, error) {
	if len(descs) == 0 {
		return nil, ErrNoMonitors
	}

	ordered := make([]Descriptor, len(descs))
	copy(ordered, descs)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].WorkArea, ordered[j].WorkArea
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return ordered[i].ID < ordered[j].ID
	})

	l := &Layout{
		ordered: ordered,
		byID:    make(map[ID]int, len(ordered)),
		left:    make(map[ID]ID),
		right:   make(map[ID]ID),
	}
	for i, d := range ordered {
		if _, dup := l.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMonitor, d.ID)
		}
		l.byID[d.ID] = i
	}

	for _, d := range ordered {
		if id, ok := l.bestNeighbor(d, Right); ok {
			l.right[d.ID] = id
		}
		if id, ok := l.bestNeighbor(d, Left); ok {
			l.left[d.ID] = id
		}
	}
	return l, nil
}

// bestNeighbor picks the adjacent monitor on the given side with the largest
// shared vertical extent. Ties go to the earlier monitor in order.
func (l *Layout) bestNeighbor(d Descriptor, dir Direction) (ID, bool) {
	var best ID
	bestOverlap := 0
	for _, o := range l.ordered {
		if o.ID == d.ID {
			continue
		}
		var touching bool
		if dir == Right {
			touching = Adjacent(d.WorkArea, o.WorkArea)
		} else {
			touching = Adjacent(o.WorkArea, d.WorkArea)
		}
		if !touching {
			continue
		}
		if overlap := d.WorkArea.VerticalOverlap(o.WorkArea); overlap > bestOverlap {
			best, bestOverlap = o.ID, overlap
		}
	}
	return best, bestOverlap > 0
}

// Adjacent reports whether right sits directly to the right of left: their
// vertical extents overlap by at least one pixel and left's right edge meets
// right's left edge within AdjacencyEpsilon.
func Adjacent(left, right geom.Rect) bool {
	if left.VerticalOverlap(right) < 1 {
		return false
	}
	if right.X <= left.X {
		return false
	}
	return geom.Abs(left.Right()-right.X) <= AdjacencyEpsilon
}

// Ordered returns the monitors left to right. The slice is a copy.
func (l *Layout) Ordered() []Descriptor {
	out := make([]Descriptor, len(l.ordered))
	copy(out, l.ordered)
	return out
}

// Len returns the number of monitors.
func (l *Layout) Len() int {
	return len(l.ordered)
}

// Lookup returns the descriptor for id.
func (l *Layout) Lookup(id ID) (Descriptor, bool) {
	i, ok := l.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return l.ordered[i], true
}

// Has reports whether id is part of this snapshot.
func (l *Layout) Has(id ID) bool {
	_, ok := l.byID[id]
	return ok
}

// Neighbor returns the horizontally adjacent monitor in dir. Up and Down never
// resolve: vertical adjacency is not recognized.
func (l *Layout) Neighbor(id ID, dir Direction) (ID, bool) {
	var n ID
	var ok bool
	switch dir {
	case Left:
		n, ok = l.left[id]
	case Right:
		n, ok = l.right[id]
	}
	return n, ok
}

// AreNeighbors reports whether a and b are horizontally adjacent in either
// order.
func (l *Layout) AreNeighbors(a, b ID) bool {
	if n, ok := l.Neighbor(a, Right); ok && n == b {
		return true
	}
	if n, ok := l.Neighbor(b, Right); ok && n == a {
		return true
	}
	return false
}

// MonitorAt returns the monitor whose physical rectangle contains p.
func (l *Layout) MonitorAt(p geom.Point) (ID, bool) {
	for _, d := range l.ordered {
		if d.Physical.Contains(p) {
			return d.ID, true
		}
	}
	return "", false
}

// Primary returns the primary monitor, or the leftmost one when none is
// flagged.
func (l *Layout) Primary() Descriptor {
	for _, d := range l.ordered {
		if d.Primary {
			return d
		}
	}
	return l.ordered[0]
}

// Bounds returns the union of all physical rectangles.
func (l *Layout) Bounds() geom.Rect {
	b := l.ordered[0].Physical
	for _, d := range l.ordered[1:] {
		b = b.Union(d.Physical)
	}
	return b
}

// Removed returns the IDs present in l but missing from next.
func (l *Layout) Removed(next *Layout) []ID {
	var gone []ID
	for _, d := range l.ordered {
		if next == nil || !next.Has(d.ID) {
			gone = append(gone, d.ID)
		}
	}
	return gone
}

// Toward returns the monitor a navigation in dir moves to. Left and Right
// follow Neighbor. Up and Down pick the nearest monitor stacked above or
// below that shares at least one column; such monitors are reachable for
// navigation but never adjacent for a cross-monitor selection.
func (l *Layout) Toward(id ID, dir Direction) (ID, bool) {
	if dir == Left || dir == Right {
		return l.Neighbor(id, dir)
	}
	from, ok := l.Lookup(id)
	if !ok {
		return "", false
	}

	var best ID
	bestDist, bestOverlap := -1, 0
	for _, o := range l.ordered {
		if o.ID == id {
			continue
		}
		overlap := from.WorkArea.HorizontalOverlap(o.WorkArea)
		if overlap < 1 {
			continue
		}
		var dist int
		if dir == Up {
			dist = from.WorkArea.Top() - o.WorkArea.Bottom()
		} else {
			dist = o.WorkArea.Top() - from.WorkArea.Bottom()
		}
		if dist < -AdjacencyEpsilon {
			continue
		}
		dist = max(dist, 0)
		if bestDist < 0 || dist < bestDist || (dist == bestDist && overlap > bestOverlap) {
			best, bestDist, bestOverlap = o.ID, dist, overlap
		}
	}
	return best, bestDist >= 0
}
