package placement

import (
	"errors"
	"fmt"
	"slices"

	"gridsnap/geom"
	"gridsnap/grid"
	"gridsnap/monitor"
	"gridsnap/selection"
)

const (
	// EdgeEpsilon is how close an edge must be to a work-area edge to snap.
	EdgeEpsilon = 2

	// MinPlacementSize is the smallest width or height gaps may shrink a
	// rectangle to.
	MinPlacementSize = 50

	// MaxGapPx is the largest configurable gap.
	MaxGapPx = 50
)

// ErrInvalidGap is returned for a gap size outside 0..MaxGapPx.
var ErrInvalidGap = errors.New("invalid gap size")

// Gaps controls the inset applied to placements. With both flags set every
// edge is inset. ScreenEdges alone insets only edges on the work-area border,
// BetweenCells alone only edges on interior grid lines.
type Gaps struct {
	Enabled      bool `json:"enabled"`
	SizePx       int  `json:"size_px"`
	ScreenEdges  bool `json:"screen_edges"`
	BetweenCells bool `json:"between_cells"`
}

// Validate checks the gap size range.
func (g Gaps) Validate() error {
	if g.SizePx < 0 || g.SizePx > MaxGapPx {
		return fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidGap, g.SizePx, MaxGapPx)
	}
	return nil
}

func (g Gaps) screen() int {
	if g.Enabled && g.ScreenEdges {
		return g.SizePx
	}
	return 0
}

func (g Gaps) interior() int {
	if g.Enabled && g.BetweenCells {
		return g.SizePx
	}
	return 0
}

// Engine resolves selections and snaps the result. The zero Gaps value
// disables insets.
type Engine struct {
	Layout *monitor.Layout
	Grids  grid.Set
	Gaps   Gaps
}

// Place resolves sel and snaps the rectangle against the monitors it spans.
func (e Engine) Place(sel selection.Selection) (Placement, error) {
	p, err := Resolve(sel, e.Layout, e.Grids)
	if err != nil {
		return Placement{}, err
	}
	p.Rect = e.Snap(p.Rect, p.Monitor, sel.MonitorEnd)
	return p, nil
}

// edge describes one side of a rectangle for snapping.
type edge struct {
	value int
	// inward is +1 for left/top and -1 for right/bottom.
	inward int
	// screen holds the work-area borders on this side, lines every grid line
	// on the same axis.
	screen []int
	lines  []int
}

// attach returns the pre-gap position of the edge and the gap owed to it.
// An edge sitting exactly one gap inside a line beats an edge sitting on a
// line, which beats the nearest line in range. Edges are recognised both
// before and after a gap was applied, which keeps Snap idempotent.
func (e edge) attach(screenGap, interiorGap int) (int, int) {
	pos, gap := e.value, 0
	rank, dist := -1, 0
	try := func(l, g int) {
		d := (e.value - l) * e.inward
		if d < -EdgeEpsilon || d > EdgeEpsilon+g {
			return
		}
		r := 2
		switch {
		case g > 0 && d == g:
			r = 0
		case d == 0:
			r = 1
		}
		if rank < 0 || r < rank || r == rank && geom.Abs(d) < dist {
			pos, gap, rank, dist = l, g, r, geom.Abs(d)
		}
	}
	for _, l := range e.screen {
		try(l, screenGap)
	}
	if interiorGap == 0 {
		return pos, gap
	}
	for _, l := range e.lines {
		if !slices.Contains(e.screen, l) {
			try(l, interiorGap)
		}
	}
	return pos, gap
}

// Snap moves edges within EdgeEpsilon of a work-area border onto it and
// applies the configured gaps. Only the monitor id and the monitors in also
// take part: id owns the rectangle and also names the other monitors a
// cross-monitor rectangle covers. Edges on neither a work-area border nor a
// grid line are left where they are. Snap(Snap(r)) == Snap(r).
func (e Engine) Snap(r geom.Rect, id monitor.ID, also ...monitor.ID) geom.Rect {
	r = r.Normalize()
	if _, ok := e.Layout.Lookup(id); !ok {
		return r
	}
	b := e.borders(append([]monitor.ID{id}, also...))
	sg, ig := e.Gaps.screen(), e.Gaps.interior()

	left, gl := edge{r.Left(), 1, b.left, b.xs}.attach(sg, ig)
	top, gt := edge{r.Top(), 1, b.top, b.ys}.attach(sg, ig)
	right, gr := edge{r.Right(), -1, b.right, b.xs}.attach(sg, ig)
	bottom, gb := edge{r.Bottom(), -1, b.bottom, b.ys}.attach(sg, ig)

	// Slivers narrower than the snap window can cross over; leave that axis
	// alone.
	if right < left {
		left, right, gl, gr = r.Left(), r.Right(), 0, 0
	}
	if bottom < top {
		top, bottom, gt, gb = r.Top(), r.Bottom(), 0, 0
	}
	gl, gr = fitGaps(right-left, gl, gr)
	gt, gb = fitGaps(bottom-top, gt, gb)
	return geom.FromEdges(left+gl, top+gt, right-gr, bottom-gb)
}

// fitGaps shrinks the two gaps of one axis proportionally so the remaining
// extent stays at least MinPlacementSize. An extent already below the floor
// gets no gap at all.
func fitGaps(extent, a, b int) (int, int) {
	if a+b == 0 || extent-a-b >= MinPlacementSize {
		return a, b
	}
	allowed := max(0, extent-MinPlacementSize)
	na := allowed * a / (a + b)
	return na, allowed - na
}

// borders collects the work-area borders and grid lines of a set of
// monitors.
type borders struct {
	left, top, right, bottom []int
	xs, ys                   []int
}

func (e Engine) borders(ids []monitor.ID) borders {
	var b borders
	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			continue
		}
		d, ok := e.Layout.Lookup(id)
		if !ok {
			continue
		}
		w := d.WorkArea
		b.left = append(b.left, w.Left())
		b.top = append(b.top, w.Top())
		b.right = append(b.right, w.Right())
		b.bottom = append(b.bottom, w.Bottom())
		if g, ok := e.Grids[id]; ok {
			b.xs = append(b.xs, g.ColumnLines()...)
			b.ys = append(b.ys, g.RowLines()...)
		}
	}
	return b
}
