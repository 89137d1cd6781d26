package ui

import (
	"strings"

	"gridsnap/geom"
	"gridsnap/grid"
	"gridsnap/keys"
	"gridsnap/monitor"
	"gridsnap/session"
	"gridsnap/ui/layout"

	"github.com/mattn/go-runewidth"
)

// DesktopView draws every monitor of the session snapshot as a box with its
// grid and key labels, scaled into the terminal.
type DesktopView struct {
	width, height int
	hideNames     bool
	progress      session.Progress
}

func NewDesktopView() *DesktopView {
	return &DesktopView{}
}

// SetSize sets the canvas size in cells.
func (v *DesktopView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *DesktopView) SetHideNames(hide bool) {
	v.hideNames = hide
}

func (v *DesktopView) SetProgress(p session.Progress) {
	v.progress = p
}

// Projected returns the cell rectangle of each monitor.
func (v *DesktopView) Projected() map[monitor.ID]geom.Rect {
	l := v.progress.Layout
	if l == nil {
		return nil
	}
	proj := layout.Project(l.Bounds(), v.width, v.height)
	out := make(map[monitor.ID]geom.Rect, l.Len())
	for _, d := range l.Ordered() {
		out[d.ID] = proj.Rect(d.Physical)
	}
	return out
}

func (v *DesktopView) String() string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	c := newCanvas(v.width, v.height)
	l := v.progress.Layout
	if l == nil || l.Len() == 0 {
		c.centered(geom.NewRect(0, 0, v.width, v.height), "no monitors", classKeyDim)
		return c.render()
	}

	proj := layout.Project(l.Bounds(), v.width, v.height)
	for _, d := range l.Ordered() {
		active := d.ID == v.progress.Active
		box := proj.Rect(d.Physical)
		if g, ok := v.progress.Grids[d.ID]; ok {
			v.drawGrid(c, proj, box, d.ID, g, active)
		}
		c.box(box, active)
		if !v.hideNames {
			v.drawName(c, box, d)
		}
	}
	return c.render()
}

func (v *DesktopView) drawGrid(c *canvas, proj layout.Projection, box geom.Rect, id monitor.ID, g *grid.Grid, active bool) {
	shape := g.Shape()
	inner := box.Inset(1, 1, 1, 1)
	if inner.Empty() {
		return
	}

	started := v.progress.Started
	if started != nil && started.Monitor == id && g.Contains(started.Cell) {
		c.fill(interior(proj.Rect(g.CellRect(started.Cell)), inner), classStarted)
	}

	for _, x := range g.ColumnLines()[1:shape.Cols] {
		c.vline(proj.Rect(geom.NewRect(x, 0, 0, 0)).X, inner.Top(), inner.Bottom())
	}
	for _, y := range g.RowLines()[1:shape.Rows] {
		c.hline(proj.Rect(geom.NewRect(0, y, 0, 0)).Y, inner.Left(), inner.Right())
	}

	labelClass := classKeyDim
	if active {
		labelClass = classKey
	}
	for _, cell := range g.Cells() {
		cr := proj.Rect(g.CellRect(cell))
		if cr.W < layout.LabelMinWidth || cr.H < layout.LabelMinHeight {
			continue
		}
		key, ok := keys.CellToKey(cell, shape)
		if !ok {
			continue
		}
		cl := labelClass
		if started != nil && started.Monitor == id && started.Cell == cell {
			cl = classStarted
		}
		c.centered(interior(cr, inner), string(key), cl)
	}
}

// interior is the part of a projected cell between its grid lines. Lines
// sit on each cell's left and top edge.
func interior(cell, inner geom.Rect) geom.Rect {
	r, _ := cell.Inset(1, 1, 0, 0).Intersect(inner)
	return r
}

func (v *DesktopView) drawName(c *canvas, box geom.Rect, d monitor.Descriptor) {
	room := box.W - 4
	if room < 3 {
		return
	}
	name := d.Name
	if name == "" {
		name = d.ID.Short()
	}
	if d.Primary {
		name += " *"
	}
	name = " " + runewidth.Truncate(strings.TrimSpace(name), room-2, "…") + " "
	c.text(box.X+2, box.Y, box.X+2+room, name, className)
}
