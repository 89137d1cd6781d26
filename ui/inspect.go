package ui

import (
	"gridsnap/inspect"
	"gridsnap/ui/layout"
)

var _ inspect.Introspectable = (*DesktopView)(nil)

// InspectNode implements inspect.Introspectable.
func (v *DesktopView) InspectNode() *inspect.Node {
	root := inspect.NewNode("Desktop").WithBounds(0, 0, v.width, v.height)
	l := v.progress.Layout
	if l == nil {
		return root
	}
	proj := layout.Project(l.Bounds(), v.width, v.height)
	for _, d := range l.Ordered() {
		n := inspect.NewNode("Monitor").
			WithID(string(d.ID)).
			WithRect(proj.Rect(d.Physical)).
			WithState("active", d.ID == v.progress.Active).
			WithState("name_visible", !v.hideNames)
		if g, ok := v.progress.Grids[d.ID]; ok {
			n.WithState("grid", g.Shape().String())
		}
		if s := v.progress.Started; s != nil && s.Monitor == d.ID {
			n.WithState("started", s.Cell.String())
		}
		root.AddChild(n)
	}
	return root
}
