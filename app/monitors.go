package app

import (
	"fmt"
	"io"

	"gridsnap/monitor"
	"gridsnap/session"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var bold = color.New(color.Bold).SprintFunc()

// WriteMonitors prints one row per monitor of snap, left to right, with its
// grid and neighbors.
func WriteMonitors(w io.Writer, snap session.Snapshot) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Name"), bold("Work area"), bold("Scale"), bold("Grid"), bold("Left"), bold("Right"))

	for _, d := range snap.Layout.Ordered() {
		name := d.Name
		if d.Primary {
			name += " *"
		}
		shape := "-"
		if g, ok := snap.Grids[d.ID]; ok {
			shape = g.Shape().String()
		}
		tbl.AddRow(d.ID.Short(), name, d.WorkArea, fmt.Sprintf("%.2f", d.DPIScale), shape,
			neighbor(snap.Layout, d.ID, monitor.Left), neighbor(snap.Layout, d.ID, monitor.Right))
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

func neighbor(l *monitor.Layout, id monitor.ID, dir monitor.Direction) string {
	if n, ok := l.Neighbor(id, dir); ok {
		return n.Short()
	}
	return "-"
}
