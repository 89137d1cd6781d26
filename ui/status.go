package ui

import (
	"fmt"

	"gridsnap/keys"
	"gridsnap/session"

	"github.com/muesli/reflow/truncate"
)

// ResultKind classifies how the last session ended.
type ResultKind int

const (
	ResultNone ResultKind = iota
	ResultPlaced
	ResultCancelled
	ResultError
)

// Result is the outcome shown on the status line once a session closes. A
// ResultNone with a message is an idle hint.
type Result struct {
	Kind    ResultKind
	Message string
}

const ellipsis = "…"

// Header renders the title line.
func Header(p session.Progress, width int) string {
	n := 0
	if p.Layout != nil {
		n = p.Layout.Len()
	}
	title := truncate.StringWithTail("gridsnap", uint(max(width, 0)), ellipsis)
	rest := fmt.Sprintf(" · %d monitor", n)
	if n != 1 {
		rest += "s"
	}
	room := max(width-len(title), 0)
	return TextStyles.Title.Render(title) + TextStyles.Muted.Render(truncate.StringWithTail(rest, uint(room), ellipsis))
}

// StatusLine describes the session state in at most width cells.
func StatusLine(p session.Progress, res Result, width int) string {
	if width <= 0 {
		return ""
	}
	fit := func(s string) string {
		return truncate.StringWithTail(s, uint(width), ellipsis)
	}

	if !p.Open {
		switch res.Kind {
		case ResultPlaced:
			return StatusStyles.Success.Render(fit(res.Message))
		case ResultCancelled:
			return StatusStyles.Warning.Render(fit(res.Message))
		case ResultError:
			return StatusStyles.Error.Render(fit(res.Message))
		}
		if res.Message != "" {
			return TextStyles.Muted.Render(fit(res.Message))
		}
		return TextStyles.Muted.Render(fit("idle"))
	}

	name := p.Active.Short()
	shape := ""
	if p.Layout != nil {
		if d, ok := p.Layout.Lookup(p.Active); ok && d.Name != "" {
			name = d.Name
		}
	}
	if g, ok := p.Grids[p.Active]; ok {
		shape = " " + g.Shape().String()
	}

	line := name + shape + " · pick a cell"
	if s := p.Started; s != nil {
		from := s.Cell.String()
		if g, ok := p.Grids[s.Monitor]; ok {
			if k, ok := keys.CellToKey(s.Cell, g.Shape()); ok {
				from = string(k) + " " + from
			}
		}
		line = name + shape + " · from " + from + " · pick the second cell"
	}
	return TextStyles.Primary.Render(fit(line))
}
