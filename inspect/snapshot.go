package inspect

import (
	"fmt"
	"strings"
	"time"

	"gridsnap/geom"
	"gridsnap/grid"
	"gridsnap/session"
	"gridsnap/ui/layout"
)

// Snapshot represents the overlay state at a point in time.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	Terminal TerminalInfo `json:"terminal"`

	Session SessionInfo `json:"session"`

	Layout LayoutInfo `json:"layout"`

	Monitors []MonitorInfo `json:"monitors"`

	// Components is the root of the component tree.
	Components *Node `json:"components,omitempty"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SessionInfo mirrors session.Progress plus the last result.
type SessionInfo struct {
	Open    bool                 `json:"open"`
	Active  string               `json:"active,omitempty"`
	Started *session.StartedCell `json:"started,omitempty"`
	Last    string               `json:"last,omitempty"`
	Result  string               `json:"result,omitempty"`
}

// MonitorInfo describes one monitor of the session snapshot.
type MonitorInfo struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	Physical geom.Rect  `json:"physical"`
	WorkArea geom.Rect  `json:"work_area"`
	DPIScale float64    `json:"dpi_scale"`
	Primary  bool       `json:"primary,omitempty"`
	Grid     grid.Shape `json:"grid"`
}

// LayoutInfo contains the terminal layout.
type LayoutInfo struct {
	Mode         string          `json:"mode"`
	CanvasWidth  int             `json:"canvas_width"`
	CanvasHeight int             `json:"canvas_height"`
	HelpHeight   int             `json:"help_height"`
	Degradation  DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active degradation flags.
type DegradationInfo struct {
	HideMonitorNames bool `json:"hide_monitor_names"`
	HideHeader       bool `json:"hide_header"`
	HideHelp         bool `json:"hide_help"`
	FullHelp         bool `json:"full_help"`
	ShowMinWarning   bool `json:"show_min_warning"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:         c.Mode.String(),
		CanvasWidth:  c.CanvasWidth,
		CanvasHeight: c.CanvasHeight,
		HelpHeight:   c.HelpHeight,
		Degradation: DegradationInfo{
			HideMonitorNames: d.HideMonitorNames,
			HideHeader:       d.HideHeader,
			HideHelp:         d.HideHelp,
			FullHelp:         d.FullHelp,
			ShowMinWarning:   d.ShowMinWarning,
		},
	}
	return s
}

// WithProgress records the session projection and the monitors it covers.
func (s *Snapshot) WithProgress(p session.Progress, result string) *Snapshot {
	s.Session = SessionInfo{
		Open:    p.Open,
		Active:  string(p.Active),
		Started: p.Started,
		Last:    p.Last,
		Result:  result,
	}
	s.Monitors = nil
	if p.Layout == nil {
		return s
	}
	for _, d := range p.Layout.Ordered() {
		mi := MonitorInfo{
			ID:       string(d.ID),
			Name:     d.Name,
			Physical: d.Physical,
			WorkArea: d.WorkArea,
			DPIScale: d.DPIScale,
			Primary:  d.Primary,
		}
		if g, ok := p.Grids[d.ID]; ok {
			mi.Grid = g.Shape()
		}
		s.Monitors = append(s.Monitors, mi)
	}
	return s
}

// WithComponents sets the component tree to c's node.
func (s *Snapshot) WithComponents(c Introspectable) *Snapshot {
	s.Components = c.InspectNode()
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== Overlay Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d (%s)\n", s.Terminal.Width, s.Terminal.Height, s.Layout.Mode))

	b.WriteString("\n--- Session ---\n")
	b.WriteString(fmt.Sprintf("Open: %v\n", s.Session.Open))
	if s.Session.Active != "" {
		b.WriteString(fmt.Sprintf("Active: %s\n", s.Session.Active))
	}
	if st := s.Session.Started; st != nil {
		b.WriteString(fmt.Sprintf("Started: %s %s\n", st.Monitor, st.Cell))
	}
	if s.Session.Result != "" {
		b.WriteString(fmt.Sprintf("Result: %s\n", s.Session.Result))
	}

	b.WriteString("\n--- Monitors ---\n")
	for _, m := range s.Monitors {
		b.WriteString(fmt.Sprintf("  %s %s grid %s work %s scale %.2f\n", m.ID, m.Name, m.Grid, m.WorkArea, m.DPIScale))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d)", node.Bounds.Width, node.Bounds.Height))
	if !node.Visible {
		b.WriteString(" hidden")
	}
	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
