package layout

// Degradation holds flags indicating which overlay features should be
// hidden or simplified.
type Degradation struct {
	HideMonitorNames bool // Hide monitor names inside the boxes (width < 60)
	HideHeader       bool // Drop the title line (minimal mode)
	HideHelp         bool // Drop the key help (minimal mode)
	FullHelp         bool // Show every binding (full mode)
	ShowMinWarning   bool // Terminal too small warning (below MinWidth/MinHeight)
}

// Threshold constants for degradation
const (
	NameHideWidth = 60
)

// ComputeDegradation calculates which overlay features should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideMonitorNames: c.TerminalWidth < NameHideWidth,
		HideHeader:       c.HeaderHeight == 0,
		HideHelp:         c.HelpHeight == 0,
		FullHelp:         c.HelpHeight >= HelpFullHeight,
		ShowMinWarning:   c.ShowMinWarning,
	}
}
