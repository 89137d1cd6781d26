// Package layout maps the overlay onto the terminal: breakpoints, panel
// sizes and the projection of the virtual desktop onto character cells.
package layout

// LayoutMode is how much chrome the overlay draws around the desktop.
type LayoutMode int

const (
	// LayoutFull draws the header, the desktop and the expandable help.
	LayoutFull LayoutMode = iota
	LayoutStandard
	// LayoutCompact keeps one help line and drops monitor names.
	LayoutCompact
	// LayoutMinimal is below MinWidth x MinHeight: only the status line is
	// guaranteed.
	LayoutMinimal
)

var modeNames = [...]string{"full", "standard", "compact", "minimal"}

func (m LayoutMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// step is the smallest size that still gets mode.
type step struct {
	width, height int
	mode          LayoutMode
}

var steps = []step{
	{FullWidth, FullHeight, LayoutFull},
	{StandardWidth, StandardHeight, LayoutStandard},
	{MinWidth, MinHeight, LayoutCompact},
}

// DetermineMode picks the mode for a terminal. Width and height are judged
// separately and the more restrictive answer wins.
func DetermineMode(width, height int) LayoutMode {
	return max(modeFor(width, func(s step) int { return s.width }),
		modeFor(height, func(s step) int { return s.height }))
}

func modeFor(v int, dim func(step) int) LayoutMode {
	for _, s := range steps {
		if v >= dim(s) {
			return s.mode
		}
	}
	return LayoutMinimal
}
