package layout

// Constraints holds the computed layout constraints for all components.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode
	Mode LayoutMode

	// Panel dimensions (computed)
	HeaderHeight int
	CanvasWidth  int
	CanvasHeight int
	StatusHeight int
	HelpHeight   int

	// ShowMinWarning is set when the terminal is below minimum size.
	ShowMinWarning bool
}

// ComputeConstraints calculates layout constraints for the given terminal dimensions.
func ComputeConstraints(width, height int) Constraints {
	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
		Mode:           DetermineMode(width, height),
	}

	if width < MinWidth || height < MinHeight {
		c.ShowMinWarning = true
	}

	// Fixed chrome first, the desktop canvas takes what is left
	c.StatusHeight = min(StatusHeight, max(height, 0))
	switch c.Mode {
	case LayoutFull:
		c.HeaderHeight = HeaderHeight
		c.HelpHeight = HelpFullHeight
	case LayoutStandard, LayoutCompact:
		c.HeaderHeight = HeaderHeight
		c.HelpHeight = HelpShortHeight
	}

	c.CanvasWidth = max(width, 0)
	c.CanvasHeight = max(height-c.HeaderHeight-c.StatusHeight-c.HelpHeight, 0)
	return c
}

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
