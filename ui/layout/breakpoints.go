package layout

// Width breakpoints
const (
	// MinWidth is the narrowest terminal the desktop is drawn in.
	MinWidth = 40

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 80

	// FullWidth is the threshold for full layout with all features.
	FullWidth = 120
)

// Height breakpoints
const (
	// MinHeight is the shortest terminal the desktop is drawn in.
	MinHeight = 12

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 24

	// FullHeight is the threshold for full layout.
	FullHeight = 40
)

// Chrome heights
const (
	// HeaderHeight is the title line above the desktop.
	HeaderHeight = 1

	// StatusHeight is the status line under the desktop.
	StatusHeight = 1

	// HelpShortHeight is the one-line key help.
	HelpShortHeight = 1

	// HelpFullHeight is the expanded key help in full mode.
	HelpFullHeight = 4
)

// Desktop projection
const (
	// CellAspect is how many times taller a terminal cell is than it is wide.
	CellAspect = 2.0

	// CanvasMargin is the blank border kept around the projected desktop.
	CanvasMargin = 1

	// LabelMinWidth is the narrowest projected grid cell, its leading grid
	// line included, that still gets a key label.
	LabelMinWidth = 3

	// LabelMinHeight is the shortest projected grid cell, its top grid line
	// included, that still gets a key label.
	LabelMinHeight = 2
)
