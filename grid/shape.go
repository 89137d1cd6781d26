package grid

import (
	"errors"
	"fmt"

	"gridsnap/geom"
)

const (
	MinRows = 1
	MaxRows = 3
	MinCols = 1
	MaxCols = 10

	// MinCellWidth and MinCellHeight are the smallest cells a grid may have.
	MinCellWidth  = 480
	MinCellHeight = 360
)

var (
	// ErrInvalidShape is returned for a shape outside the supported bounds.
	ErrInvalidShape = errors.New("invalid grid shape")

	// ErrCellTooSmall is returned when a shape does not fit a work area.
	ErrCellTooSmall = errors.New("grid cell too small")
)

// CellTooSmallError reports the computed and required cell size.
type CellTooSmallError struct {
	Actual   geom.Size
	Required geom.Size
}

func (e *CellTooSmallError) Error() string {
	return fmt.Sprintf("grid cell too small: %dx%d, need at least %dx%d",
		e.Actual.W, e.Actual.H, e.Required.W, e.Required.H)
}

func (e *CellTooSmallError) Unwrap() error {
	return ErrCellTooSmall
}

// Shape is a grid's column and row count. It is written COLSxROWS.
type Shape struct {
	Cols int `json:"cols" yaml:"cols"`
	Rows int `json:"rows" yaml:"rows"`
}

// Landscape and Portrait are the default shapes for each monitor orientation.
var (
	Landscape = Shape{Cols: 3, Rows: 2}
	Portrait  = Shape{Cols: 2, Rows: 3}
)

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Cols, s.Rows)
}

// Valid reports whether s is within the supported bounds.
func (s Shape) Valid() bool {
	return s.Rows >= MinRows && s.Rows <= MaxRows && s.Cols >= MinCols && s.Cols <= MaxCols
}

// Len returns the number of cells.
func (s Shape) Len() int {
	return s.Rows * s.Cols
}

// ParseShape parses "COLSxROWS", for example "4x2".
func ParseShape(v string) (Shape, error) {
	var s Shape
	if _, err := fmt.Sscanf(v, "%dx%d", &s.Cols, &s.Rows); err != nil {
		return Shape{}, fmt.Errorf("%w: %q", ErrInvalidShape, v)
	}
	if !s.Valid() {
		return Shape{}, fmt.Errorf("%w: %s", ErrInvalidShape, s)
	}
	return s, nil
}

// Validate checks that shape fits work without building a grid.
func Validate(shape Shape, work geom.Rect) error {
	if !shape.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidShape, shape)
	}
	cw, ch := work.W/shape.Cols, work.H/shape.Rows
	if cw < MinCellWidth || ch < MinCellHeight {
		return &CellTooSmallError{
			Actual:   geom.Size{W: cw, H: ch},
			Required: geom.Size{W: MinCellWidth, H: MinCellHeight},
		}
	}
	return nil
}

// DefaultShape returns the orientation default for a work area.
func DefaultShape(work geom.Rect) Shape {
	if work.W >= work.H {
		return Landscape
	}
	return Portrait
}

// FitShape clamps want to what work can hold. It fails only when not even a
// single cell fits.
func FitShape(want Shape, work geom.Rect) (Shape, error) {
	if !want.Valid() {
		return Shape{}, fmt.Errorf("%w: %s", ErrInvalidShape, want)
	}
	fit := Shape{
		Cols: min(want.Cols, work.W/MinCellWidth),
		Rows: min(want.Rows, work.H/MinCellHeight),
	}
	if fit.Cols < MinCols || fit.Rows < MinRows {
		return Shape{}, &CellTooSmallError{
			Actual:   geom.Size{W: work.W, H: work.H},
			Required: geom.Size{W: MinCellWidth, H: MinCellHeight},
		}
	}
	return fit, nil
}
