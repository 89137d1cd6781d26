package placement

import (
	"errors"
	"fmt"

	"gridsnap/geom"
)

// ErrNotResizable is returned when a fixed-size window would need resizing.
var ErrNotResizable = errors.New("window is not resizable")

// WindowConstraints are the active window's size limits. A zero maximum means
// unbounded.
type WindowConstraints struct {
	MinW, MinH int
	MaxW, MaxH int
	Resizable  bool
	// Current is the window's present size, used when it cannot be resized.
	Current geom.Size
}

// Constrain clamps r to the window's limits, keeping the top-left corner.
func Constrain(r geom.Rect, wc WindowConstraints) (geom.Rect, error) {
	r = r.Normalize()
	if !wc.Resizable {
		if r.Size() == wc.Current {
			return r, nil
		}
		return r, fmt.Errorf("%w: want %dx%d, window is %dx%d",
			ErrNotResizable, r.W, r.H, wc.Current.W, wc.Current.H)
	}
	r.W = clampDim(r.W, wc.MinW, wc.MaxW)
	r.H = clampDim(r.H, wc.MinH, wc.MaxH)
	return r, nil
}

func clampDim(v, lo, hi int) int {
	if hi > 0 && v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
