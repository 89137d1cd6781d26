// Package geom holds the rectangle primitives shared by every layer.
// All values are real pixels in the virtual-desktop coordinate space,
// where secondary monitors may sit at negative coordinates.
package geom

import "fmt"

// Point is a position in virtual-desktop coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle. X/Y is the top-left corner; the right
// and bottom edges are exclusive.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Size is a width/height pair.
type Size struct {
	W int
	H int
}

// NewRect builds a rectangle from its origin and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// FromEdges builds a rectangle from its four edges.
func FromEdges(left, top, right, bottom int) Rect {
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns W*H, or 0 for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Normalize returns an equivalent rectangle with non-negative width and height.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Intersect returns the overlapping area of r and o. The boolean is false
// when they do not overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	left := max(r.X, o.X)
	top := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if left >= right || top >= bottom {
		return Rect{}, false
	}
	return FromEdges(left, top, right, bottom), true
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	return FromEdges(
		min(r.X, o.X),
		min(r.Y, o.Y),
		max(r.Right(), o.Right()),
		max(r.Bottom(), o.Bottom()),
	)
}

// Inset moves each edge inward by the given amount. Negative values grow the
// rectangle.
func (r Rect) Inset(left, top, right, bottom int) Rect {
	return FromEdges(r.X+left, r.Y+top, r.Right()-right, r.Bottom()-bottom)
}

// Translate shifts the rectangle by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// VerticalOverlap returns how many rows r and o share.
func (r Rect) VerticalOverlap(o Rect) int {
	return max(0, min(r.Bottom(), o.Bottom())-max(r.Y, o.Y))
}

// HorizontalOverlap returns how many columns r and o share.
func (r Rect) HorizontalOverlap(o Rect) int {
	return max(0, min(r.Right(), o.Right())-max(r.X, o.X))
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.X, r.Y, r.W, r.H)
}

// Abs returns |v|.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
