// Package grid binds a row/column shape to one monitor's work area.
package grid

import (
	"fmt"

	"gridsnap/geom"
)

// CellIndex addresses one cell, zero based, row 0 at the top.
type CellIndex struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c CellIndex) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is an immutable grid over a work area.
type Grid struct {
	shape Shape
	work  geom.Rect
	cell  geom.Size
}

// New builds a grid, rejecting shapes whose cells would be smaller than
// MinCellWidth x MinCellHeight.
func New(shape Shape, work geom.Rect) (*Grid, error) {
	if err := Validate(shape, work); err != nil {
		return nil, err
	}
	return &Grid{
		shape: shape,
		work:  work,
		cell:  geom.Size{W: work.W / shape.Cols, H: work.H / shape.Rows},
	}, nil
}

func (g *Grid) Shape() Shape        { return g.shape }
func (g *Grid) WorkArea() geom.Rect { return g.work }

// CellSize returns the base cell size before remainder absorption.
func (g *Grid) CellSize() geom.Size { return g.cell }

// Contains reports whether c lies inside the shape.
func (g *Grid) Contains(c CellIndex) bool {
	return c.Row >= 0 && c.Row < g.shape.Rows && c.Col >= 0 && c.Col < g.shape.Cols
}

// CellRect returns the rectangle of c. The last row and column absorb the
// remainder of the integer division so the cells tile the work area exactly.
// Indices outside the shape are clamped.
func (g *Grid) CellRect(c CellIndex) geom.Rect {
	c = g.clamp(c)
	x := g.work.X + c.Col*g.cell.W
	y := g.work.Y + c.Row*g.cell.H
	w, h := g.cell.W, g.cell.H
	if c.Col == g.shape.Cols-1 {
		w = g.work.Right() - x
	}
	if c.Row == g.shape.Rows-1 {
		h = g.work.Bottom() - y
	}
	return geom.NewRect(x, y, w, h)
}

// BoundingRect returns the union of every cell in the sub-grid spanned by a
// and b. Argument order does not matter.
func (g *Grid) BoundingRect(a, b CellIndex) geom.Rect {
	return g.CellRect(a).Union(g.CellRect(b))
}

// Cells returns every index in row-major order.
func (g *Grid) Cells() []CellIndex {
	out := make([]CellIndex, 0, g.shape.Len())
	for r := 0; r < g.shape.Rows; r++ {
		for c := 0; c < g.shape.Cols; c++ {
			out = append(out, CellIndex{Row: r, Col: c})
		}
	}
	return out
}

// ColumnLines returns the x coordinates of every vertical grid line,
// including both work-area edges.
func (g *Grid) ColumnLines() []int {
	lines := make([]int, 0, g.shape.Cols+1)
	for c := 0; c < g.shape.Cols; c++ {
		lines = append(lines, g.work.X+c*g.cell.W)
	}
	return append(lines, g.work.Right())
}

// RowLines returns the y coordinates of every horizontal grid line,
// including both work-area edges.
func (g *Grid) RowLines() []int {
	lines := make([]int, 0, g.shape.Rows+1)
	for r := 0; r < g.shape.Rows; r++ {
		lines = append(lines, g.work.Y+r*g.cell.H)
	}
	return append(lines, g.work.Bottom())
}

func (g *Grid) clamp(c CellIndex) CellIndex {
	c.Row = max(0, min(c.Row, g.shape.Rows-1))
	c.Col = max(0, min(c.Col, g.shape.Cols-1))
	return c
}
