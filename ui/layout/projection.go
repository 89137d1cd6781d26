package layout

import (
	"math"

	"gridsnap/geom"
)

// Projection maps virtual-desktop pixels onto terminal cells, preserving
// the desktop's aspect ratio and centring it in the canvas.
type Projection struct {
	Bounds   geom.Rect
	PxPerCol float64
	PxPerRow float64
	Offset   geom.Point
}

// Project fits bounds into a width x height canvas, keeping CanvasMargin
// cells free on every side when there is room for it.
func Project(bounds geom.Rect, width, height int) Projection {
	p := Projection{Bounds: bounds}
	margin := CanvasMargin
	if width <= 2*margin+2 || height <= 2*margin+2 {
		margin = 0
	}
	usableW := max(width-2*margin, 1)
	usableH := max(height-2*margin, 1)
	if bounds.Empty() {
		p.PxPerCol, p.PxPerRow = 1, CellAspect
		p.Offset = geom.Point{X: margin, Y: margin}
		return p
	}

	p.PxPerCol = math.Max(float64(bounds.W)/float64(usableW), float64(bounds.H)/(float64(usableH)*CellAspect))
	p.PxPerRow = p.PxPerCol * CellAspect

	usedW := int(math.Round(float64(bounds.W) / p.PxPerCol))
	usedH := int(math.Round(float64(bounds.H) / p.PxPerRow))
	p.Offset = geom.Point{
		X: margin + clamp((usableW-usedW)/2, 0, usableW),
		Y: margin + clamp((usableH-usedH)/2, 0, usableH),
	}
	return p
}

// Rect projects a virtual-desktop rectangle to cell coordinates. Shared
// edges in pixels stay shared in cells.
func (p Projection) Rect(r geom.Rect) geom.Rect {
	return geom.FromEdges(
		p.col(r.Left()), p.row(r.Top()),
		p.col(r.Right()), p.row(r.Bottom()),
	)
}

func (p Projection) col(x int) int {
	return p.Offset.X + int(math.Round(float64(x-p.Bounds.X)/p.PxPerCol))
}

func (p Projection) row(y int) int {
	return p.Offset.Y + int(math.Round(float64(y-p.Bounds.Y)/p.PxPerRow))
}
