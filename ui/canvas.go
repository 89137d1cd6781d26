package ui

import (
	"strings"

	"gridsnap/geom"

	"github.com/mattn/go-runewidth"
)

type cellClass uint8

const (
	classBlank cellClass = iota
	classBorder
	classActiveBorder
	classLine
	classKey
	classKeyDim
	classStarted
	className
)

// wideTail marks the cell covered by the second half of a wide rune.
const wideTail = rune(0)

// canvas is a fixed-size grid of terminal cells, each with a rune and a
// style class. Writes outside the canvas are dropped.
type canvas struct {
	w, h    int
	runes   [][]rune
	classes [][]cellClass
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.runes = make([][]rune, c.h)
	c.classes = make([][]cellClass, c.h)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", c.w))
		c.classes[y] = make([]cellClass, c.w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, cl cellClass) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.classes[y][x] = cl
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return ' '
	}
	return c.runes[y][x]
}

// fill paints the inside of r with blanks of class cl.
func (c *canvas) fill(r geom.Rect, cl cellClass) {
	for y := r.Top(); y < r.Bottom(); y++ {
		for x := r.Left(); x < r.Right(); x++ {
			c.set(x, y, ' ', cl)
		}
	}
}

// box draws the outline of r. The right and bottom edges are drawn on the
// last column and row inside r.
func (c *canvas) box(r geom.Rect, active bool) {
	if r.W < 2 || r.H < 2 {
		return
	}
	tl, tr, bl, br, h, v, cl := runeCornerTL, runeCornerTR, runeCornerBL, runeCornerBR, runeH, runeV, classBorder
	if active {
		tl, tr, bl, br, h, v, cl = runeActiveTL, runeActiveTR, runeActiveBL, runeActiveBR, runeActiveH, runeActiveV, classActiveBorder
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, h, cl)
		c.set(x, bottom, h, cl)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, v, cl)
		c.set(right, y, v, cl)
	}
	c.set(r.X, r.Y, tl, cl)
	c.set(right, r.Y, tr, cl)
	c.set(r.X, bottom, bl, cl)
	c.set(right, bottom, br, cl)
}

func (c *canvas) vline(x, top, bottom int) {
	for y := top; y < bottom; y++ {
		if c.at(x, y) == runeLineH {
			c.set(x, y, runeCross, classLine)
			continue
		}
		c.set(x, y, runeLineV, classLine)
	}
}

func (c *canvas) hline(y, left, right int) {
	for x := left; x < right; x++ {
		if c.at(x, y) == runeLineV {
			c.set(x, y, runeCross, classLine)
			continue
		}
		c.set(x, y, runeLineH, classLine)
	}
}

// text writes s starting at x, stopping at limit. Wide runes take two cells.
func (c *canvas) text(x, y, limit int, s string, cl cellClass) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		c.set(x, y, r, cl)
		if w == 2 {
			c.set(x+1, y, wideTail, cl)
		}
		x += w
	}
}

// centered writes s in the middle of r.
func (c *canvas) centered(r geom.Rect, s string, cl cellClass) {
	w := runewidth.StringWidth(s)
	if w > r.W || r.H <= 0 {
		return
	}
	c.text(r.X+(r.W-w)/2, r.Y+(r.H-1)/2, r.Right(), s, cl)
}

// render joins the canvas into lines, styling runs of equal class.
func (c *canvas) render() string {
	lines := make([]string, c.h)
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		var line strings.Builder
		runClass := classBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := canvasStyles[runClass]; ok {
				line.WriteString(st.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			r := c.runes[y][x]
			if r == wideTail {
				continue
			}
			if cl := c.classes[y][x]; cl != runClass {
				flush()
				runClass = cl
			}
			run.WriteRune(r)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}
