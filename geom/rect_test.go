package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	assert.Equal(t, 10, r.Left())
	assert.Equal(t, 20, r.Top())
	assert.Equal(t, 110, r.Right())
	assert.Equal(t, 70, r.Bottom())
	assert.Equal(t, 5000, r.Area())
	assert.Equal(t, r, FromEdges(10, 20, 110, 70))
}

func TestRectNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already normal", NewRect(0, 0, 10, 10), NewRect(0, 0, 10, 10)},
		{"negative width", NewRect(10, 0, -10, 5), NewRect(0, 0, 10, 5)},
		{"negative height", NewRect(0, 10, 5, -10), NewRect(0, 0, 5, 10)},
		{"both negative", NewRect(-5, -5, -10, -10), NewRect(-15, -15, 10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	assert.True(t, r.Contains(Point{15, 15}))
	assert.True(t, r.Contains(Point{10, 10}), "top-left corner is inclusive")
	assert.False(t, r.Contains(Point{30, 30}), "bottom-right corner is exclusive")
	assert.False(t, r.Contains(Point{5, 5}))

	neg := NewRect(-1920, 0, 1920, 1080)
	assert.True(t, neg.Contains(Point{-1, 0}))
	assert.False(t, neg.Contains(Point{0, 0}))

	assert.True(t, r.ContainsRect(NewRect(12, 12, 5, 5)))
	assert.False(t, r.ContainsRect(NewRect(25, 25, 10, 10)))
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 20, 20)
	got, ok := a.Intersect(NewRect(10, 10, 20, 20))
	assert.True(t, ok)
	assert.Equal(t, NewRect(10, 10, 10, 10), got)

	_, ok = a.Intersect(NewRect(30, 30, 10, 10))
	assert.False(t, ok)

	_, ok = a.Intersect(NewRect(20, 0, 10, 10))
	assert.False(t, ok, "touching rectangles do not intersect")
}

func TestRectUnion(t *testing.T) {
	assert.Equal(t, NewRect(0, 0, 30, 30), NewRect(0, 0, 10, 10).Union(NewRect(20, 20, 10, 10)))
	assert.Equal(t, NewRect(1280, 0, 1280, 540), NewRect(1280, 0, 640, 540).Union(NewRect(1920, 0, 640, 540)))
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 100, 100)
	assert.Equal(t, NewRect(10, 5, 80, 90), r.Inset(10, 5, 10, 5))
	assert.Equal(t, NewRect(-10, 0, 120, 100), r.Inset(-10, 0, -10, 0))
}

func TestRectOverlap(t *testing.T) {
	a := NewRect(0, 0, 1920, 1080)
	b := NewRect(1920, 500, 1920, 1080)
	assert.Equal(t, 580, a.VerticalOverlap(b))
	assert.Equal(t, 0, a.HorizontalOverlap(b))
	assert.Equal(t, 0, a.VerticalOverlap(NewRect(0, 1080, 10, 10)))
}
