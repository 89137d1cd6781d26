package grid

import (
	"errors"
	"testing"

	"gridsnap/geom"
	"gridsnap/monitor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidShape(t *testing.T) {
	work := geom.NewRect(0, 0, 7680, 4320)
	for _, s := range []Shape{{0, 1}, {1, 0}, {11, 1}, {1, 4}} {
		_, err := New(s, work)
		assert.ErrorIs(t, err, ErrInvalidShape, s.String())
	}
}

func TestNewCellTooSmall(t *testing.T) {
	// 600x400 cannot hold a 5x3 grid.
	_, err := New(Shape{Cols: 5, Rows: 3}, geom.NewRect(0, 0, 600, 400))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCellTooSmall)

	var tooSmall *CellTooSmallError
	require.True(t, errors.As(err, &tooSmall))
	assert.Equal(t, geom.Size{W: 120, H: 133}, tooSmall.Actual)
	assert.Equal(t, geom.Size{W: 480, H: 360}, tooSmall.Required)
}

func TestCellRect(t *testing.T) {
	g, err := New(Shape{Cols: 4, Rows: 2}, geom.NewRect(0, 0, 1920, 1080))
	require.NoError(t, err)

	assert.Equal(t, geom.NewRect(0, 0, 480, 540), g.CellRect(CellIndex{0, 0}))
	assert.Equal(t, geom.NewRect(1440, 540, 480, 540), g.CellRect(CellIndex{1, 3}))
	assert.Equal(t, geom.Size{W: 480, H: 540}, g.CellSize())
}

func TestCellRectAbsorbsRemainder(t *testing.T) {
	g, err := New(Shape{Cols: 3, Rows: 2}, geom.NewRect(-1921, 7, 1921, 1081))
	require.NoError(t, err)

	assert.Equal(t, geom.NewRect(-1921, 7, 640, 540), g.CellRect(CellIndex{0, 0}))
	assert.Equal(t, geom.NewRect(-641, 547, 641, 541), g.CellRect(CellIndex{1, 2}))
}

func TestCellsTileWorkArea(t *testing.T) {
	works := []geom.Rect{
		geom.NewRect(0, 0, 1920, 1080),
		geom.NewRect(-2560, -300, 2560, 1400),
		geom.NewRect(1920, 0, 1080, 1877),
		geom.NewRect(13, 17, 4999, 2161),
	}
	for _, work := range works {
		for cols := MinCols; cols <= MaxCols; cols++ {
			for rows := MinRows; rows <= MaxRows; rows++ {
				g, err := New(Shape{Cols: cols, Rows: rows}, work)
				if err != nil {
					continue
				}
				cells := g.Cells()
				require.Len(t, cells, cols*rows)

				area := 0
				union := g.CellRect(cells[0])
				for i, a := range cells {
					ra := g.CellRect(a)
					area += ra.Area()
					union = union.Union(ra)
					for _, b := range cells[i+1:] {
						_, overlap := ra.Intersect(g.CellRect(b))
						assert.False(t, overlap, "%s cells %s and %s overlap", g.Shape(), a, b)
					}
				}
				assert.Equal(t, work, union, "%s on %s", g.Shape(), work)
				assert.Equal(t, work.Area(), area, "%s on %s", g.Shape(), work)
			}
		}
	}
}

func TestBoundingRect(t *testing.T) {
	g, err := New(Shape{Cols: 4, Rows: 2}, geom.NewRect(0, 0, 1920, 1080))
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b CellIndex
		want geom.Rect
	}{
		{"single cell", CellIndex{0, 0}, CellIndex{0, 0}, geom.NewRect(0, 0, 480, 540)},
		{"two columns", CellIndex{0, 0}, CellIndex{1, 1}, geom.NewRect(0, 0, 960, 1080)},
		{"reversed", CellIndex{1, 1}, CellIndex{0, 0}, geom.NewRect(0, 0, 960, 1080)},
		{"anti diagonal", CellIndex{1, 0}, CellIndex{0, 3}, geom.NewRect(0, 0, 1920, 1080)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.BoundingRect(tt.a, tt.b))
			assert.Equal(t, g.BoundingRect(tt.b, tt.a), g.BoundingRect(tt.a, tt.b))
		})
	}
}

func TestGridLines(t *testing.T) {
	g, err := New(Shape{Cols: 3, Rows: 2}, geom.NewRect(1920, 0, 1920, 1080))
	require.NoError(t, err)
	assert.Equal(t, []int{1920, 2560, 3200, 3840}, g.ColumnLines())
	assert.Equal(t, []int{0, 540, 1080}, g.RowLines())
	assert.True(t, g.Contains(CellIndex{1, 2}))
	assert.False(t, g.Contains(CellIndex{2, 0}))
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("4x2")
	require.NoError(t, err)
	assert.Equal(t, Shape{Cols: 4, Rows: 2}, s)
	assert.Equal(t, "4x2", s.String())

	_, err = ParseShape("4x9")
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = ParseShape("wide")
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestFitShape(t *testing.T) {
	tests := []struct {
		name    string
		want    Shape
		work    geom.Rect
		expect  Shape
		wantErr error
	}{
		{"fits", Landscape, geom.NewRect(0, 0, 1920, 1080), Landscape, nil},
		{"clamped columns", Shape{Cols: 6, Rows: 2}, geom.NewRect(0, 0, 1920, 1080), Shape{Cols: 4, Rows: 2}, nil},
		{"clamped rows", Portrait, geom.NewRect(0, 0, 1080, 1000), Shape{Cols: 2, Rows: 2}, nil},
		{"nothing fits", Landscape, geom.NewRect(0, 0, 400, 300), Shape{}, ErrCellTooSmall},
		{"invalid", Shape{Cols: 20, Rows: 1}, geom.NewRect(0, 0, 1920, 1080), Shape{}, ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FitShape(tt.want, tt.work)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestDefaultShape(t *testing.T) {
	assert.Equal(t, Landscape, DefaultShape(geom.NewRect(0, 0, 1920, 1080)))
	assert.Equal(t, Portrait, DefaultShape(geom.NewRect(0, 0, 1080, 1920)))
}

func TestBuildSet(t *testing.T) {
	layout, err := monitor.NewLayout([]monitor.Descriptor{
		{ID: "a", Physical: geom.NewRect(0, 0, 1920, 1080), WorkArea: geom.NewRect(0, 0, 1920, 1040)},
		{ID: "b", Physical: geom.NewRect(1920, 0, 1080, 1920), WorkArea: geom.NewRect(1920, 0, 1080, 1920)},
	})
	require.NoError(t, err)

	set, err := BuildSet(layout, nil)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, Landscape, set["a"].Shape())
	assert.Equal(t, Portrait, set["b"].Shape())
	assert.Equal(t, geom.NewRect(0, 0, 1920, 1040), set["a"].WorkArea())

	_, err = BuildSet(layout, func(monitor.Descriptor) Shape { return Shape{Cols: 5, Rows: 3} })
	assert.ErrorIs(t, err, ErrCellTooSmall)
}
