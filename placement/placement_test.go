package placement

import (
	"fmt"
	"testing"

	"gridsnap/geom"
	"gridsnap/grid"
	"gridsnap/keys"
	"gridsnap/monitor"
	"gridsnap/selection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	layout *monitor.Layout
	grids  grid.Set
}

func newFixture(t *testing.T, shape grid.Shape, descs ...monitor.Descriptor) fixture {
	t.Helper()
	layout, err := monitor.NewLayout(descs)
	require.NoError(t, err)
	grids, err := grid.BuildSet(layout, func(monitor.Descriptor) grid.Shape { return shape })
	require.NoError(t, err)
	return fixture{layout: layout, grids: grids}
}

func mon(id string, r geom.Rect) monitor.Descriptor {
	return monitor.Descriptor{ID: monitor.ID(id), Physical: r, WorkArea: r, DPIScale: 1}
}

// run feeds a key sequence through a machine. Keys resolve against the
// monitor named before each key.
func (f fixture) run(t *testing.T, steps ...string) selection.Outcome {
	t.Helper()
	m := selection.NewMachine(f.layout, f.grids)
	m.Open()
	var out selection.Outcome
	for i := 0; i+1 < len(steps); i += 2 {
		r := []rune(steps[i+1])[0]
		out = m.Handle(selection.KeyEvent{Key: r, Monitor: monitor.ID(steps[i])})
	}
	return out
}

func TestResolveScenarios(t *testing.T) {
	single := newFixture(t, grid.Shape{Cols: 4, Rows: 2}, mon("A", geom.NewRect(0, 0, 1920, 1080)))

	t.Run("two cells", func(t *testing.T) {
		out := single.run(t, "A", "q", "A", "s")
		require.Equal(t, selection.Done, out.Kind)
		p, err := Resolve(out.Selection, single.layout, single.grids)
		require.NoError(t, err)
		assert.Equal(t, Placement{Monitor: "A", Rect: geom.NewRect(0, 0, 960, 1080)}, p)
	})

	t.Run("two cells in one row", func(t *testing.T) {
		out := single.run(t, "A", "q", "A", "w")
		require.Equal(t, selection.Done, out.Kind)
		p, err := Resolve(out.Selection, single.layout, single.grids)
		require.NoError(t, err)
		assert.Equal(t, geom.NewRect(0, 0, 960, 540), p.Rect)
	})

	t.Run("single cell", func(t *testing.T) {
		out := single.run(t, "A", "q", "A", "q")
		p, err := Resolve(out.Selection, single.layout, single.grids)
		require.NoError(t, err)
		assert.Equal(t, geom.NewRect(0, 0, 480, 540), p.Rect)
	})

	t.Run("reverse order", func(t *testing.T) {
		out := single.run(t, "A", "s", "A", "q")
		p, err := Resolve(out.Selection, single.layout, single.grids)
		require.NoError(t, err)
		assert.Equal(t, geom.NewRect(0, 0, 960, 1080), p.Rect)
	})

	dual := newFixture(t, grid.Landscape,
		mon("L", geom.NewRect(0, 0, 1920, 1080)),
		mon("R", geom.NewRect(1920, 0, 1920, 1080)),
	)

	t.Run("across adjacent monitors", func(t *testing.T) {
		out := dual.run(t, "L", "e", "R", "q")
		require.Equal(t, selection.Done, out.Kind)
		p, err := Resolve(out.Selection, dual.layout, dual.grids)
		require.NoError(t, err)
		assert.Equal(t, Placement{Monitor: "L", Rect: geom.NewRect(1280, 0, 1280, 540)}, p)
	})

	t.Run("across adjacent monitors right to left", func(t *testing.T) {
		out := dual.run(t, "R", "a", "L", "d")
		p, err := Resolve(out.Selection, dual.layout, dual.grids)
		require.NoError(t, err)
		assert.Equal(t, Placement{Monitor: "R", Rect: geom.NewRect(1280, 540, 1280, 540)}, p)
	})

	stacked := newFixture(t, grid.Landscape,
		mon("A", geom.NewRect(0, 0, 1920, 1080)),
		mon("C", geom.NewRect(0, 1080, 1920, 1080)),
	)

	t.Run("vertically stacked monitors", func(t *testing.T) {
		out := stacked.run(t, "A", "q", "C", "q")
		require.Equal(t, selection.Done, out.Kind)
		_, err := Resolve(out.Selection, stacked.layout, stacked.grids)
		assert.ErrorIs(t, err, ErrNotAdjacent)
	})
}

func TestResolveIncomplete(t *testing.T) {
	f := newFixture(t, grid.Landscape, mon("A", geom.NewRect(0, 0, 1920, 1080)))
	_, err := Resolve(selection.Selection{}, f.layout, f.grids)
	assert.ErrorIs(t, err, ErrIncompleteSelection)

	_, err = Resolve(selection.Begin("A", grid.CellIndex{}), f.layout, f.grids)
	assert.ErrorIs(t, err, ErrIncompleteSelection)

	sel := selection.Begin("X", grid.CellIndex{}).Complete("X", grid.CellIndex{})
	_, err = Resolve(sel, f.layout, f.grids)
	assert.ErrorIs(t, err, ErrUnknownMonitor)
}

func TestResolveDifferentHeights(t *testing.T) {
	f := newFixture(t, grid.Landscape,
		mon("big", geom.NewRect(0, 0, 2560, 1440)),
		mon("small", geom.NewRect(2560, 360, 1920, 1080)),
	)
	sel := selection.Begin("big", grid.CellIndex{Row: 1, Col: 2}).
		Complete("small", grid.CellIndex{Row: 1, Col: 0})
	p, err := Resolve(sel, f.layout, f.grids)
	require.NoError(t, err)
	// big row 1 spans 720..1440, small row 1 spans 900..1440.
	assert.Equal(t, geom.FromEdges(1706, 720, 3200, 1440), p.Rect)
}

func TestSnapEdges(t *testing.T) {
	f := newFixture(t, grid.Shape{Cols: 4, Rows: 2}, mon("A", geom.NewRect(0, 0, 1920, 1080)))
	e := Engine{Layout: f.layout, Grids: f.grids}

	assert.Equal(t, geom.NewRect(0, 0, 1920, 1080), e.Snap(geom.NewRect(1, 1, 1918, 1078), "A"))
	assert.Equal(t, geom.NewRect(0, 0, 1920, 1080), e.Snap(geom.NewRect(-2, -1, 1923, 1082), "A"))
	assert.Equal(t, geom.NewRect(5, 0, 955, 540), e.Snap(geom.NewRect(5, 0, 955, 540), "A"),
		"edges beyond epsilon stay put")
	assert.Equal(t, geom.NewRect(5, 5, 10, 10), e.Snap(geom.NewRect(5, 5, 10, 10), "unknown"))
}

func TestSnapGaps(t *testing.T) {
	f := newFixture(t, grid.Shape{Cols: 4, Rows: 2}, mon("A", geom.NewRect(0, 0, 1920, 1080)))
	cell := geom.NewRect(0, 0, 960, 540)

	tests := []struct {
		name string
		gaps Gaps
		want geom.Rect
	}{
		{"disabled", Gaps{SizePx: 10, ScreenEdges: true, BetweenCells: true}, cell},
		{"both flags", Gaps{Enabled: true, SizePx: 10, ScreenEdges: true, BetweenCells: true}, geom.FromEdges(10, 10, 950, 530)},
		{"screen edges only", Gaps{Enabled: true, SizePx: 10, ScreenEdges: true}, geom.FromEdges(10, 10, 960, 540)},
		{"between cells only", Gaps{Enabled: true, SizePx: 10, BetweenCells: true}, geom.FromEdges(0, 0, 950, 530)},
		{"no flags", Gaps{Enabled: true, SizePx: 10}, cell},
		{"zero size", Gaps{Enabled: true, ScreenEdges: true, BetweenCells: true}, cell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Engine{Layout: f.layout, Grids: f.grids, Gaps: tt.gaps}
			got := e.Snap(cell, "A")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, e.Snap(got, "A"))
		})
	}
}

func TestSnapGapFloor(t *testing.T) {
	f := newFixture(t, grid.Shape{Cols: 4, Rows: 2}, mon("A", geom.NewRect(0, 0, 1920, 1080)))
	e := Engine{Layout: f.layout, Grids: f.grids, Gaps: Gaps{Enabled: true, SizePx: 10, ScreenEdges: true, BetweenCells: true}}

	got := e.Snap(geom.NewRect(0, 0, 55, 1080), "A")
	assert.Equal(t, geom.FromEdges(5, 10, 55, 1070), got)
	assert.Equal(t, MinPlacementSize, got.W)
	assert.Equal(t, got, e.Snap(got, "A"))

	small := geom.NewRect(0, 0, 40, 1080)
	got = e.Snap(small, "A")
	assert.Equal(t, 40, got.W, "a rectangle below the floor is never grown or shrunk")
}

func TestFitGaps(t *testing.T) {
	a, b := fitGaps(100, 10, 10)
	assert.Equal(t, []int{10, 10}, []int{a, b})
	a, b = fitGaps(60, 10, 10)
	assert.Equal(t, []int{5, 5}, []int{a, b})
	a, b = fitGaps(60, 20, 0)
	assert.Equal(t, []int{10, 0}, []int{a, b})
	a, b = fitGaps(30, 10, 10)
	assert.Equal(t, []int{0, 0}, []int{a, b})
}

func TestSnapIdempotent(t *testing.T) {
	f := newFixture(t, grid.Shape{Cols: 4, Rows: 2},
		mon("L", geom.NewRect(0, 0, 1920, 1080)),
		mon("R", geom.NewRect(1920, 0, 1920, 1080)),
	)
	xs := []int{-5, 0, 1, 3, 12, 470, 480, 485, 492, 958, 960, 963, 1440, 1915, 1918, 1920, 1925, 1932, 2400, 3838, 3840}
	ys := []int{-3, 0, 2, 9, 60, 530, 540, 552, 1000, 1078, 1080, 1090}
	configs := []Gaps{
		{},
		{Enabled: true, SizePx: 10, ScreenEdges: true, BetweenCells: true},
		{Enabled: true, SizePx: 10, ScreenEdges: true},
		{Enabled: true, SizePx: 10, BetweenCells: true},
		{Enabled: true, SizePx: 50, ScreenEdges: true, BetweenCells: true},
		{Enabled: true, SizePx: 1, ScreenEdges: true, BetweenCells: true},
	}

	for _, gaps := range configs {
		e := Engine{Layout: f.layout, Grids: f.grids, Gaps: gaps}
		for _, id := range []monitor.ID{"L", "R"} {
			for i, x0 := range xs {
				for _, x1 := range xs[i+1:] {
					for j, y0 := range ys {
						for _, y1 := range ys[j+1:] {
							r := geom.FromEdges(x0, y0, x1, y1)
							once := e.Snap(r, id)
							if !assert.Equal(t, once, e.Snap(once, id), fmt.Sprintf("%+v %s %s", gaps, id, r)) {
								return
							}
						}
					}
				}
			}
		}
	}
}

// mixedMonitors are side-by-side monitors whose grid lines do not line up:
// a taskbar shortens the first work area and the second is smaller.
func mixedMonitors() map[string][]monitor.Descriptor {
	primary := monitor.Descriptor{
		ID:       "D1",
		Physical: geom.NewRect(0, 0, 1920, 1080),
		WorkArea: geom.NewRect(0, 0, 1920, 1040),
		DPIScale: 1,
		Primary:  true,
	}
	return map[string][]monitor.Descriptor{
		"taskbar on the primary": {primary, {
			ID:       "D2",
			Physical: geom.NewRect(1920, 0, 1920, 1080),
			WorkArea: geom.NewRect(1920, 0, 1920, 1080),
			DPIScale: 1.25,
		}},
		"smaller secondary": {primary, {
			ID:       "D2",
			Physical: geom.NewRect(1920, 0, 1680, 1050),
			WorkArea: geom.NewRect(1920, 0, 1680, 1010),
			DPIScale: 1,
		}},
	}
}

func TestSnapMixedMonitors(t *testing.T) {
	gaps := Gaps{Enabled: true, SizePx: 30, ScreenEdges: true, BetweenCells: true}

	t.Run("cell on the secondary", func(t *testing.T) {
		f := newFixture(t, grid.Landscape, mixedMonitors()["taskbar on the primary"]...)
		e := Engine{Layout: f.layout, Grids: f.grids, Gaps: gaps}
		out := f.run(t, "D2", "q", "D2", "q")
		require.Equal(t, selection.Done, out.Kind)

		p, err := e.Place(out.Selection)
		require.NoError(t, err)
		assert.Equal(t, geom.NewRect(1950, 30, 580, 480), p.Rect)
		assert.Equal(t, p.Rect, e.Snap(p.Rect, "D2"))
	})

	t.Run("cell on the primary", func(t *testing.T) {
		f := newFixture(t, grid.Landscape, mixedMonitors()["smaller secondary"]...)
		e := Engine{Layout: f.layout, Grids: f.grids, Gaps: Gaps{Enabled: true, SizePx: 13, ScreenEdges: true, BetweenCells: true}}
		once := e.Snap(geom.NewRect(0, 0, 640, 520), "D1")
		assert.Equal(t, geom.NewRect(13, 13, 614, 494), once)
		assert.Equal(t, once, e.Snap(once, "D1"))
	})

	t.Run("other monitors' lines are ignored", func(t *testing.T) {
		f := newFixture(t, grid.Landscape, mixedMonitors()["taskbar on the primary"]...)
		e := Engine{Layout: f.layout, Grids: f.grids, Gaps: gaps}
		// 520 is a row line of D1 only, so the top edge stays unattached.
		r := geom.FromEdges(1920, 518, 2560, 1080)
		want := geom.FromEdges(1950, 518, 2530, 1050)
		assert.Equal(t, want, e.Snap(r, "D2"))
		assert.Equal(t, want, e.Snap(want, "D2"))
	})
}

func TestPlaceIdempotentMixedMonitors(t *testing.T) {
	var configs []Gaps
	for _, size := range []int{1, 8, 13, 20, 30, 50} {
		configs = append(configs,
			Gaps{Enabled: true, SizePx: size, ScreenEdges: true, BetweenCells: true},
			Gaps{Enabled: true, SizePx: size, ScreenEdges: true},
			Gaps{Enabled: true, SizePx: size, BetweenCells: true},
		)
	}

	for name, descs := range mixedMonitors() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, grid.Landscape, descs...)
			ids := []monitor.ID{"D1", "D2"}
			for _, gaps := range configs {
				e := Engine{Layout: f.layout, Grids: f.grids, Gaps: gaps}
				for _, from := range ids {
					for _, to := range ids {
						for _, a := range f.grids[from].Cells() {
							for _, b := range f.grids[to].Cells() {
								sel := selection.Begin(from, a).Complete(to, b)
								p, err := e.Place(sel)
								require.NoError(t, err)
								again := e.Snap(p.Rect, sel.MonitorStart, sel.MonitorEnd)
								if !assert.Equal(t, p.Rect, again, fmt.Sprintf("%+v %s%s -> %s%s", gaps, from, a, to, b)) {
									return
								}
							}
						}
					}
				}
			}
		})
	}
}

func TestEnginePlace(t *testing.T) {
	f := newFixture(t, grid.Landscape,
		mon("L", geom.NewRect(0, 0, 1920, 1080)),
		mon("R", geom.NewRect(1920, 0, 1920, 1080)),
	)
	e := Engine{Layout: f.layout, Grids: f.grids, Gaps: Gaps{Enabled: true, SizePx: 8, ScreenEdges: true, BetweenCells: true}}

	start, err := keys.KeyToCell('e', grid.Landscape)
	require.NoError(t, err)
	end, err := keys.KeyToCell('q', grid.Landscape)
	require.NoError(t, err)

	p, err := e.Place(selection.Begin("L", start).Complete("R", end))
	require.NoError(t, err)
	assert.Equal(t, monitor.ID("L"), p.Monitor)
	assert.Equal(t, geom.FromEdges(1288, 8, 2552, 532), p.Rect)

	_, err = e.Place(selection.Selection{})
	assert.ErrorIs(t, err, ErrIncompleteSelection)
}

func TestGapsValidate(t *testing.T) {
	assert.NoError(t, Gaps{SizePx: 0}.Validate())
	assert.NoError(t, Gaps{SizePx: 50}.Validate())
	assert.ErrorIs(t, Gaps{SizePx: 51}.Validate(), ErrInvalidGap)
	assert.ErrorIs(t, Gaps{SizePx: -1}.Validate(), ErrInvalidGap)
}

func TestConstrain(t *testing.T) {
	r := geom.NewRect(100, 100, 960, 540)

	tests := []struct {
		name    string
		wc      WindowConstraints
		want    geom.Rect
		wantErr error
	}{
		{"unbounded", WindowConstraints{Resizable: true}, r, nil},
		{"minimum", WindowConstraints{Resizable: true, MinW: 1000, MinH: 600}, geom.NewRect(100, 100, 1000, 600), nil},
		{"maximum", WindowConstraints{Resizable: true, MaxW: 800, MaxH: 400}, geom.NewRect(100, 100, 800, 400), nil},
		{"fixed size matches", WindowConstraints{Current: geom.Size{W: 960, H: 540}}, r, nil},
		{"fixed size differs", WindowConstraints{Current: geom.Size{W: 640, H: 480}}, r, ErrNotResizable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Constrain(r, tt.wc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
