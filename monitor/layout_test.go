package monitor

import (
	"testing"

	"gridsnap/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func desc(id string, r geom.Rect) Descriptor {
	return Descriptor{ID: ID(id), Physical: r, WorkArea: r, DPIScale: 1}
}

func TestNewLayoutRejectsEmpty(t *testing.T) {
	_, err := NewLayout(nil)
	assert.ErrorIs(t, err, ErrNoMonitors)
}

func TestNewLayoutRejectsDuplicates(t *testing.T) {
	_, err := NewLayout([]Descriptor{
		desc("a", geom.NewRect(0, 0, 1920, 1080)),
		desc("a", geom.NewRect(1920, 0, 1920, 1080)),
	})
	assert.ErrorIs(t, err, ErrDuplicateMonitor)
}

func TestLayoutOrdering(t *testing.T) {
	l, err := NewLayout([]Descriptor{
		desc("right", geom.NewRect(1920, 0, 1920, 1080)),
		desc("left", geom.NewRect(-1920, 0, 1920, 1080)),
		desc("center", geom.NewRect(0, 0, 1920, 1080)),
	})
	require.NoError(t, err)

	var ids []ID
	for _, d := range l.Ordered() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []ID{"left", "center", "right"}, ids)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, geom.NewRect(-1920, 0, 5760, 1080), l.Bounds())
}

func TestLayoutNeighbors(t *testing.T) {
	tests := []struct {
		name      string
		descs     []Descriptor
		from      ID
		dir       Direction
		want      ID
		wantFound bool
	}{
		{
			name: "side by side right",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 1080)),
				desc("b", geom.NewRect(1920, 0, 1920, 1080)),
			},
			from: "a", dir: Right, want: "b", wantFound: true,
		},
		{
			name: "side by side left",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 1080)),
				desc("b", geom.NewRect(1920, 0, 1920, 1080)),
			},
			from: "b", dir: Left, want: "a", wantFound: true,
		},
		{
			name: "small gap within epsilon",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 1080)),
				desc("b", geom.NewRect(1923, 0, 1920, 1080)),
			},
			from: "a", dir: Right, want: "b", wantFound: true,
		},
		{
			name: "gap beyond epsilon",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 1080)),
				desc("b", geom.NewRect(1930, 0, 1920, 1080)),
			},
			from: "a", dir: Right, wantFound: false,
		},
		{
			name: "vertically stacked is not adjacent",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 1080)),
				desc("b", geom.NewRect(0, 1080, 1920, 1080)),
			},
			from: "a", dir: Down, wantFound: false,
		},
		{
			name: "no vertical overlap",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 1080)),
				desc("b", geom.NewRect(1920, 1080, 1920, 1080)),
			},
			from: "a", dir: Right, wantFound: false,
		},
		{
			name: "largest overlap wins",
			descs: []Descriptor{
				desc("a", geom.NewRect(0, 0, 1920, 2160)),
				desc("top", geom.NewRect(1920, -700, 1920, 1080)),
				desc("bottom", geom.NewRect(1920, 380, 1920, 1080)),
			},
			from: "a", dir: Right, want: "bottom", wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.descs)
			require.NoError(t, err)
			got, ok := l.Neighbor(tt.from, tt.dir)
			assert.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLayoutAreNeighbors(t *testing.T) {
	l, err := NewLayout([]Descriptor{
		desc("a", geom.NewRect(0, 0, 1920, 1080)),
		desc("b", geom.NewRect(1920, 0, 1920, 1080)),
		desc("c", geom.NewRect(0, 1080, 1920, 1080)),
	})
	require.NoError(t, err)
	assert.True(t, l.AreNeighbors("a", "b"))
	assert.True(t, l.AreNeighbors("b", "a"))
	assert.False(t, l.AreNeighbors("a", "c"))
}

func TestLayoutMonitorAtAndPrimary(t *testing.T) {
	a := desc("a", geom.NewRect(-1920, 0, 1920, 1080))
	b := desc("b", geom.NewRect(0, 0, 2560, 1440))
	b.Primary = true
	l, err := NewLayout([]Descriptor{a, b})
	require.NoError(t, err)

	id, ok := l.MonitorAt(geom.Point{X: -10, Y: 10})
	assert.True(t, ok)
	assert.Equal(t, ID("a"), id)

	_, ok = l.MonitorAt(geom.Point{X: -10, Y: 1200})
	assert.False(t, ok)

	assert.Equal(t, ID("b"), l.Primary().ID)

	a.Primary, b.Primary = false, false
	l, err = NewLayout([]Descriptor{b, a})
	require.NoError(t, err)
	assert.Equal(t, ID("a"), l.Primary().ID, "leftmost monitor is primary when none is flagged")
}

func TestLayoutRemoved(t *testing.T) {
	before, err := NewLayout([]Descriptor{
		desc("a", geom.NewRect(0, 0, 1920, 1080)),
		desc("b", geom.NewRect(1920, 0, 1920, 1080)),
	})
	require.NoError(t, err)
	after, err := NewLayout([]Descriptor{desc("a", geom.NewRect(0, 0, 1920, 1080))})
	require.NoError(t, err)

	assert.Equal(t, []ID{"b"}, before.Removed(after))
	assert.Empty(t, after.Removed(before))
}

func TestDeriveID(t *testing.T) {
	r := geom.NewRect(0, 0, 1920, 1080)
	assert.Equal(t, ID(`hw:\\.\DISPLAY1`), DeriveID(`\\.\DISPLAY1`, r))

	geo := DeriveID("", r)
	assert.Equal(t, geo, DeriveID("  ", r), "derivation is deterministic")
	assert.Contains(t, string(geo), "geo:")
	assert.NotEqual(t, geo, DeriveID("", geom.NewRect(1920, 0, 1920, 1080)))
	assert.Len(t, geo.Short(), 12)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, Right, Left.Opposite())
	assert.Equal(t, Up, Down.Opposite())
}

func TestLayoutToward(t *testing.T) {
	l, err := NewLayout([]Descriptor{
		desc("a", geom.NewRect(0, 0, 1920, 1080)),
		desc("b", geom.NewRect(1920, 0, 1920, 1080)),
		desc("c", geom.NewRect(0, 1080, 1920, 1080)),
	})
	require.NoError(t, err)

	id, ok := l.Toward("a", Right)
	assert.True(t, ok)
	assert.Equal(t, ID("b"), id)

	id, ok = l.Toward("a", Down)
	assert.True(t, ok)
	assert.Equal(t, ID("c"), id)

	id, ok = l.Toward("c", Up)
	assert.True(t, ok)
	assert.Equal(t, ID("a"), id)

	_, ok = l.Toward("b", Down)
	assert.False(t, ok)
	_, ok = l.Toward("a", Up)
	assert.False(t, ok)
	assert.False(t, l.AreNeighbors("a", "c"))
}
