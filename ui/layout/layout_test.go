package layout

import (
	"testing"

	"gridsnap/geom"

	"github.com/stretchr/testify/assert"
)

func TestDetermineMode(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		want   LayoutMode
	}{
		{
			name:   "full mode - large terminal",
			width:  140,
			height: 50,
			want:   LayoutFull,
		},
		{
			name:   "standard mode - exact thresholds",
			width:  80,
			height: 24,
			want:   LayoutStandard,
		},
		{
			name:   "compact mode - small terminal",
			width:  60,
			height: 20,
			want:   LayoutCompact,
		},
		{
			name:   "exact minimum - should be compact",
			width:  40,
			height: 12,
			want:   LayoutCompact,
		},
		{
			name:   "minimal mode - below minimum width",
			width:  39,
			height: 30,
			want:   LayoutMinimal,
		},
		{
			name:   "minimal mode - below minimum height",
			width:  100,
			height: 11,
			want:   LayoutMinimal,
		},
		{
			name:   "wide but short",
			width:  200,
			height: 16,
			want:   LayoutCompact, // height is the restrictive dimension
		},
		{
			name:   "tall but narrow",
			width:  90,
			height: 60,
			want:   LayoutStandard, // width is the restrictive dimension
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineMode(tt.width, tt.height)
			assert.Equal(t, tt.want, got, "DetermineMode(%d, %d)", tt.width, tt.height)
		})
	}
}

func TestLayoutModeString(t *testing.T) {
	assert.Equal(t, "full", LayoutFull.String())
	assert.Equal(t, "standard", LayoutStandard.String())
	assert.Equal(t, "compact", LayoutCompact.String())
	assert.Equal(t, "minimal", LayoutMinimal.String())
	assert.Equal(t, "unknown", LayoutMode(42).String())
}

func TestComputeConstraints(t *testing.T) {
	tests := []struct {
		name             string
		width            int
		height           int
		wantMode         LayoutMode
		wantHelp         int
		wantHeader       int
		wantCanvasHeight int
		wantMinWarning   bool
	}{
		{
			name:             "full terminal",
			width:            120,
			height:           40,
			wantMode:         LayoutFull,
			wantHelp:         HelpFullHeight,
			wantHeader:       HeaderHeight,
			wantCanvasHeight: 40 - 1 - 1 - 4,
		},
		{
			name:             "standard terminal",
			width:            80,
			height:           24,
			wantMode:         LayoutStandard,
			wantHelp:         HelpShortHeight,
			wantHeader:       HeaderHeight,
			wantCanvasHeight: 21,
		},
		{
			name:             "minimal terminal keeps only the status line",
			width:            30,
			height:           10,
			wantMode:         LayoutMinimal,
			wantCanvasHeight: 9,
			wantMinWarning:   true,
		},
		{
			name:             "zero size",
			width:            0,
			height:           0,
			wantMode:         LayoutMinimal,
			wantCanvasHeight: 0,
			wantMinWarning:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComputeConstraints(tt.width, tt.height)
			assert.Equal(t, tt.wantMode, c.Mode)
			assert.Equal(t, tt.wantHelp, c.HelpHeight)
			assert.Equal(t, tt.wantHeader, c.HeaderHeight)
			assert.Equal(t, tt.wantCanvasHeight, c.CanvasHeight)
			assert.Equal(t, tt.wantMinWarning, c.ShowMinWarning)
			assert.Equal(t, tt.width, c.CanvasWidth)
			assert.LessOrEqual(t, c.HeaderHeight+c.CanvasHeight+c.StatusHeight+c.HelpHeight, max(tt.height, 0))
		})
	}
}

func TestComputeDegradation(t *testing.T) {
	d := ComputeDegradation(ComputeConstraints(140, 50))
	assert.False(t, d.HideMonitorNames)
	assert.False(t, d.HideHelp)
	assert.True(t, d.FullHelp)

	d = ComputeDegradation(ComputeConstraints(50, 14))
	assert.True(t, d.HideMonitorNames)
	assert.False(t, d.HideHelp)
	assert.False(t, d.FullHelp)

	d = ComputeDegradation(ComputeConstraints(20, 8))
	assert.True(t, d.HideHeader)
	assert.True(t, d.HideHelp)
	assert.True(t, d.ShowMinWarning)
}

func TestProject(t *testing.T) {
	t.Run("side by side monitors share an edge", func(t *testing.T) {
		bounds := geom.NewRect(0, 0, 3840, 1080)
		p := Project(bounds, 82, 22)

		left := p.Rect(geom.NewRect(0, 0, 1920, 1080))
		right := p.Rect(geom.NewRect(1920, 0, 1920, 1080))
		assert.Equal(t, geom.NewRect(1, 5, 40, 11), left)
		assert.Equal(t, geom.NewRect(41, 5, 40, 11), right)
		assert.Equal(t, left.Right(), right.Left())
	})

	t.Run("height bound desktop is centred horizontally", func(t *testing.T) {
		p := Project(geom.NewRect(0, 0, 1920, 1080), 82, 22)
		assert.Equal(t, geom.NewRect(5, 1, 71, 20), p.Rect(geom.NewRect(0, 0, 1920, 1080)))
	})

	t.Run("negative origin", func(t *testing.T) {
		bounds := geom.NewRect(-1920, 0, 3840, 1080)
		p := Project(bounds, 82, 22)
		assert.Equal(t, geom.NewRect(1, 5, 40, 11), p.Rect(geom.NewRect(-1920, 0, 1920, 1080)))
	})

	t.Run("projection stays inside the canvas", func(t *testing.T) {
		sizes := [][2]int{{40, 12}, {80, 24}, {200, 50}, {3, 3}, {1, 1}}
		desktops := []geom.Rect{
			geom.NewRect(0, 0, 1920, 1080),
			geom.NewRect(0, -1080, 2560, 2520),
			geom.NewRect(0, 0, 7680, 1440),
		}
		for _, sz := range sizes {
			for _, b := range desktops {
				p := Project(b, sz[0], sz[1])
				r := p.Rect(b)
				assert.GreaterOrEqual(t, r.X, 0)
				assert.GreaterOrEqual(t, r.Y, 0)
				assert.LessOrEqual(t, r.Right(), sz[0], "%v in %dx%d", b, sz[0], sz[1])
				assert.LessOrEqual(t, r.Bottom(), sz[1], "%v in %dx%d", b, sz[0], sz[1])
			}
		}
	})

	t.Run("empty bounds", func(t *testing.T) {
		p := Project(geom.Rect{}, 40, 12)
		assert.Equal(t, 1.0, p.PxPerCol)
	})
}
