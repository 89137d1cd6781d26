package platform

import (
	"fmt"
	"os"
	"sync"

	"gridsnap/geom"
	"gridsnap/monitor"
	"gridsnap/placement"

	"gopkg.in/yaml.v3"
)

// RectSpec is a rectangle in a fixture file.
type RectSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

func (r RectSpec) Rect() geom.Rect {
	return geom.NewRect(r.X, r.Y, r.W, r.H)
}

// MonitorSpec describes one monitor in a fixture.
type MonitorSpec struct {
	Name string `yaml:"name"`
	// Hardware is the device identity. Leave empty to exercise the
	// geometry-derived IDs.
	Hardware string    `yaml:"hardware,omitempty"`
	Physical RectSpec  `yaml:"physical"`
	WorkArea *RectSpec `yaml:"work_area,omitempty"`
	DPIScale float64   `yaml:"dpi_scale,omitempty"`
	Primary  bool      `yaml:"primary,omitempty"`
}

// WindowSpec describes the simulated active window.
type WindowSpec struct {
	Rect      RectSpec `yaml:"rect"`
	MinW      int      `yaml:"min_w,omitempty"`
	MinH      int      `yaml:"min_h,omitempty"`
	MaxW      int      `yaml:"max_w,omitempty"`
	MaxH      int      `yaml:"max_h,omitempty"`
	Resizable *bool    `yaml:"resizable,omitempty"`
}

// Fixture is the YAML document a simulated backend is built from.
type Fixture struct {
	Monitors []MonitorSpec `yaml:"monitors"`
	Window   *WindowSpec   `yaml:"window,omitempty"`
}

// DefaultFixture is two 1920x1080 monitors side by side with a taskbar on
// the primary.
func DefaultFixture() Fixture {
	return Fixture{
		Monitors: []MonitorSpec{
			{
				Name:     "DISPLAY1",
				Hardware: `\\.\DISPLAY1`,
				Physical: RectSpec{0, 0, 1920, 1080},
				WorkArea: &RectSpec{0, 0, 1920, 1040},
				DPIScale: 1,
				Primary:  true,
			},
			{
				Name:     "DISPLAY2",
				Hardware: `\\.\DISPLAY2`,
				Physical: RectSpec{1920, 0, 1920, 1080},
				DPIScale: 1.25,
			},
		},
		Window: &WindowSpec{Rect: RectSpec{200, 150, 1280, 720}},
	}
}

// Descriptors converts the fixture into monitor descriptors.
func (f Fixture) Descriptors() ([]monitor.Descriptor, error) {
	if len(f.Monitors) == 0 {
		return nil, monitor.ErrNoMonitors
	}
	out := make([]monitor.Descriptor, 0, len(f.Monitors))
	for i, m := range f.Monitors {
		phys := m.Physical.Rect()
		if phys.Empty() {
			return nil, fmt.Errorf("monitor %d (%s): empty physical rect", i, m.Name)
		}
		work := phys
		if m.WorkArea != nil {
			work = m.WorkArea.Rect()
			if !phys.ContainsRect(work) {
				return nil, fmt.Errorf("monitor %d (%s): work area %s outside %s", i, m.Name, work, phys)
			}
		}
		scale := m.DPIScale
		if scale <= 0 {
			scale = 1
		}
		out = append(out, monitor.Descriptor{
			ID:       monitor.DeriveID(m.Hardware, phys),
			Name:     m.Name,
			Physical: phys,
			WorkArea: work,
			DPIScale: scale,
			Primary:  m.Primary,
		})
	}
	return out, nil
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("failed to parse layout fixture: %w", err)
	}
	return f, nil
}

// Marshal encodes the fixture as YAML.
func (f Fixture) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}

// Simulated is an in-memory backend. It is used for tests, for the resolve
// command and on platforms without a native backend.
type Simulated struct {
	mu       sync.Mutex
	source   string
	monitors []monitor.Descriptor
	window   geom.Rect
	wc       placement.WindowConstraints
	hasWin   bool
	moves    []geom.Rect
}

// NewSimulated builds a backend from a fixture.
func NewSimulated(f Fixture) (*Simulated, error) {
	descs, err := f.Descriptors()
	if err != nil {
		return nil, err
	}
	s := &Simulated{monitors: descs}
	if w := f.Window; w != nil {
		s.hasWin = true
		s.window = w.Rect.Rect()
		s.wc = placement.WindowConstraints{
			MinW: w.MinW, MinH: w.MinH,
			MaxW: w.MaxW, MaxH: w.MaxH,
			Resizable: w.Resizable == nil || *w.Resizable,
			Current:   s.window.Size(),
		}
	}
	return s, nil
}

// LoadFixture reads a YAML fixture file into a simulated backend.
func LoadFixture(path string) (*Simulated, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout fixture: %w", err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, err
	}
	s, err := NewSimulated(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.source = path
	return s, nil
}

func (s *Simulated) Monitors() ([]monitor.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]monitor.Descriptor, len(s.monitors))
	copy(out, s.monitors)
	return out, nil
}

func (s *Simulated) ActiveWindow() (WindowHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasWin {
		return 0, ErrNoActiveWindow
	}
	return 1, nil
}

func (s *Simulated) Constraints(h WindowHandle) (placement.WindowConstraints, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasWin || h != 1 {
		return placement.WindowConstraints{}, ErrNoActiveWindow
	}
	wc := s.wc
	wc.Current = s.window.Size()
	return wc, nil
}

func (s *Simulated) MoveResize(h WindowHandle, r geom.Rect) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasWin || h != 1 {
		return ErrNoActiveWindow
	}
	s.window = r
	s.moves = append(s.moves, r)
	return nil
}

// Window returns the simulated window's current rectangle.
func (s *Simulated) Window() geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Moves returns every rectangle passed to MoveResize.
func (s *Simulated) Moves() []geom.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]geom.Rect, len(s.moves))
	copy(out, s.moves)
	return out
}

// SetMonitors replaces the simulated monitors, as a hot-plug would.
func (s *Simulated) SetMonitors(descs []monitor.Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitors = append([]monitor.Descriptor(nil), descs...)
}
