package grid

import (
	"fmt"

	"gridsnap/monitor"
)

// Set holds one grid per monitor of a layout.
type Set map[monitor.ID]*Grid

// ShapeFunc chooses the shape for a monitor.
type ShapeFunc func(monitor.Descriptor) Shape

// DefaultShapes picks the orientation default for every monitor.
func DefaultShapes(d monitor.Descriptor) Shape {
	return DefaultShape(d.WorkArea)
}

// BuildSet builds a grid for every monitor in layout. Any monitor whose
// requested shape does not fit fails the whole set.
func BuildSet(layout *monitor.Layout, shapeFor ShapeFunc) (Set, error) {
	if shapeFor == nil {
		shapeFor = DefaultShapes
	}
	set := make(Set, layout.Len())
	for _, d := range layout.Ordered() {
		g, err := New(shapeFor(d), d.WorkArea)
		if err != nil {
			return nil, fmt.Errorf("monitor %s: %w", d.ID.Short(), err)
		}
		set[d.ID] = g
	}
	return set, nil
}
