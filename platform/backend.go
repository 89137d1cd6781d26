// Package platform abstracts monitor enumeration and window placement.
package platform

import (
	"errors"

	"gridsnap/geom"
	"gridsnap/monitor"
	"gridsnap/placement"
)

var (
	// ErrUnsupported is returned by Native on platforms without a backend.
	ErrUnsupported = errors.New("no native window backend for this platform")

	// ErrNoActiveWindow is returned when no window has focus.
	ErrNoActiveWindow = errors.New("no active window")
)

// WindowHandle is a platform-neutral window identifier.
type WindowHandle uintptr

// Backend abstracts window-system operations across platforms.
type Backend interface {
	// Monitors enumerates the connected monitors, called once per session.
	Monitors() ([]monitor.Descriptor, error)
	ActiveWindow() (WindowHandle, error)
	Constraints(WindowHandle) (placement.WindowConstraints, error)
	MoveResize(WindowHandle, geom.Rect) error
}

// Name reports a short description of the backend for logs and the
// monitors command.
func Name(b Backend) string {
	switch b := b.(type) {
	case *Simulated:
		if b.source != "" {
			return "simulated (" + b.source + ")"
		}
		return "simulated"
	default:
		return "native"
	}
}
