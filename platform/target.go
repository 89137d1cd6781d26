package platform

// maxStackWalk bounds the search for a window below the overlay.
const maxStackWalk = 256

// windowStack is the part of the window manager pickTarget needs.
type windowStack interface {
	// below returns the next top-level window under w in z-order, or 0.
	below(w WindowHandle) WindowHandle
	// eligible reports whether w is a visible, restored application window.
	eligible(w WindowHandle) bool
}

// pickTarget returns the window a placement applies to. The overlay runs in
// a terminal that keeps the focus while keys are typed, so when the
// foreground window is that terminal the first eligible window beneath it is
// used instead.
func pickTarget(fg, self WindowHandle, s windowStack) (WindowHandle, error) {
	if fg == 0 {
		return 0, ErrNoActiveWindow
	}
	if self == 0 || fg != self {
		return fg, nil
	}
	w := fg
	for range maxStackWalk {
		if w = s.below(w); w == 0 {
			break
		}
		if w != self && s.eligible(w) {
			return w, nil
		}
	}
	return 0, ErrNoActiveWindow
}
