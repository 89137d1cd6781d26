//go:build !windows

package platform

// Native returns ErrUnsupported: only Windows has a native backend.
func Native() (Backend, error) {
	return nil, ErrUnsupported
}
