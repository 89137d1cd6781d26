package platform

import (
	"errors"

	"gridsnap/log"
)

// Open returns the backend to use. A layout fixture always wins; otherwise
// the native backend is used, falling back to the default simulated desktop
// where none exists.
func Open(layoutFile string) (Backend, error) {
	if layoutFile != "" {
		return LoadFixture(layoutFile)
	}
	b, err := Native()
	if errors.Is(err, ErrUnsupported) {
		log.InfoLog.Printf("%v, using simulated desktop", err)
		return NewSimulated(DefaultFixture())
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
