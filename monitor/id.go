package monitor

import (
	"fmt"
	"strings"

	"gridsnap/geom"

	"github.com/google/uuid"
)

// ID identifies a monitor across sessions. It is derived from hardware
// identity when the platform exposes one and from geometry otherwise; it is
// never an enumeration index.
type ID string

// geometryNamespace seeds the name-based UUIDs used for monitors without a
// hardware identity.
var geometryNamespace = uuid.MustParse("6f1c2a0e-94d4-4c59-9f57-2b8f0c3d7a11")

// DeriveID returns the stable identifier for a monitor. hardware is the
// platform's device identity (device path, EDID serial); pass "" when none is
// available and the ID falls back to a hash of resolution and position.
func DeriveID(hardware string, physical geom.Rect) ID {
	if hw := strings.TrimSpace(hardware); hw != "" {
		return ID("hw:" + hw)
	}
	key := fmt.Sprintf("%dx%d@%d,%d", physical.W, physical.H, physical.X, physical.Y)
	return ID("geo:" + uuid.NewSHA1(geometryNamespace, []byte(key)).String())
}

func (id ID) String() string {
	return string(id)
}

// Short returns a compact form for logs and overlay labels.
func (id ID) Short() string {
	s := string(id)
	if strings.HasPrefix(s, "geo:") && len(s) > 12 {
		return s[:12]
	}
	if len(s) > 24 {
		return s[:24]
	}
	return s
}
