// Package inspect dumps the overlay's state as JSON so scripts and tests can
// follow a session without reading the terminal.
package inspect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// EnvVar turns inspection on. "1" writes to DefaultFile in the temp
// directory; any other non-empty value is taken as the output path.
const EnvVar = "GRIDSNAP_INSPECT"

const DefaultFile = "gridsnap-inspect.json"

// Introspectable is implemented by components that can report their state.
type Introspectable interface {
	InspectNode() *Node
}

var target = sync.OnceValue(func() string {
	switch v := os.Getenv(EnvVar); v {
	case "", "0":
		return ""
	case "1":
		return filepath.Join(os.TempDir(), DefaultFile)
	default:
		return v
	}
})

// IsEnabled reports whether snapshots are written.
func IsEnabled() bool {
	return target() != ""
}

// GetInspectFile returns the output path, or "" when inspection is off.
func GetInspectFile() string {
	return target()
}

// WriteSnapshot writes snapshot to the inspection file when enabled.
func WriteSnapshot(snapshot *Snapshot) error {
	if !IsEnabled() {
		return nil
	}
	return WriteSnapshotToPath(snapshot, target())
}

// WriteSnapshotToPath replaces the file at path with snapshot. Readers never
// see a partial file.
func WriteSnapshotToPath(snapshot *Snapshot, path string) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
