package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gridsnap/log"
	"gridsnap/monitor"
	"gridsnap/placement"
)

const StateFileName = "state.json"

// State is what gridsnap remembers between runs.
type State struct {
	// LastMonitor is where the previous session ended; the next activation
	// opens there when it is still connected.
	LastMonitor monitor.ID `json:"last_monitor,omitempty"`
	// LastPlacement is the most recent successful placement.
	LastPlacement *placement.Placement `json:"last_placement,omitempty"`
	// Placements counts successful placements.
	Placements int       `json:"placements"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{}
}

func statePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState() *State {
	path, err := statePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.WarningLog.Printf("failed to create config directory: %v", err)
		return DefaultState()
	}

	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Stale data beats no data
	} else {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to get state file: %v", err)
		}
		return DefaultState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState()
	}
	return &state
}

// SaveState saves the state to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveState(state *State) error {
	path, err := statePath()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// RecordPlacement stores a successful placement and saves the state.
func (s *State) RecordPlacement(p placement.Placement) error {
	s.LastMonitor = p.Monitor
	s.LastPlacement = &p
	s.Placements++
	return SaveState(s)
}

// ResetState removes the state file.
func ResetState() error {
	path, err := statePath()
	if err != nil {
		return err
	}
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
