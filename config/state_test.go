package config

import (
	"os"
	"path/filepath"
	"testing"

	"gridsnap/geom"
	"gridsnap/placement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	withHome(t)

	state := LoadState()
	assert.Equal(t, DefaultState(), state)

	p := placement.Placement{Monitor: "hw:DISPLAY1", Rect: geom.NewRect(0, 0, 960, 540)}
	require.NoError(t, state.RecordPlacement(p))

	loaded := LoadState()
	assert.Equal(t, p.Monitor, loaded.LastMonitor)
	require.NotNil(t, loaded.LastPlacement)
	assert.Equal(t, p, *loaded.LastPlacement)
	assert.Equal(t, 1, loaded.Placements)
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestStateCorruptFallsBack(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".gridsnap")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("[]"), 0644))

	assert.Equal(t, DefaultState(), LoadState())
}

func TestResetState(t *testing.T) {
	home := withHome(t)
	require.NoError(t, SaveState(DefaultState()))
	assert.FileExists(t, filepath.Join(home, ".gridsnap", StateFileName))

	require.NoError(t, ResetState())
	assert.NoFileExists(t, filepath.Join(home, ".gridsnap", StateFileName))
	assert.NoError(t, ResetState(), "resetting twice is fine")
}

func TestFileLock(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, StateFileName)

	lock := NewFileLock(path)
	require.NoError(t, lock.Lock())
	assert.ErrorIs(t, lock.Lock(), errLockHeld)
	require.NoError(t, lock.Unlock())
	require.NoError(t, lock.Unlock(), "unlocking twice is a no-op")

	a, b := NewFileLock(path), NewFileLock(path)
	require.NoError(t, a.RLock())
	require.NoError(t, b.RLock(), "shared locks coexist")
	require.NoError(t, a.Unlock())
	require.NoError(t, b.Unlock())

	assert.FileExists(t, filepath.Join(dir, lockFileName))
}
