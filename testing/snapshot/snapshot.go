// Package snapshot compares rendered overlay output against stored snapshots
// and inspects it with escape sequences removed.
package snapshot

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/ansi"
)

// Dir is where snapshots live relative to the package under test.
const Dir = "testdata/snapshots"

// UpdateEnv set to 1 rewrites snapshots instead of comparing against them.
const UpdateEnv = "UPDATE_SNAPSHOTS"

var (
	csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	// OSC sequences end with BEL or ST.
	oscPattern = regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)
)

// Snap compares plain renderings of the overlay.
type Snap struct {
	t      *testing.T
	dir    string
	update bool
}

func New(t *testing.T) *Snap {
	return &Snap{t: t, dir: Dir, update: os.Getenv(UpdateEnv) == "1"}
}

// WithDir stores snapshots under dir instead of Dir.
func (s *Snap) WithDir(dir string) *Snap {
	s.dir = dir
	return s
}

// Assert compares the plain form of actual with the stored snapshot
// name.snap.
func (s *Snap) Assert(name, actual string) {
	s.t.Helper()
	path := filepath.Join(s.dir, name+".snap")
	got := normalizeOutput(actual)

	if s.update {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			s.t.Fatalf("failed to create snapshot dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0644); err != nil {
			s.t.Fatalf("failed to write snapshot: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		s.t.Fatalf("no snapshot at %s, run with %s=1 to create it\n%s", path, UpdateEnv, got)
	case err != nil:
		s.t.Fatalf("failed to read snapshot: %v", err)
	case string(want) != got:
		s.t.Errorf("%s differs from its snapshot\n--- want\n%s\n--- got\n%s", name, want, got)
	}
}

// AssertContains checks that the plain output contains substr
func (s *Snap) AssertContains(actual, substr string) {
	s.t.Helper()
	normalized := normalizeOutput(actual)
	if !strings.Contains(normalized, substr) {
		s.t.Errorf("Output does not contain expected substring.\nExpected to contain: %q\nActual:\n%s", substr, normalized)
	}
}

// AssertNotContains checks that the plain output does not contain substr
func (s *Snap) AssertNotContains(actual, substr string) {
	s.t.Helper()
	normalized := normalizeOutput(actual)
	if strings.Contains(normalized, substr) {
		s.t.Errorf("Output unexpectedly contains substring: %q\nActual:\n%s", substr, normalized)
	}
}

// AssertFits checks that the output is no larger than width x height cells.
func (s *Snap) AssertFits(actual string, width, height int) {
	s.t.Helper()
	if w := Width(actual); w > width {
		s.t.Errorf("Output is %d cells wide, want at most %d\n%s", w, width, normalizeOutput(actual))
	}
	if h := Lines(actual); h > height {
		s.t.Errorf("Output is %d lines tall, want at most %d\n%s", h, height, normalizeOutput(actual))
	}
}

// normalizeOutput strips escape codes, line endings and trailing blanks.
func normalizeOutput(s string) string {
	s = StripANSI(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes CSI and OSC sequences.
func StripANSI(s string) string {
	s = csiPattern.ReplaceAllString(s, "")
	return oscPattern.ReplaceAllString(s, "")
}

// Lines returns the line count of the rendered output.
func Lines(s string) int {
	return len(strings.Split(s, "\n"))
}

// Width returns the widest line in terminal cells, ignoring escape codes.
func Width(s string) int {
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		maxWidth = max(maxWidth, ansi.PrintableRuneWidth(line))
	}
	return maxWidth
}

// Line returns line i of the plain output, or "" when out of range.
func Line(s string, i int) string {
	lines := strings.Split(normalizeOutput(s), "\n")
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
