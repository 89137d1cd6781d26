// Package harness drives a Bubble Tea model in tests: key presses, resizes
// and the asynchronous messages its commands produce.
package harness

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultWait bounds how long Deliver waits for an asynchronous command.
const DefaultWait = 2 * time.Second

// Harness wraps a tea.Model for testing
type Harness struct {
	t     *testing.T
	model tea.Model
}

// New wraps model and sends it an initial window size.
func New(t *testing.T, model tea.Model, width, height int) *Harness {
	h := &Harness{t: t, model: model}
	h.Resize(width, height)
	return h
}

// SendMsg sends a tea.Msg to the model and updates it
func (h *Harness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	return cmd
}

// SendSpecialKey sends a special key (Enter, Tab, etc.)
func (h *Harness) SendSpecialKey(keyType tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: keyType})
}

// Type sends every rune of s as its own key press.
func (h *Harness) Type(s string) {
	for _, r := range s {
		h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// Deliver runs cmd and feeds the message it produces back into the model.
// Batches are flattened and each command runs in its own goroutine; the
// first message to arrive is delivered. It fails the test when nothing
// arrives within DefaultWait.
func (h *Harness) Deliver(cmd tea.Cmd) tea.Cmd {
	h.t.Helper()
	msgs := make(chan tea.Msg, 16)
	n := start(cmd, msgs)
	if n == 0 {
		h.t.Fatal("no command to deliver")
	}
	select {
	case msg := <-msgs:
		return h.SendMsg(msg)
	case <-time.After(DefaultWait):
		h.t.Fatalf("no message within %s", DefaultWait)
		return nil
	}
}

func start(cmd tea.Cmd, out chan<- tea.Msg) int {
	if cmd == nil {
		return 0
	}
	n := 0
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	// Batches are only known once the command has run, so resolve the
	// first level synchronously when it returns quickly.
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				n += start(c, out)
			}
			return n
		}
		if msg != nil {
			out <- msg
		}
		return 1
	case <-time.After(50 * time.Millisecond):
		go func() {
			if msg := <-done; msg != nil {
				out <- msg
			}
		}()
		return 1
	}
}

// Resize simulates a terminal resize
func (h *Harness) Resize(width, height int) tea.Cmd {
	return h.SendMsg(tea.WindowSizeMsg{Width: width, Height: height})
}

// View returns the current rendered view
func (h *Harness) View() string {
	return h.model.View()
}

// CommonSizes contains common terminal sizes for testing
var CommonSizes = []TerminalSize{
	{Name: "minimal", Width: 36, Height: 10},
	{Name: "compact", Width: 60, Height: 16},
	{Name: "standard", Width: 80, Height: 24},
	{Name: "full", Width: 120, Height: 40},
	{Name: "wide", Width: 200, Height: 24},
	{Name: "tall", Width: 80, Height: 60},
}

// TerminalSize represents a terminal size for testing
type TerminalSize struct {
	Name   string
	Width  int
	Height int
}

// RunWithSizes runs a test function for each terminal size
func RunWithSizes(t *testing.T, sizes []TerminalSize, fn func(t *testing.T, size TerminalSize)) {
	for _, size := range sizes {
		t.Run(size.Name, func(t *testing.T) {
			fn(t, size)
		})
	}
}

// RunWithCommonSizes runs a test function for all common terminal sizes
func RunWithCommonSizes(t *testing.T, fn func(t *testing.T, size TerminalSize)) {
	RunWithSizes(t, CommonSizes, fn)
}
