package ui

import (
	"fmt"
	"time"

	"gridsnap/config"
)

// FormatRelativeTime formats t relative to now.
// Examples: "just now", "2m ago", "3h ago", "5d ago", "2mo ago", "1y ago"
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(diff.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(diff.Hours()/(24*365)))
	}
}

// LastPlaced describes the previous placement recorded in state, shown on
// the idle status line.
func LastPlaced(s *config.State, now time.Time) Result {
	if s == nil || s.LastPlacement == nil {
		return Result{}
	}
	p := s.LastPlacement
	return Result{
		Kind: ResultNone,
		Message: fmt.Sprintf("last: %s on %s · %s",
			p.Rect, p.Monitor.Short(), FormatRelativeTime(s.UpdatedAt, now)),
	}
}
