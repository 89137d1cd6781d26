package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic Color Palette
// Designed for accessibility (colorblind-safe): the active monitor and the
// started cell also differ in shape, not only in color.

// Status colors
var (
	// StatusSuccess marks a placed window
	StatusSuccess = lipgloss.AdaptiveColor{Light: "#22C55E", Dark: "#22C55E"}

	// StatusWarning marks a cancelled session
	StatusWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}

	// StatusError marks a failed placement
	StatusError = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"}
)

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderFocus is the border color of the active monitor
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// BackgroundSelected is for the started cell
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"}
)

// Box drawing for monitors and grid lines
const (
	runeCornerTL = '┌'
	runeCornerTR = '┐'
	runeCornerBL = '└'
	runeCornerBR = '┘'
	runeActiveTL = '╔'
	runeActiveTR = '╗'
	runeActiveBL = '╚'
	runeActiveBR = '╝'
	runeH        = '─'
	runeV        = '│'
	runeActiveH  = '═'
	runeActiveV  = '║'
	runeCross    = '┼'
	runeLineH    = '┈'
	runeLineV    = '┊'
)

// StatusStyles contains pre-built styles for each result type
var StatusStyles = struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(StatusSuccess),
	Warning: lipgloss.NewStyle().Foreground(StatusWarning),
	Error:   lipgloss.NewStyle().Foreground(StatusError),
}

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Title     lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Title:     lipgloss.NewStyle().Foreground(Primary).Bold(true),
}

// canvasStyles maps each canvas cell class to its style.
var canvasStyles = map[cellClass]lipgloss.Style{
	classBorder:       lipgloss.NewStyle().Foreground(Border),
	classActiveBorder: lipgloss.NewStyle().Foreground(BorderFocus).Bold(true),
	classLine:         lipgloss.NewStyle().Foreground(TextMuted),
	classKey:          lipgloss.NewStyle().Foreground(TextPrimary).Bold(true),
	classKeyDim:       lipgloss.NewStyle().Foreground(TextSecondary),
	classStarted:      lipgloss.NewStyle().Background(BackgroundSelected).Foreground(Primary).Bold(true),
	className:         lipgloss.NewStyle().Foreground(TextSecondary).Italic(true),
}

// ConfigureColor drops all color output when NO_COLOR (or CLICOLOR=0) is
// set in the environment.
func ConfigureColor() {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
