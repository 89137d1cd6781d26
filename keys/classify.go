package keys

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gridsnap/monitor"
)

// Kind is the class of a producer-side input.
type Kind int

const (
	// Key is a grid key. It may still be outside the active grid's shape.
	Key Kind = iota
	// InvalidKey is a printable key outside the addressing block.
	InvalidKey
	Navigate
	Cancel
)

func (k Kind) String() string {
	switch k {
	case Key:
		return "key"
	case InvalidKey:
		return "invalid"
	case Navigate:
		return "navigate"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Input is a classified key press.
type Input struct {
	Kind      Kind
	Rune      rune
	Direction monitor.Direction
}

// Classify maps a terminal key name ("q", "shift+left", "esc") to an input.
// Keys with no meaning during selection return false and are dropped.
func Classify(name string) (Input, bool) {
	switch strings.ToLower(name) {
	case "esc", "escape", "ctrl+c", "ctrl+[":
		return Input{Kind: Cancel}, true
	case "left", "shift+left", "shift+tab":
		return Input{Kind: Navigate, Direction: monitor.Left}, true
	case "right", "shift+right", "tab":
		return Input{Kind: Navigate, Direction: monitor.Right}, true
	case "up", "shift+up":
		return Input{Kind: Navigate, Direction: monitor.Up}, true
	case "down", "shift+down":
		return Input{Kind: Navigate, Direction: monitor.Down}, true
	}

	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size != len(name) || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return Input{}, false
	}
	if IsGridKey(r) {
		return Input{Kind: Key, Rune: r}, true
	}
	return Input{Kind: InvalidKey, Rune: r}, true
}

// ClassifyToken maps one token of a scripted key sequence. ">" and "<"
// navigate right and left, "!" cancels, anything else goes through Classify.
func ClassifyToken(tok string) (Input, bool) {
	switch tok {
	case ">":
		return Input{Kind: Navigate, Direction: monitor.Right}, true
	case "<":
		return Input{Kind: Navigate, Direction: monitor.Left}, true
	case "^":
		return Input{Kind: Navigate, Direction: monitor.Up}, true
	case "_":
		return Input{Kind: Navigate, Direction: monitor.Down}, true
	case "!":
		return Input{Kind: Cancel}, true
	}
	return Classify(tok)
}

// Tokenize splits a scripted sequence such as "q>s" or "q > s" into tokens.
// Named keys like "esc" may be written in braces: "q{esc}".
func Tokenize(seq string) []string {
	var out []string
	for i := 0; i < len(seq); {
		r, size := utf8.DecodeRuneInString(seq[i:])
		switch {
		case unicode.IsSpace(r):
		case r == '{':
			if end := strings.IndexByte(seq[i:], '}'); end > 0 {
				out = append(out, seq[i+1:i+end])
				i += end + 1
				continue
			}
			out = append(out, string(r))
		default:
			out = append(out, string(r))
		}
		i += size
	}
	return out
}
