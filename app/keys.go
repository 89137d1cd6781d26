package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the overlay's own bindings. Grid keys and navigation are
// classified by the keys package and only listed here for help.
type keyMap struct {
	Toggle   key.Binding
	Cells    key.Binding
	Navigate key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/stop"),
		),
		Cells: key.NewBinding(
			key.WithKeys("q", "a", "z"),
			key.WithHelp("q…/", "pick cell"),
		),
		Navigate: key.NewBinding(
			key.WithKeys("left", "right", "up", "down", "tab", "shift+tab"),
			key.WithHelp("←→↑↓", "monitor"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Cells, k.Navigate, k.Cancel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Cells},
		{k.Navigate, k.Cancel},
		{k.Help, k.Quit},
	}
}
