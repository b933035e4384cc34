package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the monitor.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings. In raw mode the terminal
// delivers ctrl+c as a key, so it is bound alongside q.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
