package terminal

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the terminal keybindings.
type KeyMap struct {
	Toggle     key.Binding
	Reset      key.Binding
	Focus      key.Binding
	ShortBreak key.Binding
	LongBreak  key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "reset"),
		),
		Focus: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus"),
		),
		ShortBreak: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "short break"),
		),
		LongBreak: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "long break"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Reset, keys.Focus, keys.ShortBreak, keys.LongBreak, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Toggle, keys.Reset},
		{keys.Focus, keys.ShortBreak, keys.LongBreak},
		{keys.Quit},
	}
}
