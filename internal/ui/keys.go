package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Run     key.Binding
	Dismiss key.Binding
	OpenURL key.Binding
	Quit    key.Binding
}

var Keys = KeyMap{
	Run:     key.NewBinding(key.WithKeys("enter", "f"), key.WithHelp("enter/f", "fetch top stories")),
	Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	OpenURL: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open panel")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Dismiss, k.OpenURL, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
