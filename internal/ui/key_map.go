package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	nextSection key.Binding
	prevSection key.Binding
	up          key.Binding
	down        key.Binding
	enter       key.Binding
	back        key.Binding
	toggle      key.Binding
	yes         key.Binding
	no          key.Binding
	quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		prevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		yes:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextSection, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextSection, k.prevSection},
		{k.up, k.down, k.enter, k.back},
		{k.toggle, k.yes, k.no, k.quit},
	}
}
