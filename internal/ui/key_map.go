package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	back   key.Binding
	search key.Binding
	saved  key.Binding
	toggle key.Binding
	next   key.Binding
	prev   key.Binding
	theme  key.Binding
	retry  key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		saved:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wishlist")),
		toggle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save/unsave")),
		next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next hero")),
		prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev hero")),
		theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.search, k.saved},
		{k.toggle, k.theme, k.quit},
	}
}
