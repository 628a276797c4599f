package viewer

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the viewer key bindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Select    key.Binding
	Next      key.Binding
	Prev      key.Binding
	OpenBelow key.Binding
	Delete    key.Binding
	Join      key.Binding
	ClearAll  key.Binding
	Write     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys("m", "enter"), key.WithHelp("m", "toggle mark")),
		Select:    key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "select lines")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next mark")),
		Prev:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev mark")),
		OpenBelow: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open line")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete line")),
		Join:      key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "join lines")),
		ClearAll:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear marks")),
		Write:     key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "write")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Next, k.Prev, k.Write, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Toggle, k.Select, k.ClearAll},
		{k.OpenBelow, k.Delete, k.Join},
		{k.Write, k.Help, k.Quit},
	}
}
