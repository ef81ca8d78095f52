package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of normal mode
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Search     key.Binding
	More       key.Binding
	Retry      key.Binding
	Open       key.Binding
	Discussion key.Binding
	Copy       key.Binding
	Info       key.Binding
	Pager      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdn", "page down")),
		Home:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:        key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		More:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		Retry:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "try again")),
		Open:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")),
		Discussion: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
		Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Pager:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pager")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.More, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Search, k.More, k.Retry},
		{k.Open, k.Discussion, k.Copy, k.Info, k.Pager},
		{k.Help, k.Quit},
	}
}
