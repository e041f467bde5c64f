package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Quit      key.Binding
	PrevRange key.Binding
	NextRange key.Binding
	PickRange key.Binding
	Watchlist key.Binding
	Symbol    key.Binding
	Theme     key.Binding
	Refresh   key.Binding
	Help      key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	PrevRange: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev range")),
	NextRange: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next range")),
	PickRange: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "pick range")),
	Watchlist: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watchlist")),
	Symbol:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "enter symbol")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevRange, k.NextRange, k.Watchlist, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevRange, k.NextRange, k.PickRange},
		{k.Watchlist, k.Theme, k.Refresh},
		{k.Help, k.Escape, k.Quit},
	}
}
