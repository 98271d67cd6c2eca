// Package keys defines the key bindings shared by every component.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/config"
	"storyline/internal/navigator"
)

// KeyMap holds the bindings for lists, menus and the app shell
type KeyMap struct {
	// List navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Menus
	Open  key.Binding // open a submenu
	Back  key.Binding // close a submenu or cancel
	Close key.Binding

	// App shell
	SwitchPane key.Binding
	Filter     key.Binding
	Docs       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the built-in bindings. List navigation is limited
// to the arrow keys and enter; extra keys come from configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Open: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "open submenu"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Docs: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "story docs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FromConfig returns the default key map extended with configured keys
func FromConfig(cfg config.KeysConfig) KeyMap {
	km := DefaultKeyMap()
	extend(&km.Up, cfg.Up)
	extend(&km.Down, cfg.Down)
	extend(&km.Select, cfg.Select)
	extend(&km.Quit, cfg.Quit)
	extend(&km.Help, cfg.Help)
	extend(&km.Filter, cfg.Filter)
	extend(&km.SwitchPane, cfg.SwitchPane)
	extend(&km.Docs, cfg.Docs)
	return km
}

func extend(b *key.Binding, extra []string) {
	if len(extra) == 0 {
		return
	}
	keys := append(append([]string(nil), b.Keys()...), extra...)
	b.SetKeys(keys...)
}

// NavKey resolves a key message to a navigator intent
func (k KeyMap) NavKey(msg tea.KeyMsg) navigator.Key {
	switch {
	case key.Matches(msg, k.Up):
		return navigator.KeyUp
	case key.Matches(msg, k.Down):
		return navigator.KeyDown
	case key.Matches(msg, k.Select):
		return navigator.KeyEnter
	default:
		return navigator.KeyOther
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Open, k.Back, k.Close},
		{k.SwitchPane, k.Filter, k.Docs},
		{k.Help, k.Quit},
	}
}
