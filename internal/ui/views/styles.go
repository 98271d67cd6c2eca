package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Main        lipgloss.Style
	Title       lipgloss.Style
	Group       lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Sidebar     lipgloss.Style
	Canvas      lipgloss.Style
	ActivePane  lipgloss.Style
	Actions     lipgloss.Style
	ActionName  lipgloss.Style
	Highlight   lipgloss.Style
	HighlightBg lipgloss.Style
	Selected    lipgloss.Style
	Match       lipgloss.Style
	Badge       lipgloss.Style
	Menu        lipgloss.Style
	MenuFocused lipgloss.Style
	Disabled    lipgloss.Style
	Shortcut    lipgloss.Style
	Divider     lipgloss.Style
	PopupBox    lipgloss.Style
	Key         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Main: lipgloss.NewStyle(),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Group: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:        lipgloss.NewStyle().Faint(true),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Canvas: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ActivePane: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Actions: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("241")),
		ActionName:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Padding(0, 1),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		MenuFocused: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Shortcut:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Divider:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2),
		Key: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}

// DisableColor forces plain output for --no-color and tests
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
