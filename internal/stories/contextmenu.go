package stories

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/catalog"
	"storyline/internal/catalog/sample"
	"storyline/internal/ui/contextmenu"
	"storyline/internal/ui/views"
)

// ContextMenu is a nested menu with submenus, dividers and disabled items
func ContextMenu() catalog.Story {
	return catalog.Story{
		ID:    "menus/context-menu",
		Title: "Context menu",
		Doc: `A right-click style menu. Every level is its own selectable list.

enter  open the menu, commit an item or open a submenu
→      open a submenu
←      close a submenu (closes the menu at the top level)
esc    close the whole menu

Disabled items can be focused but never commit.

Controls
  s  show shortcut hints`,
		Controls: []catalog.Control{
			{Key: "s", Name: "shortcuts", Default: true},
		},
		Build: func(env catalog.Env) catalog.Canvas { return newContextMenu(env) },
	}
}

type contextMenuStory struct {
	env    catalog.Env
	styles *views.Styles
	menu   *contextmenu.Model
	last   string
}

func newContextMenu(env catalog.Env) *contextMenuStory {
	items := sample.EditMenu()
	if !env.Args.Bool("shortcuts") {
		items = stripShortcuts(items)
	}
	s := &contextMenuStory{env: env, styles: views.NewStyles()}
	s.menu = contextmenu.New(items, env.KeyMap, s.styles)
	s.menu.OnFocused(func(item contextmenu.Item, path []string) {
		env.Action("onFocused", strings.Join(path, " › "))
	})
	return s
}

func stripShortcuts(items []contextmenu.Item) []contextmenu.Item {
	out := make([]contextmenu.Item, len(items))
	for i, it := range items {
		it.Shortcut = ""
		if it.HasChildren() {
			it.Children = stripShortcuts(it.Children)
		}
		out[i] = it
	}
	return out
}

func (s *contextMenuStory) Init() tea.Cmd { return nil }

func (s *contextMenuStory) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.menu.IsOpen() {
		handled := s.menu.HandleKey(msg)
		return handled, s.menu.TakeCmd()
	}
	if key.Matches(msg, s.env.KeyMap.Select) {
		s.env.Action("onOpen")
		s.menu.Open()
		return true, nil
	}
	return false, nil
}

func (s *contextMenuStory) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case contextmenu.SelectedMsg:
		s.last = strings.Join(msg.Path, " › ")
		s.env.Action("onSelect", msg.Action)
	case contextmenu.ClosedMsg:
		s.env.Action("onClose")
	}
	return nil
}

func (s *contextMenuStory) SetSize(width, height int) {}

func (s *contextMenuStory) View() string {
	var b strings.Builder
	b.WriteString(s.styles.Title.Render("Document.txt"))
	b.WriteString("\n")
	if s.menu.IsOpen() {
		b.WriteString(s.menu.View())
	} else {
		b.WriteString(s.styles.Dim.Render("press enter to open the menu"))
	}
	b.WriteString("\n\n")
	last := "nothing yet"
	if s.last != "" {
		last = s.last
	}
	b.WriteString(s.styles.Status.Render("last command: " + last))
	return b.String()
}

func (s *contextMenuStory) Close() {
	s.menu.Close()
}
