package stories

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/catalog"
	"storyline/internal/keybind"
	"storyline/internal/ui/list"
	"storyline/internal/ui/views"
)

var globalCombos = []string{"ctrl+k", "alt+j", "ctrl+shift+up", "ctrl+alt+x", "shift+tab", "f5"}

// Keybindings registers global combos while it is open
func Keybindings() catalog.Story {
	return catalog.Story{
		ID:    "inputs/keybindings",
		Title: "Global keybindings",
		Doc: `Global combos bound through the shared keybinding registry.

The bindings belong to this story's scope and are released when another
story is opened. Press a combo anywhere to count it, or focus a row and
press enter to fire it.

Controls
  e  enable the bindings`,
		Controls: []catalog.Control{
			{Key: "e", Name: "enabled", Default: true},
		},
		Build: func(env catalog.Env) catalog.Canvas { return newKeybindings(env) },
	}
}

type comboRow struct {
	combo keybind.Combo
	hits  int
}

func (r *comboRow) String() string { return r.combo.String() }

type keybindings struct {
	env    catalog.Env
	styles *views.Styles
	scope  *keybind.Scope
	rows   []*comboRow
	list   *list.Model[*comboRow]
}

func newKeybindings(env catalog.Env) *keybindings {
	s := &keybindings{
		env:    env,
		styles: views.NewStyles(),
		scope:  env.Keys.Scope(),
	}
	for _, str := range globalCombos {
		s.rows = append(s.rows, &comboRow{combo: keybind.MustParse(str)})
	}
	if env.Args.Bool("enabled") {
		for _, row := range s.rows {
			s.scope.Bind(row.combo, s.hit(row))
		}
		log.Printf("keybindings story bound %d combos", s.scope.Len())
	}

	s.list = list.New(s.rows, env.KeyMap,
		list.WithTitle[*comboRow]("Bindings"),
		list.WithPolicy[*comboRow](policyFor(env)),
		list.WithRender(s.renderRow),
		list.OnSelect(func(row *comboRow, i int) {
			if !env.Keys.Dispatch(row.combo) {
				env.Action("onUnbound", row.combo.String())
			}
		}),
	)
	return s
}

func (s *keybindings) hit(row *comboRow) keybind.Handler {
	return func(c keybind.Combo) bool {
		row.hits++
		s.env.Action("onKey", c.String(), row.hits)
		return true
	}
}

func (s *keybindings) renderRow(row *comboRow, index int, st list.ItemState) string {
	cursor := "  "
	if st.Focused {
		cursor = "› "
	}
	name := fmt.Sprintf("%-16s", row.combo.String())
	if st.Focused && st.Active {
		name = s.styles.HighlightBg.Render(name)
	}
	hits := s.styles.Dim.Render(fmt.Sprintf("%d hits", row.hits))
	if row.hits > 0 {
		hits = s.styles.ActionName.Render(fmt.Sprintf("%d hits", row.hits))
	}
	return cursor + name + " " + hits
}

func (s *keybindings) Init() tea.Cmd { return nil }

func (s *keybindings) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	return s.list.HandleKey(msg), nil
}

func (s *keybindings) Update(msg tea.Msg) tea.Cmd {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		s.list.HandleMouse(mouse)
	}
	return nil
}

func (s *keybindings) SetSize(width, height int) {
	s.list.SetSize(width, height-2)
}

func (s *keybindings) View() string {
	status := "bindings released"
	if n := s.scope.Len(); n > 0 {
		status = fmt.Sprintf("%d combos bound: %s", n, strings.Join(globalCombos, ", "))
	}
	return s.list.View() + "\n\n" + s.styles.Status.Render(status)
}

// Close releases the story's bindings
func (s *keybindings) Close() {
	s.scope.Close()
}
