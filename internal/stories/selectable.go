package stories

import (
	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/catalog"
	"storyline/internal/catalog/sample"
	"storyline/internal/ui/list"
	"storyline/internal/ui/views"
)

// SelectableList is the basic list: arrow keys move focus, enter commits
func SelectableList() catalog.Story {
	return catalog.Story{
		ID:    "navigation/selectable-list",
		Title: "Selectable list",
		Doc: `A list with a keyboard cursor (focus) and a committed choice (selection).

↑/↓ move focus and never wrap. enter selects the focused item.
Clicking a row focuses it and selects it in one step.

Controls
  f  follow mode: moving focus also selects
  u  ↑ with nothing focused goes to the first item instead of the last
  r  custom row renderer`,
		Controls: []catalog.Control{
			{Key: "f", Name: "follow"},
			{Key: "u", Name: "up-from-first"},
			{Key: "r", Name: "custom-render"},
		},
		Build: func(env catalog.Env) catalog.Canvas { return newSelectableList(env) },
	}
}

type selectableList struct {
	env    catalog.Env
	styles *views.Styles
	list   *list.Model[string]
}

func newSelectableList(env catalog.Env) *selectableList {
	s := &selectableList{env: env, styles: views.NewStyles()}
	opts := []list.Option[string]{
		list.WithTitle[string]("Fruit"),
		list.WithFollow[string](env.Args.Bool("follow")),
		list.WithPolicy[string](policyFor(env)),
		list.OnFocused(func(item string, i int) { env.Action("onFocused", item, i) }),
		list.OnSelect(func(item string, i int) { env.Action("onSelect", item, i) }),
	}
	if env.Args.Bool("custom-render") {
		opts = append(opts, list.WithRender(s.renderRow))
	}
	s.list = list.New(sample.Fruits(), env.KeyMap, opts...)
	return s
}

// renderRow shows the state flags a custom renderer receives
func (s *selectableList) renderRow(item string, index int, st list.ItemState) string {
	box := "[ ]"
	if st.Selected {
		box = s.styles.Selected.Render("[x]")
	}
	line := box + " " + item
	if st.Focused {
		line = s.styles.Highlight.Render("> ") + line + " " + s.styles.Badge.Render("focused")
	} else {
		line = "  " + line
	}
	return line
}

func (s *selectableList) Init() tea.Cmd { return nil }

func (s *selectableList) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	return s.list.HandleKey(msg), nil
}

func (s *selectableList) Update(msg tea.Msg) tea.Cmd {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		s.list.HandleMouse(mouse)
	}
	return nil
}

func (s *selectableList) SetSize(width, height int) {
	s.list.SetSize(width, height-2)
}

func (s *selectableList) View() string {
	return s.list.View() + "\n\n" + stateLine(s.styles, s.list.Focused(), s.list.Selected(), s.list.Items())
}

func (s *selectableList) Close() {}
