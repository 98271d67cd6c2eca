package stories

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/catalog"
	"storyline/internal/catalog/sample"
	"storyline/internal/fuzzy"
	"storyline/internal/ui/list"
	"storyline/internal/ui/views"
)

const longListSize = 200

// LongList is a generated table with a scrolling viewport and fuzzy filter
func LongList() catalog.Story {
	return catalog.Story{
		ID:    "navigation/long-list",
		Title: "Long list",
		Doc: fmt.Sprintf(`%d generated people with a viewport that follows focus.

/      filter (fzf ranking, best match first)
enter  leave the filter and keep it
esc    clear the filter

Filtering replaces the items: focus stays in range and a selection that no
longer exists is dropped.

Controls
  f  follow mode`, longListSize),
		Controls: []catalog.Control{
			{Key: "f", Name: "follow"},
		},
		Build: func(env catalog.Env) catalog.Canvas { return newLongList(env) },
	}
}

type row = fuzzy.Ranked[sample.Record]

type longList struct {
	env       catalog.Env
	styles    *views.Styles
	records   []sample.Record
	list      *list.Model[row]
	input     textinput.Model
	filtering bool
}

func newLongList(env catalog.Env) *longList {
	s := &longList{
		env:     env,
		styles:  views.NewStyles(),
		records: sample.Records(env.Rand, longListSize),
		input:   textinput.New(),
	}
	s.input.Prompt = "/"
	s.input.Placeholder = "filter by name or team"
	s.input.CharLimit = 64

	s.list = list.New(fuzzy.Filter(s.records, "", recordText), env.KeyMap,
		list.WithTitle[row]("People"),
		list.WithFollow[row](env.Args.Bool("follow")),
		list.WithPolicy[row](policyFor(env)),
		list.WithHeight[row](12),
		list.WithRender(s.renderRow),
		list.OnFocused(func(r row, i int) { env.Action("onFocused", r.Item.Name, i) }),
		list.OnSelect(func(r row, i int) { env.Action("onSelect", r.Item.Name, i) }),
	)
	return s
}

func recordText(r sample.Record) string {
	return r.Name + " " + r.Team
}

func (s *longList) renderRow(r row, index int, st list.ItemState) string {
	cursor := "  "
	if st.Focused {
		cursor = "› "
	}
	mark := "  "
	if st.Selected {
		mark = s.styles.Selected.Render("✓ ")
	}
	nameLen := len([]rune(r.Item.Name))
	name := views.HighlightPositions(r.Item.Name, r.Result.Positions, s.styles.Match)
	name += strings.Repeat(" ", max(0, 22-nameLen))
	if st.Focused && st.Active {
		name = s.styles.HighlightBg.Render(name)
	}
	meta := fmt.Sprintf("%-9s %-8s %3d  %s", r.Item.Team, r.Item.Status, r.Item.Score, r.Item.ID.String()[:8])
	return cursor + mark + name + s.styles.Dim.Render(meta)
}

func (s *longList) Init() tea.Cmd { return nil }

func (s *longList) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.filtering {
		switch msg.Type {
		case tea.KeyEnter:
			s.filtering = false
			s.input.Blur()
			return true, nil
		case tea.KeyEsc:
			s.clearFilter()
			return true, nil
		case tea.KeyUp, tea.KeyDown:
			return s.list.HandleKey(msg), nil
		}
		var cmd tea.Cmd
		before := s.input.Value()
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() != before {
			s.applyFilter()
		}
		return true, cmd
	}

	switch {
	case key.Matches(msg, s.env.KeyMap.Filter):
		s.filtering = true
		return true, s.input.Focus()
	case msg.Type == tea.KeyEsc && s.input.Value() != "":
		s.clearFilter()
		return true, nil
	}
	return s.list.HandleKey(msg), nil
}

func (s *longList) clearFilter() {
	s.filtering = false
	s.input.Blur()
	s.input.SetValue("")
	s.applyFilter()
}

func (s *longList) applyFilter() {
	s.list.SetItems(fuzzy.Filter(s.records, s.input.Value(), recordText))
	s.env.Action("onFilter", s.input.Value(), s.list.Len())
}

// Filtering reports whether keys are going to the filter input
func (s *longList) Filtering() bool { return s.filtering }

func (s *longList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if s.filterLines() > 0 {
			msg.Y -= s.filterLines()
		}
		s.list.HandleMouse(msg)
	default:
		if s.filtering {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
	}
	return nil
}

func (s *longList) filterLines() int {
	if s.filtering || s.input.Value() != "" {
		return 1
	}
	return 0
}

func (s *longList) SetSize(width, height int) {
	s.input.Width = max(10, width-2)
	s.list.SetSize(width, height-3)
}

func (s *longList) View() string {
	var b strings.Builder
	if s.filterLines() > 0 {
		b.WriteString(s.styles.Filter.Render(s.input.View()))
		b.WriteString("\n")
	}
	b.WriteString(s.list.View())
	b.WriteString("\n\n")
	b.WriteString(s.styles.Status.Render(fmt.Sprintf("%d of %d", s.list.Len(), len(s.records))))
	if r, ok := s.list.SelectedItem(); ok {
		b.WriteString(s.styles.Status.Render(" · selected: " + r.Item.Name))
	}
	return b.String()
}

func (s *longList) Close() {}
