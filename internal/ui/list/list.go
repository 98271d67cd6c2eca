// Package list is a keyboard and mouse driven selectable list built on
// navigator.Navigator. Rendering of each row is delegated to a RenderFunc.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"storyline/internal/navigator"
	"storyline/internal/ui/keys"
	"storyline/internal/ui/views"
)

// ItemState is what a renderer needs to know about a row
type ItemState struct {
	Focused  bool
	Selected bool
	Active   bool // the list itself has keyboard focus
}

// RenderFunc renders one row. The list truncates the result to its width.
type RenderFunc[T any] func(item T, index int, state ItemState) string

// Model is a selectable list of T
type Model[T any] struct {
	nav    *navigator.Navigator[T]
	keys   keys.KeyMap
	styles *views.Styles
	render RenderFunc[T]
	label  func(T) string

	title  string
	width  int
	height int // visible rows, 0 shows everything
	offset int
	follow bool
	active bool

	onFocused navigator.Callback[T]
	onSelect  navigator.Callback[T]
}

// Option configures a Model
type Option[T any] func(*Model[T])

// WithTitle shows a title line above the rows
func WithTitle[T any](title string) Option[T] {
	return func(m *Model[T]) { m.title = title }
}

// WithRender replaces the default row renderer
func WithRender[T any](fn RenderFunc[T]) Option[T] {
	return func(m *Model[T]) { m.render = fn }
}

// WithLabel sets how the default renderer turns an item into text
func WithLabel[T any](fn func(T) string) Option[T] {
	return func(m *Model[T]) { m.label = fn }
}

// WithFollow makes focusing a row also select it
func WithFollow[T any](follow bool) Option[T] {
	return func(m *Model[T]) { m.follow = follow }
}

// WithPolicy sets the navigation policy
func WithPolicy[T any](p navigator.Policy) Option[T] {
	return func(m *Model[T]) { m.nav.SetPolicy(p) }
}

// WithSelected sets the initial (or controlled) selection
func WithSelected[T any](index int) Option[T] {
	return func(m *Model[T]) { m.nav.SetSelected(index) }
}

// WithHeight limits the number of visible rows
func WithHeight[T any](rows int) Option[T] {
	return func(m *Model[T]) { m.height = rows }
}

// WithStyles sets the style set used by the default renderer
func WithStyles[T any](s *views.Styles) Option[T] {
	return func(m *Model[T]) { m.styles = s }
}

// OnFocused registers the focus callback
func OnFocused[T any](fn navigator.Callback[T]) Option[T] {
	return func(m *Model[T]) { m.onFocused = fn }
}

// OnSelect registers the selection callback
func OnSelect[T any](fn navigator.Callback[T]) Option[T] {
	return func(m *Model[T]) { m.onSelect = fn }
}

// New creates a list over items. It starts active with nothing focused.
func New[T any](items []T, km keys.KeyMap, opts ...Option[T]) *Model[T] {
	m := &Model[T]{
		keys:   km,
		styles: views.NewStyles(),
		active: true,
		label:  func(item T) string { return fmt.Sprint(item) },
	}
	m.nav = navigator.New(items,
		navigator.OnFocused(m.focused),
		navigator.OnSelect(m.selected),
	)
	for _, opt := range opts {
		opt(m)
	}
	if m.render == nil {
		m.render = m.defaultRender
	}
	return m
}

func (m *Model[T]) focused(item T, index int) {
	m.ensureVisible()
	if m.onFocused != nil {
		m.onFocused(item, index)
	}
	if m.follow {
		m.nav.Dispatch(navigator.Select(index))
	}
}

func (m *Model[T]) selected(item T, index int) {
	if m.onSelect != nil {
		m.onSelect(item, index)
	}
}

// Init implements tea.Model's Init for embedding
func (m *Model[T]) Init() tea.Cmd { return nil }

// Update handles key and mouse messages
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.HandleKey(msg)
	case tea.MouseMsg:
		m.HandleMouse(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// HandleKey processes a key and reports whether the list consumed it.
// Inactive lists consume nothing.
func (m *Model[T]) HandleKey(msg tea.KeyMsg) bool {
	if !m.active {
		return false
	}
	a := m.nav.HandleKey(m.keys.NavKey(msg))
	return a.Handled
}

// HandleMouse maps a click or wheel event with coordinates relative to the
// list's top-left corner. It reports whether the event hit the list.
func (m *Model[T]) HandleMouse(msg tea.MouseMsg) bool {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.nav.HandleKey(navigator.KeyUp)
			return true
		}
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.nav.HandleKey(navigator.KeyDown)
			return true
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return false
		}
		index, ok := m.RowAt(msg.Y)
		if !ok {
			return false
		}
		m.Click(index)
		return true
	}
	return false
}

// RowAt converts a y offset inside the list view to an item index
func (m *Model[T]) RowAt(y int) (int, bool) {
	row := y - m.headerLines()
	if row < 0 || row >= m.visibleRows() {
		return 0, false
	}
	index := m.offset + row
	if index >= m.nav.Len() {
		return 0, false
	}
	return index, true
}

// Click focuses and commits index, as a pointer activation does
func (m *Model[T]) Click(index int) {
	if m.follow {
		// Focusing already commits; only commit explicitly when focus did not move
		if !m.nav.Focus(index) {
			m.nav.Dispatch(navigator.Select(index))
		}
		return
	}
	m.nav.Click(index)
}

// SetItems replaces the items; focus and selection are re-clamped
func (m *Model[T]) SetItems(items []T) {
	m.nav.SetItems(items)
	m.ensureVisible()
}

// SetSelected overrides the selection without firing callbacks
func (m *Model[T]) SetSelected(index int) { m.nav.SetSelected(index) }

// SetSize sets the width used for truncation and the visible row count
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height - m.headerLines()
	if m.height < 1 {
		m.height = 1
	}
	m.ensureVisible()
}

// SetFollow toggles follow mode
func (m *Model[T]) SetFollow(follow bool) { m.follow = follow }

// SetActive marks whether the list has keyboard focus
func (m *Model[T]) SetActive(active bool) { m.active = active }

// SetPolicy replaces the navigation policy
func (m *Model[T]) SetPolicy(p navigator.Policy) { m.nav.SetPolicy(p) }

func (m *Model[T]) Active() bool                       { return m.active }
func (m *Model[T]) Follow() bool                       { return m.follow }
func (m *Model[T]) Focused() int                       { return m.nav.Focused() }
func (m *Model[T]) Selected() int                      { return m.nav.Selected() }
func (m *Model[T]) Items() []T                         { return m.nav.Items() }
func (m *Model[T]) Len() int                           { return m.nav.Len() }
func (m *Model[T]) Offset() int                        { return m.offset }
func (m *Model[T]) Navigator() *navigator.Navigator[T] { return m.nav }

// FocusedItem returns the focused item, if any
func (m *Model[T]) FocusedItem() (T, bool) { return m.nav.FocusedItem() }

// SelectedItem returns the selected item, if any
func (m *Model[T]) SelectedItem() (T, bool) { return m.nav.SelectedItem() }

func (m *Model[T]) headerLines() int {
	if m.title == "" {
		return 0
	}
	return 1
}

func (m *Model[T]) visibleRows() int {
	if m.height <= 0 {
		return m.nav.Len()
	}
	return m.height
}

// ensureVisible scrolls so the focused row is inside the viewport
func (m *Model[T]) ensureVisible() {
	rows := m.visibleRows()
	cursor := m.nav.Focused()
	if cursor != navigator.None {
		if cursor < m.offset {
			m.offset = cursor
		} else if cursor >= m.offset+rows {
			m.offset = cursor - rows + 1
		}
	}
	maxOffset := m.nav.Len() - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the title and the visible rows
func (m *Model[T]) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(m.styles.Title.Render(m.title))
		b.WriteString("\n")
	}

	state := m.nav.State()
	end := m.offset + m.visibleRows()
	if end > m.nav.Len() {
		end = m.nav.Len()
	}
	items := m.nav.Items()
	for i := m.offset; i < end; i++ {
		line := m.render(items[i], i, ItemState{
			Focused:  i == state.Focused,
			Selected: i == state.Selected,
			Active:   m.active,
		})
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if m.nav.Len() == 0 {
		b.WriteString(m.styles.Dim.Render("(empty)"))
	}
	return b.String()
}

func (m *Model[T]) defaultRender(item T, index int, state ItemState) string {
	cursor := "  "
	if state.Focused {
		cursor = "› "
	}
	mark := "  "
	if state.Selected {
		mark = m.styles.Selected.Render("✓ ")
	}
	text := m.label(item)
	if state.Focused && state.Active {
		text = m.styles.HighlightBg.Render(text)
	}
	return cursor + mark + text
}
