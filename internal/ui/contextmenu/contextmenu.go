// Package contextmenu is a nested popup menu. Each open level is a
// navigator over that level's items; submenus open beside their parent row.
package contextmenu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"storyline/internal/navigator"
	"storyline/internal/ui/keys"
	"storyline/internal/ui/views"
)

// Item is one menu entry. Items with children open a submenu instead of
// committing.
type Item struct {
	Label    string
	Shortcut string
	Action   string // identifier reported on commit; defaults to Label
	Disabled bool
	Divider  bool // draw a divider above this item
	Children []Item
}

// HasChildren reports whether the item opens a submenu
func (i Item) HasChildren() bool { return len(i.Children) > 0 }

func (i Item) action() string {
	if i.Action != "" {
		return i.Action
	}
	return i.Label
}

// SelectedMsg is returned as a command when a leaf item is committed
type SelectedMsg struct {
	Action string
	Path   []string // labels from the root to the item
}

// ClosedMsg is returned when the menu is dismissed without a commit
type ClosedMsg struct{}

type level struct {
	items []Item
	nav   *navigator.Navigator[Item]
	row   int // row of the parent item in the level below, for alignment
}

// Model is a context menu
type Model struct {
	root   []Item
	keys   keys.KeyMap
	styles *views.Styles
	levels []*level
	open   bool

	pending   tea.Cmd
	onFocused func(item Item, path []string)
}

// New creates a closed menu over items
func New(items []Item, km keys.KeyMap, styles *views.Styles) *Model {
	if styles == nil {
		styles = views.NewStyles()
	}
	return &Model{root: items, keys: km, styles: styles}
}

// OnFocused registers a callback fired whenever any level's focus moves
func (m *Model) OnFocused(fn func(item Item, path []string)) {
	m.onFocused = fn
}

// Open shows the root level with its first item focused
func (m *Model) Open() {
	m.levels = nil
	m.open = true
	m.push(m.root, 0)
}

// Close hides the menu and drops every level
func (m *Model) Close() {
	m.open = false
	m.levels = nil
}

func (m *Model) IsOpen() bool { return m.open }
func (m *Model) Depth() int   { return len(m.levels) }

// Path returns the labels of the focused item at every open level
func (m *Model) Path() []string {
	path := make([]string, 0, len(m.levels))
	for _, l := range m.levels {
		if item, ok := l.nav.FocusedItem(); ok {
			path = append(path, item.Label)
		}
	}
	return path
}

func (m *Model) push(items []Item, row int) {
	l := &level{items: items, row: row}
	l.nav = navigator.New(items,
		navigator.OnFocused(func(item Item, index int) {
			if m.onFocused != nil {
				m.onFocused(item, m.Path())
			}
		}),
		navigator.OnSelect(func(item Item, index int) {
			m.activate(item)
		}),
	)
	m.levels = append(m.levels, l)
	l.nav.Focus(0)
}

func (m *Model) top() *level {
	if len(m.levels) == 0 {
		return nil
	}
	return m.levels[len(m.levels)-1]
}

func (m *Model) pop() {
	if len(m.levels) <= 1 {
		m.Close()
		m.pending = func() tea.Msg { return ClosedMsg{} }
		return
	}
	m.levels = m.levels[:len(m.levels)-1]
}

// activate runs on commit: open a submenu or report the leaf
func (m *Model) activate(item Item) {
	switch {
	case item.Disabled:
		return
	case item.HasChildren():
		m.push(item.Children, m.top().nav.Focused()+m.dividersAbove(m.top()))
	default:
		msg := SelectedMsg{Action: item.action(), Path: m.Path()}
		m.Close()
		m.pending = func() tea.Msg { return msg }
	}
}

func (m *Model) dividersAbove(l *level) int {
	n := 0
	for i := 1; i <= l.nav.Focused() && i < len(l.items); i++ {
		if l.items[i].Divider {
			n++
		}
	}
	return n
}

// Init implements tea.Model's Init for embedding
func (m *Model) Init() tea.Cmd { return nil }

// Update handles keys while the menu is open
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		m.HandleKey(km)
	}
	cmd := m.pending
	m.pending = nil
	return m, cmd
}

// HandleKey routes a key to the top level and reports whether it was consumed.
// An open menu consumes every key so nothing leaks to the page behind it.
func (m *Model) HandleKey(msg tea.KeyMsg) bool {
	if !m.open {
		return false
	}
	top := m.top()

	switch {
	case key.Matches(msg, m.keys.Close):
		m.Close()
		m.pending = func() tea.Msg { return ClosedMsg{} }
	case key.Matches(msg, m.keys.Back):
		m.pop()
	case key.Matches(msg, m.keys.Open):
		if item, ok := top.nav.FocusedItem(); ok && item.HasChildren() && !item.Disabled {
			m.activate(item)
		}
	default:
		top.nav.HandleKey(m.keys.NavKey(msg))
	}
	return true
}

// TakeCmd returns and clears the command produced by the last key
func (m *Model) TakeCmd() tea.Cmd {
	cmd := m.pending
	m.pending = nil
	return cmd
}

// View renders every open level side by side
func (m *Model) View() string {
	if !m.open {
		return ""
	}
	return m.renderFrom(0)
}

// renderFrom draws level i and, to its right, everything opened from it
func (m *Model) renderFrom(i int) string {
	box := m.renderLevel(m.levels[i])
	if i == len(m.levels)-1 {
		return box
	}
	child := m.renderFrom(i + 1)
	child = lipgloss.NewStyle().MarginTop(m.levels[i+1].row).Render(child)
	return lipgloss.JoinHorizontal(lipgloss.Top, box, child)
}

func (m *Model) renderLevel(l *level) string {
	labelWidth, shortcutWidth := 0, 0
	for _, it := range l.items {
		labelWidth = max(labelWidth, ansi.StringWidth(it.Label))
		shortcutWidth = max(shortcutWidth, ansi.StringWidth(rightText(it)))
	}
	rowWidth := 2 + labelWidth + 2 + shortcutWidth + 2

	var rows []string
	focused := l.nav.Focused()
	for i, it := range l.items {
		if it.Divider && i > 0 {
			rows = append(rows, m.styles.Divider.Render(strings.Repeat("─", rowWidth)))
		}
		rows = append(rows, m.renderItem(it, i == focused, labelWidth, shortcutWidth))
	}
	return m.styles.Menu.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderItem(it Item, focused bool, labelWidth, shortcutWidth int) string {
	marker := "  "
	if focused {
		marker = "› "
	}
	label := it.Label + strings.Repeat(" ", labelWidth-ansi.StringWidth(it.Label))
	right := rightText(it)
	right = strings.Repeat(" ", shortcutWidth-ansi.StringWidth(right)) + right

	var line string
	switch {
	case it.Disabled:
		line = marker + m.styles.Disabled.Render(label) + "  " + m.styles.Shortcut.Render(right)
	case focused:
		line = m.styles.MenuFocused.Render(marker + label + "  " + right)
	default:
		line = marker + label + "  " + m.styles.Shortcut.Render(right)
	}
	return line + "  "
}

func rightText(it Item) string {
	if it.HasChildren() {
		return "▸"
	}
	return it.Shortcut
}
