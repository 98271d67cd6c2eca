package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SidebarRenderer handles rendering of story rows
type SidebarRenderer struct {
	styles *Styles
}

// NewSidebarRenderer creates a new sidebar renderer
func NewSidebarRenderer(styles *Styles) *SidebarRenderer {
	return &SidebarRenderer{
		styles: styles,
	}
}

// StoryRow is what a sidebar row shows
type StoryRow struct {
	Title     string
	Group     string
	Positions []int // matched rune positions in Title from the filter
	Focused   bool
	Open      bool // the story shown in the canvas
	Active    bool // the sidebar has keyboard focus
}

// RenderStoryRow renders one story line, padded to width
func (s *SidebarRenderer) RenderStoryRow(row StoryRow, width int) string {
	marker := "  "
	if row.Open {
		marker = s.styles.Selected.Render("● ")
	}

	title := row.Title
	if len(row.Positions) > 0 {
		title = HighlightPositions(title, row.Positions, s.styles.Match)
	}
	group := s.styles.Dim.Render(row.Group)

	line := marker + title
	if gap := width - ansi.StringWidth(line) - ansi.StringWidth(row.Group); gap >= 1 {
		line += strings.Repeat(" ", gap) + group
	}

	if row.Focused && row.Active {
		return s.styles.HighlightBg.Render(line)
	}
	if row.Focused {
		return s.styles.Highlight.Render(line)
	}
	return line
}

// HighlightPositions styles the runes of text at the given positions
func HighlightPositions(text string, positions []int, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 {
		return text
	}
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}
	var result strings.Builder
	for i, r := range []rune(text) {
		if hit[i] {
			result.WriteString(highlightStyle.Render(string(r)))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
