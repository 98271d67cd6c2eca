package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SidebarWidth is the outer width of the story list pane, borders included
const SidebarWidth = 30

// ControlState is one story control as shown in the footer
type ControlState struct {
	Key  string
	Name string
	On   bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	StoryTitle    string
	FilterQuery   string
	FilterInput   string // rendered filter box, shown while typing
	Sidebar       string
	SidebarActive bool
	Canvas        string
	Actions       []string
	ActionLines   int // rows reserved for the actions panel, 0 hides it
	Controls      []ControlState
	HelpView      string
	StatusMessage string
	StatusIsError bool
	Popup         string
}

// Layout is where each pane's content starts and how big it is
type Layout struct {
	SidebarX, SidebarY int
	SidebarW, SidebarH int
	CanvasX, CanvasY   int
	CanvasW, CanvasH   int
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	sidebar     *SidebarRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{
		styles:      styles,
		sidebar:     NewSidebarRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Sidebar returns the story row renderer
func (r *Renderer) Sidebar() *SidebarRenderer { return r.sidebar }

const (
	headerLines = 1
	footerLines = 2 // controls + help
)

// actionsPanelLines is the full height of the actions panel: border, title, rows
func actionsPanelLines(rows int) int {
	if rows <= 0 {
		return 0
	}
	return rows + 2
}

// Layout computes pane geometry for a terminal of width x height
func (r *Renderer) Layout(width, height, actionRows int) Layout {
	bodyOuter := height - headerLines - footerLines - actionsPanelLines(actionRows)
	inner := max(1, bodyOuter-2)
	canvasOuter := max(10, width-SidebarWidth)
	return Layout{
		SidebarX: 2,
		SidebarY: headerLines + 1,
		SidebarW: SidebarWidth - 4,
		SidebarH: inner,
		CanvasX:  SidebarWidth + 2,
		CanvasY:  headerLines + 1,
		CanvasW:  canvasOuter - 4,
		CanvasH:  inner,
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}
	l := r.Layout(width, height, state.ActionLines)

	content := &strings.Builder{}
	content.WriteString(r.renderTitleLine(state, width))
	content.WriteString("\n")

	sidebarStyle, canvasStyle := r.styles.ActivePane, r.styles.Canvas
	if !state.SidebarActive {
		sidebarStyle, canvasStyle = r.styles.Sidebar, r.styles.ActivePane
	}
	sidebar := state.Sidebar
	if state.FilterInput != "" {
		sidebar = state.FilterInput + "\n" + sidebar
	}
	left := sidebarStyle.
		Width(l.SidebarW + 2).
		Height(l.SidebarH).
		MaxHeight(l.SidebarH + 2).
		Render(sidebar)
	right := canvasStyle.
		Width(l.CanvasW + 2).
		Height(l.CanvasH).
		MaxHeight(l.CanvasH + 2).
		Render(state.Canvas)
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	content.WriteString("\n")

	if state.ActionLines > 0 {
		content.WriteString(r.renderActions(state, width))
		content.WriteString("\n")
	}

	content.WriteString(r.renderControls(state))
	content.WriteString("\n")
	content.WriteString(state.HelpView)

	finalContent := r.styles.Main.MaxHeight(height).MaxWidth(width).Render(content.String())

	if state.Popup != "" {
		return r.popupRender.RenderPopupOverlay(finalContent, state.Popup, height, width, r.styles.PopupBox)
	}
	return finalContent
}

// renderTitleLine puts the logo left and the current story and status right
func (r *Renderer) renderTitleLine(state ViewState, width int) string {
	logo := r.styles.Title.Render("storyline")
	if state.StoryTitle != "" {
		logo += " " + r.styles.Badge.Render(state.StoryTitle)
	}

	var right []string
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		right = append(right, style.Render(state.StatusMessage))
	}
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")
	paddingWidth := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) renderActions(state ViewState, width int) string {
	var b strings.Builder
	b.WriteString(r.styles.Group.Render(fmt.Sprintf("Actions (%d)", len(state.Actions))))
	lines := state.Actions
	if len(lines) > state.ActionLines {
		lines = lines[len(lines)-state.ActionLines:]
	}
	for _, line := range lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	// Keep the panel a fixed height so panes above do not jump
	for i := len(lines); i < state.ActionLines; i++ {
		b.WriteString("\n")
	}
	return r.styles.Actions.Width(width).Render(b.String())
}

func (r *Renderer) renderControls(state ViewState) string {
	if len(state.Controls) == 0 {
		return r.styles.Dim.Render("no controls")
	}
	parts := make([]string, 0, len(state.Controls))
	for _, c := range state.Controls {
		value := r.styles.Dim.Render("off")
		if c.On {
			value = r.styles.Selected.Render("on")
		}
		parts = append(parts, fmt.Sprintf("%s %s: %s", r.styles.Key.Render(c.Key), c.Name, value))
	}
	return strings.Join(parts, "  ")
}
