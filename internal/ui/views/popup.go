package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of main content. The
// content behind it is greyed out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := max(0, (width-modalW)/2)
	y := max(0, (height-modalH)/2)

	base := strings.Split(desaturate(mainContent), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}
	for i, line := range strings.Split(styledPopup, "\n") {
		base[y+i] = splice(base[y+i], line, x, modalW)
	}
	return strings.Join(base, "\n")
}

// splice writes overlay into line starting at column x, keeping what is
// left and right of it
func splice(line, overlay string, x, overlayWidth int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ""
	if ansi.StringWidth(line) > x+overlayWidth {
		right = ansi.TruncateLeft(line, x+overlayWidth, "")
	}
	return left + overlay + right
}

// desaturate strips styles and recolors text dim gray
func desaturate(s string) string {
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, line := range lines {
		lines[i] = gray.Render(line)
	}
	return strings.Join(lines, "\n")
}
