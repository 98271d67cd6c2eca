package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"storyline/internal/catalog"
	"storyline/internal/keybind"
	"storyline/internal/ui/keys"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// RenderHelpContent renders the full help: key map sections, the open
// story's controls and every global combo currently bound
func (r *HelpRenderer) RenderHelpContent(km keys.KeyMap, story *catalog.Story, combos []keybind.Combo) string {
	var help strings.Builder

	help.WriteString(r.title.Render("Storyline Help"))
	help.WriteString("\n")

	r.writeBindings(&help, "Navigation", km.Up, km.Down, km.Select)
	r.writeBindings(&help, "Menus", km.Open, km.Back, km.Close)
	r.writeBindings(&help, "Catalog", km.SwitchPane, km.Filter, km.Docs, km.Help, km.Quit)

	if story != nil && len(story.Controls) > 0 {
		help.WriteString(r.section.Render("Controls: " + story.Title))
		help.WriteString("\n")
		for _, c := range story.Controls {
			r.writeLine(&help, c.Key, c.Name)
		}
	}

	if len(combos) > 0 {
		names := make([]string, len(combos))
		for i, c := range combos {
			names[i] = c.String()
		}
		sort.Strings(names)
		help.WriteString(r.section.Render("Bound combos"))
		help.WriteString("\n")
		help.WriteString("  " + r.desc.Render(strings.Join(names, "  ")))
		help.WriteString("\n")
	}

	return strings.TrimRight(help.String(), "\n")
}

func (r *HelpRenderer) writeBindings(b *strings.Builder, section string, bindings ...key.Binding) {
	b.WriteString(r.section.Render(section))
	b.WriteString("\n")
	for _, k := range bindings {
		if !k.Enabled() {
			continue
		}
		r.writeLine(b, strings.Join(k.Keys(), ", "), k.Help().Desc)
	}
}

func (r *HelpRenderer) writeLine(b *strings.Builder, keyText, desc string) {
	fmt.Fprintf(b, "  %s  %s\n", r.key.Render(fmt.Sprintf("%-14s", keyText)), r.desc.Render(desc))
}

// RenderDocs renders a story's documentation page
func (r *HelpRenderer) RenderDocs(story catalog.Story) string {
	var b strings.Builder
	b.WriteString(r.title.Render(story.Title))
	b.WriteString("\n")
	b.WriteString(r.desc.Render(story.ID))
	b.WriteString("\n\n")
	b.WriteString(story.Doc)
	return b.String()
}

// pagerCommand shows text in the ov pager. It runs through tea.Exec so
// bubbletea releases the terminal first and restores it afterwards.
type pagerCommand struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (p *pagerCommand) SetStdin(r io.Reader)  { p.stdin = r }
func (p *pagerCommand) SetStdout(w io.Writer) { p.stdout = w }
func (p *pagerCommand) SetStderr(w io.Writer) { p.stderr = w }

// Run opens ov on the content and blocks until it exits
func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}

	// Do not write on exit, the TUI repaints the screen
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	if err := root.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}

// showInPager returns a command that pages content
func showInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerDoneMsg{err: err}
	})
}
