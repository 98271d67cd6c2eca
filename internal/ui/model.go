package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/catalog"
	"storyline/internal/config"
	"storyline/internal/eventbus"
	"storyline/internal/fuzzy"
	"storyline/internal/keybind"
	"storyline/internal/navigator"
	"storyline/internal/ui/keys"
	"storyline/internal/ui/list"
	"storyline/internal/ui/views"
)

// Pane is the part of the screen that receives keys first
type Pane int

const (
	PaneSidebar Pane = iota
	PaneCanvas
)

func (p Pane) String() string {
	if p == PaneCanvas {
		return "canvas"
	}
	return "sidebar"
}

type sidebarEntry = fuzzy.Ranked[catalog.Story]

// Model is the catalog shell: story list, canvas, actions panel and footer
type Model struct {
	bus      eventbus.EventBus
	config   *config.Config
	catalog  *catalog.Catalog
	keys     keys.KeyMap
	registry *keybind.Registry
	policy   navigator.Policy

	renderer *views.Renderer
	styles   *views.Styles
	help     help.Model
	helpText *HelpRenderer

	sidebar   *list.Model[sidebarEntry]
	filter    textinput.Model
	filtering bool

	story    *catalog.Story
	canvas   catalog.Canvas
	args     map[string]catalog.Args
	controls *keybind.Scope
	global   *keybind.Scope
	actions  *ActionLog

	unsubscribe []func()

	pane     Pane
	width    int
	height   int
	popup    string
	quitting bool
	pending  []tea.Cmd
}

// NewModel creates the shell over the stories in cat
func NewModel(bus eventbus.EventBus, cfg *config.Config, cat *catalog.Catalog) (*Model, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("navigation config: %w", err)
	}

	styles := views.NewStyles()
	m := &Model{
		bus:      bus,
		config:   cfg,
		catalog:  cat,
		keys:     keys.FromConfig(cfg.Keys),
		registry: keybind.NewRegistry(),
		policy:   policy,
		renderer: views.NewRenderer(styles),
		styles:   styles,
		help:     help.New(),
		helpText: NewHelpRenderer(),
		filter:   textinput.New(),
		args:     make(map[string]catalog.Args),
		actions:  NewActionLog(bus, cfg.UI.ActionsPanel),
		width:    100,
		height:   30,
	}
	m.filter.Prompt = "/"
	m.filter.Placeholder = "find a story"
	m.filter.CharLimit = 32

	m.sidebar = list.New(fuzzy.Filter(cat.Stories(), "", storyText), m.keys,
		list.WithTitle[sidebarEntry]("Stories"),
		list.WithPolicy[sidebarEntry](policy),
		list.WithStyles[sidebarEntry](styles),
		list.WithRender(m.renderStoryRow),
		list.OnSelect(func(e sidebarEntry, index int) {
			if err := m.OpenStory(e.Item.ID); err != nil {
				m.setError(err)
			}
		}),
	)

	if err := m.bindGlobal(); err != nil {
		return nil, err
	}

	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ErrorEvent); ok {
				m.popup = ev.Message
				if ev.Err != nil {
					m.popup += "\n\n" + ev.Err.Error()
				}
				m.popup += "\n\n" + m.styles.Dim.Render("press any key")
			}
		}),
	)

	m.layout()
	return m, nil
}

func storyText(s catalog.Story) string {
	return s.Title + " " + s.ID
}

// bindGlobal registers the shell's own keys in the registry
func (m *Model) bindGlobal() error {
	m.global = m.registry.Scope()
	bind := func(b key.Binding, h keybind.Handler) error {
		if err := m.global.BindString(h, b.Keys()...); err != nil {
			return fmt.Errorf("key binding %q: %w", b.Help().Desc, err)
		}
		return nil
	}

	bindings := []struct {
		binding key.Binding
		handler keybind.Handler
	}{
		{m.keys.Quit, func(keybind.Combo) bool { m.quit(); return true }},
		{m.keys.Help, func(keybind.Combo) bool { m.ShowHelp(); return true }},
		{m.keys.Docs, func(keybind.Combo) bool { return m.ShowDocs() }},
		{m.keys.SwitchPane, func(keybind.Combo) bool { m.SwitchPane(); return true }},
		{m.keys.Filter, func(keybind.Combo) bool {
			if m.pane != PaneSidebar {
				return false
			}
			m.startFilter()
			return true
		}},
	}
	for _, b := range bindings {
		if err := bind(b.binding, b.handler); err != nil {
			return err
		}
	}
	return nil
}

// Start opens id, or the first story when id is empty
func (m *Model) Start(id string) error {
	if id == "" {
		stories := m.catalog.Stories()
		if len(stories) == 0 {
			return nil
		}
		id = stories[0].ID
	}
	return m.OpenStory(id)
}

// OpenStory closes the current story and builds id with its last used args
func (m *Model) OpenStory(id string) error {
	story, err := m.catalog.Get(id)
	if err != nil {
		return err
	}
	m.actions.Clear()
	m.build(story)
	m.setPane(PaneCanvas)
	m.bus.Publish(eventbus.StoryOpenedEvent{StoryID: id})
	log.Printf("Opened story %s", id)
	return nil
}

// build closes any running canvas and builds story in its place
func (m *Model) build(story catalog.Story) {
	m.closeStory()

	args, ok := m.args[story.ID]
	if !ok {
		args = m.defaultArgs(story)
		m.args[story.ID] = args
	}

	env := catalog.Env{
		StoryID: story.ID,
		Keys:    m.registry,
		Bus:     m.bus,
		Args:    args.Clone(),
		Policy:  m.policy,
		Rand:    catalog.NewRand(1),
		KeyMap:  m.keys,
	}
	m.story = &story
	m.canvas = story.Build(env)
	m.bindControls(story)
	m.layout()
	m.queue(m.canvas.Init())
	m.selectInSidebar(story.ID)
}

func (m *Model) defaultArgs(story catalog.Story) catalog.Args {
	args := story.DefaultArgs()
	if _, ok := args["follow"]; ok && m.config.Navigation.Follow {
		args["follow"] = true
	}
	return args
}

func (m *Model) bindControls(story catalog.Story) {
	m.controls = m.registry.Scope()
	for _, c := range story.Controls {
		name := c.Name
		err := m.controls.BindString(func(keybind.Combo) bool {
			m.ToggleControl(name)
			return true
		}, c.Key)
		if err != nil {
			log.Printf("Story %s: control %s: %v", story.ID, name, err)
		}
	}
}

// ToggleControl flips a boolean control of the open story and rebuilds it
func (m *Model) ToggleControl(name string) {
	if m.story == nil {
		return
	}
	args := m.args[m.story.ID]
	args[name] = !args[name]
	m.bus.Publish(eventbus.ControlToggledEvent{StoryID: m.story.ID, Control: name, Value: args[name]})
	m.build(*m.story)
}

func (m *Model) closeStory() {
	if m.canvas == nil {
		return
	}
	m.canvas.Close()
	if m.controls != nil {
		m.controls.Close()
	}
	id := m.story.ID
	m.canvas = nil
	m.bus.Publish(eventbus.StoryClosedEvent{StoryID: id})
}

func (m *Model) selectInSidebar(id string) {
	for i, e := range m.sidebar.Items() {
		if e.Item.ID == id {
			m.sidebar.SetSelected(i)
			return
		}
	}
	m.sidebar.SetSelected(navigator.None)
}

// SwitchPane moves key focus between the story list and the canvas
func (m *Model) SwitchPane() {
	if m.pane == PaneSidebar && m.canvas != nil {
		m.setPane(PaneCanvas)
		return
	}
	m.setPane(PaneSidebar)
}

func (m *Model) setPane(p Pane) {
	m.pane = p
	m.sidebar.SetActive(p == PaneSidebar)
	if p == PaneSidebar && m.sidebar.Focused() == navigator.None {
		if sel := m.sidebar.Selected(); sel != navigator.None {
			m.sidebar.Navigator().Focus(sel)
		}
	}
}

// ShowHelp pages the full key reference
func (m *Model) ShowHelp() {
	content := m.helpText.RenderHelpContent(m.keys, m.story, m.registry.Combos())
	m.queue(showInPager(content))
}

// ShowDocs pages the open story's documentation
func (m *Model) ShowDocs() bool {
	if m.story == nil {
		return false
	}
	m.queue(showInPager(m.helpText.RenderDocs(*m.story)))
	return true
}

func (m *Model) quit() {
	m.quitting = true
	m.queue(tea.Quit)
}

func (m *Model) setError(err error) {
	m.bus.Publish(eventbus.ErrorEvent{Message: "Something went wrong", Err: err})
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// flush returns everything queued while handling one message
func (m *Model) flush(extra ...tea.Cmd) tea.Cmd {
	cmds := append(m.pending, extra...)
	m.pending = nil
	return tea.Batch(cmds...)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.flush()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case pagerDoneMsg:
		if msg.err != nil {
			m.bus.Publish(eventbus.ErrorEvent{Message: "Pager failed", Err: msg.err})
		}
		return m, nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	if m.canvas != nil {
		return m, m.flush(m.canvas.Update(msg))
	}
	return m, nil
}

// handleKey routes a key: the focused pane first, then the registry
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quit()
		return m.flush()
	}
	if m.popup != "" {
		m.popup = ""
		return nil
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch m.pane {
	case PaneCanvas:
		if m.canvas != nil {
			if handled, cmd := m.canvas.HandleKey(msg); handled {
				return m.flush(cmd)
			}
		}
	case PaneSidebar:
		if m.sidebar.HandleKey(msg) {
			return m.flush()
		}
	}

	if !m.registry.DispatchKey(msg) && m.pane == PaneSidebar && msg.Type == tea.KeyEsc {
		m.clearFilter()
	}
	return m.flush()
}

func (m *Model) startFilter() {
	m.filtering = true
	m.queue(m.filter.Focus())
	m.layout()
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		if m.sidebar.Focused() == navigator.None && m.sidebar.Len() > 0 {
			m.sidebar.Navigator().Focus(0)
		}
		m.layout()
		return nil
	case tea.KeyEsc:
		m.clearFilter()
		return nil
	case tea.KeyUp, tea.KeyDown:
		m.sidebar.HandleKey(msg)
		return m.flush()
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return cmd
}

func (m *Model) clearFilter() {
	m.filtering = false
	m.filter.Blur()
	if m.filter.Value() != "" {
		m.filter.SetValue("")
		m.applyFilter()
	}
	m.layout()
}

func (m *Model) applyFilter() {
	m.sidebar.SetItems(fuzzy.Filter(m.catalog.Stories(), m.filter.Value(), storyText))
	if m.story != nil {
		m.selectInSidebar(m.story.ID)
	}
}

func (m *Model) filterLines() int {
	if m.filtering || m.filter.Value() != "" {
		return 1
	}
	return 0
}

func (m *Model) actionRows() int {
	return m.actions.Limit()
}

// layout pushes pane sizes down to the sidebar and the canvas
func (m *Model) layout() {
	l := m.renderer.Layout(m.width, m.height, m.actionRows())
	m.sidebar.SetSize(l.SidebarW, l.SidebarH-m.filterLines())
	m.filter.Width = max(1, l.SidebarW-2)
	if m.canvas != nil {
		m.canvas.SetSize(l.CanvasW, l.CanvasH)
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	l := m.renderer.Layout(m.width, m.height, m.actionRows())
	click := msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress

	switch {
	case within(msg, l.SidebarX, l.SidebarY, l.SidebarW, l.SidebarH):
		local := msg
		local.X -= l.SidebarX
		local.Y -= l.SidebarY + m.filterLines()
		if click {
			m.setPane(PaneSidebar)
		}
		m.sidebar.HandleMouse(local)
		return m.flush()

	case m.canvas != nil && within(msg, l.CanvasX, l.CanvasY, l.CanvasW, l.CanvasH):
		local := msg
		local.X -= l.CanvasX
		local.Y -= l.CanvasY
		if click {
			m.setPane(PaneCanvas)
		}
		return m.flush(m.canvas.Update(local))
	}
	return nil
}

func within(msg tea.MouseMsg, x, y, w, h int) bool {
	return msg.X >= x && msg.X < x+w && msg.Y >= y && msg.Y < y+h
}

func (m *Model) renderStoryRow(e sidebarEntry, index int, st list.ItemState) string {
	positions := make([]int, 0, len(e.Result.Positions))
	titleLen := len([]rune(e.Item.Title))
	for _, p := range e.Result.Positions {
		if p < titleLen {
			positions = append(positions, p)
		}
	}
	return m.renderer.Sidebar().RenderStoryRow(views.StoryRow{
		Title:     e.Item.Title,
		Group:     e.Item.Group,
		Positions: positions,
		Focused:   st.Focused,
		Open:      st.Selected,
		Active:    st.Active,
	}, m.renderer.Layout(m.width, m.height, m.actionRows()).SidebarW)
}

// View renders the shell
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Sidebar:       m.sidebar.View(),
		SidebarActive: m.pane == PaneSidebar,
		FilterQuery:   m.filter.Value(),
		StatusMessage: "keys: " + m.pane.String(),
		Actions:       m.actions.Lines(m.styles),
		ActionLines:   m.actionRows(),
		HelpView:      m.help.View(m.keys),
		Popup:         m.popup,
	}
	if m.filterLines() > 0 {
		state.FilterInput = m.styles.Filter.Render(m.filter.View())
	}
	if m.story != nil {
		state.StoryTitle = m.story.Title
		args := m.args[m.story.ID]
		for _, c := range m.story.Controls {
			state.Controls = append(state.Controls, views.ControlState{Key: c.Key, Name: c.Name, On: args[c.Name]})
		}
	}
	if m.canvas != nil {
		state.Canvas = m.canvas.View()
	} else {
		state.Canvas = m.styles.Dim.Render("Pick a story")
	}
	return m.renderer.Render(state)
}

// Pane returns the pane receiving keys first
func (m *Model) Pane() Pane { return m.pane }

// CurrentStoryID returns the open story, or "" when none is open
func (m *Model) CurrentStoryID() string {
	if m.story == nil {
		return ""
	}
	return m.story.ID
}

// Args returns the control values of a story
func (m *Model) Args(id string) catalog.Args { return m.args[id].Clone() }

// Actions returns the actions log
func (m *Model) Actions() *ActionLog { return m.actions }

// Registry returns the keybinding registry shared with stories
func (m *Model) Registry() *keybind.Registry { return m.registry }

// Close tears down the open story and every subscription
func (m *Model) Close() {
	m.closeStory()
	m.global.Close()
	m.actions.Close()
	for _, fn := range m.unsubscribe {
		fn()
	}
}
