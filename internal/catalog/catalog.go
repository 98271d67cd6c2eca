// Package catalog holds the stories shown in the sidebar and the environment
// each story is built with.
package catalog

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storyline/internal/domain"
	"storyline/internal/eventbus"
	"storyline/internal/keybind"
	"storyline/internal/navigator"
	"storyline/internal/ui/keys"
)

var (
	ErrStoryNotFound  = errors.New("story not found")
	ErrDuplicateStory = errors.New("story already registered")
)

// Canvas is a running story. The shell forwards keys to HandleKey first and
// only falls back to its own bindings when the canvas did not consume them.
type Canvas interface {
	Init() tea.Cmd
	HandleKey(msg tea.KeyMsg) (bool, tea.Cmd)
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Close releases anything the canvas registered globally
	Close()
}

// Control is a boolean story argument toggled from the shell with Key
type Control struct {
	Key     string
	Name    string
	Default bool
}

// Args are the current control values of a story
type Args map[string]bool

// Bool returns the value for name, false when unset
func (a Args) Bool(name string) bool { return a[name] }

// Clone returns an independent copy
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Story is a named, buildable component example
type Story struct {
	ID       string // group/name, e.g. navigation/selectable-list
	Group    string
	Title    string
	Doc      string
	Controls []Control
	Build    func(env Env) Canvas

	order int
}

// DefaultArgs returns each control at its default value
func (s Story) DefaultArgs() Args {
	args := make(Args, len(s.Controls))
	for _, c := range s.Controls {
		args[c.Name] = c.Default
	}
	return args
}

// String is used by the sidebar list
func (s Story) String() string { return s.Title }

// Env is what a story gets when it is built
type Env struct {
	StoryID string
	Keys    *keybind.Registry
	Bus     eventbus.EventBus
	Args    Args
	Policy  navigator.Policy
	Rand    *rand.Rand
	KeyMap  keys.KeyMap
}

// NewEnv returns an environment with a private registry, a null bus and a
// fixed seed. Tests and the --list path use it directly.
func NewEnv(storyID string) Env {
	return Env{
		StoryID: storyID,
		Keys:    keybind.NewRegistry(),
		Bus:     eventbus.NullBus{},
		Args:    Args{},
		Policy:  navigator.DefaultPolicy(),
		Rand:    NewRand(1),
		KeyMap:  keys.DefaultKeyMap(),
	}
}

// NewRand returns a deterministic generator for sample data
func NewRand(seed uint64) *rand.Rand {
	var s [32]byte
	for i := 0; i < 8; i++ {
		s[i] = byte(seed >> (8 * i))
	}
	return rand.New(rand.NewChaCha8(s))
}

// Action records a callback invocation in the actions panel
func (e Env) Action(name string, args ...any) {
	if e.Bus == nil {
		return
	}
	e.Bus.Publish(eventbus.ActionLoggedEvent{Action: domain.Action{
		StoryID: e.StoryID,
		Name:    name,
		Args:    args,
	}})
}

// Catalog is an ordered registry of stories
type Catalog struct {
	stories map[string]Story
	groups  []string
	next    int
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{stories: make(map[string]Story)}
}

// Register adds stories. The group defaults to the part of the id before
// the first slash.
func (c *Catalog) Register(stories ...Story) error {

	for _, s := range stories {
		if s.ID == "" || s.Build == nil {
			return fmt.Errorf("register %q: story needs an id and a build func", s.ID)
		}
		if _, exists := c.stories[s.ID]; exists {
			return fmt.Errorf("register %q: %w", s.ID, ErrDuplicateStory)
		}
		if s.Group == "" {
			s.Group, _, _ = strings.Cut(s.ID, "/")
		}
		if s.Title == "" {
			s.Title = s.ID
		}
		s.order = c.next
		c.next++
		c.stories[s.ID] = s
		if !contains(c.groups, s.Group) {
			c.groups = append(c.groups, s.Group)
		}
		log.Printf("Registered story %s", s.ID)
	}
	return nil
}

// Get looks a story up by id
func (c *Catalog) Get(id string) (Story, error) {

	s, ok := c.stories[id]
	if !ok {
		return Story{}, fmt.Errorf("%q: %w", id, ErrStoryNotFound)
	}
	return s, nil
}

// Groups returns group names in first-registration order
func (c *Catalog) Groups() []string {
	return append([]string(nil), c.groups...)
}

// Stories returns every story ordered by group, then registration order
func (c *Catalog) Stories() []Story {

	groupIndex := make(map[string]int, len(c.groups))
	for i, g := range c.groups {
		groupIndex[g] = i
	}
	out := make([]Story, 0, len(c.stories))
	for _, s := range c.stories {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := groupIndex[out[i].Group], groupIndex[out[j].Group]
		if gi != gj {
			return gi < gj
		}
		return out[i].order < out[j].order
	})
	return out
}

// Len returns the number of registered stories
func (c *Catalog) Len() int {
	return len(c.stories)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
