package catalog

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyline/internal/eventbus"
)

type stubCanvas struct{}

func (stubCanvas) Init() tea.Cmd                        { return nil }
func (stubCanvas) HandleKey(tea.KeyMsg) (bool, tea.Cmd) { return false, nil }
func (stubCanvas) Update(tea.Msg) tea.Cmd               { return nil }
func (stubCanvas) View() string                         { return "" }
func (stubCanvas) SetSize(int, int)                     {}
func (stubCanvas) Close()                               {}

func story(id string) Story {
	return Story{ID: id, Build: func(Env) Canvas { return stubCanvas{} }}
}

func ids(stories []Story) []string {
	out := make([]string, len(stories))
	for i, s := range stories {
		out[i] = s.ID
	}
	return out
}

func TestStoriesOrderedByGroupThenRegistration(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(
		story("navigation/b"),
		story("menus/a"),
		story("navigation/a"),
	))
	require.NoError(t, c.Register(story("menus/0")))

	assert.Equal(t, []string{"navigation", "menus"}, c.Groups())
	assert.Equal(t, []string{"navigation/b", "navigation/a", "menus/a", "menus/0"}, ids(c.Stories()))
	assert.Equal(t, 4, c.Len())
}

func TestRegisterDefaults(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(story("inputs/keys")))

	s, err := c.Get("inputs/keys")
	require.NoError(t, err)
	assert.Equal(t, "inputs", s.Group)
	assert.Equal(t, "inputs/keys", s.Title)
}

func TestRegisterErrors(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(story("a/b")))

	err := c.Register(story("a/b"))
	assert.True(t, errors.Is(err, ErrDuplicateStory))

	assert.Error(t, c.Register(Story{ID: "a/c"}), "build func is required")
}

func TestGetUnknown(t *testing.T) {
	_, err := New().Get("nope")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestDefaultArgs(t *testing.T) {
	s := Story{Controls: []Control{
		{Key: "f", Name: "follow"},
		{Key: "u", Name: "wrap", Default: true},
	}}

	args := s.DefaultArgs()
	assert.False(t, args.Bool("follow"))
	assert.True(t, args.Bool("wrap"))

	clone := args.Clone()
	clone["follow"] = true
	assert.False(t, args.Bool("follow"))
}

func TestEnvActionPublishes(t *testing.T) {
	bus := eventbus.New()
	var got []string
	bus.Subscribe(eventbus.EventActionLogged, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ActionLoggedEvent)
		got = append(got, ev.Action.StoryID+" "+ev.Action.String())
	})

	env := NewEnv("navigation/selectable-list")
	env.Bus = bus
	env.Action("onSelect", "Banana", 1)

	assert.Equal(t, []string{`navigation/selectable-list onSelect("Banana", 1)`}, got)
}

func TestNewRandIsSeeded(t *testing.T) {
	a, b := NewRand(3), NewRand(3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
