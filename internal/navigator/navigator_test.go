package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	item  string
	index int
}

type recorder struct {
	focused  []call
	selected []call
}

func newRecorded(items []string, opts ...Option[string]) (*Navigator[string], *recorder) {
	r := &recorder{}
	opts = append([]Option[string]{
		OnFocused(func(item string, i int) { r.focused = append(r.focused, call{item, i}) }),
		OnSelect(func(item string, i int) { r.selected = append(r.selected, call{item, i}) }),
	}, opts...)
	return New(items, opts...), r
}

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i%26))
	}
	return out
}

func TestDownNeverPassesLastItem(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for start := 0; start < n; start++ {
			nav, _ := newRecorded(items(n), WithFocused[string](start))
			for i := 0; i < n; i++ {
				nav.HandleKey(KeyDown)
			}
			assert.Equal(t, n-1, nav.Focused(), "n=%d start=%d", n, start)
		}
	}
}

func TestDownFromZeroReachesLastInNPresses(t *testing.T) {
	for n := 1; n <= 10; n++ {
		nav, _ := newRecorded(items(n), WithFocused[string](0))
		for i := 0; i < n; i++ {
			nav.HandleKey(KeyDown)
		}
		assert.Equal(t, n-1, nav.Focused())
	}
}

func TestUpNeverGoesNegative(t *testing.T) {
	for n := 1; n <= 10; n++ {
		for start := None; start < n; start++ {
			nav, _ := newRecorded(items(n), WithFocused[string](start))
			for i := 0; i < n+3; i++ {
				a := nav.HandleKey(KeyUp)
				require.GreaterOrEqual(t, a.Index, 0)
				require.GreaterOrEqual(t, nav.Focused(), 0)
			}
			assert.Equal(t, 0, nav.Focused())
		}
	}
}

func TestEnterWithoutFocusNeverSelects(t *testing.T) {
	nav, r := newRecorded([]string{"Apple", "Banana"})

	a := nav.HandleKey(KeyEnter)

	assert.Equal(t, KindNone, a.Kind)
	assert.True(t, a.Handled)
	assert.Empty(t, r.selected)
	assert.Equal(t, None, nav.Selected())
}

func TestEnterSelectsFocusedExactlyOnce(t *testing.T) {
	list := []string{"Apple", "Banana", "Cherry", "Date"}
	for k := range list {
		nav, r := newRecorded(list, WithFocused[string](k))

		nav.HandleKey(KeyEnter)

		require.Len(t, r.selected, 1)
		assert.Equal(t, call{list[k], k}, r.selected[0])
		assert.Equal(t, k, nav.Selected())
	}
}

func TestApplyNoneIsIdentity(t *testing.T) {
	states := []State{
		NewState(0, None),
		NewState(3, None),
		{Count: 3, Focused: 1, Selected: 2},
		{Count: 5, Focused: None, Selected: 4},
	}
	for _, s := range states {
		assert.Equal(t, s, ApplyAction(s, NoAction(true)))
		assert.Equal(t, s, ApplyAction(s, NoAction(false)))
	}
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	s := State{Count: 2, Focused: 1, Selected: 1}

	assert.Equal(t, s, ApplyAction(s, Select(5)), "list shrank between key press and apply")
	assert.Equal(t, s, ApplyAction(s, Focus(-2)))
	assert.Equal(t, s, ApplyAction(s, Focus(2)))
}

func TestApplySelectMovesFocusToo(t *testing.T) {
	s := State{Count: 4, Focused: 0, Selected: None}

	next := ApplyAction(s, Select(3))

	assert.Equal(t, State{Count: 4, Focused: 3, Selected: 3}, next)
}

func TestScenarioA(t *testing.T) {
	nav, r := newRecorded([]string{"Apple", "Banana", "Cherry"})

	nav.HandleKey(KeyDown)
	assert.Equal(t, 0, nav.Focused())
	assert.Equal(t, []call{{"Apple", 0}}, r.focused)

	nav.HandleKey(KeyDown)
	assert.Equal(t, 1, nav.Focused())

	nav.HandleKey(KeyEnter)
	assert.Equal(t, []call{{"Banana", 1}}, r.selected)
	assert.Equal(t, 1, nav.Selected())
}

func TestScenarioBEmptyList(t *testing.T) {
	nav, r := newRecorded(nil)
	before := nav.State()

	for _, k := range []Key{KeyDown, KeyUp, KeyEnter} {
		a := nav.HandleKey(k)
		assert.Equal(t, KindNone, a.Kind)
	}

	assert.Equal(t, before, nav.State())
	assert.Empty(t, r.focused)
	assert.Empty(t, r.selected)
}

func TestScenarioCDownOnLastDoesNotRefire(t *testing.T) {
	nav, r := newRecorded(items(5), WithFocused[string](4))

	a := nav.HandleKey(KeyDown)

	assert.Equal(t, Focus(4), a, "key is consumed even at the boundary")
	assert.Equal(t, 4, nav.Focused())
	assert.Empty(t, r.focused)
}

func TestRefireOnNoopPolicy(t *testing.T) {
	nav, r := newRecorded(items(5), WithFocused[string](4), WithPolicy[string](Policy{RefireOnNoop: true}))

	nav.HandleKey(KeyDown)

	assert.Equal(t, []call{{"e", 4}}, r.focused)
}

func TestUpFromNonePolicy(t *testing.T) {
	last := OnKeyDown(KeyUp, None, 5, DefaultPolicy())
	assert.Equal(t, Focus(4), last)

	first := OnKeyDown(KeyUp, None, 5, Policy{UpFromNone: UpFromNoneFirst})
	assert.Equal(t, Focus(0), first)
}

func TestOtherKeysAreUnhandled(t *testing.T) {
	a := OnKeyDown(KeyOther, 1, 3, DefaultPolicy())
	assert.Equal(t, KindNone, a.Kind)
	assert.False(t, a.Handled)

	empty := OnKeyDown(KeyOther, None, 0, DefaultPolicy())
	assert.False(t, empty.Handled)
}

func TestStaleFocusIsClampedByKeys(t *testing.T) {
	assert.Equal(t, Focus(2), OnKeyDown(KeyUp, 10, 3, DefaultPolicy()))
	assert.Equal(t, Focus(2), OnKeyDown(KeyDown, 10, 3, DefaultPolicy()))
	assert.Equal(t, NoAction(true), OnKeyDown(KeyEnter, 10, 3, DefaultPolicy()))
}

func TestFocusNeverChangesSelection(t *testing.T) {
	nav, r := newRecorded(items(4), WithSelected[string](2))

	nav.HandleKey(KeyDown)
	nav.HandleKey(KeyDown)
	nav.HandleKey(KeyUp)

	assert.Equal(t, 2, nav.Selected())
	assert.Empty(t, r.selected)
}

func TestInitialOutOfRangeIsUnset(t *testing.T) {
	nav := New(items(3), WithSelected[string](7), WithFocused[string](-4))

	assert.Equal(t, None, nav.Selected())
	assert.Equal(t, None, nav.Focused())
}

func TestClickFocusesThenCommits(t *testing.T) {
	var order []string
	nav := New([]string{"Apple", "Banana", "Cherry"},
		OnFocused(func(item string, i int) { order = append(order, "focus:"+item) }),
		OnSelect(func(item string, i int) { order = append(order, "select:"+item) }),
	)

	assert.True(t, nav.Click(2))
	assert.Equal(t, []string{"focus:Cherry", "select:Cherry"}, order)
	assert.Equal(t, State{Count: 3, Focused: 2, Selected: 2}, nav.State())

	assert.False(t, nav.Click(3))
}

func TestCallbacksSeeNewState(t *testing.T) {
	var nav *Navigator[string]
	var seen State
	nav = New(items(3), OnFocused(func(string, int) { seen = nav.State() }))

	nav.HandleKey(KeyDown)

	assert.Equal(t, 0, seen.Focused, "callback fires after the transition")
}

func TestSetItemsReclamps(t *testing.T) {
	nav, r := newRecorded(items(6), WithFocused[string](5), WithSelected[string](4))

	nav.SetItems(items(3))
	assert.Equal(t, State{Count: 3, Focused: 2, Selected: None}, nav.State())

	nav.SetItems(nil)
	assert.Equal(t, State{Count: 0, Focused: None, Selected: None}, nav.State())
	assert.Empty(t, r.focused)
	assert.Empty(t, r.selected)
}

func TestSetSelectedIsControlled(t *testing.T) {
	nav, r := newRecorded(items(3))

	nav.SetSelected(1)
	assert.Equal(t, 1, nav.Selected())

	nav.SetSelected(9)
	assert.Equal(t, None, nav.Selected())
	assert.Empty(t, r.selected)
}

func TestItemAccessors(t *testing.T) {
	nav := New([]string{"x", "y"}, WithFocused[string](1))

	item, ok := nav.FocusedItem()
	assert.True(t, ok)
	assert.Equal(t, "y", item)

	_, ok = nav.SelectedItem()
	assert.False(t, ok)
}
