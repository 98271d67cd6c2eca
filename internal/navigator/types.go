package navigator

import "fmt"

// None marks an unset focused or selected index
const None = -1

// Key is a navigation intent resolved from a key press by the caller's keymap
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	default:
		return "other"
	}
}

// Kind discriminates navigation actions
type Kind int

const (
	KindNone Kind = iota
	KindFocus
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindFocus:
		return "focus"
	case KindSelect:
		return "select"
	default:
		return "none"
	}
}

// Action is the result of translating a key press.
// Handled is false only for keys the navigator does not own, so the caller
// can let them bubble up to other bindings.
type Action struct {
	Kind    Kind
	Index   int
	Handled bool
}

func (a Action) Type() string { return a.Kind.String() }

func (a Action) String() string {
	if a.Kind == KindNone {
		return fmt.Sprintf("none(handled=%t)", a.Handled)
	}
	return fmt.Sprintf("%s(%d)", a.Kind, a.Index)
}

// Focus builds a focus action for index
func Focus(index int) Action { return Action{Kind: KindFocus, Index: index, Handled: true} }

// Select builds a select (commit) action for index
func Select(index int) Action { return Action{Kind: KindSelect, Index: index, Handled: true} }

// NoAction builds a none action
func NoAction(handled bool) Action { return Action{Kind: KindNone, Index: None, Handled: handled} }

// UpFromNone decides where Up lands when nothing is focused
type UpFromNone int

const (
	UpFromNoneLast UpFromNone = iota
	UpFromNoneFirst
)

func (u UpFromNone) String() string {
	if u == UpFromNoneFirst {
		return "first"
	}
	return "last"
}

// Policy holds the behaviour switches a list can be configured with
type Policy struct {
	UpFromNone UpFromNone
	// RefireOnNoop re-invokes OnFocused when a focus action lands on the
	// already focused index (pressing down on the last row).
	RefireOnNoop bool
}

// DefaultPolicy returns the policy used when none is configured
func DefaultPolicy() Policy {
	return Policy{UpFromNone: UpFromNoneLast}
}

// State is an immutable navigator snapshot
type State struct {
	Count    int
	Focused  int
	Selected int
}

// NewState creates a state for count items with nothing focused.
// An out of range initial selection becomes None.
func NewState(count, selected int) State {
	if count < 0 {
		count = 0
	}
	s := State{Count: count, Focused: None, Selected: None}
	if s.InRange(selected) {
		s.Selected = selected
	}
	return s
}

// InRange reports whether index addresses an item
func (s State) InRange(index int) bool {
	return index >= 0 && index < s.Count
}

// HasFocus reports whether an item is focused
func (s State) HasFocus() bool { return s.Focused != None }

// HasSelection reports whether an item is selected
func (s State) HasSelection() bool { return s.Selected != None }

// Resize returns the state for a list that now has count items.
// Focus is clamped to the last item, selection is dropped when out of range.
func (s State) Resize(count int) State {
	if count < 0 {
		count = 0
	}
	s.Count = count
	if s.Focused >= count {
		s.Focused = count - 1
	}
	if s.Focused < 0 {
		s.Focused = None
	}
	if !s.InRange(s.Selected) {
		s.Selected = None
	}
	return s
}
