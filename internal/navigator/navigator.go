// Package navigator implements keyboard focus and selection over a fixed
// ordered list. Focus (the cursor) and selection (the committed choice) are
// independent optional indices.
package navigator

// Callback observes a focus or selection change
type Callback[T any] func(item T, index int)

// Navigator owns the state of one list instance and notifies observers.
// It is not safe for concurrent use; it lives inside a single Update loop.
type Navigator[T any] struct {
	items     []T
	state     State
	policy    Policy
	onFocused Callback[T]
	onSelect  Callback[T]
}

// Option configures a Navigator
type Option[T any] func(*Navigator[T])

// WithSelected sets the initial selection. Out of range values are ignored.
func WithSelected[T any](index int) Option[T] {
	return func(n *Navigator[T]) {
		if n.state.InRange(index) {
			n.state.Selected = index
		}
	}
}

// WithFocused sets the initial focus. Out of range values are ignored.
func WithFocused[T any](index int) Option[T] {
	return func(n *Navigator[T]) {
		if n.state.InRange(index) {
			n.state.Focused = index
		}
	}
}

// WithPolicy sets the navigation policy
func WithPolicy[T any](p Policy) Option[T] {
	return func(n *Navigator[T]) { n.policy = p }
}

// OnFocused registers the focus callback
func OnFocused[T any](fn Callback[T]) Option[T] {
	return func(n *Navigator[T]) { n.onFocused = fn }
}

// OnSelect registers the selection callback
func OnSelect[T any](fn Callback[T]) Option[T] {
	return func(n *Navigator[T]) { n.onSelect = fn }
}

// New creates a navigator over items with nothing focused
func New[T any](items []T, opts ...Option[T]) *Navigator[T] {
	n := &Navigator[T]{
		items:  items,
		state:  NewState(len(items), None),
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// HandleKey translates key, applies it and fires callbacks.
// The returned action tells the caller whether the key was consumed.
func (n *Navigator[T]) HandleKey(key Key) Action {
	a := OnKeyDown(key, n.state.Focused, n.state.Count, n.policy)
	n.Dispatch(a)
	return a
}

// Dispatch applies a and fires the matching callback. It reports whether
// a callback fired.
func (n *Navigator[T]) Dispatch(a Action) bool {
	if a.Kind == KindNone || !n.state.InRange(a.Index) {
		return false
	}

	prev := n.state
	n.state = ApplyAction(prev, a)

	switch a.Kind {
	case KindFocus:
		if n.state.Focused == prev.Focused && !n.policy.RefireOnNoop {
			return false
		}
		if n.onFocused != nil {
			n.onFocused(n.items[a.Index], a.Index)
		}
		return true
	case KindSelect:
		if n.onSelect != nil {
			n.onSelect(n.items[a.Index], a.Index)
		}
		return true
	}
	return false
}

// Focus moves the cursor to index, as if the user navigated there
func (n *Navigator[T]) Focus(index int) bool {
	return n.Dispatch(Focus(index))
}

// Click focuses and commits index in one step
func (n *Navigator[T]) Click(index int) bool {
	if !n.state.InRange(index) {
		return false
	}
	n.Dispatch(Focus(index))
	return n.Dispatch(Select(index))
}

// SetItems replaces the items and re-clamps the state. No callbacks fire.
func (n *Navigator[T]) SetItems(items []T) {
	n.items = items
	n.state = n.state.Resize(len(items))
}

// SetSelected overrides the selection from outside (controlled component).
// Out of range values clear the selection. No callbacks fire.
func (n *Navigator[T]) SetSelected(index int) {
	if n.state.InRange(index) {
		n.state.Selected = index
		return
	}
	n.state.Selected = None
}

// SetPolicy replaces the navigation policy
func (n *Navigator[T]) SetPolicy(p Policy) { n.policy = p }

func (n *Navigator[T]) State() State   { return n.state }
func (n *Navigator[T]) Policy() Policy { return n.policy }
func (n *Navigator[T]) Items() []T     { return n.items }
func (n *Navigator[T]) Len() int       { return len(n.items) }
func (n *Navigator[T]) Focused() int   { return n.state.Focused }
func (n *Navigator[T]) Selected() int  { return n.state.Selected }

// FocusedItem returns the focused item, if any
func (n *Navigator[T]) FocusedItem() (T, bool) {
	return n.itemAt(n.state.Focused)
}

// SelectedItem returns the selected item, if any
func (n *Navigator[T]) SelectedItem() (T, bool) {
	return n.itemAt(n.state.Selected)
}

func (n *Navigator[T]) itemAt(index int) (T, bool) {
	var zero T
	if !n.state.InRange(index) {
		return zero, false
	}
	return n.items[index], true
}
