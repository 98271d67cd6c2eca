// Package keybind is a registry of global key combinations. Components
// receive a *Registry explicitly and subscribe through a Scope so their
// bindings are released when they are torn down.
package keybind

import (
	"log"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// Handler is invoked when its combo is pressed. Returning false passes the
// combo on to the next older handler.
type Handler func(c Combo) bool

type binding struct {
	id      uint64
	handler Handler
}

// Registry maps combos to an ordered set of handlers. It is not safe for
// concurrent use: it is driven from the program's Update loop.
type Registry struct {
	bindings map[Combo][]binding
	nextID   uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[Combo][]binding)}
}

// Subscribe registers h for c and returns a function that removes it.
// The returned function is idempotent.
func (r *Registry) Subscribe(c Combo, h Handler) func() {
	r.nextID++
	id := r.nextID
	r.bindings[c] = append(r.bindings[c], binding{id: id, handler: h})

	return func() { r.remove(c, id) }
}

func (r *Registry) remove(c Combo, id uint64) {
	list := r.bindings[c]
	for i, b := range list {
		if b.id == id {
			list = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(r.bindings, c)
		return
	}
	r.bindings[c] = list
}

// Dispatch offers c to its handlers, most recent subscription first, and
// stops at the first one that claims it. Newer bindings shadow older ones.
func (r *Registry) Dispatch(c Combo) bool {
	list := append([]binding(nil), r.bindings[c]...)
	for i := len(list) - 1; i >= 0; i-- {
		if r.call(list[i].handler, c) {
			return true
		}
	}
	return false
}

// DispatchKey is Dispatch for a bubbletea key message
func (r *Registry) DispatchKey(msg tea.KeyMsg) bool {
	return r.Dispatch(FromKeyMsg(msg))
}

func (r *Registry) call(h Handler, c Combo) (handled bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("keybind: handler for %s panicked: %v\nStack: %s", c, rec, debug.Stack())
			handled = false
		}
	}()
	return h(c)
}

// Bound reports whether any handler is registered for c
func (r *Registry) Bound(c Combo) bool {
	return len(r.bindings[c]) > 0
}

// Count returns the number of handlers registered for c
func (r *Registry) Count(c Combo) int {
	return len(r.bindings[c])
}

// Combos lists every combo with at least one handler
func (r *Registry) Combos() []Combo {
	out := make([]Combo, 0, len(r.bindings))
	for c := range r.bindings {
		out = append(out, c)
	}
	return out
}

// Scope collects subscriptions so they can be released together
func (r *Registry) Scope() *Scope {
	return &Scope{registry: r}
}

// Scope is a group of subscriptions owned by one component
type Scope struct {
	registry *Registry
	release  []func()
	closed   bool
}

// Bind subscribes h for c within the scope. Binding on a closed scope is a no-op.
func (s *Scope) Bind(c Combo, h Handler) {
	if s.closed {
		return
	}
	s.release = append(s.release, s.registry.Subscribe(c, h))
}

// BindString parses each combo string and binds h to all of them
func (s *Scope) BindString(h Handler, combos ...string) error {
	parsed := make([]Combo, 0, len(combos))
	for _, str := range combos {
		c, err := ParseCombo(str)
		if err != nil {
			return err
		}
		parsed = append(parsed, c)
	}
	for _, c := range parsed {
		s.Bind(c, h)
	}
	return nil
}

// Len returns the number of live subscriptions held by the scope
func (s *Scope) Len() int {
	return len(s.release)
}

// Close releases every subscription made through the scope
func (s *Scope) Close() {
	release := s.release
	s.release = nil
	s.closed = true

	for _, fn := range release {
		fn()
	}
}
