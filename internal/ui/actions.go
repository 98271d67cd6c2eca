package ui

import (
	"fmt"
	"strings"

	"storyline/internal/domain"
	"storyline/internal/eventbus"
	"storyline/internal/ui/views"
)

// ActionLog keeps the most recent callback invocations published by stories
type ActionLog struct {
	limit   int
	seq     int
	entries []domain.Action

	unsubscribe func()
}

// NewActionLog subscribes to action events on bus and keeps up to limit of
// them. A limit of zero keeps nothing.
func NewActionLog(bus eventbus.EventBus, limit int) *ActionLog {
	l := &ActionLog{limit: limit}
	l.unsubscribe = bus.Subscribe(eventbus.EventActionLogged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ActionLoggedEvent); ok {
			l.add(ev.Action)
		}
	})
	return l
}

func (l *ActionLog) add(a domain.Action) {

	l.seq++
	a.Seq = l.seq
	if l.limit <= 0 {
		return
	}
	l.entries = append(l.entries, a)
	if over := len(l.entries) - l.limit; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

// Entries returns the kept actions, oldest first
func (l *ActionLog) Entries() []domain.Action {
	return append([]domain.Action(nil), l.entries...)
}

// Total is the number of actions seen since the last Clear
func (l *ActionLog) Total() int {
	return l.seq
}

// Limit is the number of actions kept
func (l *ActionLog) Limit() int { return l.limit }

// Clear drops every entry and restarts numbering
func (l *ActionLog) Clear() {
	l.entries = nil
	l.seq = 0
}

// Lines renders the entries for the actions panel
func (l *ActionLog) Lines(styles *views.Styles) []string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, a := range entries {
		call := strings.TrimPrefix(a.String(), a.Name)
		lines[i] = fmt.Sprintf("%s %s%s", styles.Dim.Render(fmt.Sprintf("%4d", a.Seq)), styles.ActionName.Render(a.Name), call)
	}
	return lines
}

// Close stops listening for actions
func (l *ActionLog) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
	}
}
