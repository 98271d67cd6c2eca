package domain

import (
	"fmt"
	"strings"
)

// Action is a single callback invocation recorded from a story
type Action struct {
	Seq     int
	StoryID string
	Name    string // callback name, e.g. "onSelect"
	Args    []any
}

// String renders the action the way the actions panel shows it: onSelect("Banana", 1)
func (a Action) String() string {
	parts := make([]string, 0, len(a.Args))
	for _, arg := range a.Args {
		switch v := arg.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%q", v))
		case fmt.Stringer:
			parts = append(parts, fmt.Sprintf("%q", v.String()))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return fmt.Sprintf("%s(%s)", a.Name, strings.Join(parts, ", "))
}
