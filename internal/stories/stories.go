// Package stories contains the component examples shown by the catalog.
package stories

import (
	"fmt"

	"storyline/internal/catalog"
	"storyline/internal/navigator"
	"storyline/internal/ui/views"
)

// All returns every built-in story in sidebar order
func All() []catalog.Story {
	return []catalog.Story{
		SelectableList(),
		LongList(),
		ContextMenu(),
		Keybindings(),
	}
}

// Register adds every built-in story to c
func Register(c *catalog.Catalog) error {
	return c.Register(All()...)
}

// policyFor applies the story-level up-from-first control over the
// configured policy
func policyFor(env catalog.Env) navigator.Policy {
	p := env.Policy
	if env.Args.Bool("up-from-first") {
		p.UpFromNone = navigator.UpFromNoneFirst
	}
	return p
}

// stateLine summarises focus and selection below a list
func stateLine[T any](styles *views.Styles, focused, selected int, items []T) string {
	describe := func(i int) string {
		if i == navigator.None || i >= len(items) {
			return "none"
		}
		return fmt.Sprintf("%v (%d)", items[i], i)
	}
	return styles.Status.Render(fmt.Sprintf("focused: %s · selected: %s", describe(focused), describe(selected)))
}
