// Package sample generates deterministic data for stories.
package sample

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"storyline/internal/ui/contextmenu"
)

// Fruits is the short list used by the basic list story
func Fruits() []string {
	return []string{"Apple", "Banana", "Cherry"}
}

// Record is a row of generated tabular data
type Record struct {
	ID     uuid.UUID
	Name   string
	Team   string
	Status string
	Score  int
}

func (r Record) String() string { return r.Name }

var (
	firstNames = []string{"Ada", "Alan", "Barbara", "Brian", "Claude", "Donald", "Edsger", "Frances", "Grace", "Hedy", "Ivan", "John", "Ken", "Leslie", "Margaret", "Niklaus", "Radia", "Rob", "Sophie", "Tony"}
	lastNames  = []string{"Lovelace", "Turing", "Liskov", "Kernighan", "Shannon", "Knuth", "Dijkstra", "Allen", "Hopper", "Lamarr", "Sutherland", "McCarthy", "Thompson", "Lamport", "Hamilton", "Wirth", "Perlman", "Pike", "Wilson", "Hoare"}
	teams      = []string{"platform", "storage", "frontend", "infra", "billing", "search"}
	statuses   = []string{"active", "away", "offline"}
)

// Records generates n records from r. The same seed always yields the same
// rows, ids included.
func Records(r *rand.Rand, n int) []Record {
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		id, err := uuid.NewRandomFromReader(reader{r})
		if err != nil {
			id = uuid.Nil
		}
		out = append(out, Record{
			ID:     id,
			Name:   fmt.Sprintf("%s %s", pick(r, firstNames), pick(r, lastNames)),
			Team:   pick(r, teams),
			Status: pick(r, statuses),
			Score:  r.IntN(100),
		})
	}
	return out
}

func pick(r *rand.Rand, from []string) string {
	return from[r.IntN(len(from))]
}

// reader adapts a rand.Rand to io.Reader for uuid
type reader struct{ r *rand.Rand }

func (rd reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(rd.r.Uint32())
	}
	return len(p), nil
}

// EditMenu is a nested menu with every item kind a context menu supports
func EditMenu() []contextmenu.Item {
	return []contextmenu.Item{
		{Label: "Undo", Shortcut: "ctrl+z", Action: "edit.undo"},
		{Label: "Redo", Shortcut: "ctrl+y", Action: "edit.redo", Disabled: true},
		{Label: "Cut", Shortcut: "ctrl+x", Action: "edit.cut", Divider: true},
		{Label: "Copy", Shortcut: "ctrl+c", Action: "edit.copy"},
		{Label: "Paste", Shortcut: "ctrl+v", Action: "edit.paste"},
		{Label: "Share", Divider: true, Children: []contextmenu.Item{
			{Label: "Email", Action: "share.email"},
			{Label: "Messages", Action: "share.messages"},
			{Label: "Link", Children: []contextmenu.Item{
				{Label: "Copy link", Action: "share.link.copy"},
				{Label: "Copy short link", Action: "share.link.short"},
				{Label: "QR code", Action: "share.link.qr", Disabled: true},
			}},
		}},
		{Label: "Transform", Children: []contextmenu.Item{
			{Label: "Uppercase", Action: "transform.upper"},
			{Label: "Lowercase", Action: "transform.lower"},
			{Label: "Title case", Action: "transform.title"},
		}},
		{Label: "Delete", Shortcut: "del", Action: "edit.delete", Divider: true},
	}
}
