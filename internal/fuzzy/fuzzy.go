// Package fuzzy ranks list items against a typed pattern using fzf's
// matching algorithm.
package fuzzy

import (
	"sort"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initOnce sync.Once

func ensureInit() {
	initOnce.Do(func() { algo.Init("default") })
}

// Result is the score and matched rune positions for one text
type Result struct {
	Score     int
	Positions []int
}

// Matched reports whether the pattern matched at all
func (r Result) Matched() bool { return r.Score > 0 }

// Match scores text against pattern, case-insensitively. An empty pattern
// scores zero. slab may be nil.
func Match(text string, pattern []rune, slab *util.Slab) Result {
	if len(pattern) == 0 {
		return Result{}
	}
	ensureInit()

	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	res, pos := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if res.Start < 0 || res.Score <= 0 {
		return Result{}
	}

	out := Result{Score: res.Score}
	if pos != nil {
		out.Positions = append([]int(nil), *pos...)
		sort.Ints(out.Positions)
	}
	return out
}

// Ranked is an item that survived filtering
type Ranked[T any] struct {
	Item   T
	Index  int // index in the unfiltered slice
	Result Result
}

// Filter keeps items whose text matches pattern, best score first and
// original order among equal scores. An empty pattern keeps everything in
// original order.
func Filter[T any](items []T, pattern string, text func(T) string) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	p := []rune(strings.TrimSpace(pattern))
	if len(p) == 0 {
		for i, it := range items {
			out = append(out, Ranked[T]{Item: it, Index: i})
		}
		return out
	}

	slab := util.MakeSlab(100*1024, 2048)
	for i, it := range items {
		r := Match(text(it), p, slab)
		if !r.Matched() {
			continue
		}
		out = append(out, Ranked[T]{Item: it, Index: i, Result: r})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Result.Score > out[b].Result.Score
	})
	return out
}
