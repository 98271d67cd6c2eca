package keybind

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInvalidCombo is returned when a key combination cannot be parsed
var ErrInvalidCombo = errors.New("invalid key combination")

// Modifiers is a bit set of modifier keys
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

func (m Modifiers) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Combo is a key plus modifiers, the registry's lookup key
type Combo struct {
	Key  string
	Mods Modifiers
}

// String returns the canonical form: modifiers in ctrl, alt, shift order
func (c Combo) String() string {
	if c.Mods == 0 {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// ParseCombo parses "ctrl+shift+up", "alt+j", "enter" or a single rune.
// Modifier order does not matter.
func ParseCombo(s string) (Combo, error) {
	if s == "" {
		return Combo{}, fmt.Errorf("%w: empty", ErrInvalidCombo)
	}
	// A lone "+" or a trailing "++" names the plus key itself
	if s == "+" {
		return Combo{Key: "+"}, nil
	}
	raw := s
	plusKey := strings.HasSuffix(s, "++")
	if plusKey {
		s = strings.TrimSuffix(s, "+")
	}

	parts := strings.Split(s, "+")
	var c Combo
	for i, p := range parts {
		last := i == len(parts)-1
		if last {
			if plusKey {
				c.Key = "+"
				break
			}
			if p == "" {
				return Combo{}, fmt.Errorf("%w: %q", ErrInvalidCombo, raw)
			}
			c.Key = normalizeKey(p)
			break
		}
		switch strings.ToLower(p) {
		case "ctrl", "control":
			c.Mods |= ModCtrl
		case "alt", "meta", "option":
			c.Mods |= ModAlt
		case "shift":
			c.Mods |= ModShift
		default:
			return Combo{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidCombo, p, raw)
		}
	}
	return c, nil
}

// MustParse is ParseCombo for literals known to be valid
func MustParse(s string) Combo {
	c, err := ParseCombo(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromKeyMsg converts a bubbletea key message into a Combo.
// bubbletea reports "alt+ctrl+k"; the result is the same Combo as "ctrl+alt+k".
func FromKeyMsg(msg tea.KeyMsg) Combo {
	s := msg.String()
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		// Rune keys are reported verbatim; only an alt prefix is possible
		if msg.Alt {
			return Combo{Key: strings.TrimPrefix(s, "alt+"), Mods: ModAlt}
		}
		return Combo{Key: s}
	}
	c, err := ParseCombo(s)
	if err != nil {
		return Combo{Key: s}
	}
	return c
}

var keyAliases = map[string]string{
	"return":     "enter",
	"escape":     "esc",
	"arrowup":    "up",
	"arrowdown":  "down",
	"arrowleft":  "left",
	"arrowright": "right",
	"space":      " ",
	"spacebar":   " ",
	"pageup":     "pgup",
	"pagedown":   "pgdown",
}

func normalizeKey(k string) string {
	if len([]rune(k)) == 1 {
		// Single runes are case-sensitive: "K" and "k" are different keys
		return k
	}
	lower := strings.ToLower(k)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}
