// Package hotkey parses global key combinations and delivers their presses
// to a callback. It holds no OS state; the platform binding lives in
// hotkey/osbind so that programs which never register a hotkey do not link
// the window system.
package hotkey

import (
	"fmt"
	"strings"
)

// Modifier is a key held together with the main key.
type Modifier int

const (
	ModCtrl Modifier = iota
	ModShift
	// ModAlt is Alt on Windows and X11, Option on macOS.
	ModAlt
)

func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "ctrl"
	case ModShift:
		return "shift"
	case ModAlt:
		return "alt"
	default:
		return fmt.Sprintf("Modifier(%d)", int(m))
	}
}

// Key is the lower-case name of a non-modifier key: "f1".."f12", "a".."z"
// or "0".."9".
type Key string

// Keys lists every key Parse accepts.
var Keys = func() map[Key]bool {
	m := map[Key]bool{}
	for i := 1; i <= 12; i++ {
		m[Key(fmt.Sprintf("f%d", i))] = true
	}
	for c := 'a'; c <= 'z'; c++ {
		m[Key(string(c))] = true
	}
	for c := '0'; c <= '9'; c++ {
		m[Key(string(c))] = true
	}
	return m
}()

// Combo is a parsed key combination such as "ctrl+shift+f10".
type Combo struct {
	Mods []Modifier
	Key  Key
	text string
}

func (c Combo) String() string { return c.text }

// Parse reads a "+" separated combination. Modifiers are ctrl, shift and
// alt; exactly one non-modifier key is required.
func Parse(s string) (Combo, error) {
	c := Combo{text: strings.ToLower(strings.ReplaceAll(s, " ", ""))}
	if c.text == "" {
		return Combo{}, fmt.Errorf("empty hotkey")
	}

	var haveKey bool
	seen := map[Modifier]bool{}
	for _, part := range strings.Split(c.text, "+") {
		mod, isMod := Modifier(-1), true
		switch part {
		case "ctrl", "control":
			mod = ModCtrl
		case "shift":
			mod = ModShift
		case "alt", "option":
			mod = ModAlt
		default:
			isMod = false
		}
		if isMod {
			if seen[mod] {
				return Combo{}, fmt.Errorf("hotkey %q: %s repeated", s, mod)
			}
			seen[mod] = true
			c.Mods = append(c.Mods, mod)
			continue
		}

		if !Keys[Key(part)] {
			return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", s, part)
		}
		if haveKey {
			return Combo{}, fmt.Errorf("hotkey %q: more than one key", s)
		}
		c.Key, haveKey = Key(part), true
	}
	if !haveKey {
		return Combo{}, fmt.Errorf("hotkey %q: no key", s)
	}
	return c, nil
}
