package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptySpec   = errors.New("key: empty key spec")
	ErrInvalidSpec = errors.New("key: invalid key spec")
)

// Parse reads one key spec. Accepted forms:
//
//	"5", "A", "@"              a character (uppercase implies Shift)
//	"Enter", "BS", "KP5"       a named key
//	"Ctrl+V", "Shift+Left"     modifiers joined with "+"
//	"<C-v>", "<S-Left>", "<BS>" bracketed, modifiers joined with "-"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Event{}, ErrEmptySpec
	case len(spec) > 2 && spec[0] == '<' && spec[len(spec)-1] == '>':
		return parseJoined(spec[1:len(spec)-1], "-")
	case len(spec) > 1 && strings.Contains(spec, "+"):
		return parseJoined(spec, "+")
	}
	return parseKeyWithModifiers(spec, ModNone)
}

// parseJoined parses modifiers and a key separated by sep. A trailing
// empty part names sep itself, as in "<C-->" or "Ctrl++".
func parseJoined(spec, sep string) (Event, error) {
	if strings.TrimSpace(spec) == "" {
		return Event{}, ErrInvalidSpec
	}
	parts := strings.Split(spec, sep)
	last := parts[len(parts)-1]
	if last == "" && len(parts) > 1 {
		last, parts = sep, parts[:len(parts)-1]
	}

	var mods Modifier
	for _, name := range parts[:len(parts)-1] {
		m := ModifierFromName(name)
		if m == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
		}
		mods = mods.With(m)
	}
	return parseKeyWithModifiers(last, mods)
}

// parseKeyWithModifiers resolves a character or key name. Ctrl and Meta
// shortcuts are stored lowercase.
func parseKeyWithModifiers(name string, mods Modifier) (Event, error) {
	if name != " " && strings.TrimSpace(name) == "" {
		return Event{}, ErrInvalidSpec
	}

	if r := []rune(name); len(r) == 1 {
		c := r[0]
		if mods.HasCtrl() || mods.HasMeta() {
			c = unicode.ToLower(c)
		} else if unicode.IsUpper(c) {
			mods = mods.With(ModShift)
		}
		return NewRuneEvent(c, mods), nil
	}

	lower := strings.ToLower(strings.TrimSpace(name))
	if r, ok := map[string]rune{"space": ' ', "lt": '<', "gt": '>'}[lower]; ok {
		return NewRuneEvent(r, mods), nil
	}
	if k := KeyFromName(lower); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, name)
}

// MustParse is Parse for specs known to be valid; it panics otherwise.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(fmt.Sprintf("key: invalid spec %q: %v", spec, err))
	}
	return ev
}
