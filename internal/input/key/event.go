package key

import (
	"strings"
	"unicode"
)

// Event is one key press delivered to a field. Events are comparable.
type Event struct {
	Key       Key
	Rune      rune // set for KeyRune
	Modifiers Modifier
}

func NewEvent(k Key, r rune, mods Modifier) Event {
	return Event{Key: k, Rune: r, Modifiers: mods}
}

// NewRuneEvent returns the event for typing r.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent returns the event for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar reports whether e would type a printable character.
func (e Event) IsChar() bool {
	r, ok := e.Char()
	return ok && unicode.IsPrint(r)
}

// IsModified reports whether e is a shortcut rather than plain input.
// Shift on a character or keypad key only picks the character, so it does
// not count; on any other key it does (Shift+Left extends a selection).
func (e Event) IsModified() bool {
	if e.IsRune() || e.Key.IsKeypadDigit() {
		return e.Modifiers.IsCommand()
	}
	return e.Modifiers != ModNone
}

// Char returns the character e types into a field. Keypad digits and the
// keypad decimal yield their ASCII characters.
func (e Event) Char() (rune, bool) {
	switch {
	case e.IsRune():
		return e.Rune, true
	case e.Key.IsKeypadDigit():
		return '0' + rune(e.Key-KeyKP0), true
	case e.Key == KeyKPDecimal:
		return '.', true
	}
	return 0, false
}

func (e Event) shortcut(letters string) bool {
	if !e.IsRune() || !(e.Modifiers.HasCtrl() || e.Modifiers.HasMeta()) {
		return false
	}
	return strings.ContainsRune(letters, unicode.ToLower(e.Rune))
}

// IsClipboardShortcut reports copy, paste or cut with Ctrl (Meta on macOS).
func (e Event) IsClipboardShortcut() bool { return e.shortcut("cvx") }

// IsSelectAll reports Ctrl+A or Meta+A.
func (e Event) IsSelectAll() bool { return e.shortcut("a") }

// IsEnter reports an unmodified Enter from either the main keys or the
// keypad.
func (e Event) IsEnter() bool {
	return (e.Key == KeyEnter || e.Key == KeyKPEnter) && e.Modifiers == ModNone
}

// IsRemoval reports Backspace or Delete, with or without modifiers.
func (e Event) IsRemoval() bool {
	return e.Key == KeyBackspace || e.Key == KeyDelete
}

// shortNames are the key script names used by String and Parse.
var shortNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyInsert:    "Ins",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
}

// String renders e in key script form: "a", "Space", "C-v", "BS",
// "S-Left". Shift is implied by the character for rune events.
func (e Event) String() string {
	var b strings.Builder
	for _, p := range []struct {
		on     bool
		prefix string
	}{
		{e.Modifiers.HasCtrl(), "C-"},
		{e.Modifiers.HasAlt(), "A-"},
		{e.Modifiers.HasMeta(), "M-"},
		{e.Modifiers.HasShift() && !e.IsRune(), "S-"},
	} {
		if p.on {
			b.WriteString(p.prefix)
		}
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		b.WriteString("Space")
	case e.Key == KeyRune:
		b.WriteRune(e.Rune)
	case shortNames[e.Key] != "":
		b.WriteString(shortNames[e.Key])
	default:
		b.WriteString(e.Key.String())
	}
	return b.String()
}
