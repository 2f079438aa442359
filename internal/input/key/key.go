package key

import (
	"fmt"
	"strings"
)

// Key identifies a key. Character keys are KeyRune with the character in
// Event.Rune.
type Key uint16

const (
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Keypad keys. Some terminals report them separately from the main
	// digits; masks treat KP0..KP9 and KPDecimal as the characters they
	// print.
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPEnter

	KeyRune
)

// keyNames holds the display name of each named key followed by the
// aliases KeyFromName accepts. Keypad digits are derived.
var keyNames = map[Key][]string{
	KeyNone:      {"None"},
	KeyEscape:    {"Escape", "esc"},
	KeyEnter:     {"Enter", "return", "cr"},
	KeyTab:       {"Tab"},
	KeyBackspace: {"Backspace", "bs"},
	KeyDelete:    {"Delete", "del"},
	KeyInsert:    {"Insert", "ins"},
	KeyHome:      {"Home"},
	KeyEnd:       {"End"},
	KeyPageUp:    {"PageUp", "pgup"},
	KeyPageDown:  {"PageDown", "pgdn"},
	KeyUp:        {"Up"},
	KeyDown:      {"Down"},
	KeyLeft:      {"Left"},
	KeyRight:     {"Right"},
	KeyKPDecimal: {"KP."},
	KeyKPEnter:   {"KPEnter"},
	KeyRune:      {"Rune"},
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key)
	for k, names := range keyNames {
		if k == KeyRune {
			continue
		}
		for _, n := range names {
			m[strings.ToLower(n)] = k
		}
	}
	for k := KeyKP0; k <= KeyKP9; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

func (k Key) String() string {
	if k.IsKeypadDigit() {
		return fmt.Sprintf("KP%d", k-KeyKP0)
	}
	if names, ok := keyNames[k]; ok {
		return names[0]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsNavigationKey reports keys that only move the caret.
func (k Key) IsNavigationKey() bool {
	return k >= KeyHome && k <= KeyRight
}

// IsKeypadDigit reports KP0 through KP9.
func (k Key) IsKeypadDigit() bool {
	return k >= KeyKP0 && k <= KeyKP9
}

// KeyFromName looks a key up by name or alias, ignoring case. It returns
// KeyNone for unknown names.
func KeyFromName(name string) Key {
	return keysByName[strings.ToLower(strings.TrimSpace(name))]
}
