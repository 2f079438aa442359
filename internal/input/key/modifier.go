package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// ModCommand holds the modifiers that turn a keystroke into a shortcut.
// Shift is not among them: it only selects the character a field receives.
const ModCommand = ModCtrl | ModAlt | ModMeta

// modifierNames lists modifiers in display order with the names Parse
// accepts for each. The first name is the display name.
var modifierNames = []struct {
	mod   Modifier
	names []string
}{
	{ModCtrl, []string{"Ctrl", "control", "c"}},
	{ModAlt, []string{"Alt", "option", "a"}},
	{ModShift, []string{"Shift", "s"}},
	{ModMeta, []string{"Meta", "cmd", "super", "m", "d"}},
}

// Has reports whether every modifier in mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return mod != ModNone && m&mod == mod
}

func (m Modifier) HasShift() bool { return m.Has(ModShift) }
func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }
func (m Modifier) HasMeta() bool  { return m.Has(ModMeta) }

// IsCommand reports whether a shortcut modifier is held.
func (m Modifier) IsCommand() bool {
	return m&ModCommand != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String joins the held modifiers with "+", for example "Ctrl+Shift".
func (m Modifier) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.names[0])
		}
	}
	return strings.Join(parts, "+")
}

// ModifierFromName returns the modifier called name, ignoring case, or
// ModNone.
func ModifierFromName(name string) Modifier {
	name = strings.TrimSpace(name)
	for _, mn := range modifierNames {
		for _, n := range mn.names {
			if strings.EqualFold(n, name) {
				return mn.mod
			}
		}
	}
	return ModNone
}
