package key

import (
	"testing"
)

func TestNewRuneEvent(t *testing.T) {
	e := NewRuneEvent('a', ModNone)
	if e.Key != KeyRune {
		t.Errorf("NewRuneEvent key = %v, want KeyRune", e.Key)
	}
	if e.Rune != 'a' {
		t.Errorf("NewRuneEvent rune = %q, want 'a'", e.Rune)
	}
	if e != NewEvent(KeyRune, 'a', ModNone) {
		t.Errorf("NewRuneEvent = %#v, want a plain rune event", e)
	}
}

func TestEventIsModified(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"plain rune", NewRuneEvent('a', ModNone), false},
		{"shifted rune", NewRuneEvent('A', ModShift), false},
		{"ctrl rune", NewRuneEvent('v', ModCtrl), true},
		{"meta rune", NewRuneEvent('v', ModMeta), true},
		{"plain special", NewSpecialEvent(KeyLeft, ModNone), false},
		{"shifted special", NewSpecialEvent(KeyLeft, ModShift), true},
		{"shifted keypad", NewSpecialEvent(KeyKP4, ModShift), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsModified(); got != tt.want {
				t.Errorf("IsModified() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventChar(t *testing.T) {
	tests := []struct {
		name   string
		event  Event
		want   rune
		wantOK bool
	}{
		{"rune", NewRuneEvent('x', ModNone), 'x', true},
		{"keypad digit", NewSpecialEvent(KeyKP7, ModNone), '7', true},
		{"keypad zero", NewSpecialEvent(KeyKP0, ModNone), '0', true},
		{"keypad decimal", NewSpecialEvent(KeyKPDecimal, ModNone), '.', true},
		{"backspace", NewSpecialEvent(KeyBackspace, ModNone), 0, false},
		{"zero rune", Event{Key: KeyRune}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.event.Char()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Char() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestEventShortcuts(t *testing.T) {
	if !NewRuneEvent('v', ModCtrl).IsClipboardShortcut() {
		t.Error("Ctrl+V should be a clipboard shortcut")
	}
	if !NewRuneEvent('C', ModCtrl|ModShift).IsClipboardShortcut() {
		t.Error("Ctrl+Shift+C should be a clipboard shortcut")
	}
	if NewRuneEvent('v', ModNone).IsClipboardShortcut() {
		t.Error("plain v is not a clipboard shortcut")
	}
	if !NewRuneEvent('a', ModMeta).IsSelectAll() {
		t.Error("Meta+A should select all")
	}
	if NewRuneEvent('a', ModNone).IsSelectAll() {
		t.Error("plain a should not select all")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('A', ModShift), "A"},
		{NewRuneEvent(' ', ModNone), "Space"},
		{NewRuneEvent('v', ModCtrl), "C-v"},
		{NewSpecialEvent(KeyBackspace, ModNone), "BS"},
		{NewSpecialEvent(KeyLeft, ModShift), "S-Left"},
		{NewSpecialEvent(KeyKP5, ModNone), "KP5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventPredicates(t *testing.T) {
	if !NewSpecialEvent(KeyKPEnter, ModNone).IsEnter() {
		t.Error("IsEnter() = false for keypad Enter")
	}
	if NewSpecialEvent(KeyEnter, ModShift).IsEnter() {
		t.Error("IsEnter() = true for Shift+Enter")
	}
	if !NewSpecialEvent(KeyBackspace, ModCtrl).IsRemoval() {
		t.Error("IsRemoval() = false for Ctrl+Backspace")
	}
	if !NewSpecialEvent(KeyDelete, ModNone).IsRemoval() {
		t.Error("IsRemoval() = false for Delete")
	}
	if NewRuneEvent('x', ModNone).IsRemoval() {
		t.Error("IsRemoval() = true for a character")
	}
	if !NewSpecialEvent(KeyKP3, ModNone).IsChar() {
		t.Error("IsChar() = false for a keypad digit")
	}
	if NewRuneEvent('\t', ModNone).IsChar() {
		t.Error("IsChar() = true for a tab rune")
	}
}
