package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec     string
		wantKey  Key
		wantRune rune
		wantMod  Modifier
	}{
		{"a", KeyRune, 'a', ModNone},
		{"A", KeyRune, 'A', ModShift},
		{"1", KeyRune, '1', ModNone},
		{"+", KeyRune, '+', ModNone},
		{"Space", KeyRune, ' ', ModNone},
		{"Enter", KeyEnter, 0, ModNone},
		{"backspace", KeyBackspace, 0, ModNone},
		{"KP5", KeyKP5, 0, ModNone},
		{"Ctrl+V", KeyRune, 'v', ModCtrl},
		{"Shift+Left", KeyLeft, 0, ModShift},
		{"Ctrl++", KeyRune, '+', ModCtrl},
		{"<C-v>", KeyRune, 'v', ModCtrl},
		{"<BS>", KeyBackspace, 0, ModNone},
		{"<Del>", KeyDelete, 0, ModNone},
		{"<S-Left>", KeyLeft, 0, ModShift},
		{"<Esc>", KeyEscape, 0, ModNone},
		{"<lt>", KeyRune, '<', ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			event, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if event.Key != tt.wantKey {
				t.Errorf("key = %v, want %v", event.Key, tt.wantKey)
			}
			if event.Rune != tt.wantRune {
				t.Errorf("rune = %q, want %q", event.Rune, tt.wantRune)
			}
			if event.Modifiers != tt.wantMod {
				t.Errorf("modifiers = %v, want %v", event.Modifiers, tt.wantMod)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+x", ErrInvalidSpec},
		{"<Q-x>", ErrInvalidSpec},
		{"NotAKey", ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid spec")
		}
	}()
	MustParse("NotAKey")
}
