package pattern

import (
	"fmt"
	"unicode"

	"github.com/dshills/keymask/internal/mask"
)

// SlotKind is the class of character a slot accepts.
type SlotKind uint8

const (
	// SlotNone marks a literal token.
	SlotNone SlotKind = iota
	// SlotDigit accepts 0-9. Written as '9' in a template.
	SlotDigit
	// SlotLetter accepts ASCII letters. Written as 'A'.
	SlotLetter
	// SlotAny accepts any printable character. Written as '*'.
	SlotAny
)

// String returns the template character for the slot kind.
func (k SlotKind) String() string {
	switch k {
	case SlotDigit:
		return "9"
	case SlotLetter:
		return "A"
	case SlotAny:
		return "*"
	default:
		return "literal"
	}
}

// Accepts reports whether r may occupy a slot of this kind.
func (k SlotKind) Accepts(r rune) bool {
	switch k {
	case SlotDigit:
		return r >= '0' && r <= '9'
	case SlotLetter:
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	case SlotAny:
		return unicode.IsPrint(r)
	default:
		return false
	}
}

// Token is one position of a template.
type Token struct {
	Slot    SlotKind
	Literal rune
}

// IsSlot reports whether the token holds user input.
func (t Token) IsSlot() bool {
	return t.Slot != SlotNone
}

// Template is a parsed mask template.
type Template struct {
	source string
	tokens []Token
	slots  int
}

// ParseTemplate parses a template such as "(999) 999-9999".
func ParseTemplate(s string) (Template, error) {
	if s == "" {
		return Template{}, ErrEmptyMask
	}

	t := Template{source: s}
	for i, r := range []rune(s) {
		switch {
		case r == '9':
			t.tokens = append(t.tokens, Token{Slot: SlotDigit})
		case r == 'A':
			t.tokens = append(t.tokens, Token{Slot: SlotLetter})
		case r == '*':
			t.tokens = append(t.tokens, Token{Slot: SlotAny})
		case mask.IsLiteral(r):
			t.tokens = append(t.tokens, Token{Literal: r})
			continue
		default:
			return Template{}, fmt.Errorf("%w: %q at %d", ErrInvalidMask, r, i)
		}
		t.slots++
	}
	return t, nil
}

// String returns the template source.
func (t Template) String() string {
	return t.source
}

// Len returns the template length, which is the maximum field length.
func (t Template) Len() int {
	return len(t.tokens)
}

// Slots returns the number of slots.
func (t Template) Slots() int {
	return t.slots
}

// Token returns the token at position i.
func (t Template) Token(i int) Token {
	return t.tokens[i]
}

// SlotAt returns the kind of the k-th slot, counting from zero.
func (t Template) SlotAt(k int) SlotKind {
	for _, tok := range t.tokens {
		if !tok.IsSlot() {
			continue
		}
		if k == 0 {
			return tok.Slot
		}
		k--
	}
	return SlotNone
}

// slotChars returns the characters of text that occupy slot positions.
func (t Template) slotChars(text []rune) []rune {
	out := make([]rune, 0, t.slots)
	for i, r := range text {
		if i >= len(t.tokens) {
			break
		}
		if t.tokens[i].IsSlot() {
			out = append(out, r)
		}
	}
	return out
}

// slotsBefore counts slot positions of text left of offset.
func (t Template) slotsBefore(text []rune, offset int) int {
	n := 0
	for i := 0; i < offset && i < len(text) && i < len(t.tokens); i++ {
		if t.tokens[i].IsSlot() {
			n++
		}
	}
	return n
}

// render lays chars out through the template. Literals are written while
// characters remain, including the literal run that directly follows the
// last character. Rendering stops at the first character its slot rejects.
// The second return value holds the output offset of each written character.
func (t Template) render(chars []rune) ([]rune, []int) {
	if len(chars) == 0 {
		return nil, nil
	}

	out := make([]rune, 0, len(t.tokens))
	pos := make([]int, 0, len(chars))
	ci := 0
	for _, tok := range t.tokens {
		if !tok.IsSlot() {
			out = append(out, tok.Literal)
			continue
		}
		if ci == len(chars) || !tok.Slot.Accepts(chars[ci]) {
			break
		}
		pos = append(pos, len(out))
		out = append(out, chars[ci])
		ci++
	}
	return out, pos
}

// caretAfter places the caret after the k-th rendered character and past
// any literal run that follows it.
func (t Template) caretAfter(out []rune, pos []int, k int) int {
	if len(out) == 0 {
		return 0
	}
	if k > len(pos) {
		return len(out)
	}

	c := 0
	if k > 0 {
		c = pos[k-1] + 1
	}
	for c < len(out) && !t.tokens[c].IsSlot() {
		c++
	}
	return c
}

// conforms reports whether text fills the template exactly.
func (t Template) conforms(text []rune) bool {
	if len(text) != len(t.tokens) {
		return false
	}
	for i, tok := range t.tokens {
		if tok.IsSlot() {
			if !tok.Slot.Accepts(text[i]) {
				return false
			}
		} else if text[i] != tok.Literal {
			return false
		}
	}
	return true
}
