package key

import (
	"fmt"
	"strings"
)

// Sequence is an ordered run of key events: a paste replayed keystroke by
// keystroke, or a key script such as "555<BS>1".
type Sequence struct {
	Events []Event
}

// FromText turns text into one rune event per character, the way a paste
// is replayed through a pattern mask. Uppercase ASCII letters carry Shift.
// Runes for which skip reports true are dropped; skip may be nil.
func FromText(text string, skip func(rune) bool) *Sequence {
	seq := &Sequence{Events: make([]Event, 0, len(text))}
	for _, r := range text {
		if skip != nil && skip(r) {
			continue
		}
		mods := ModNone
		if 'A' <= r && r <= 'Z' {
			mods = ModShift
		}
		seq.Events = append(seq.Events, NewRuneEvent(r, mods))
	}
	return seq
}

func (s *Sequence) Len() int { return len(s.Events) }

// String renders the sequence as space-separated key names, e.g. "5 5 BS".
func (s *Sequence) String() string {
	names := make([]string, len(s.Events))
	for i, e := range s.Events {
		names[i] = e.String()
	}
	return strings.Join(names, " ")
}

// ParseSequence parses a key script. A script with spaces is a list of key
// specs ("5 Ctrl+V <BS>"); without spaces every character is a key and
// bracketed names ("<BS>", "<C-a>") may be mixed in.
func ParseSequence(script string) (*Sequence, error) {
	script = strings.TrimSpace(script)
	seq := &Sequence{}
	add := func(spec string) error {
		ev, err := Parse(spec)
		if err != nil {
			return err
		}
		seq.Events = append(seq.Events, ev)
		return nil
	}

	if strings.ContainsRune(script, ' ') {
		for _, word := range strings.Fields(script) {
			if err := add(word); err != nil {
				return nil, err
			}
		}
		return seq, nil
	}

	for rest := script; rest != ""; {
		if rest[0] == '<' {
			if end := strings.IndexByte(rest, '>'); end > 1 {
				if err := add(rest[:end+1]); err != nil {
					return nil, err
				}
				rest = rest[end+1:]
				continue
			}
		}
		r := []rune(rest)[0]
		ev, err := parseKeyWithModifiers(string(r), ModNone)
		if err != nil {
			return nil, err
		}
		seq.Events = append(seq.Events, ev)
		rest = rest[len(string(r)):]
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for scripts known to be valid; it
// panics otherwise.
func MustParseSequence(script string) *Sequence {
	seq, err := ParseSequence(script)
	if err != nil {
		panic(fmt.Sprintf("key: invalid script %q: %v", script, err))
	}
	return seq
}
