package field

import "unicode/utf8"

// State is the complete editable state of a text field: its text and
// its selection. Offsets are rune offsets into Text.
// State is an immutable value type.
type State struct {
	Text      string
	Selection Selection
}

// NewState creates a state with the selection clamped to the text.
func NewState(text string, sel Selection) State {
	return State{Text: text, Selection: sel.Clamp(utf8.RuneCountInString(text))}
}

// StateAtEnd creates a state with the caret after the last character.
func StateAtEnd(text string) State {
	return State{Text: text, Selection: NewCaret(utf8.RuneCountInString(text))}
}

// Len returns the text length in runes.
func (s State) Len() int {
	return utf8.RuneCountInString(s.Text)
}

// Runes returns the text as runes.
func (s State) Runes() []rune {
	return []rune(s.Text)
}

// Caret returns the caret offset.
func (s State) Caret() int {
	return s.Selection.Caret()
}

// IsFullySelected reports whether a non-empty text is selected from start to end.
func (s State) IsFullySelected() bool {
	n := s.Len()
	return n > 0 && s.Selection.Start() == 0 && s.Selection.End() == n
}

// SelectAll returns the state with the whole text selected.
func (s State) SelectAll() State {
	s.Selection = NewSelection(0, s.Len())
	return s
}

// WithCaret returns the state with a collapsed caret at offset.
func (s State) WithCaret(offset int) State {
	s.Selection = NewCaret(clamp(offset, s.Len()))
	return s
}

// Splice replaces runes in [start, end) with insert and places the caret
// after the inserted text.
func (s State) Splice(start, end int, insert string) State {
	runes := s.Runes()
	start = clamp(start, len(runes))
	end = clamp(end, len(runes))
	if end < start {
		start, end = end, start
	}

	ins := []rune(insert)
	out := make([]rune, 0, len(runes)-(end-start)+len(ins))
	out = append(out, runes[:start]...)
	out = append(out, ins...)
	out = append(out, runes[end:]...)

	return State{Text: string(out), Selection: NewCaret(start + len(ins))}
}

// ReplaceSelection replaces the selected text (or inserts at the caret).
func (s State) ReplaceSelection(insert string) State {
	return s.Splice(s.Selection.Start(), s.Selection.End(), insert)
}
