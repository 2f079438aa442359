// Package pattern implements fixed-width input masks such as
// "(999) 999-9999". Slot characters are kept apart from literals: every
// edit works on the slot characters and lays them out through the template
// again, so literals are never typed or deleted by the user.
package pattern

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/input/key"
	"github.com/dshills/keymask/internal/mask"
)

var (
	// ErrEmptyMask is returned when no template is configured.
	ErrEmptyMask = errors.New("pattern: empty mask")
	// ErrInvalidMask is returned for a template character outside the
	// slot and literal sets.
	ErrInvalidMask = errors.New("pattern: invalid mask character")
	// ErrInvalidDataType is returned for an unknown data type name.
	ErrInvalidDataType = errors.New("pattern: invalid data type")
	// ErrUnsupportedValue is returned by Set for values that are not text.
	ErrUnsupportedValue = errors.New("pattern: unsupported value")
)

// Options configures a pattern engine.
type Options struct {
	// Mask is a template or the name of a preset in mask.Masks.
	Mask string

	ForceUpper bool
	ForceLower bool

	// UseEnterKey rewrites date/time values in canonical form on Enter.
	UseEnterKey bool

	// ValidateDataType clears values that are not real dates or times on blur.
	ValidateDataType bool

	DataType DataType

	// PlaceHolder is shown by hosts while the field is empty.
	PlaceHolder string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Engine enforces a fixed-width template on a field.
//
// Engine keeps the value snapshot restored by Escape and is therefore bound
// to a single field.
type Engine struct {
	opts     Options
	tmpl     Template
	original string
}

// New creates a pattern engine.
func New(opts Options) (*Engine, error) {
	if opts.Mask == "" {
		opts.Mask = opts.DataType.Template()
	}
	tmpl, err := ParseTemplate(mask.Lookup(opts.Mask))
	if err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{opts: opts, tmpl: tmpl}, nil
}

// Template returns the parsed template.
func (e *Engine) Template() Template {
	return e.tmpl
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// PlaceHolder returns the configured placeholder text.
func (e *Engine) PlaceHolder() string {
	return e.opts.PlaceHolder
}

// OriginalValue returns the snapshot Escape restores.
func (e *Engine) OriginalValue() string {
	return e.original
}

// Apply implements mask.Engine.
func (e *Engine) Apply(s field.State, ev field.Event) mask.Result {
	switch ev.Kind {
	case field.EventKeyDown:
		return e.keyDown(s, ev.Key)
	case field.EventPaste:
		return e.paste(s, ev.Text)
	case field.EventBlur:
		return e.blur(s)
	}
	return mask.Pass(s)
}

// Raw implements mask.Engine. It returns the unmasked slot characters.
func (e *Engine) Raw(text string) any {
	return e.Unformat(text)
}

// Set implements mask.Engine. raw is the unmasked value, as returned by Raw.
func (e *Engine) Set(raw any) (field.State, error) {
	var text string
	switch v := raw.(type) {
	case nil:
	case string:
		text = v
	case fmt.Stringer:
		text = v.String()
	default:
		return field.State{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
	return field.StateAtEnd(e.Format(text)), nil
}

// Normalize reformats text found in a field at bind time by replaying it as
// a paste into the empty field. Date/time values are first canonicalised.
func (e *Engine) Normalize(text string) field.State {
	if text == "" {
		return field.State{}
	}
	if e.opts.DataType != None {
		text = canonical(e.opts.DataType, parseDateTime(e.opts.DataType, text, e.now()))
	}
	return e.paste(field.State{}, text).State
}

// Format lays the unmasked value raw out through the template. Literal
// characters in raw are ignored and rendering stops at the first character
// its slot rejects.
func (e *Engine) Format(raw string) string {
	chars := make([]rune, 0, len(raw))
	for _, r := range raw {
		if mask.IsLiteral(r) {
			continue
		}
		if len(chars) == e.tmpl.Slots() {
			break
		}
		chars = append(chars, e.force(r))
	}
	out, _ := e.tmpl.render(chars)
	return string(out)
}

// Unformat returns the slot characters of formatted text.
func (e *Engine) Unformat(text string) string {
	return string(e.tmpl.slotChars([]rune(text)))
}

func (e *Engine) now() time.Time {
	return e.opts.Now().UTC().Truncate(time.Second)
}

func (e *Engine) force(r rune) rune {
	if e.opts.ForceUpper {
		r = unicode.ToUpper(r)
	}
	if e.opts.ForceLower {
		r = unicode.ToLower(r)
	}
	return r
}

func (e *Engine) accept(prev, next field.State) mask.Result {
	return mask.Accept(prev, next, e.Unformat(next.Text))
}

func passThrough(ev key.Event) bool {
	return ev.IsClipboardShortcut() ||
		ev.Key.IsNavigationKey() ||
		ev.Key == key.KeyTab ||
		ev.IsModified()
}

func (e *Engine) keyDown(s field.State, ev key.Event) mask.Result {
	if passThrough(ev) {
		return mask.Pass(s)
	}
	prev := s

	if s.IsFullySelected() {
		e.original = s.Text
		s = field.State{}
	}

	switch {
	case ev.Key == key.KeyEscape:
		if e.original != "" {
			s = field.StateAtEnd(e.original)
		}
		return e.accept(prev, s)

	case ev.IsRemoval():
		if next, ok := e.remove(s, ev.Key == key.KeyBackspace); ok {
			return e.accept(prev, next)
		}
		return e.accept(prev, s)

	case ev.IsEnter():
		if e.opts.UseEnterKey && e.opts.DataType != None {
			d := e.opts.DataType
			s = field.StateAtEnd(canonical(d, parseDateTime(d, s.Text, e.now())))
		}
		return e.accept(prev, s)
	}

	r, ok := ev.Char()
	if !ok || !unicode.IsPrint(r) {
		return e.accept(prev, s)
	}
	if next, ok := e.insert(s, r); ok {
		return e.accept(prev, next)
	}
	return e.accept(prev, s)
}

// remove deletes the slot character targeted by Backspace (back) or
// Delete, or every slot character inside a selection, and re-flows the
// rest through the template. It reports false when nothing was removed or
// when a remaining character no longer fits its shifted slot.
func (e *Engine) remove(s field.State, back bool) (field.State, bool) {
	text := s.Runes()
	chars := e.tmpl.slotChars(text)

	lo := e.tmpl.slotsBefore(text, s.Selection.Start())
	hi := e.tmpl.slotsBefore(text, s.Selection.End())
	if lo == hi {
		if !s.Selection.IsEmpty() {
			return s.WithCaret(s.Selection.Start()), true
		}
		if back {
			if lo == 0 {
				return s, false
			}
			lo--
		} else {
			if hi >= len(chars) {
				return s, false
			}
			hi++
		}
	}

	rest := make([]rune, 0, len(chars)-(hi-lo))
	rest = append(rest, chars[:lo]...)
	rest = append(rest, chars[hi:]...)

	out, pos := e.tmpl.render(rest)
	if len(pos) != len(rest) {
		return s, false
	}
	return field.NewState(string(out), field.NewCaret(e.tmpl.caretAfter(out, pos, lo))), true
}

// insert places r in the slot at the caret. A selection is removed first.
// Insertion fails when shifting the following characters right would put
// one of them in a slot that rejects it.
func (e *Engine) insert(s field.State, r rune) (field.State, bool) {
	if !s.Selection.IsEmpty() {
		next, ok := e.remove(s, true)
		if !ok {
			return s, false
		}
		s = next
	}

	text := s.Runes()
	if len(text) >= e.tmpl.Len() {
		return s, false
	}

	chars := e.tmpl.slotChars(text)
	if len(chars) >= e.tmpl.Slots() {
		return s, false
	}

	k := e.tmpl.slotsBefore(text, s.Caret())
	if !e.tmpl.SlotAt(k).Accepts(r) {
		return s, false
	}

	next := make([]rune, 0, len(chars)+1)
	next = append(next, chars[:k]...)
	next = append(next, e.force(r))
	next = append(next, chars[k:]...)

	out, pos := e.tmpl.render(next)
	if len(pos) != len(next) {
		return s, false
	}
	return field.NewState(string(out), field.NewCaret(e.tmpl.caretAfter(out, pos, k+1))), true
}

// paste replays text as single keystrokes, skipping literal characters.
func (e *Engine) paste(s field.State, text string) mask.Result {
	prev := s
	seq := key.FromText(text, mask.IsLiteral)
	for _, ev := range seq.Events {
		res := e.keyDown(s, ev)
		if res.Handled {
			s = res.State
		}
	}
	return e.accept(prev, s)
}

func (e *Engine) blur(s field.State) mask.Result {
	text := s.Runes()
	if len(text) == 0 {
		return mask.Pass(s)
	}

	valid := e.tmpl.conforms(text)
	if valid && e.opts.ValidateDataType && e.opts.DataType != None {
		valid = validDateTime(e.opts.DataType, strings.TrimSpace(s.Text))
	}
	if valid {
		return mask.Pass(s)
	}
	return e.accept(s, field.State{})
}

var (
	_ mask.Engine     = (*Engine)(nil)
	_ mask.Normalizer = (*Engine)(nil)
)
