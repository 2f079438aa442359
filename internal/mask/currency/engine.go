// Package currency implements a locale currency input mask backed by
// golang.org/x/text.
package currency

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/input/key"
	"github.com/dshills/keymask/internal/mask"
)

var (
	ErrInvalidLocale    = errors.New("currency: invalid locale")
	ErrInvalidCurrency  = errors.New("currency: invalid currency code")
	ErrInvalidDecimals  = errors.New("currency: invalid decimals")
	ErrValueOutOfRange  = errors.New("currency: value out of range")
	ErrUnsupportedValue = errors.New("currency: unsupported value")
)

// Options configures a currency engine.
type Options struct {
	Currency  string
	Locale    string
	Decimals  int
	MaxDigits int
}

// DefaultOptions returns USD in en-US with two decimals.
func DefaultOptions() Options {
	return Options{
		Currency:  "USD",
		Locale:    "en-US",
		Decimals:  2,
		MaxDigits: MaxDigits,
	}
}

// Engine keeps a field formatted as a locale currency amount. Every edit
// works on the digits of the field: the digits are spliced, read as minor
// units and formatted again.
type Engine struct {
	opts Options
	fmt  *Formatter
}

// New creates a currency engine. Empty Currency and Locale fall back to
// DefaultOptions; Decimals is taken as given.
func New(opts Options) (*Engine, error) {
	def := DefaultOptions()
	if opts.Currency == "" {
		opts.Currency = def.Currency
	}
	if opts.Locale == "" {
		opts.Locale = def.Locale
	}
	if opts.MaxDigits <= 0 || opts.MaxDigits > MaxDigits {
		opts.MaxDigits = MaxDigits
	}

	f, err := NewFormatter(opts.Locale, opts.Currency, opts.Decimals)
	if err != nil {
		return nil, err
	}
	return &Engine{opts: opts, fmt: f}, nil
}

// Options returns the engine configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Formatter returns the formatter used for rendering.
func (e *Engine) Formatter() *Formatter {
	return e.fmt
}

// ToCurrency formats x.
func (e *Engine) ToCurrency(x float64) string {
	return e.fmt.FormatFloat(x)
}

// ToNumber reads the amount in formatted text. It returns false when the
// text holds no digits.
func (e *Engine) ToNumber(text string) (float64, bool) {
	v := e.ValueOf(text)
	if v.IsNull() {
		return 0, false
	}
	return v.Float64(), true
}

// ValueOf reads the amount in formatted text. Amounts are never negative,
// so a sign in text is ignored.
func (e *Engine) ValueOf(text string) Value {
	digits := mask.ExtractDigits(text)
	if len(digits) == 0 {
		return Null()
	}
	v, err := FromDigits(digits, e.opts.Decimals)
	if err != nil {
		return Null()
	}
	return v
}

// Raw implements mask.Engine. It returns a float64, or nil when the text
// holds no amount.
func (e *Engine) Raw(text string) any {
	return e.ValueOf(text).Raw()
}

// Set implements mask.Engine. raw may be nil, a Value, a number or a
// numeric string. Negative amounts are out of range.
func (e *Engine) Set(raw any) (field.State, error) {
	v, err := e.toValue(raw)
	if err != nil {
		return field.State{}, err
	}
	return field.StateAtEnd(e.fmt.Format(v)), nil
}

// Normalize reformats text found in a field at bind time.
func (e *Engine) Normalize(text string) field.State {
	return field.StateAtEnd(e.fmt.Format(e.ValueOf(text)))
}

func (e *Engine) toValue(raw any) (Value, error) {
	v, err := e.parseValue(raw)
	if err != nil {
		return Value{}, err
	}
	if !v.IsNull() && v.Minor() < 0 {
		return Value{}, fmt.Errorf("%w: %v is negative", ErrValueOutOfRange, raw)
	}
	return v, nil
}

func (e *Engine) parseValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		if v.IsNull() {
			return v, nil
		}
		return FromFloat(v.Float64(), e.opts.Decimals)
	case float64:
		return FromFloat(v, e.opts.Decimals)
	case float32:
		return FromFloat(float64(v), e.opts.Decimals)
	case int:
		return FromFloat(float64(v), e.opts.Decimals)
	case int64:
		return FromFloat(float64(v), e.opts.Decimals)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return Null(), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrUnsupportedValue, v)
		}
		return FromFloat(f, e.opts.Decimals)
	}
	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
}

// Apply implements mask.Engine.
func (e *Engine) Apply(s field.State, ev field.Event) mask.Result {
	switch ev.Kind {
	case field.EventKeyDown:
		return e.keyDown(s, ev.Key)
	case field.EventPaste:
		digits := mask.ExtractDigits(ev.Text)
		if len(digits) == 0 {
			return mask.Reject(s)
		}
		return e.splice(s, digits)
	case field.EventInput:
		v := e.ValueOf(ev.Text)
		res := e.commit(s, v)
		// The host already changed the text; always announce it.
		res.Change = &mask.Change{Raw: v.Raw(), Formatted: res.State.Text}
		return res
	}
	return mask.Pass(s)
}

func (e *Engine) keyDown(s field.State, ev key.Event) mask.Result {
	if ev.IsClipboardShortcut() || ev.IsModified() ||
		ev.Key.IsNavigationKey() || ev.Key == key.KeyTab ||
		ev.Key == key.KeyEnter || ev.Key == key.KeyKPEnter || ev.Key == key.KeyEscape {
		return mask.Pass(s)
	}

	switch ev.Key {
	case key.KeyBackspace:
		return e.remove(s, true)
	case key.KeyDelete:
		return e.remove(s, false)
	}

	r, ok := ev.Char()
	if !ok {
		return mask.Pass(s)
	}
	if !mask.IsDigit(r) {
		if unicode.IsPrint(r) {
			return mask.Reject(s)
		}
		return mask.Pass(s)
	}
	return e.splice(s, []rune{r})
}

// bounds returns the digit counts left of the selection start and end.
func bounds(s field.State) (lo, hi int, text []rune) {
	text = s.Runes()
	lo = mask.CountDigits(text[:s.Selection.Start()])
	hi = mask.CountDigits(text[:s.Selection.End()])
	return lo, hi, text
}

// splice replaces the digits inside the selection with ins.
func (e *Engine) splice(s field.State, ins []rune) mask.Result {
	lo, hi, text := bounds(s)
	digits := mask.ExtractDigits(s.Text)

	next := make([]rune, 0, len(digits)+len(ins))
	next = append(next, digits[:lo]...)
	next = append(next, ins...)
	next = append(next, digits[hi:]...)

	if significant(next) > e.opts.MaxDigits {
		return mask.Reject(s)
	}
	v, err := FromDigits(next, e.opts.Decimals)
	if err != nil {
		return mask.Reject(s)
	}

	atEnd := s.Selection.End() == len(text)
	return e.commitCaret(s, v, next, lo+len(ins), atEnd)
}

// remove handles Backspace (back) and Delete.
func (e *Engine) remove(s field.State, back bool) mask.Result {
	if s.IsFullySelected() {
		return e.commit(s, Null())
	}

	lo, hi, _ := bounds(s)
	digits := mask.ExtractDigits(s.Text)
	if lo == hi {
		if !s.Selection.IsEmpty() {
			return mask.Accept(s, s.WithCaret(s.Selection.Start()), e.Raw(s.Text))
		}
		if back {
			if lo == 0 {
				return mask.Reject(s)
			}
			lo--
		} else {
			if hi >= len(digits) {
				return mask.Reject(s)
			}
			hi++
		}
	}

	next := make([]rune, 0, len(digits))
	next = append(next, digits[:lo]...)
	next = append(next, digits[hi:]...)

	v, err := FromDigits(next, e.opts.Decimals)
	if err != nil {
		return mask.Reject(s)
	}
	return e.commitCaret(s, v, next, lo, false)
}

// commitCaret formats v and places the caret so that the digit the user
// just edited stays left of it. n counts the spliced digits left of the
// caret; zero padding or stripping shifts it by the same amount.
func (e *Engine) commitCaret(prev field.State, v Value, spliced []rune, n int, atEnd bool) mask.Result {
	formatted := []rune(e.fmt.Format(v))
	caret := len(formatted)
	if !atEnd {
		n += mask.CountDigits(formatted) - len(spliced)
		caret = mask.CaretAfterDigits(formatted, n)
	}
	next := field.NewState(string(formatted), field.NewCaret(caret))
	return e.accept(prev, next, v)
}

func (e *Engine) commit(prev field.State, v Value) mask.Result {
	return e.accept(prev, field.StateAtEnd(e.fmt.Format(v)), v)
}

// accept emits a change only when the raw value or the text moved.
func (e *Engine) accept(prev, next field.State, v Value) mask.Result {
	res := mask.Result{State: next, Handled: true}
	before := e.ValueOf(prev.Text)
	if next.Text != prev.Text || before.IsNull() != v.IsNull() || before.Minor() != v.Minor() {
		res.Change = &mask.Change{Raw: v.Raw(), Formatted: next.Text}
	}
	return res
}

// significant counts digits after leading zeros.
func significant(digits []rune) int {
	for i, r := range digits {
		if r != '0' {
			return len(digits) - i
		}
	}
	return 0
}

// Compile-time interface checks.
var (
	_ mask.Engine     = (*Engine)(nil)
	_ mask.Normalizer = (*Engine)(nil)
)
