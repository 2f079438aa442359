package currency

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type placement int

const (
	symbolBefore placement = iota
	symbolBeforeSpaced
	symbolAfter
)

const symbolSeparator = "\u00a0"

// Symbol placement by full locale tag, then by language. Anything missing
// writes the symbol first with no space.
var (
	regionPlacement = map[string]placement{
		"de-AT": symbolBeforeSpaced, "de-CH": symbolBeforeSpaced, "de-LI": symbolBeforeSpaced,
		"it-CH": symbolBeforeSpaced, "pt-BR": symbolBeforeSpaced,
		"es-MX": symbolBefore, "es-US": symbolBefore, "es-419": symbolBefore,
	}
	languagePlacement = map[string]placement{
		"nl": symbolBeforeSpaced,
		"de": symbolAfter, "fr": symbolAfter, "es": symbolAfter, "it": symbolAfter, "pt": symbolAfter,
		"ru": symbolAfter, "pl": symbolAfter, "cs": symbolAfter, "sk": symbolAfter, "sv": symbolAfter,
		"nb": symbolAfter, "da": symbolAfter, "fi": symbolAfter, "uk": symbolAfter, "hu": symbolAfter,
		"ro": symbolAfter, "bg": symbolAfter, "hr": symbolAfter, "sl": symbolAfter, "lt": symbolAfter,
		"lv": symbolAfter, "et": symbolAfter, "el": symbolAfter, "tr": symbolAfter, "vi": symbolAfter,
	}
)

func placementFor(tag language.Tag) placement {
	base, _ := tag.Base()
	if region, conf := tag.Region(); conf == language.Exact {
		if p, ok := regionPlacement[base.String()+"-"+region.String()]; ok {
			return p
		}
	}
	return languagePlacement[base.String()]
}

// Formatter renders amounts as locale currency strings.
type Formatter struct {
	tag      language.Tag
	unit     currency.Unit
	decimals int
	printer  *message.Printer
	symbol   string
	place    placement
}

// NewFormatter creates a formatter for a BCP 47 locale and an ISO 4217
// currency code.
func NewFormatter(locale, code string, decimals int) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, locale, err)
	}
	// Digits must stay ASCII for caret reconciliation.
	if latn, err := tag.SetTypeForKey("nu", "latn"); err == nil {
		tag = latn
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCurrency, code, err)
	}
	if decimals < 0 || decimals > 6 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDecimals, decimals)
	}

	p := message.NewPrinter(tag)
	return &Formatter{
		tag:      tag,
		unit:     unit,
		decimals: decimals,
		printer:  p,
		symbol:   p.Sprint(currency.Symbol(unit)),
		place:    placementFor(tag),
	}, nil
}

// Locale returns the formatting locale.
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Currency returns the currency unit.
func (f *Formatter) Currency() currency.Unit {
	return f.unit
}

// Decimals returns the number of fractional digits.
func (f *Formatter) Decimals() int {
	return f.decimals
}

// Symbol returns the localized currency symbol.
func (f *Formatter) Symbol() string {
	return f.symbol
}

// Format renders v, or "" when v is null.
func (f *Formatter) Format(v Value) string {
	if v.IsNull() {
		return ""
	}
	return f.FormatFloat(v.Float64())
}

// FormatFloat renders x with the formatter's decimals.
func (f *Formatter) FormatFloat(x float64) string {
	neg := x < 0
	amount := f.printer.Sprint(number.Decimal(math.Abs(x), number.Scale(f.decimals)))

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	switch f.place {
	case symbolAfter:
		sb.WriteString(amount)
		sb.WriteString(symbolSeparator)
		sb.WriteString(f.symbol)
	case symbolBeforeSpaced:
		sb.WriteString(f.symbol)
		sb.WriteString(symbolSeparator)
		sb.WriteString(amount)
	default:
		sb.WriteString(f.symbol)
		sb.WriteString(amount)
	}
	return sb.String()
}
