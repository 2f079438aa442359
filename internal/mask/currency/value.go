package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxDigits is the default limit on significant digits a value may hold.
// Larger amounts lose precision as float64.
const MaxDigits = 15

var maxMinor = int64(math.Pow10(MaxDigits)) - 1

// Value is a nullable fixed-point amount held in minor units.
type Value struct {
	minor    int64
	decimals int
	valid    bool
}

// Null returns the empty value.
func Null() Value {
	return Value{}
}

// FromMinor returns a value of minor units with the given number of
// implied fractional digits.
func FromMinor(minor int64, decimals int) Value {
	return Value{minor: minor, decimals: decimals, valid: true}
}

// FromFloat converts x to a value, rounding half away from zero at the
// given number of decimals.
func FromFloat(x float64, decimals int) (Value, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Value{}, fmt.Errorf("%w: %v", ErrValueOutOfRange, x)
	}
	scaled := math.Round(x * math.Pow10(decimals))
	if math.Abs(scaled) > float64(maxMinor) {
		return Value{}, fmt.Errorf("%w: %v", ErrValueOutOfRange, x)
	}
	return FromMinor(int64(scaled), decimals), nil
}

// FromDigits interprets ASCII digits as minor units. No digits yields zero.
func FromDigits(digits []rune, decimals int) (Value, error) {
	var minor int64
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Value{}, fmt.Errorf("currency: not a digit: %q", r)
		}
		minor = minor*10 + int64(r-'0')
		if minor > maxMinor {
			return Value{}, fmt.Errorf("%w: %s", ErrValueOutOfRange, string(digits))
		}
	}
	return FromMinor(minor, decimals), nil
}

// IsNull reports whether the value is empty.
func (v Value) IsNull() bool {
	return !v.valid
}

// Minor returns the amount in minor units.
func (v Value) Minor() int64 {
	return v.minor
}

// Decimals returns the number of implied fractional digits.
func (v Value) Decimals() int {
	return v.decimals
}

// Float64 returns the amount in display units.
func (v Value) Float64() float64 {
	return float64(v.minor) / math.Pow10(v.decimals)
}

// Raw returns the value as a mask change carries it: nil when null,
// otherwise the amount as float64.
func (v Value) Raw() any {
	if v.IsNull() {
		return nil
	}
	return v.Float64()
}

// String returns a plain decimal rendering such as "1234.56", or "" when
// null.
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}

	neg := v.minor < 0
	m := v.minor
	if neg {
		m = -m
	}
	s := strconv.FormatInt(m, 10)
	if v.decimals > 0 {
		if len(s) <= v.decimals {
			s = strings.Repeat("0", v.decimals-len(s)+1) + s
		}
		cut := len(s) - v.decimals
		s = s[:cut] + "." + s[cut:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
