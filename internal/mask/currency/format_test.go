package currency

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	tests := []struct {
		locale   string
		code     string
		decimals int
		x        float64
		want     string
	}{
		{"en-US", "USD", 2, 1234.56, "$1,234.56"},
		{"en-US", "USD", 2, 0, "$0.00"},
		{"en-US", "USD", 2, -5, "-$5.00"},
		{"en-US", "USD", 0, 1234, "$1,234"},
		{"de-DE", "EUR", 2, 1234.56, "1.234,56\u00a0€"},
		{"en-GB", "GBP", 2, 1000000, "£1,000,000.00"},
		{"de-AT", "EUR", 2, 12.5, "€\u00a012,50"},
		{"de-CH", "CHF", 2, 12.5, "CHF\u00a012.50"},
		{"nl-NL", "EUR", 2, 12.5, "€\u00a012,50"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"/"+tt.code+"/"+strconv.FormatFloat(tt.x, 'f', -1, 64), func(t *testing.T) {
			f, err := NewFormatter(tt.locale, tt.code, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.FormatFloat(tt.x))
		})
	}
}

func TestFormatterNull(t *testing.T) {
	f, err := NewFormatter("en-US", "USD", 2)
	require.NoError(t, err)
	assert.Equal(t, "", f.Format(Null()))
	assert.Equal(t, "$", f.Symbol())
	assert.Equal(t, 2, f.Decimals())
	assert.Equal(t, "USD", f.Currency().String())
}

func TestValue(t *testing.T) {
	assert.True(t, Null().IsNull())
	assert.Nil(t, Null().Raw())
	assert.Equal(t, "", Null().String())

	v := FromMinor(123456, 2)
	assert.Equal(t, 1234.56, v.Float64())
	assert.Equal(t, "1234.56", v.String())
	assert.Equal(t, "0.05", FromMinor(5, 2).String())
	assert.Equal(t, "-0.05", FromMinor(-5, 2).String())
	assert.Equal(t, "7", FromMinor(7, 0).String())

	v, err := FromFloat(0.1+0.2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(30), v.Minor())

	_, err = FromDigits([]rune("9999999999999999"), 2)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	v, err = FromDigits(nil, 2)
	require.NoError(t, err)
	assert.False(t, v.IsNull())
	assert.Equal(t, int64(0), v.Minor())
}
