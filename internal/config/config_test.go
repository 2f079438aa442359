package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/mask/currency"
	"github.com/dshills/keymask/internal/mask/pattern"
)

var noEnv = map[string]string{}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	cfg.applyDefaults()
	require.NoError(t, cfg.Validate())

	amount, err := cfg.Field("amount")
	require.NoError(t, err)
	assert.Equal(t, "en-US", amount.Locale)
	assert.Equal(t, "USD", amount.Currency)
	require.NotNil(t, amount.Decimals)
	assert.Equal(t, 2, *amount.Decimals)

	_, err = cfg.Field("missing")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load(LoadOptions{Environ: noEnv})
	require.NoError(t, err)
	assert.Len(t, cfg.Fields, len(Default().Fields))
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(LoadOptions{Path: filepath.Join("testdata", "form.toml"), Environ: noEnv})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, Default().Theme, cfg.Theme, "absent section keeps defaults")
	require.Len(t, cfg.Fields, 3)

	total := cfg.Fields[1]
	assert.Equal(t, "Total", total.DisplayLabel())
	assert.Equal(t, "de-DE", total.Locale)
	assert.Equal(t, "EUR", total.Currency)
	assert.True(t, total.Required)
	require.NotNil(t, total.Max)
	assert.Equal(t, 1000.0, *total.Max)

	fee := cfg.Fields[2]
	assert.Equal(t, "fee", fee.DisplayLabel())
	require.NotNil(t, fee.Decimals)
	assert.Zero(t, *fee.Decimals)

	eng, err := fee.NewEngine(nil)
	require.NoError(t, err)
	st, err := eng.Set(12.0)
	require.NoError(t, err)
	assert.Equal(t, "$12", st.Text)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(LoadOptions{Path: filepath.Join("testdata", "form.yaml"), Environ: noEnv})
	require.NoError(t, err)

	assert.Equal(t, "#ff8700", cfg.Theme.Focus)
	assert.Equal(t, Default().Theme.Background, cfg.Theme.Background)
	require.Len(t, cfg.Fields, 2)

	born := cfg.Fields[0]
	assert.Equal(t, KindPattern, born.Kind)
	assert.True(t, born.UseEnterKey)

	eng, err := born.NewEngine(nil)
	require.NoError(t, err)
	pe, ok := eng.(*pattern.Engine)
	require.True(t, ok)
	assert.Equal(t, pattern.Date, pe.Options().DataType)

	amount := cfg.Fields[1]
	assert.Equal(t, "USD", amount.Currency)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	cfg, err := Load(LoadOptions{
		Path: filepath.Join("testdata", "form.toml"),
		Environ: map[string]string{
			"KEYMASK_LOG_LEVEL":      "error",
			"KEYMASK_THEME_FOCUS":    "#00ff00",
			"KEYMASK_DEFAULT_LOCALE": "fr-FR",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "#00ff00", cfg.Theme.Focus)
	assert.Equal(t, "fr-FR", cfg.Fields[1].Locale)
	assert.Equal(t, "EUR", cfg.Fields[1].Currency)
}

func TestLoadEnvFile(t *testing.T) {
	cfg, err := Load(LoadOptions{
		EnvFile: filepath.Join("testdata", "test.env"),
		Environ: map[string]string{"KEYMASK_LOG_LEVEL": "debug"},
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level, "environment wins over the file")
	amount, err := cfg.Field("amount")
	require.NoError(t, err)
	assert.Equal(t, "GBP", amount.Currency)

	_, err = Load(LoadOptions{EnvFile: filepath.Join("testdata", "absent.env"), Environ: noEnv})
	assert.NoError(t, err)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(LoadOptions{Path: filepath.Join("testdata", "absent.toml"), Environ: noEnv})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Parse("form.ini", []byte("x=1"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("toml syntax", func(t *testing.T) {
		_, err := Load(LoadOptions{Path: filepath.Join("testdata", "broken.toml"), Environ: noEnv})
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 1, pe.Line)
		assert.Contains(t, pe.Error(), "broken.toml")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse("form.toml", []byte("[logging]\ncolour = \"red\"\n"))
		var pe *ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("yaml syntax", func(t *testing.T) {
		_, err := Parse("form.yaml", []byte("fields: [\n"))
		var pe *ParseError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Len(t, cfg.Fields, len(Default().Fields))
}

func TestValidateReportsEveryProblem(t *testing.T) {
	_, err := Load(LoadOptions{Path: filepath.Join("testdata", "invalid.toml"), Environ: noEnv})
	require.Error(t, err)

	var problems []*ValidationError
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ve *ValidationError
		require.ErrorAs(t, e, &ve)
		problems = append(problems, ve)
	}

	got := make(map[string]ValidationErrorCode, len(problems))
	for _, p := range problems {
		got[p.Path] = p.Code
	}
	assert.Equal(t, map[string]ValidationErrorCode{
		"logging.format":      ErrCodeInvalidEnum,
		"theme.focus":         ErrCodeInvalidValue,
		"fields[0].mask":      ErrCodeRequiredMissing,
		"fields[1].name":      ErrCodeDuplicate,
		"fields[1].maxDigits": ErrCodeOutOfRange,
		"fields[2].kind":      ErrCodeInvalidEnum,
		"fields[3]":           ErrCodeInvalidValue,
	}, got)
}

func TestValidateWrapsEngineErrors(t *testing.T) {
	cfg := &Config{Fields: []FieldConfig{
		{Name: "a", Kind: KindCurrency, Locale: "en-US", Currency: "XX"},
		{Name: "b", Kind: KindPattern, Mask: "99", DataType: "week"},
		{Name: "c", Kind: KindCurrency, Value: "ten"},
	}}

	err := cfg.Validate()
	assert.ErrorIs(t, err, currency.ErrInvalidCurrency)
	assert.ErrorIs(t, err, pattern.ErrInvalidDataType)
	assert.ErrorIs(t, err, currency.ErrUnsupportedValue)
}

func TestNewEngine(t *testing.T) {
	f := FieldConfig{Name: "code", Kind: KindPattern, Mask: "AAA-999", ForceUpper: true}
	eng, err := f.NewEngine(nil)
	require.NoError(t, err)

	res := eng.Apply(field.StateAtEnd(""), field.Paste("abc123"))
	assert.Equal(t, "ABC-123", res.State.Text)

	f = FieldConfig{Name: "due", Kind: KindPattern, DataType: "date"}
	require.NoError(t, (&Config{Fields: []FieldConfig{f}}).Validate())
	eng, err = f.NewEngine(nil)
	require.NoError(t, err)
	res = eng.Apply(field.StateAtEnd(""), field.Paste("12312024"))
	assert.Equal(t, "12/31/2024", res.State.Text)

	_, err = FieldConfig{Kind: "slider"}.NewEngine(nil)
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestErrorStrings(t *testing.T) {
	ve := &ValidationError{Path: "fields[0].kind", Message: "must be pattern or currency", Value: "x"}
	assert.Equal(t, "fields[0].kind: must be pattern or currency (got x)", ve.Error())
	assert.Equal(t, "fields[1].name: required", (&ValidationError{Path: "fields[1].name", Message: "required"}).Error())
	assert.Equal(t, "out_of_range", ErrCodeOutOfRange.String())
	assert.Equal(t, "unknown", ValidationErrorCode(42).String())

	cause := errors.New("boom")
	pe := &ParseError{Path: "a.toml", Line: 2, Column: 3, Message: "bad", Err: cause}
	assert.Equal(t, "a.toml:2:3: bad", pe.Error())
	assert.Equal(t, "a.toml: bad", (&ParseError{Path: "a.toml", Message: "bad"}).Error())
	assert.ErrorIs(t, pe, cause)
}
