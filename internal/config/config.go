package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keymask/internal/logging"
	"github.com/dshills/keymask/internal/mask"
	"github.com/dshills/keymask/internal/mask/currency"
	"github.com/dshills/keymask/internal/mask/pattern"
)

// Kind selects the mask engine of a field.
type Kind string

const (
	KindPattern  Kind = "pattern"
	KindCurrency Kind = "currency"
)

// Config is the complete keymask configuration.
type Config struct {
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Theme    ThemeConfig    `toml:"theme" yaml:"theme"`
	Defaults DefaultsConfig `toml:"defaults" yaml:"defaults"`
	Fields   []FieldConfig  `toml:"fields" yaml:"fields"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level" env:"LEVEL"`
	Format string `toml:"format" yaml:"format" env:"FORMAT"`
	// File receives log output. Empty discards logs.
	File string `toml:"file" yaml:"file" env:"FILE"`
}

// ThemeConfig holds hex colours for the terminal form.
type ThemeConfig struct {
	Foreground  string `toml:"foreground" yaml:"foreground" env:"FOREGROUND"`
	Background  string `toml:"background" yaml:"background" env:"BACKGROUND"`
	Label       string `toml:"label" yaml:"label" env:"LABEL"`
	Focus       string `toml:"focus" yaml:"focus" env:"FOCUS"`
	PlaceHolder string `toml:"placeholder" yaml:"placeholder" env:"PLACEHOLDER"`
	Error       string `toml:"error" yaml:"error" env:"ERROR"`
}

// DefaultsConfig supplies currency settings to fields that omit them.
type DefaultsConfig struct {
	Locale   string `toml:"locale" yaml:"locale" env:"LOCALE"`
	Currency string `toml:"currency" yaml:"currency" env:"CURRENCY"`
	Decimals int    `toml:"decimals" yaml:"decimals" env:"DECIMALS"`
}

// FieldConfig describes one masked field of the form.
type FieldConfig struct {
	Name  string `toml:"name" yaml:"name"`
	Label string `toml:"label" yaml:"label"`
	Kind  Kind   `toml:"kind" yaml:"kind"`
	// Value is the initial raw value.
	Value string `toml:"value" yaml:"value"`

	Required bool     `toml:"required" yaml:"required"`
	Max      *float64 `toml:"max" yaml:"max"`

	// Pattern fields. Mask is a template or a preset name; when empty the
	// dataType's preset is used.
	Mask             string `toml:"mask" yaml:"mask"`
	DataType         string `toml:"dataType" yaml:"dataType"`
	ForceUpper       bool   `toml:"forceUpper" yaml:"forceUpper"`
	ForceLower       bool   `toml:"forceLower" yaml:"forceLower"`
	UseEnterKey      bool   `toml:"useEnterKey" yaml:"useEnterKey"`
	ValidateDataType bool   `toml:"validateDataType" yaml:"validateDataType"`
	PlaceHolder      string `toml:"placeholder" yaml:"placeholder"`

	// Currency fields.
	Currency  string `toml:"currency" yaml:"currency"`
	Locale    string `toml:"locale" yaml:"locale"`
	Decimals  *int   `toml:"decimals" yaml:"decimals"`
	MaxDigits int    `toml:"maxDigits" yaml:"maxDigits"`
}

// DisplayLabel returns Label, or Name when no label is set.
func (f FieldConfig) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Default returns the built-in configuration: a demo form with one field
// per preset mask and two currency fields.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Theme: ThemeConfig{
			Foreground:  "#d0d0d0",
			Background:  "#1c1c1c",
			Label:       "#8a8a8a",
			Focus:       "#5fafff",
			PlaceHolder: "#585858",
			Error:       "#ff5f5f",
		},
		Defaults: DefaultsConfig{
			Locale:   "en-US",
			Currency: "USD",
			Decimals: 2,
		},
		Fields: []FieldConfig{
			{Name: "phone", Label: "Phone", Kind: KindPattern, Mask: "Phone", PlaceHolder: mask.Phone},
			{Name: "ssn", Label: "SSN", Kind: KindPattern, Mask: "Ssn", Required: true},
			{Name: "date", Label: "Date", Kind: KindPattern, Mask: "Date", DataType: "date",
				UseEnterKey: true, ValidateDataType: true, PlaceHolder: "mm/dd/yyyy"},
			{Name: "time", Label: "Time", Kind: KindPattern, Mask: "TimeShort", DataType: "timeShort",
				UseEnterKey: true, ValidateDataType: true, PlaceHolder: "hh:mm"},
			{Name: "code", Label: "Code", Kind: KindPattern, Mask: "AAA-999", ForceUpper: true},
			{Name: "amount", Label: "Amount", Kind: KindCurrency, Required: true},
			{Name: "price", Label: "Price (EUR)", Kind: KindCurrency, Currency: "EUR", Locale: "de-DE"},
		},
	}
}

// Field returns the field with the given name.
func (c *Config) Field(name string) (FieldConfig, error) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldConfig{}, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// applyDefaults fills currency fields from [defaults].
func (c *Config) applyDefaults() {
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Kind == "" {
			f.Kind = KindPattern
		}
		if f.Kind != KindCurrency {
			continue
		}
		if f.Locale == "" {
			f.Locale = c.Defaults.Locale
		}
		if f.Currency == "" {
			f.Currency = c.Defaults.Currency
		}
		if f.Decimals == nil {
			d := c.Defaults.Decimals
			f.Decimals = &d
		}
	}
}

// Validate checks the configuration and reports every problem found as a
// *ValidationError joined into one error.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any, code ValidationErrorCode, err error) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code, Err: err})
	}

	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		add("logging.format", "must be text or json", c.Logging.Format, ErrCodeInvalidEnum, err)
	}

	for _, col := range c.Theme.colors() {
		if col.hex == "" {
			continue
		}
		if _, err := colorful.Hex(col.hex); err != nil {
			add("theme."+col.name, "must be a #rrggbb colour", col.hex, ErrCodeInvalidValue, err)
		}
	}

	if len(c.Fields) == 0 {
		add("fields", "at least one field is required", nil, ErrCodeRequiredMissing, nil)
	}

	seen := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		path := fmt.Sprintf("fields[%d]", i)
		switch {
		case f.Name == "":
			add(path+".name", "is required", f.Name, ErrCodeRequiredMissing, nil)
		case seen[f.Name]:
			add(path+".name", "is already used", f.Name, ErrCodeDuplicate, nil)
		}
		seen[f.Name] = true

		switch f.Kind {
		case KindPattern:
			if f.Mask == "" && f.DataType == "" {
				add(path+".mask", "is required for pattern fields without a dataType", f.Mask, ErrCodeRequiredMissing, nil)
				continue
			}
			if f.ForceUpper && f.ForceLower {
				add(path+".forceLower", "conflicts with forceUpper", true, ErrCodeInvalidValue, nil)
			}
		case KindCurrency:
			if f.MaxDigits < 0 || f.MaxDigits > currency.MaxDigits {
				add(path+".maxDigits", fmt.Sprintf("must be between 0 and %d", currency.MaxDigits),
					f.MaxDigits, ErrCodeOutOfRange, nil)
			}
		default:
			add(path+".kind", "must be pattern or currency", f.Kind, ErrCodeInvalidEnum, nil)
			continue
		}

		eng, err := f.NewEngine(nil)
		if err != nil {
			add(path, "cannot build mask", f.Name, ErrCodeInvalidValue, err)
			continue
		}
		if f.Value != "" {
			if _, err := eng.Set(f.Value); err != nil {
				add(path+".value", "is not accepted by the mask", f.Value, ErrCodeInvalidValue, err)
			}
		}
	}

	return errors.Join(errs...)
}

type namedColor struct {
	name string
	hex  string
}

func (t ThemeConfig) colors() []namedColor {
	return []namedColor{
		{"foreground", t.Foreground},
		{"background", t.Background},
		{"label", t.Label},
		{"focus", t.Focus},
		{"placeholder", t.PlaceHolder},
		{"error", t.Error},
	}
}

// NewEngine builds the mask engine the field describes. now may be nil.
func (f FieldConfig) NewEngine(now func() time.Time) (mask.Engine, error) {
	switch f.Kind {
	case KindPattern, "":
		dt, err := pattern.ParseDataType(f.DataType)
		if err != nil {
			return nil, err
		}
		return pattern.New(pattern.Options{
			Mask:             f.Mask,
			ForceUpper:       f.ForceUpper,
			ForceLower:       f.ForceLower,
			UseEnterKey:      f.UseEnterKey,
			ValidateDataType: f.ValidateDataType,
			DataType:         dt,
			PlaceHolder:      f.PlaceHolder,
			Now:              now,
		})
	case KindCurrency:
		opts := currency.Options{
			Currency:  strings.ToUpper(f.Currency),
			Locale:    f.Locale,
			Decimals:  currency.DefaultOptions().Decimals,
			MaxDigits: f.MaxDigits,
		}
		if f.Decimals != nil {
			opts.Decimals = *f.Decimals
		}
		return currency.New(opts)
	}
	return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedKind, f.Kind)
}
