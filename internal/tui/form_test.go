package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keymask/internal/config"
	"github.com/dshills/keymask/internal/control"
	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/input/key"
	"github.com/dshills/keymask/internal/mask"
)

func testConfig(fields ...config.FieldConfig) *config.Config {
	cfg := config.Default()
	if len(fields) == 0 {
		fields = []config.FieldConfig{
			{Name: "phone", Label: "Phone", Kind: config.KindPattern, Mask: "Phone", PlaceHolder: mask.Phone},
			{Name: "amount", Label: "Amount", Kind: config.KindCurrency, Required: true},
		}
	}
	cfg.Fields = fields
	return cfg
}

func newForm(t *testing.T, cfg *config.Config) *Form {
	t.Helper()
	f, err := NewForm(cfg, FormOptions{})
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func typeKeys(f *Form, script string) {
	for _, ev := range key.MustParseSequence(script).Events {
		f.HandleKey(ev)
	}
}

func TestFormTypingUpdatesControls(t *testing.T) {
	f := newForm(t, testConfig())
	require.Len(t, f.Entries(), 2)
	phone, amount := f.Entries()[0], f.Entries()[1]
	assert.Same(t, phone, f.Focused())
	assert.True(t, phone.Buffer.Focused())

	typeKeys(f, "5551234567")
	assert.Equal(t, "(555) 123-4567", phone.Buffer.Text())
	assert.Equal(t, "5551234567", phone.Control.Value())
	assert.Equal(t, control.Dirty, phone.Control.State())

	typeKeys(f, "<Tab>")
	assert.Same(t, amount, f.Focused())
	assert.Equal(t, control.Flags{Visited: true, Touched: true}, phone.Control.Flags())
	assert.True(t, amount.Control.Flags().Focused)

	assert.False(t, f.Valid())
	typeKeys(f, "1250")
	assert.Equal(t, "$12.50", amount.Buffer.Text())
	assert.InDelta(t, 12.5, amount.Control.Value(), 1e-9)
	assert.True(t, f.Valid())

	assert.Equal(t, map[string]any{"phone": "5551234567", "amount": 12.5}, f.Values())
}

func TestFormBlurClearsPartialPattern(t *testing.T) {
	f := newForm(t, testConfig())
	phone := f.Entries()[0]

	typeKeys(f, "555")
	assert.Equal(t, "(555) ", phone.Buffer.Text())

	f.Next()
	assert.Equal(t, "", phone.Buffer.Text())
	assert.Equal(t, "", phone.Control.Value())
}

func TestFormFocusWraps(t *testing.T) {
	f := newForm(t, testConfig())

	typeKeys(f, "<S-Tab>")
	assert.Equal(t, 1, f.FocusIndex())
	typeKeys(f, "<Tab>")
	assert.Equal(t, 0, f.FocusIndex())

	f.Focus(7)
	assert.Equal(t, 0, f.FocusIndex())
}

func TestFormPaste(t *testing.T) {
	f := newForm(t, testConfig())

	f.Paste("(555) 987-6543")
	assert.Equal(t, "(555) 987-6543", f.Entries()[0].Buffer.Text())

	f.Paste("")
	assert.Equal(t, "(555) 987-6543", f.Entries()[0].Buffer.Text())
}

func TestFormInitialValue(t *testing.T) {
	f := newForm(t, testConfig(
		config.FieldConfig{Name: "total", Kind: config.KindCurrency, Locale: "en-US", Currency: "USD", Value: "1234.5"},
	))
	e := f.Entries()[0]

	assert.Equal(t, "$1,234.50", e.Buffer.Text())
	assert.InDelta(t, 1234.5, e.Control.Value(), 1e-9)
	assert.Equal(t, control.Pristine, e.Control.State())
}

func TestFormMaxValidator(t *testing.T) {
	limit := 10.0
	f := newForm(t, testConfig(
		config.FieldConfig{Name: "amount", Kind: config.KindCurrency, Max: &limit},
	))

	typeKeys(f, "1250")
	assert.Equal(t, []string{"amount cannot exceed 10"}, f.Entries()[0].Control.Errors())
	assert.False(t, f.Valid())
}

func TestFormPublishesOnBus(t *testing.T) {
	bus := event.NewBus()
	var topics []string
	_, err := bus.SubscribeFunc("**", func(_ context.Context, ev any) error {
		topics = append(topics, ev.(event.Routable).EventTopic().String())
		return nil
	})
	require.NoError(t, err)

	f, err := NewForm(testConfig(), FormOptions{Bus: bus})
	require.NoError(t, err)
	defer f.Close()
	topics = nil

	typeKeys(f, "5")
	assert.Equal(t, []string{
		"control.value.phone",
		"control.state.phone",
		"mask.changed.phone",
	}, topics)
}

func TestNewFormError(t *testing.T) {
	_, err := NewForm(testConfig(
		config.FieldConfig{Name: "bad", Kind: config.KindCurrency, Currency: "ZZ9"},
	), FormOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field bad")
}
