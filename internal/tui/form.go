package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dshills/keymask/internal/binding"
	"github.com/dshills/keymask/internal/config"
	"github.com/dshills/keymask/internal/control"
	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/input/key"
	"github.com/dshills/keymask/internal/logging"
)

// Entry is one masked line of the form.
type Entry struct {
	Config  config.FieldConfig
	Buffer  *field.Buffer
	Binding *binding.Binding
	Control *control.Control[any]

	untrack func()
}

// FormOptions configures a Form.
type FormOptions struct {
	// Bus receives mask and control changes. Nil creates a private bus.
	Bus *event.Bus
	// Now is the clock pattern engines canonicalise dates against.
	Now    func() time.Time
	Logger *slog.Logger
}

// Form is the screen-independent model of the terminal form: one buffer
// per configured field, each bound to its mask and mirrored into a
// control, with a single focused entry.
type Form struct {
	entries []*Entry
	group   *binding.Group
	bus     *event.Bus
	focus   int
	logger  *slog.Logger
}

// NewForm builds and binds every field of cfg. The first field is focused.
func NewForm(cfg *config.Config, opts FormOptions) (*Form, error) {
	if opts.Bus == nil {
		opts.Bus = event.NewBus(event.WithLogger(opts.Logger))
	}
	f := &Form{
		group:  binding.NewGroup(),
		bus:    opts.Bus,
		focus:  -1,
		logger: logging.WithComponent(opts.Logger, "form"),
	}

	for _, fc := range cfg.Fields {
		e, err := f.bind(fc, opts)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("field %s: %w", fc.Name, err)
		}
		f.entries = append(f.entries, e)
	}

	if len(f.entries) > 0 {
		f.Focus(0)
	}
	return f, nil
}

func (f *Form) bind(fc config.FieldConfig, opts FormOptions) (*Entry, error) {
	eng, err := fc.NewEngine(opts.Now)
	if err != nil {
		return nil, err
	}
	initial, err := eng.Set(fc.Value)
	if err != nil {
		return nil, err
	}

	var validators []control.Validator[any]
	if fc.Required {
		validators = append(validators, control.Required[any]())
	}
	if fc.Max != nil {
		validators = append(validators, control.Max[any](*fc.Max))
	}
	ctrl := control.New(fc.Name, eng.Raw(initial.Text), control.Config{
		Bus:    f.bus,
		Logger: opts.Logger,
	}, validators...)

	buf := field.NewBuffer(initial.Text)
	b, err := f.group.Bind(binding.Options{
		Name:     fc.Name,
		Field:    buf,
		Engine:   eng,
		OnMask:   control.FromMask(ctrl),
		Bus:      f.bus,
		ReadOnly: ctrl.ReadOnly,
		Logger:   opts.Logger,
	})
	if err != nil {
		ctrl.Dispose()
		return nil, err
	}

	return &Entry{
		Config:  fc,
		Buffer:  buf,
		Binding: b,
		Control: ctrl,
		untrack: control.Track(buf, ctrl),
	}, nil
}

// Entries returns the form lines in display order.
func (f *Form) Entries() []*Entry {
	return f.entries
}

// Bus returns the bus changes are published on.
func (f *Form) Bus() *event.Bus {
	return f.bus
}

// Focused returns the focused entry, or nil for an empty form.
func (f *Form) Focused() *Entry {
	if f.focus < 0 || f.focus >= len(f.entries) {
		return nil
	}
	return f.entries[f.focus]
}

// FocusIndex returns the index of the focused entry.
func (f *Form) FocusIndex() int {
	return f.focus
}

// Focus moves focus to entry i, blurring the previous one.
func (f *Form) Focus(i int) {
	if i < 0 || i >= len(f.entries) || i == f.focus {
		return
	}
	if prev := f.Focused(); prev != nil {
		prev.Buffer.Dispatch(field.Blur())
	}
	f.focus = i
	e := f.entries[i]
	e.Buffer.Dispatch(field.Focus())
	e.Buffer.SetState(e.Buffer.State().WithCaret(e.Buffer.State().Len()))
	f.logger.Debug("focus", logging.Field(e.Config.Name))
}

// Next focuses the following entry, wrapping around.
func (f *Form) Next() {
	if n := len(f.entries); n > 0 {
		f.Focus((f.focus + 1) % n)
	}
}

// Prev focuses the preceding entry, wrapping around.
func (f *Form) Prev() {
	if n := len(f.entries); n > 0 {
		f.Focus((f.focus - 1 + n) % n)
	}
}

// HandleKey routes a key press. Tab and Shift+Tab move focus; everything
// else goes to the focused field.
func (f *Form) HandleKey(ev key.Event) {
	if ev.Key == key.KeyTab && !ev.Modifiers.HasCtrl() && !ev.Modifiers.HasAlt() {
		if ev.Modifiers.HasShift() {
			f.Prev()
		} else {
			f.Next()
		}
		return
	}
	if e := f.Focused(); e != nil {
		e.Buffer.Type(ev)
	}
}

// Paste delivers pasted text to the focused field as one event.
func (f *Form) Paste(text string) {
	if e := f.Focused(); e != nil && text != "" {
		e.Buffer.Dispatch(field.Paste(text))
	}
}

// Values returns the raw value of every field.
func (f *Form) Values() map[string]any {
	return f.group.Values()
}

// Valid reports whether every control passes its validators.
func (f *Form) Valid() bool {
	for _, e := range f.entries {
		if !e.Control.Valid() {
			return false
		}
	}
	return true
}

// Close unbinds every field and disposes the controls.
func (f *Form) Close() {
	for _, e := range f.entries {
		e.untrack()
		e.Control.Dispose()
	}
	f.group.UnbindAll()
}
