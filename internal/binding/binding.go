// Package binding attaches a mask engine to a text field.
//
// A Binding listens to the field, runs every event through the engine,
// writes the resulting state back and announces accepted changes through
// an OnMask callback and, optionally, an event bus.
package binding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/event/topic"
	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/logging"
	"github.com/dshills/keymask/internal/mask"
)

var (
	// ErrNilField is returned by Bind when no field is given.
	ErrNilField = errors.New("binding: nil field")
	// ErrNilEngine is returned by Bind when no engine is given.
	ErrNilEngine = errors.New("binding: nil engine")
	// ErrUnbound is returned by Set after Unbind.
	ErrUnbound = errors.New("binding: unbound")
)

// Source is the metadata source of published mask changes.
const Source = "binding"

// ChangedTopic returns the bus topic mask changes of the named field are
// published on.
func ChangedTopic(name string) topic.Topic {
	return topic.Join("mask", "changed", name)
}

// Options configures Bind.
type Options struct {
	// Name identifies the field in logs and topics. Defaults to "field".
	Name string

	Field  field.Field
	Engine mask.Engine

	// OnMask is called after every accepted mutation.
	OnMask func(mask.Change)

	// Bus, when set, receives an event.Event[mask.Change] per mutation.
	Bus *event.Bus

	// ReadOnly, when it returns true, leaves events to the field untouched.
	ReadOnly func() bool

	Logger *slog.Logger
}

var kinds = []field.EventKind{
	field.EventKeyDown,
	field.EventPaste,
	field.EventInput,
	field.EventBlur,
}

// Binding is an active attachment of an engine to a field.
type Binding struct {
	opts      Options
	logger    *slog.Logger
	listeners []field.ListenerID
	bound     bool
}

// Bind registers the engine's listeners on the field. Text already in the
// field is reformatted when the engine supports it; this does not emit.
func Bind(opts Options) (*Binding, error) {
	if opts.Field == nil {
		return nil, ErrNilField
	}
	if opts.Engine == nil {
		return nil, ErrNilEngine
	}
	if opts.Name == "" {
		opts.Name = "field"
	}

	b := &Binding{
		opts:   opts,
		logger: logging.WithComponent(opts.Logger, "binding").With(logging.Field(opts.Name)),
		bound:  true,
	}

	if n, ok := opts.Engine.(mask.Normalizer); ok {
		if text := opts.Field.State().Text; text != "" {
			opts.Field.SetState(n.Normalize(text))
		}
	}

	for _, k := range kinds {
		b.listeners = append(b.listeners, opts.Field.AddListener(k, b.handle))
	}

	b.logger.Info("mask bound", slog.Int("listeners", len(b.listeners)))
	return b, nil
}

// Name returns the field name.
func (b *Binding) Name() string {
	return b.opts.Name
}

// Engine returns the bound engine.
func (b *Binding) Engine() mask.Engine {
	return b.opts.Engine
}

// Field returns the bound field.
func (b *Binding) Field() field.Field {
	return b.opts.Field
}

// Bound reports whether the binding is still attached.
func (b *Binding) Bound() bool {
	return b.bound
}

// Value returns the raw value of the field's current text.
func (b *Binding) Value() any {
	return b.opts.Engine.Raw(b.opts.Field.State().Text)
}

// Set writes raw to the field in formatted form without emitting.
func (b *Binding) Set(raw any) error {
	if !b.bound {
		return ErrUnbound
	}
	s, err := b.opts.Engine.Set(raw)
	if err != nil {
		return fmt.Errorf("set %s: %w", b.opts.Name, err)
	}
	b.opts.Field.SetState(s)
	b.logger.Debug("value set", slog.String("text", s.Text))
	return nil
}

// Unbind removes the listeners. The field text is left as it is. Calling
// Unbind more than once is a no-op.
func (b *Binding) Unbind() {
	if !b.bound {
		return
	}
	for _, id := range b.listeners {
		b.opts.Field.RemoveListener(id)
	}
	b.listeners = nil
	b.bound = false
	b.logger.Info("mask unbound")
}

func (b *Binding) handle(ev field.Event) bool {
	if b.opts.ReadOnly != nil && b.opts.ReadOnly() {
		return false
	}

	prev := b.opts.Field.State()
	res := b.opts.Engine.Apply(prev, ev)
	if res.Handled {
		b.opts.Field.SetState(res.State)
	}

	if b.logger.Enabled(context.Background(), slog.LevelDebug) {
		b.logger.Debug("mask event",
			slog.String("event", ev.String()),
			slog.Bool("handled", res.Handled),
			slog.Bool("changed", res.Change != nil),
			logging.Caret(res.State.Caret()))
	}

	if res.Change != nil {
		b.emit(*res.Change)
	}
	return res.Handled
}

func (b *Binding) emit(c mask.Change) {
	if b.opts.OnMask != nil {
		b.opts.OnMask(c)
	}
	if b.opts.Bus == nil {
		return
	}
	ev := event.NewEvent(ChangedTopic(b.opts.Name), c, Source)
	if err := b.opts.Bus.Publish(context.Background(), ev); err != nil {
		b.logger.Warn("mask change delivery failed", logging.Error(err))
	}
}
