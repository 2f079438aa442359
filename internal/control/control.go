// Package control provides a small reactive form control that tracks a
// value, its validation errors and interaction flags, and notifies
// subscribers when any of them change.
//
// A control does not own a field. A mask binding feeds it through
// FromMask and Track, and reads its read-only flag back.
package control

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/dshills/keymask/internal/event"
	"github.com/dshills/keymask/internal/logging"
)

// Source is the event source for changes published by controls.
const Source = "control"

// Flags holds the interaction flags of a control.
type Flags struct {
	Touched  bool
	Visited  bool
	Focused  bool
	Disabled bool
	ReadOnly bool
	Required bool
}

// Subscriber receives control changes.
type Subscriber func(Change)

type subscriber struct {
	id uint64
	fn Subscriber
}

// Control is a named value with validators, flags and change subscribers.
// It is safe for concurrent use; subscribers run outside the lock.
type Control[T comparable] struct {
	mu sync.Mutex

	name       string
	value      T
	initial    T
	state      State
	flags      Flags
	errors     []string
	validators []Validator[T]

	subs      []subscriber
	nextSub   uint64
	disposers []func()
	disposed  bool

	cfg    Config
	logger *slog.Logger
}

// New creates a pristine control holding initial. Validators run
// immediately so Valid reflects the initial value.
func New[T comparable](name string, initial T, cfg Config, validators ...Validator[T]) *Control[T] {
	c := &Control[T]{
		name:    name,
		value:   initial,
		initial: initial,
		cfg:     cfg,
		logger:  logging.WithComponent(cfg.Logger, "control").With(logging.Field(name)),
	}
	for _, v := range validators {
		c.validators = upsert(c.validators, v)
		if v.ID == "required" {
			c.flags.Required = true
		}
	}
	c.errors = c.validate()
	return c
}

// Name returns the control name.
func (c *Control[T]) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// SetName renames the control.
func (c *Control[T]) SetName(name string) {
	c.mu.Lock()
	if c.name == name {
		c.mu.Unlock()
		return
	}
	c.name = name
	changes := []Change{c.change(NameChange, name)}
	changes = append(changes, c.revalidate()...)
	c.mu.Unlock()
	c.notify(changes)
}

// Value returns the current value.
func (c *Control[T]) Value() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// SetValue stores v, marks the control dirty and revalidates. Nothing is
// emitted when v equals the current value.
func (c *Control[T]) SetValue(v T) {
	c.mu.Lock()
	if c.disposed || c.value == v {
		c.mu.Unlock()
		return
	}
	c.value = v
	changes := []Change{c.change(ValueChange, v)}
	if c.state != Dirty {
		c.state = Dirty
		changes = append(changes, c.change(StateChange, Dirty))
	}
	changes = append(changes, c.revalidate()...)
	c.mu.Unlock()
	c.notify(changes)
}

// Reset restores the initial value and marks the control pristine.
func (c *Control[T]) Reset() {
	c.mu.Lock()
	var changes []Change
	if c.value != c.initial {
		c.value = c.initial
		changes = append(changes, c.change(ValueChange, c.initial))
	}
	if c.state != Pristine {
		c.state = Pristine
		changes = append(changes, c.change(StateChange, Pristine))
	}
	changes = append(changes, c.revalidate()...)
	c.mu.Unlock()
	c.notify(changes)
}

// State returns Pristine or Dirty.
func (c *Control[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Valid reports whether the control has no errors.
func (c *Control[T]) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errors) == 0
}

// Errors returns the distinct error messages in validator order.
func (c *Control[T]) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.errors)
}

// Flags returns a snapshot of the interaction flags.
func (c *Control[T]) Flags() Flags {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

// ReadOnly reports whether the control is read-only or disabled. It fits
// binding.Options.ReadOnly.
func (c *Control[T]) ReadOnly() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags.ReadOnly || c.flags.Disabled
}

func (c *Control[T]) SetTouched(v bool)  { c.setFlag(TouchedChange, &c.flags.Touched, v) }
func (c *Control[T]) SetVisited(v bool)  { c.setFlag(VisitedChange, &c.flags.Visited, v) }
func (c *Control[T]) SetFocused(v bool)  { c.setFlag(FocusedChange, &c.flags.Focused, v) }
func (c *Control[T]) SetDisabled(v bool) { c.setFlag(DisabledChange, &c.flags.Disabled, v) }
func (c *Control[T]) SetReadOnly(v bool) { c.setFlag(ReadOnlyChange, &c.flags.ReadOnly, v) }

// SetRequired adds or removes the Required validator.
func (c *Control[T]) SetRequired(v bool) {
	c.mu.Lock()
	if c.flags.Required == v {
		c.mu.Unlock()
		return
	}
	c.flags.Required = v
	if v {
		c.validators = upsert(c.validators, Required[T]())
	} else {
		c.validators = remove(c.validators, "required")
	}
	changes := []Change{c.change(RequiredChange, v)}
	changes = append(changes, c.revalidate()...)
	c.mu.Unlock()
	c.notify(changes)
}

func (c *Control[T]) setFlag(kind ChangeKind, flag *bool, v bool) {
	c.mu.Lock()
	if *flag == v {
		c.mu.Unlock()
		return
	}
	*flag = v
	ch := c.change(kind, v)
	c.mu.Unlock()
	c.notify([]Change{ch})
}

// AddValidator adds v, replacing any validator with the same ID.
func (c *Control[T]) AddValidator(v Validator[T]) {
	c.mu.Lock()
	c.validators = upsert(c.validators, v)
	changes := c.revalidate()
	c.mu.Unlock()
	c.notify(changes)
}

// RemoveValidator removes the validator with the given ID.
func (c *Control[T]) RemoveValidator(id string) {
	c.mu.Lock()
	c.validators = remove(c.validators, id)
	changes := c.revalidate()
	c.mu.Unlock()
	c.notify(changes)
}

// Subscribe registers fn for every change and returns a function that
// removes it.
func (c *Control[T]) Subscribe(fn Subscriber) (unsubscribe func()) {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs = slices.DeleteFunc(c.subs, func(s subscriber) bool { return s.id == id })
	}
}

// OnDispose registers fn to run once when the control is disposed.
func (c *Control[T]) OnDispose(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposers = append(c.disposers, fn)
}

// Dispose drops all subscribers and runs the dispose callbacks in reverse
// registration order. Later value changes are ignored.
func (c *Control[T]) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.subs = nil
	fns := c.disposers
	c.disposers = nil
	c.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
	c.logger.Debug("control disposed")
}

func (c *Control[T]) change(kind ChangeKind, v any) Change {
	return Change{Kind: kind, Control: c.name, Value: v}
}

// revalidate must be called with mu held.
func (c *Control[T]) revalidate() []Change {
	wasValid := len(c.errors) == 0
	errs := c.validate()
	if slices.Equal(errs, c.errors) {
		return nil
	}
	c.errors = errs
	changes := []Change{c.change(ErrorsChange, slices.Clone(errs))}
	if valid := len(errs) == 0; valid != wasValid {
		changes = append(changes, c.change(ValidChange, valid))
	}
	return changes
}

func (c *Control[T]) validate() []string {
	var errs []string
	for _, v := range c.validators {
		for _, msg := range v.Fn(c.name, c.value) {
			if !slices.Contains(errs, msg) {
				errs = append(errs, msg)
			}
		}
	}
	return errs
}

func (c *Control[T]) notify(changes []Change) {
	if len(changes) == 0 {
		return
	}
	c.mu.Lock()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	for _, ch := range changes {
		c.logger.Debug("control changed", slog.String("kind", ch.Kind.String()))
		if c.cfg.OnChange != nil {
			c.cfg.OnChange(ch)
		}
		if fn := c.cfg.callback(ch.Kind); fn != nil {
			fn(ch)
		}
		for _, s := range subs {
			s.fn(ch)
		}
		if c.cfg.Bus != nil {
			ev := event.NewEvent(ch.Kind.Topic(ch.Control), ch, Source)
			if err := c.cfg.Bus.Publish(context.Background(), ev); err != nil {
				c.logger.Warn("control change delivery failed", logging.Error(err))
			}
		}
	}
}

func upsert[T comparable](vs []Validator[T], v Validator[T]) []Validator[T] {
	for i := range vs {
		if vs[i].ID == v.ID {
			vs[i] = v
			return vs
		}
	}
	return append(vs, v)
}

func remove[T comparable](vs []Validator[T], id string) []Validator[T] {
	return slices.DeleteFunc(vs, func(v Validator[T]) bool { return v.ID == id })
}
