package mask

import (
	"github.com/dshills/keymask/internal/field"
)

// Engine transforms field events into masked field states.
type Engine interface {
	// Apply computes the field state that results from ev.
	Apply(s field.State, ev field.Event) Result

	// Set formats raw into a field state without producing a Change.
	Set(raw any) (field.State, error)

	// Raw extracts the raw value from formatted text.
	Raw(text string) any
}

// Normalizer is implemented by engines that reformat text already present
// in a field at bind time.
type Normalizer interface {
	Normalize(text string) field.State
}

// Change is the notification emitted after an accepted mutation.
type Change struct {
	// Raw is the unmasked value: a string for pattern masks, a float64 for
	// currency masks, or nil when the field is empty.
	Raw any `json:"raw"`

	// Formatted is the text shown in the field.
	Formatted string `json:"formatted"`
}

// Result is the outcome of applying one event.
type Result struct {
	// State is the field state after the event.
	State field.State

	// Handled reports that the engine consumed the event. When false the
	// field applies its default behaviour and State equals the input state.
	Handled bool

	// Change is non-nil when the mutation must be announced.
	Change *Change
}

// Pass leaves the event to the field's default behaviour.
func Pass(s field.State) Result {
	return Result{State: s}
}

// Reject consumes the event without mutating the field.
func Reject(s field.State) Result {
	return Result{State: s, Handled: true}
}

// Accept consumes the event, moving the field to next. A Change is attached
// when the text differs from prev.
func Accept(prev, next field.State, raw any) Result {
	r := Result{State: next, Handled: true}
	if next.Text != prev.Text {
		r.Change = &Change{Raw: raw, Formatted: next.Text}
	}
	return r
}

// Mutated reports whether the result changed the field's text or selection.
func (r Result) Mutated(prev field.State) bool {
	return r.State != prev
}
