package control

import (
	"github.com/dshills/keymask/internal/field"
	"github.com/dshills/keymask/internal/mask"
)

// FromMask returns a mask change callback that stores the change's raw
// value in c. It fits binding.Options.OnMask.
func FromMask(c *Control[any]) func(mask.Change) {
	return func(ch mask.Change) {
		c.SetValue(ch.Raw)
	}
}

// Interaction is the part of a control that Track drives.
type Interaction interface {
	SetFocused(bool)
	SetVisited(bool)
	SetTouched(bool)
}

// Track mirrors focus and blur on f into c: focus marks the control
// focused and visited, blur clears focus and marks it touched. The
// returned function stops tracking.
func Track(f field.Field, c Interaction) (untrack func()) {
	focus := f.AddListener(field.EventFocus, func(field.Event) bool {
		c.SetFocused(true)
		c.SetVisited(true)
		return false
	})
	blur := f.AddListener(field.EventBlur, func(field.Event) bool {
		c.SetFocused(false)
		c.SetTouched(true)
		return false
	})
	return func() {
		f.RemoveListener(focus)
		f.RemoveListener(blur)
	}
}
