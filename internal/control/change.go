package control

import (
	"fmt"

	"github.com/dshills/keymask/internal/event/topic"
)

// ChangeKind identifies which property of a control changed.
type ChangeKind int

const (
	NameChange ChangeKind = iota
	ValueChange
	ValidChange
	StateChange
	ErrorsChange
	RequiredChange
	DisabledChange
	ReadOnlyChange
	TouchedChange
	VisitedChange
	FocusedChange
)

var changeKindNames = [...]string{
	NameChange:     "name",
	ValueChange:    "value",
	ValidChange:    "valid",
	StateChange:    "state",
	ErrorsChange:   "errors",
	RequiredChange: "required",
	DisabledChange: "disabled",
	ReadOnlyChange: "readonly",
	TouchedChange:  "touched",
	VisitedChange:  "visited",
	FocusedChange:  "focused",
}

// String returns the lowercase kind name.
func (k ChangeKind) String() string {
	if k >= 0 && int(k) < len(changeKindNames) {
		return changeKindNames[k]
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Topic returns the bus topic changes of this kind are published on for
// the named control.
func (k ChangeKind) Topic(control string) topic.Topic {
	return topic.Join("control", k.String(), control)
}

// Change describes one property change of a control.
type Change struct {
	Kind    ChangeKind
	Control string
	// Value is the property's new value: the control value for
	// ValueChange, a bool for flags, a State, or a []string of errors.
	Value any
}

// State is the edit state of a control.
type State int

const (
	// Pristine means the value was never changed by the user.
	Pristine State = iota
	// Dirty means the value changed since creation or the last Reset.
	Dirty
)

// String returns "pristine" or "dirty".
func (s State) String() string {
	if s == Dirty {
		return "dirty"
	}
	return "pristine"
}
