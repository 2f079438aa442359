package field

import (
	"fmt"

	"github.com/dshills/keymask/internal/input/key"
)

// EventKind identifies a notification delivered by a text field.
type EventKind int

const (
	// EventKeyDown fires before a key press is applied to the field.
	EventKeyDown EventKind = iota
	// EventPaste fires before clipboard text is inserted.
	EventPaste
	// EventInput fires after the field text changed by other means.
	EventInput
	// EventBlur fires when the field loses focus.
	EventBlur
	// EventFocus fires when the field gains focus.
	EventFocus
)

// String returns a human-readable event kind name.
func (k EventKind) String() string {
	switch k {
	case EventKeyDown:
		return "keydown"
	case EventPaste:
		return "paste"
	case EventInput:
		return "input"
	case EventBlur:
		return "blur"
	case EventFocus:
		return "focus"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single notification from a text field.
type Event struct {
	Kind EventKind

	// Key is set for EventKeyDown.
	Key key.Event

	// Text is the clipboard text for EventPaste and the new field text
	// for EventInput.
	Text string
}

// KeyDown creates a keydown event.
func KeyDown(ev key.Event) Event {
	return Event{Kind: EventKeyDown, Key: ev}
}

// Paste creates a paste event.
func Paste(text string) Event {
	return Event{Kind: EventPaste, Text: text}
}

// Input creates an input event carrying the field's new text.
func Input(text string) Event {
	return Event{Kind: EventInput, Text: text}
}

// Blur creates a blur event.
func Blur() Event {
	return Event{Kind: EventBlur}
}

// Focus creates a focus event.
func Focus() Event {
	return Event{Kind: EventFocus}
}

// String returns a compact description of the event.
func (e Event) String() string {
	switch e.Kind {
	case EventKeyDown:
		return "keydown " + e.Key.String()
	case EventPaste, EventInput:
		return fmt.Sprintf("%s %q", e.Kind, e.Text)
	default:
		return e.Kind.String()
	}
}
