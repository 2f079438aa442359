package field

// Listener receives field notifications. Returning true means the
// listener consumed the event and the field must not apply its default
// behaviour. The return value is ignored for EventInput, EventBlur and
// EventFocus.
type Listener func(Event) bool

// ListenerID identifies a registered listener.
type ListenerID uint64

// Field is a host text-entry field a mask can bind to.
//
// Implementations deliver events synchronously and in order; a listener is
// never re-entered while it is running.
type Field interface {
	// State returns the current text and selection.
	State() State

	// SetState replaces the text and selection.
	SetState(State)

	// AddListener registers a listener for the given event kind.
	AddListener(kind EventKind, l Listener) ListenerID

	// RemoveListener unregisters a listener. It returns false if the
	// listener was not registered.
	RemoveListener(id ListenerID) bool
}
