package field

import (
	"github.com/dshills/keymask/internal/input/key"
)

type registration struct {
	id   ListenerID
	kind EventKind
	fn   Listener
}

// Buffer is an in-memory Field. It delivers events to listeners in
// registration order and applies default editing behaviour to events no
// listener consumed.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	state     State
	listeners []registration
	nextID    ListenerID
	focused   bool
}

// NewBuffer creates a buffer holding text with the caret at the end.
func NewBuffer(text string) *Buffer {
	return &Buffer{state: StateAtEnd(text)}
}

// State returns the current text and selection.
func (b *Buffer) State() State {
	return b.state
}

// SetState replaces the text and selection.
func (b *Buffer) SetState(s State) {
	b.state = NewState(s.Text, s.Selection)
}

// Text returns the current text.
func (b *Buffer) Text() string {
	return b.state.Text
}

// Focused reports whether the buffer has focus.
func (b *Buffer) Focused() bool {
	return b.focused
}

// AddListener registers a listener for the given event kind.
func (b *Buffer) AddListener(kind EventKind, l Listener) ListenerID {
	b.nextID++
	b.listeners = append(b.listeners, registration{id: b.nextID, kind: kind, fn: l})
	return b.nextID
}

// RemoveListener unregisters a listener.
func (b *Buffer) RemoveListener(id ListenerID) bool {
	for i, r := range b.listeners {
		if r.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registered listeners.
func (b *Buffer) ListenerCount() int {
	return len(b.listeners)
}

// Dispatch delivers ev to listeners and applies the default behaviour
// unless a listener consumed it. It reports whether a listener consumed
// the event.
func (b *Buffer) Dispatch(ev Event) bool {
	switch ev.Kind {
	case EventInput:
		b.state = StateAtEnd(ev.Text)
		b.notify(ev)
		return false
	case EventFocus:
		b.focused = true
		b.notify(ev)
		return false
	case EventBlur:
		b.focused = false
		b.notify(ev)
		return false
	}

	if b.notify(ev) {
		return true
	}
	b.state = Default(b.state, ev)
	return false
}

// Type dispatches a key event.
func (b *Buffer) Type(ev key.Event) bool {
	return b.Dispatch(KeyDown(ev))
}

// TypeSequence dispatches every event in seq.
func (b *Buffer) TypeSequence(seq *key.Sequence) {
	for _, ev := range seq.Events {
		b.Type(ev)
	}
}

// notify calls the listeners for ev.Kind and reports whether any consumed it.
// Every listener sees the event even after one consumed it.
func (b *Buffer) notify(ev Event) bool {
	// Copy so listeners may unregister while being notified.
	regs := make([]registration, len(b.listeners))
	copy(regs, b.listeners)

	consumed := false
	for _, r := range regs {
		if r.kind != ev.Kind {
			continue
		}
		if r.fn(ev) {
			consumed = true
		}
	}
	return consumed
}
