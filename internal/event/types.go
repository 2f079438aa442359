package event

import "context"

// Priority orders delivery; lower runs first. Subscriptions with equal
// priority run in the order they were made.
type Priority int

// Transcript writers subscribe at PriorityTranscript so they record an
// event after every other handler has seen it.
const (
	PriorityControl    Priority = 100
	PriorityNormal     Priority = 200
	PriorityTranscript Priority = 300
)

func (p Priority) String() string {
	switch {
	case p <= PriorityControl:
		return "control"
	case p <= PriorityNormal:
		return "normal"
	}
	return "transcript"
}

// Handler receives published events. event is an Event[T] for some T.
type Handler interface {
	Handle(ctx context.Context, event any) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event any) error

func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// Typed adapts fn into a Handler. Events whose payload is not T are
// ignored.
func Typed[T any](fn func(ctx context.Context, event Event[T]) error) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		switch ev := event.(type) {
		case Event[T]:
			return fn(ctx, ev)
		case *Event[T]:
			return fn(ctx, *ev)
		}
		return nil
	})
}
