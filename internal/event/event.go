package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/keymask/internal/event/topic"
)

// Event is one publication: a payload and the topic it was published on.
// Bindings publish Event[mask.Change], controls Event[control.Change].
type Event[T any] struct {
	Type     topic.Topic
	Payload  T
	Metadata Metadata
}

// Metadata identifies a publication.
type Metadata struct {
	ID     string
	At     time.Time
	Source string
}

// NewEvent stamps payload with a fresh ID and the current time.
func NewEvent[T any](t topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    t,
		Payload: payload,
		Metadata: Metadata{
			ID:     uuid.NewString(),
			At:     time.Now(),
			Source: source,
		},
	}
}

// EventTopic implements Routable.
func (e Event[T]) EventTopic() topic.Topic { return e.Type }

// Routable is what Publish needs from an event: the topic to route on.
// Every Event[T] is Routable.
type Routable interface {
	EventTopic() topic.Topic
}
