package event

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEvent         = errors.New("event: value is not a routable event")
	ErrInvalidTopic         = errors.New("event: invalid topic")
	ErrInvalidSubscription  = errors.New("event: nil subscription")
	ErrSubscriptionNotFound = errors.New("event: subscription not found")
	ErrNilHandler           = errors.New("event: nil handler")

	// ErrHandlerPanic matches every *PanicError.
	ErrHandlerPanic = errors.New("event: handler panicked")
)

// HandlerError is a handler failure, tagged with where it happened.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("event: %s handler %s: %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// PanicError is a recovered handler panic. Stack is captured at recovery.
type PanicError struct {
	SubscriptionID string
	Topic          string
	Value          any
	Stack          string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("event: %s handler %s panicked: %v", e.Topic, e.SubscriptionID, e.Value)
}

func (e *PanicError) Unwrap() error { return ErrHandlerPanic }
