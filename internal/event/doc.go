// Package event provides a synchronous publish/subscribe bus.
//
// Mask bindings publish every accepted edit on the bus so that controls,
// transcripts and the terminal form can react without knowing about each
// other. Delivery happens in the publisher's goroutine, in priority order,
// before Publish returns; there is no queue and no background work.
//
// # Event Topics
//
// Events carry a hierarchical topic with dot notation:
//
//	mask.changed.phone    - the phone field accepted an edit
//	control.value.amount  - the amount control took a new value
//
// Subscriptions may use wildcards (see package topic):
//
//	mask.changed.*   - every mask change
//	**               - everything
//
// # Typed Events
//
// Event[T] pairs a payload with Metadata (ID, timestamp, source).
// Handlers receive the event as any; Typed adapts a function that expects
// a specific payload type and ignores everything else:
//
//	bus.Subscribe("mask.changed.*", event.Typed(func(ctx context.Context, ev event.Event[mask.Change]) error {
//		fmt.Println(ev.Payload.Formatted)
//		return nil
//	}))
//
// # Errors and Panics
//
// Handler errors are collected and returned from Publish joined with
// errors.Join. A panicking handler is recovered into a *PanicError; the
// remaining handlers still run.
package event
