package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keymask/internal/event/topic"
)

type change struct {
	Raw       string
	Formatted string
}

func TestPublishDeliversSynchronously(t *testing.T) {
	bus := NewBus()
	var got []change

	_, err := bus.Subscribe("mask.changed.*", Typed(func(_ context.Context, ev Event[change]) error {
		got = append(got, ev.Payload)
		return nil
	}))
	require.NoError(t, err)

	ev := NewEvent[change]("mask.changed.phone", change{"5", "(5"}, "binding")
	require.NoError(t, bus.Publish(context.Background(), ev))
	require.NoError(t, bus.Publish(context.Background(), NewEvent[change]("control.value.phone", change{}, "control")))

	assert.Equal(t, []change{{"5", "(5"}}, got)

	stats := bus.Stats()
	assert.Equal(t, uint64(2), stats.EventsPublished)
	assert.Equal(t, uint64(1), stats.EventsDelivered)
	assert.Equal(t, 1, stats.ActiveSubscribers)
}

func TestPublishOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	record := func(name string) HandlerFunc {
		return func(context.Context, any) error {
			order = append(order, name)
			return nil
		}
	}

	_, _ = bus.SubscribeFunc("**", record("low"), WithPriority(PriorityTranscript))
	_, _ = bus.SubscribeFunc("mask.**", record("normal-1"))
	_, _ = bus.SubscribeFunc("mask.changed.amount", record("high"), WithPriority(PriorityControl))
	_, _ = bus.SubscribeFunc("mask.changed.amount", record("normal-2"))

	require.NoError(t, bus.Publish(context.Background(), NewEvent("mask.changed.amount", 1.5, "test")))
	assert.Equal(t, []string{"high", "normal-1", "normal-2", "low"}, order)
}

func TestPublishInvalidEvent(t *testing.T) {
	bus := NewBus()
	assert.ErrorIs(t, bus.Publish(context.Background(), "not an event"), ErrInvalidEvent)
	assert.ErrorIs(t, bus.Publish(context.Background(), NewEvent[int]("", 1, "test")), ErrInvalidEvent)
	assert.ErrorIs(t, bus.Publish(context.Background(), NewEvent("mask.changed.*", 1, "test")), ErrInvalidTopic)
	assert.ErrorIs(t, bus.Publish(context.Background(), NewEvent("mask..phone", 1, "test")), ErrInvalidTopic)
}

func TestHandlerErrorsAndPanics(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	reached := false

	_, _ = bus.SubscribeFunc("mask.**", func(context.Context, any) error { return boom })
	_, _ = bus.SubscribeFunc("mask.**", func(context.Context, any) error { panic("bad handler") })
	_, _ = bus.SubscribeFunc("mask.**", func(context.Context, any) error { reached = true; return nil })

	err := bus.Publish(context.Background(), NewEvent("mask.changed.x", 0, "test"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.True(t, reached)

	var perr *PanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad handler", perr.Value)
	assert.Equal(t, "mask.changed.x", perr.Topic)

	stats := bus.Stats()
	assert.Equal(t, uint64(1), stats.HandlerErrors)
	assert.Equal(t, uint64(1), stats.HandlerPanics)
}

func TestSubscribeOnceAndFilter(t *testing.T) {
	bus := NewBus()
	var once, filtered int

	_, _ = bus.SubscribeFunc("mask.**", func(context.Context, any) error { once++; return nil }, WithOnce())
	_, _ = bus.SubscribeFunc("mask.**", func(context.Context, any) error { filtered++; return nil },
		WithFilter(func(ev any) bool {
			e, ok := ev.(Event[int])
			return ok && e.Payload > 1
		}))

	for i := 1; i <= 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), NewEvent[int]("mask.changed.n", i, "test")))
	}
	assert.Equal(t, 1, once)
	assert.Equal(t, 2, filtered)
	assert.Equal(t, 1, bus.Count())
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub, err := bus.SubscribeFunc("mask.changed.phone", func(context.Context, any) error { calls++; return nil })
	require.NoError(t, err)
	assert.True(t, sub.IsActive())
	assert.Equal(t, topic.Topic("mask.changed.phone"), sub.Topic())
	assert.NotEmpty(t, sub.ID())

	require.NoError(t, bus.Unsubscribe(sub))
	assert.False(t, sub.IsActive())
	assert.ErrorIs(t, bus.Unsubscribe(sub), ErrSubscriptionNotFound)
	assert.ErrorIs(t, bus.Unsubscribe(nil), ErrInvalidSubscription)

	require.NoError(t, bus.Publish(context.Background(), NewEvent("mask.changed.phone", "", "test")))
	assert.Equal(t, 0, calls)
}

func TestSubscribeValidation(t *testing.T) {
	bus := NewBus()
	_, err := bus.Subscribe("mask.**", nil)
	assert.ErrorIs(t, err, ErrNilHandler)

	_, err = bus.SubscribeFunc("mask..x", func(context.Context, any) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidTopic)
}

func TestEventMetadata(t *testing.T) {
	ev := NewEvent("mask.changed.phone", "x", "binding")
	assert.Len(t, ev.Metadata.ID, 36)
	assert.Equal(t, "binding", ev.Metadata.Source)
	assert.False(t, ev.Metadata.At.IsZero())
	assert.NotEqual(t, ev.Metadata.ID, NewEvent("mask.changed.phone", "x", "binding").Metadata.ID)
	assert.Equal(t, topic.Topic("mask.changed.phone"), ev.EventTopic())
}

func TestTypedIgnoresOtherPayloads(t *testing.T) {
	called := false
	h := Typed(func(context.Context, Event[string]) error { called = true; return nil })
	require.NoError(t, h.Handle(context.Background(), NewEvent("a", 1, "test")))
	assert.False(t, called)

	ev := NewEvent("a", "s", "test")
	require.NoError(t, h.Handle(context.Background(), &ev))
	assert.True(t, called)
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "control", PriorityControl.String())
	assert.Equal(t, "normal", PriorityNormal.String())
	assert.Equal(t, "transcript", PriorityTranscript.String())
}
