package event

import (
	"sync/atomic"

	"github.com/dshills/keymask/internal/event/topic"
)

// FilterFunc decides whether an event is delivered to a subscription.
type FilterFunc func(event any) bool

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate to filter events.
	Filter FilterFunc

	// Once indicates the subscription should auto-cancel after the first event.
	Once bool
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce sets the subscription to auto-cancel after the first event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// Subscription is a registered handler.
type Subscription struct {
	id        string
	pattern   topic.Topic
	handler   Handler
	config    SubscriptionConfig
	seq       uint64
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic pattern.
func (s *Subscription) Topic() topic.Topic {
	return s.pattern
}

// Config returns the subscription configuration.
func (s *Subscription) Config() SubscriptionConfig {
	return s.config
}

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel stops delivery to the subscription.
func (s *Subscription) Cancel() {
	s.cancelled.Store(true)
}

func (s *Subscription) shouldDeliver(t topic.Topic, event any) bool {
	if !s.IsActive() || !t.Matches(s.pattern) {
		return false
	}
	return s.config.Filter == nil || s.config.Filter(event)
}
