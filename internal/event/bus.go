// Package event provides the publish/subscribe bus connecting the host
// editor to preview sessions. The host publishes cursor movement; sessions
// publish preview lifecycle events for observers such as status lines.
//
// Delivery is synchronous on the publisher's goroutine. Subscriptions are
// explicit handles that can be paused, resumed, and cancelled.
package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a published occurrence delivered to matching subscriptions.
type Event struct {
	// ID uniquely identifies this event instance.
	ID string

	// Topic is the concrete topic the event was published on.
	Topic Topic

	// Timestamp is when the event was published.
	Timestamp time.Time

	// Payload carries the typed event data.
	Payload any
}

// Handler processes a delivered event.
type Handler func(Event)

// Bus routes published events to subscriptions whose pattern matches the
// event topic.
type Bus struct {
	mu sync.RWMutex

	// subs holds subscriptions in registration order.
	subs []*subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make([]*subscription, 0),
	}
}

// Subscribe registers a handler for topics matching the pattern and
// returns its subscription handle. An invalid pattern (empty, or with
// empty segments) returns a cancelled subscription that never fires;
// wildcard segments are permitted.
func (b *Bus) Subscribe(pattern Topic, h Handler, opts ...SubscriptionOption) Subscription {
	sub := newSubscription(pattern, h, opts...)
	if !patternValid(pattern) || h == nil {
		sub.Cancel()
		return sub
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
	return sub
}

// Publish delivers an event with the given payload to every matching
// active subscription, in registration order, and returns the number of
// handlers invoked. Handlers run on the caller's goroutine.
func (b *Bus) Publish(t Topic, payload any) int {
	ev := Event{
		ID:        uuid.NewString(),
		Topic:     t,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subs))
	cancelled := false
	for _, sub := range b.subs {
		if sub.State() == SubscriptionStateCancelled {
			cancelled = true
			continue
		}
		if sub.shouldDeliver(ev) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	// Handlers run outside the lock so they may subscribe or cancel.
	for _, sub := range matched {
		sub.handler(ev)
	}

	if cancelled {
		b.prune()
	}
	return len(matched)
}

// SubscriberCount returns the number of non-cancelled subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, sub := range b.subs {
		if sub.State() != SubscriptionStateCancelled {
			n++
		}
	}
	return n
}

// prune drops cancelled subscriptions.
func (b *Bus) prune() {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.subs[:0]
	for _, sub := range b.subs {
		if sub.State() != SubscriptionStateCancelled {
			kept = append(kept, sub)
		}
	}
	b.subs = kept
}

// patternValid reports whether a pattern is usable for subscription.
// Wildcards are valid segments, so plain topic validation applies.
func patternValid(pattern Topic) bool {
	return pattern.IsValid()
}
