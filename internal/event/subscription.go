package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not
	// receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been
	// permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription represents an active event subscription. Holders use it to
// control delivery and to deterministically detach a handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() string

	// Topic returns the subscribed topic pattern.
	Topic() Topic

	// State returns the current subscription state.
	State() SubscriptionState

	// IsActive returns true if the subscription can receive events.
	IsActive() bool

	// Pause temporarily stops event delivery to this subscription.
	Pause()

	// Resume restarts event delivery after a pause.
	Resume()

	// Cancel permanently cancels the subscription. After cancellation,
	// the subscription cannot be resumed.
	Cancel()
}

// FilterFunc is an optional predicate applied before delivery. Events for
// which it returns false are skipped.
type FilterFunc func(Event) bool

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithFilter sets a delivery filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(s *subscription) {
		s.filter = f
	}
}

// subscription is the internal implementation of Subscription.
type subscription struct {
	id      string
	pattern Topic
	handler Handler
	filter  FilterFunc
	state   atomic.Int32
}

func newSubscription(pattern Topic, h Handler, opts ...SubscriptionOption) *subscription {
	s := &subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: h,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(int32(SubscriptionStateActive))
	return s
}

// ID returns the subscription ID.
func (s *subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic pattern.
func (s *subscription) Topic() Topic {
	return s.pattern
}

// State returns the current subscription state.
func (s *subscription) State() SubscriptionState {
	return SubscriptionState(s.state.Load())
}

// IsActive returns true if the subscription is active.
func (s *subscription) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// Pause temporarily stops event delivery.
func (s *subscription) Pause() {
	// Only pause if currently active
	s.state.CompareAndSwap(int32(SubscriptionStateActive), int32(SubscriptionStatePaused))
}

// Resume restarts event delivery.
func (s *subscription) Resume() {
	// Only resume if currently paused
	s.state.CompareAndSwap(int32(SubscriptionStatePaused), int32(SubscriptionStateActive))
}

// Cancel permanently cancels the subscription.
func (s *subscription) Cancel() {
	s.state.Store(int32(SubscriptionStateCancelled))
}

// shouldDeliver returns true if the event should be delivered to this
// subscription.
func (s *subscription) shouldDeliver(ev Event) bool {
	if !s.IsActive() {
		return false
	}
	if !Match(s.pattern, ev.Topic) {
		return false
	}
	if s.filter != nil && !s.filter(ev) {
		return false
	}
	return true
}
