package event

import (
	"testing"

	"github.com/dshills/glimpse/internal/overlay"
)

func TestBusPublishSubscribe(t *testing.T) {
	b := NewBus()

	var got []Event
	sub := b.Subscribe(TopicCursorMoved, func(ev Event) {
		got = append(got, ev)
	})

	payload := CursorMoved{
		BufferID: "buf-1",
		Old:      overlay.Position{Line: 1, Col: 0},
		New:      overlay.Position{Line: 2, Col: 0},
	}
	if n := b.Publish(TopicCursorMoved, payload); n != 1 {
		t.Errorf("Publish() delivered to %d handlers, want 1", n)
	}

	if len(got) != 1 {
		t.Fatalf("handler received %d events, want 1", len(got))
	}
	if got[0].Topic != TopicCursorMoved {
		t.Errorf("event topic = %q, want %q", got[0].Topic, TopicCursorMoved)
	}
	if got[0].ID == "" {
		t.Error("event ID is empty")
	}
	cm, ok := got[0].Payload.(CursorMoved)
	if !ok {
		t.Fatalf("payload type = %T, want CursorMoved", got[0].Payload)
	}
	if cm.New.Line != 2 {
		t.Errorf("payload New.Line = %d, want 2", cm.New.Line)
	}
	if !sub.IsActive() {
		t.Error("subscription not active after delivery")
	}
}

func TestBusTopicRouting(t *testing.T) {
	b := NewBus()

	var cursor, preview int
	b.Subscribe(TopicCursorMoved, func(Event) { cursor++ })
	b.Subscribe("preview.**", func(Event) { preview++ })

	b.Publish(TopicCursorMoved, nil)
	b.Publish(TopicPreviewShown, nil)
	b.Publish(TopicPreviewHidden, nil)

	if cursor != 1 {
		t.Errorf("cursor handler fired %d times, want 1", cursor)
	}
	if preview != 2 {
		t.Errorf("preview handler fired %d times, want 2", preview)
	}
}

func TestBusCancel(t *testing.T) {
	b := NewBus()

	fired := 0
	sub := b.Subscribe(TopicPreviewShown, func(Event) { fired++ })

	b.Publish(TopicPreviewShown, nil)
	sub.Cancel()
	b.Publish(TopicPreviewShown, nil)

	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}
	if sub.State() != SubscriptionStateCancelled {
		t.Errorf("State() = %v, want cancelled", sub.State())
	}

	// Cancelled subscriptions are pruned after the next publish.
	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}

func TestBusPauseResume(t *testing.T) {
	b := NewBus()

	fired := 0
	sub := b.Subscribe(TopicPreviewShown, func(Event) { fired++ })

	sub.Pause()
	b.Publish(TopicPreviewShown, nil)
	if fired != 0 {
		t.Errorf("paused handler fired %d times, want 0", fired)
	}

	sub.Resume()
	b.Publish(TopicPreviewShown, nil)
	if fired != 1 {
		t.Errorf("resumed handler fired %d times, want 1", fired)
	}

	// Resume does not revive a cancelled subscription.
	sub.Cancel()
	sub.Resume()
	b.Publish(TopicPreviewShown, nil)
	if fired != 1 {
		t.Errorf("cancelled handler fired %d times, want 1", fired)
	}
}

func TestBusFilter(t *testing.T) {
	b := NewBus()

	var got []string
	b.Subscribe(TopicCursorMoved, func(ev Event) {
		got = append(got, ev.Payload.(CursorMoved).BufferID)
	}, WithFilter(func(ev Event) bool {
		cm, ok := ev.Payload.(CursorMoved)
		return ok && cm.BufferID == "buf-1"
	}))

	b.Publish(TopicCursorMoved, CursorMoved{BufferID: "buf-1"})
	b.Publish(TopicCursorMoved, CursorMoved{BufferID: "buf-2"})
	b.Publish(TopicCursorMoved, CursorMoved{BufferID: "buf-1"})

	if len(got) != 2 {
		t.Fatalf("filtered handler received %d events, want 2", len(got))
	}
	for _, id := range got {
		if id != "buf-1" {
			t.Errorf("received event for buffer %q, want buf-1", id)
		}
	}
}

func TestBusInvalidSubscription(t *testing.T) {
	b := NewBus()

	sub := b.Subscribe("", func(Event) {
		t.Error("handler fired for invalid pattern")
	})
	if sub.State() != SubscriptionStateCancelled {
		t.Errorf("State() = %v, want cancelled", sub.State())
	}

	nilSub := b.Subscribe(TopicCursorMoved, nil)
	if nilSub.State() != SubscriptionStateCancelled {
		t.Errorf("State() for nil handler = %v, want cancelled", nilSub.State())
	}

	b.Publish(TopicCursorMoved, nil)
	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}
}

func TestBusDeliveryOrder(t *testing.T) {
	b := NewBus()

	var order []int
	b.Subscribe(TopicPreviewShown, func(Event) { order = append(order, 1) })
	b.Subscribe(TopicPreviewShown, func(Event) { order = append(order, 2) })
	b.Subscribe(TopicPreviewShown, func(Event) { order = append(order, 3) })

	b.Publish(TopicPreviewShown, nil)

	if len(order) != 3 {
		t.Fatalf("delivered to %d handlers, want 3", len(order))
	}
	for i, v := range order {
		if v != i+1 {
			t.Errorf("delivery order[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestBusSubscribeDuringDelivery(t *testing.T) {
	b := NewBus()

	fired := 0
	b.Subscribe(TopicPreviewShown, func(Event) {
		// Subscribing from a handler must not deadlock.
		b.Subscribe(TopicPreviewHidden, func(Event) { fired++ })
	})

	b.Publish(TopicPreviewShown, nil)
	b.Publish(TopicPreviewHidden, nil)

	if fired != 1 {
		t.Errorf("late handler fired %d times, want 1", fired)
	}
}
