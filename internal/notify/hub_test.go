package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestHubDeliversToTopicSubscribers(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("kitchen", "couriers")
	defer sub.Close()

	ev := Event{Type: EventOrderStatusChange, Payload: map[string]string{"code": "ORD-1"}}
	if err := hub.Publish(context.Background(), "kitchen", ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := <-sub.Events()
	if got.Type != EventOrderStatusChange || got.Payload["code"] != "ORD-1" {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestHubIsolatesTopics(t *testing.T) {
	hub := newTestHub()
	kitchen := hub.Subscribe(TopicKitchen)
	couriers := hub.Subscribe(TopicCouriers)
	defer kitchen.Close()
	defer couriers.Close()

	if err := hub.Publish(context.Background(), TopicKitchen, Event{Type: EventOrderStatusChange}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-couriers.Events():
		t.Fatalf("courier subscriber received foreign event %+v", ev)
	default:
	}
	if len(kitchen.Events()) != 1 {
		t.Fatal("kitchen subscriber missed the event")
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("kitchen")
	defer sub.Close()

	for i := 0; i < defaultSubscriberBuffer+5; i++ {
		if err := hub.Publish(context.Background(), "kitchen", Event{Type: EventOrderUpdated}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := len(sub.Events()); got != defaultSubscriberBuffer {
		t.Fatalf("expected %d buffered events, got %d", defaultSubscriberBuffer, got)
	}
}

func TestHubPreservesPerTopicOrder(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("kitchen")
	defer sub.Close()

	states := []string{"RECEIVED", "IN_PREPARATION", "READY_FOR_PICKUP"}
	for _, state := range states {
		if err := hub.Publish(context.Background(), "kitchen", Event{
			Type:    EventOrderStatusChange,
			Payload: map[string]string{"state": state},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	for _, want := range states {
		got := <-sub.Events()
		if got.Payload["state"] != want {
			t.Fatalf("out of order delivery: got %s, want %s", got.Payload["state"], want)
		}
	}
}

func TestHubCloseDetachesSubscription(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("kitchen")
	sub.Close()
	sub.Close()

	if err := hub.Publish(context.Background(), "kitchen", Event{Type: EventOrderUpdated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, open := <-sub.Events(); open {
		t.Fatal("expected closed events channel")
	}
}
