package test

import (
	"context"
	"sync"

	"github.com/comedor/comedor/internal/domain/model"
	"github.com/comedor/comedor/internal/notify"
)

// PublishedEvent is one recorded sink delivery.
type PublishedEvent struct {
	Topic string
	Event notify.Event
}

// PublisherRecorder captures published events for assertions.
type PublisherRecorder struct {
	PublishFn func(context.Context, string, notify.Event) error

	mu     sync.Mutex
	Events []PublishedEvent
}

// Publish records the delivery or delegates to the override.
func (r *PublisherRecorder) Publish(ctx context.Context, topic string, ev notify.Event) error {
	if r.PublishFn != nil {
		return r.PublishFn(ctx, topic, ev)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, PublishedEvent{Topic: topic, Event: ev})
	return nil
}

// Snapshot returns a copy of the recorded events.
func (r *PublisherRecorder) Snapshot() []PublishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]PublishedEvent, len(r.Events))
	copy(out, r.Events)
	return out
}

// ByTopic returns recorded events published to the topic.
func (r *PublisherRecorder) ByTopic(topic string) []PublishedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []PublishedEvent
	for _, ev := range r.Events {
		if ev.Topic == topic {
			out = append(out, ev)
		}
	}
	return out
}

// NotifiedOrder is one recorded notifier invocation.
type NotifiedOrder struct {
	Order        model.Order
	CustomerName string
	Assignment   bool
}

// NotifierRecorder captures notifier invocations for assertions.
type NotifierRecorder struct {
	mu    sync.Mutex
	Calls []NotifiedOrder
}

// OrderChanged records a transition announcement.
func (r *NotifierRecorder) OrderChanged(order model.Order, customerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, NotifiedOrder{Order: order, CustomerName: customerName})
}

// CourierAssigned records an assignment announcement.
func (r *NotifierRecorder) CourierAssigned(order model.Order, customerName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, NotifiedOrder{Order: order, CustomerName: customerName, Assignment: true})
}

var _ notify.Publisher = (*PublisherRecorder)(nil)
