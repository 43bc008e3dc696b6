package notify

import (
	"context"
	"log/slog"
	"sync"
)

const defaultSubscriberBuffer = 16

// Publisher delivers an event to every subscriber of a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, ev Event) error
}

// Hub is the in-process topic fan-out. Delivery is best-effort and
// at-most-once per subscription: events for subscribers with a full buffer
// are dropped, never queued or retried.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	logger *slog.Logger
	buffer int
}

// Subscription is one attached consumer. Events arrive on Events() in the
// order they were published per topic.
type Subscription struct {
	hub    *Hub
	topics []string
	ch     chan Event
	once   sync.Once
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		logger: logger,
		buffer: defaultSubscriberBuffer,
	}
}

// Subscribe attaches a consumer to the given topics.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		hub:    h,
		topics: topics,
		ch:     make(chan Event, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, topic := range topics {
		set, ok := h.subs[topic]
		if !ok {
			set = make(map[*Subscription]struct{})
			h.subs[topic] = set
		}
		set[sub] = struct{}{}
	}
	return sub
}

// Publish delivers ev to every current subscriber of topic. It never blocks
// the caller; a subscriber that cannot keep up loses the event.
func (h *Hub) Publish(ctx context.Context, topic string, ev Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[topic] {
		select {
		case sub.ch <- ev:
		default:
			h.logger.Warn("notification dropped for slow subscriber",
				slog.String("topic", topic),
				slog.String("event", ev.Type),
			)
		}
	}
	return nil
}

// SubscriberCount reports how many subscriptions are attached to topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Events returns the subscriber channel. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription from all topics.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		for _, topic := range s.topics {
			if set, ok := s.hub.subs[topic]; ok {
				delete(set, s)
				if len(set) == 0 {
					delete(s.hub.subs, topic)
				}
			}
		}
		s.hub.mu.Unlock()
		close(s.ch)
	})
}
