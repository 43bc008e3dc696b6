package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Bridge mirrors every published event onto a Kafka topic for external
// consumers (analytics, auditing). It is one sink among others; failures are
// reported to the dispatcher, which logs and moves on.
type Bridge struct {
	writer *kafka.Writer
}

type bridgeEnvelope struct {
	Topic     string            `json:"topic"`
	Type      string            `json:"type"`
	Payload   map[string]string `json:"payload"`
	EmittedAt time.Time         `json:"emitted_at"`
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewBridge builds a bridge writing to the given Kafka topic.
func NewBridge(brokers []string, topic string) *Bridge {
	return &Bridge{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish writes the event keyed by its logical topic, preserving per-topic
// ordering on the partitioned stream.
func (b *Bridge) Publish(ctx context.Context, topic string, ev Event) error {
	value, err := json.Marshal(bridgeEnvelope{
		Topic:     topic,
		Type:      ev.Type,
		Payload:   ev.Payload,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(topic),
		Value: value,
	})
}

// Close flushes and closes the underlying writer.
func (b *Bridge) Close() error {
	return b.writer.Close()
}
