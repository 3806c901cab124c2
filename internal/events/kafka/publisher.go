package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lobus/superapp-ledger/internal/models/events"
	"github.com/segmentio/kafka-go"
)

// DefaultTopic receives every ledger and session event
const DefaultTopic = "lobus.ledger.events"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:        kafka.TCP(brokers...),
			Topic:       topic,
			Balancer:    &kafka.Hash{},
			Compression: kafka.Lz4,
		},
	}
}

// Publish writes the event wrapped in an envelope. The session id, when the
// event carries one, is used as the message key so a session's events stay on
// one partition in order.
func (p *Publisher) Publish(ctx context.Context, eventType string, event any) error {
	data, err := json.Marshal(events.NewEnvelope(eventType, event))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(partitionKey(event)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func partitionKey(event any) string {
	switch e := event.(type) {
	case events.TransactionApplied:
		return e.SessionID
	case events.MessageRead:
		return e.SessionID
	case events.SessionChanged:
		return e.SessionID
	default:
		return ""
	}
}
