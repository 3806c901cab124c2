// Package redisstream publishes ledger events to a Redis stream.
package redisstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lobus/superapp-ledger/internal/models/events"
	"github.com/redis/go-redis/v9"
)

const DefaultStream = "lobus.ledger.events"

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

type Publisher struct {
	client streamAdder
	stream string
	maxLen int64
}

// NewClient connects to addr and verifies the connection with PING
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewPublisher appends to stream, trimming it to roughly maxLen entries
// when maxLen > 0.
func NewPublisher(client *redis.Client, stream string, maxLen int64) *Publisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &Publisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, event any) error {
	eventJSON, err := json.Marshal(events.NewEnvelope(eventType, event))
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":  eventType,
			"event": eventJSON,
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if _, err := p.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
