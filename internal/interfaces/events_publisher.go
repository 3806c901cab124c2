package interfaces

import "context"

// EventPublisher ships domain events to whatever broker is configured.
// eventType is one of the constants in models/events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, event any) error
	Close() error
}
