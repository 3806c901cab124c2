// Package events holds the broker-less publishers. The broker-backed ones
// live in the kafka and redisstream subpackages.
package events

import (
	"context"

	interfaces "github.com/lobus/superapp-ledger/internal/interfaces"
	"github.com/sirupsen/logrus"
)

// LogPublisher writes every event as a structured log line. It is the default
// when no broker is configured.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, eventType string, event any) error {
	p.log.WithFields(logrus.Fields{
		"event_type": eventType,
		"event":      event,
	}).Info("event published")
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Nop discards events
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }

var (
	_ interfaces.EventPublisher = (*LogPublisher)(nil)
	_ interfaces.EventPublisher = Nop{}
)
