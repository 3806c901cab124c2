package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types published on the ledger topic
const (
	TransactionAppliedType = "transaction.applied"
	MessageReadType        = "message.read"
	SessionOpenedType      = "session.opened"
	SessionClosedType      = "session.closed"
)

type TransactionApplied struct {
	SessionID     string          `json:"session_id"`
	Handle        string          `json:"handle"`
	TransactionID string          `json:"transaction_id"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type MessageRead struct {
	SessionID  string    `json:"session_id"`
	MessageID  string    `json:"message_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SessionChanged struct {
	SessionID  string    `json:"session_id"`
	Handle     string    `json:"handle"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope wraps every published event with its type and emission time
type Envelope struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

func NewEnvelope(eventType string, data any) Envelope {
	return Envelope{Type: eventType, Timestamp: time.Now().UTC(), Data: data}
}
