package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lobus/superapp-ledger/internal/models/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestPublishWrapsEventInEnvelope(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w}

	err := p.Publish(context.Background(), events.TransactionAppliedType, events.TransactionApplied{
		SessionID: "sess-1",
		Title:     "Recarga Cuenta",
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "sess-1", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, events.TransactionAppliedType, string(msg.Headers[0].Value))

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Title  string `json:"title"`
			Amount string `json:"amount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, events.TransactionAppliedType, decoded.Type)
	assert.Equal(t, "Recarga Cuenta", decoded.Data.Title)
	assert.Equal(t, "100", decoded.Data.Amount)
}

func TestPublishPropagatesWriterError(t *testing.T) {
	p := &Publisher{writer: &mockWriter{err: errors.New("broker down")}}
	err := p.Publish(context.Background(), events.SessionOpenedType, events.SessionChanged{SessionID: "s"})
	assert.ErrorContains(t, err, "broker down")
}

func TestNewPublisherDefaults(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "")
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, DefaultTopic, w.Topic)
	assert.Equal(t, kafka.Lz4, w.Compression)
}

func TestClose(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w}
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
