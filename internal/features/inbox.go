package features

import (
	"context"
	"time"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	modelevents "github.com/lobus/superapp-ledger/internal/models/events"
	"github.com/lobus/superapp-ledger/internal/session"
)

type Inbox struct {
	Messages []models.Message `json:"messages"`
	Unread   int              `json:"unread"`
}

func (s *Service) Messages(sess *session.Session, filter ledger.MessageFilter) Inbox {
	return Inbox{
		Messages: sess.Ledger.Messages(filter),
		Unread:   sess.Ledger.UnreadCount(),
	}
}

// OpenMessage marks a message read and returns it
func (s *Service) OpenMessage(ctx context.Context, sess *session.Session, id string) (models.Message, error) {
	flipped, err := sess.Ledger.MarkMessageRead(id)
	if err != nil {
		return models.Message{}, err
	}
	if flipped {
		if err := s.publisher.Publish(ctx, modelevents.MessageReadType, modelevents.MessageRead{
			SessionID:  sess.ID,
			MessageID:  id,
			OccurredAt: time.Now(),
		}); err != nil {
			s.log.WithError(err).WithField("message", id).Error("failed to publish event")
		}
	}
	for _, m := range sess.Ledger.Messages(ledger.FilterAll) {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Message{}, ledger.ErrMessageNotFound
}
