package features

import (
	"context"
	"strconv"
	"strings"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

const giftCommand = "/gift"

var giftAmount = decimal.NewFromInt(10)

type SendResult struct {
	Message models.ChatMessage  `json:"message"`
	Gift    *models.Transaction `json:"gift,omitempty"`
}

// Chat returns the session's channel history, oldest first
func (s *Service) Chat(sess *session.Session) []models.ChatMessage {
	var out []models.ChatMessage
	s.withView(sess, func(v *viewState) {
		out = make([]models.ChatMessage, len(v.chat))
		copy(out, v.chat)
	})
	return out
}

// Send posts text to the channel. A message containing /gift also sends a
// 10 gift; when the balance cannot cover it nothing is posted.
func (s *Service) Send(ctx context.Context, sess *session.Session, text string) (SendResult, error) {
	if strings.TrimSpace(text) == "" {
		return SendResult{}, ledger.Invalid(msgEmptyChat, nil)
	}

	var res SendResult
	if strings.Contains(text, giftCommand) {
		txs, err := s.mutate(ctx, sess, "social", func(l *ledger.Ledger) ([]models.Transaction, error) {
			tx, err := l.Debit(giftAmount, "Regalo en Chat", "")
			return single(tx, debitError(err, msgGiftInsufficient))
		})
		if err != nil {
			return SendResult{}, err
		}
		gift := first(txs)
		res.Gift = &gift
	}

	now := s.now()
	res.Message = models.ChatMessage{
		ID:   strconv.FormatInt(now.UnixMilli(), 10),
		User: sess.Name,
		Text: text,
		Time: now.Format("15:04"),
		Type: "user",
	}
	s.withView(sess, func(v *viewState) {
		v.chat = append(v.chat, res.Message)
	})
	return res, nil
}

// Ranking lists the union's leaders, richest first
func (s *Service) Ranking() []models.Profile {
	return s.catalogue.Leaders()
}
