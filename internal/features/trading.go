package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type Order struct {
	Symbol string
	Side   Side
	Shares int64
}

type Fill struct {
	Quote       models.Quote       `json:"quote"`
	Side        Side               `json:"side"`
	Shares      int64              `json:"shares"`
	Total       decimal.Decimal    `json:"total"`
	Transaction models.Transaction `json:"transaction"`
}

// Quotes returns the live board
func (s *Service) Quotes() []models.Quote {
	return s.board.Quotes()
}

// RefreshQuotes forces a market tick
func (s *Service) RefreshQuotes() []models.Quote {
	return s.board.Tick()
}

// Trade fills an order at the current board price. Holdings are not tracked,
// a sell simply credits price times shares.
func (s *Service) Trade(ctx context.Context, sess *session.Session, order Order) (Fill, error) {
	if order.Shares <= 0 {
		return Fill{}, ledger.Invalid(msgShares, nil)
	}
	side := Side(strings.ToUpper(string(order.Side)))
	if side != Buy && side != Sell {
		return Fill{}, ledger.Invalid(fmt.Sprintf("Operación desconocida: %s", order.Side), nil)
	}
	quote, ok := s.board.Quote(order.Symbol)
	if !ok {
		return Fill{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, order.Symbol)
	}

	total := quote.Price.Mul(decimal.NewFromInt(order.Shares))
	subtitle := fmt.Sprintf("%d acciones @ $%s", order.Shares, quote.Price.StringFixed(2))

	txs, err := s.mutate(ctx, sess, "trading", func(l *ledger.Ledger) ([]models.Transaction, error) {
		if side == Sell {
			return single(l.Credit(total, "Venta: "+quote.Name, subtitle))
		}
		tx, err := l.Debit(total, "Inversión: "+quote.Name, subtitle)
		return single(tx, debitError(err, msgInsufficient))
	})
	if err != nil {
		return Fill{}, err
	}
	return Fill{Quote: quote, Side: side, Shares: order.Shares, Total: total, Transaction: first(txs)}, nil
}
