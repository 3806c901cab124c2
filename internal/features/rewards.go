package features

import (
	"context"
	"math"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

var (
	dailyBonus   = decimal.NewFromInt(50)
	scratchPrice = decimal.NewFromInt(5)
	spinPrice    = decimal.NewFromInt(10)
)

// GameResult reports the cost and, when won, the prize of a game
type GameResult struct {
	Won          bool                 `json:"won"`
	Prize        decimal.Decimal      `json:"prize"`
	Transactions []models.Transaction `json:"transactions"`
}

// ClaimDaily grants the login bonus once per session
func (s *Service) ClaimDaily(ctx context.Context, sess *session.Session) (models.Transaction, error) {
	claimed := false
	s.withView(sess, func(v *viewState) {
		claimed = v.dailyClaimed
		v.dailyClaimed = true
	})
	if claimed {
		return models.Transaction{}, ledger.Invalid(msgAlreadyClaimed, ErrAlreadyClaimed)
	}

	txs, err := s.mutate(ctx, sess, "rewards", func(l *ledger.Ledger) ([]models.Transaction, error) {
		tx, err := l.Credit(dailyBonus, "Recompensa Diaria", "Bonus por ingreso")
		if err != nil {
			s.withView(sess, func(v *viewState) { v.dailyClaimed = false })
		}
		return single(tx, err)
	})
	return first(txs), err
}

// Scratch buys a ticket; 40% of tickets win between 10 and 59.
func (s *Service) Scratch(ctx context.Context, sess *session.Session) (GameResult, error) {
	return s.play(ctx, sess, scratchPrice, "Ticket Rasca y Gana", msgScratchInsufficient, func() int64 {
		if s.rng.Float64() <= 0.6 {
			return 0
		}
		return int64(math.Floor(s.rng.Float64()*50)) + 10
	}, "Premio Rasca y Gana")
}

// Spin plays the roulette; half the spins draw a prize between 0 and 99.
func (s *Service) Spin(ctx context.Context, sess *session.Session) (GameResult, error) {
	return s.play(ctx, sess, spinPrice, "Giro Ruleta", msgRouletteInsufficient, func() int64 {
		if s.rng.Float64() <= 0.5 {
			return 0
		}
		return int64(math.Floor(s.rng.Float64() * 100))
	}, "Premio Ruleta")
}

// play charges price, draws a prize and credits it when non-zero. Both
// transactions are applied in the same latency task.
func (s *Service) play(ctx context.Context, sess *session.Session, price decimal.Decimal, costTitle, insufficient string, draw func() int64, prizeTitle string) (GameResult, error) {
	var prize int64
	txs, err := s.mutate(ctx, sess, "rewards", func(l *ledger.Ledger) ([]models.Transaction, error) {
		cost, err := l.Debit(price, costTitle, "Costo de participación")
		if err != nil {
			return nil, debitError(err, insufficient)
		}
		out := []models.Transaction{cost}

		prize = draw()
		if prize <= 0 {
			return out, nil
		}
		won, err := l.Credit(decimal.NewFromInt(prize), prizeTitle, "¡Ganaste!")
		if err != nil {
			return out, err
		}
		return append(out, won), nil
	})
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{Won: prize > 0, Prize: decimal.NewFromInt(prize), Transactions: txs}, nil
}
