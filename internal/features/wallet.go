package features

import (
	"context"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

// TopUp credits the account from the linked bank
func (s *Service) TopUp(ctx context.Context, sess *session.Session, amount decimal.Decimal) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, ledger.Invalid(msgInvalidAmount, ledger.ErrInvalidAmount)
	}
	txs, err := s.mutate(ctx, sess, "wallet", func(l *ledger.Ledger) ([]models.Transaction, error) {
		return single(l.Credit(amount, "Recarga Cuenta", "Banco Lobus"))
	})
	return first(txs), err
}

// Withdraw takes cash out at a cardless ATM
func (s *Service) Withdraw(ctx context.Context, sess *session.Session, amount decimal.Decimal) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, ledger.Invalid(msgInvalidAmount, ledger.ErrInvalidAmount)
	}
	txs, err := s.mutate(ctx, sess, "wallet", func(l *ledger.Ledger) ([]models.Transaction, error) {
		tx, err := l.Debit(amount, "Retiro Cajero", "Sin Tarjeta")
		return single(tx, debitError(err, msgWithdrawInsufficient))
	})
	return first(txs), err
}
