package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction by the sign of its amount
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// DefaultSubtitle is used when a mutation does not carry its own context line
const DefaultSubtitle = "Transacción"

// NowLabel is the display date given to every transaction applied during a session
const NowLabel = "Ahora"

// Transaction is an immutable record of one signed balance change
type Transaction struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Subtitle  string          `json:"subtitle"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"` // display label, "Hoy", "Ayer", "Ahora"
	Kind      TransactionKind `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// KindFor returns income for strictly positive amounts and expense otherwise
func KindFor(amount decimal.Decimal) TransactionKind {
	if amount.IsPositive() {
		return KindIncome
	}
	return KindExpense
}
