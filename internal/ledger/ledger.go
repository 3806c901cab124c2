package ledger

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// MessageFilter selects a subset of the inbox
type MessageFilter string

const (
	FilterAll    MessageFilter = "ALL"
	FilterUnread MessageFilter = "UNREAD"
	FilterLegal  MessageFilter = "LEGAL"
)

// ParseMessageFilter accepts the filter names case-insensitively; empty means ALL
func ParseMessageFilter(s string) (MessageFilter, bool) {
	switch f := MessageFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, true
	case FilterAll, FilterUnread, FilterLegal:
		return f, true
	default:
		return "", false
	}
}

// Ledger owns one session user's balance, transaction list and message read
// flags. It is the only writer of that state.
type Ledger struct {
	mu     sync.Mutex         // guards user and closed
	user   models.SessionUser // private copy, never handed out
	closed bool               // set on logout, mutations fail afterwards

	now   func() time.Time
	newID func() (string, error)
}

type Option func(*Ledger)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides the transaction id source
func WithIDGenerator(gen func() (string, error)) Option {
	return func(l *Ledger) { l.newID = gen }
}

// NewLedger takes its own deep copy of user, so the caller's value (typically
// straight from the seed directory) is never aliased.
func NewLedger(user models.SessionUser, opts ...Option) *Ledger {
	l := &Ledger{
		user:  user.Clone(),
		now:   time.Now,
		newID: newTransactionID,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// UUIDv7 ids are timestamp-derived and sort in creation order
func newTransactionID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Apply records a signed balance change. The new transaction is prepended, so
// index 0 is always the newest. An empty subtitle becomes "Transacción".
func (l *Ledger) Apply(amount decimal.Decimal, title, subtitle string) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.applyLocked(amount, title, subtitle)
}

// Credit applies a strictly positive amount
func (l *Ledger) Credit(amount decimal.Decimal, title, subtitle string) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, ErrInvalidAmount
	}
	return l.Apply(amount, title, subtitle)
}

// Debit applies -amount after checking it is positive and covered by the
// balance. Check and mutation happen under the same lock, so a rejected debit
// never leaves a phantom transaction behind.
func (l *Ledger) Debit(amount decimal.Decimal, title, subtitle string) (models.Transaction, error) {
	if !amount.IsPositive() {
		return models.Transaction{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return models.Transaction{}, ErrNoActiveSession
	}
	if amount.GreaterThan(l.user.Balance) {
		return models.Transaction{}, ErrInsufficientFunds
	}
	return l.applyLocked(amount.Neg(), title, subtitle)
}

func (l *Ledger) applyLocked(amount decimal.Decimal, title, subtitle string) (models.Transaction, error) {
	if l.closed {
		return models.Transaction{}, ErrNoActiveSession
	}
	if strings.TrimSpace(title) == "" {
		return models.Transaction{}, ErrEmptyTitle
	}
	if subtitle == "" {
		subtitle = models.DefaultSubtitle
	}

	id, err := l.newID()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}

	tx := models.Transaction{
		ID:        id,
		Title:     title,
		Subtitle:  subtitle,
		Amount:    amount,
		Date:      models.NowLabel,
		Kind:      models.KindFor(amount),
		CreatedAt: l.now(),
	}

	l.user.Balance = l.user.Balance.Add(amount)
	l.user.Transactions = slices.Insert(l.user.Transactions, 0, tx)
	return tx, nil
}

// MarkMessageRead sets the read flag of one message. Calling it again on a
// read message changes nothing; the returned bool reports whether the flag
// actually flipped.
func (l *Ledger) MarkMessageRead(id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false, ErrNoActiveSession
	}
	for i := range l.user.Messages {
		if l.user.Messages[i].ID != id {
			continue
		}
		if l.user.Messages[i].Read {
			return false, nil
		}
		l.user.Messages[i].Read = true
		return true, nil
	}
	return false, ErrMessageNotFound
}

// Close ends the session. Later mutations fail with ErrNoActiveSession.
func (l *Ledger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

func (l *Ledger) Closed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user.Balance
}

// Transactions returns a copy of the history, newest first
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.user.Transactions)
}

func (l *Ledger) Messages(filter MessageFilter) []models.Message {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Message, 0, len(l.user.Messages))
	for _, m := range l.user.Messages {
		switch filter {
		case FilterUnread:
			if m.Read {
				continue
			}
		case FilterLegal:
			if !m.IsLegal {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func (l *Ledger) UnreadCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, m := range l.user.Messages {
		if !m.Read {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the session user for rendering
func (l *Ledger) Snapshot() models.SessionUser {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user.Clone()
}
