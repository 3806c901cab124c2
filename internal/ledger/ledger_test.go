package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testUser(balance string) models.SessionUser {
	return models.SessionUser{
		ID:      "1",
		Handle:  "@bibubib",
		Name:    "Bibu Bib",
		Balance: dec(balance),
		Messages: []models.Message{
			{ID: "m1", Subject: "Pago de Impuestos 2025", Read: false, IsLegal: true},
			{ID: "m2", Subject: "Cita Confirmada", Read: true},
			{ID: "m3", Subject: "Aviso", Read: false},
		},
	}
}

// LedgerTestSuite exercises the mutation surface of a single session ledger
type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
	now    time.Time
	seq    int
}

func (s *LedgerTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.seq = 0
	s.ledger = NewLedger(testUser("5000"),
		WithClock(func() time.Time { return s.now }),
		WithIDGenerator(func() (string, error) {
			s.seq++
			return fmt.Sprintf("tx-%d", s.seq), nil
		}),
	)
}

func (s *LedgerTestSuite) TestApplyCreditsBalanceAndPrepends() {
	tx, err := s.ledger.Apply(dec("5000"), "Nómina Unión", "Salario")
	require.NoError(s.T(), err)

	assert.True(s.T(), s.ledger.Balance().Equal(dec("10000")))
	txs := s.ledger.Transactions()
	require.Len(s.T(), txs, 1)
	assert.Equal(s.T(), tx, txs[0])
	assert.Equal(s.T(), "Nómina Unión", txs[0].Title)
	assert.Equal(s.T(), models.KindIncome, txs[0].Kind)
	assert.Equal(s.T(), models.NowLabel, txs[0].Date)
	assert.Equal(s.T(), s.now, txs[0].CreatedAt)
}

func (s *LedgerTestSuite) TestApplyDefaultsSubtitle() {
	tx, err := s.ledger.Apply(dec("-10"), "Regalo en Chat", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.DefaultSubtitle, tx.Subtitle)
	assert.Equal(s.T(), models.KindExpense, tx.Kind)
}

func (s *LedgerTestSuite) TestApplyZeroIsExpense() {
	tx, err := s.ledger.Apply(decimal.Zero, "Ajuste", "")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.KindExpense, tx.Kind)
	assert.True(s.T(), s.ledger.Balance().Equal(dec("5000")))
}

func (s *LedgerTestSuite) TestApplyRejectsEmptyTitle() {
	_, err := s.ledger.Apply(dec("1"), "  ", "x")
	assert.ErrorIs(s.T(), err, ErrEmptyTitle)
	assert.Empty(s.T(), s.ledger.Transactions())
}

func (s *LedgerTestSuite) TestOrderingNewestFirst() {
	for _, a := range []string{"1", "2", "3"} {
		_, err := s.ledger.Apply(dec(a), "t"+a, "")
		require.NoError(s.T(), err)
	}
	txs := s.ledger.Transactions()
	require.Len(s.T(), txs, 3)
	assert.Equal(s.T(), "t3", txs[0].Title)
	assert.Equal(s.T(), "t2", txs[1].Title)
	assert.Equal(s.T(), "t1", txs[2].Title)
}

func (s *LedgerTestSuite) TestBalanceInvariant() {
	amounts := []string{"12.34", "-0.10", "-0.20", "100", "-57.77", "0.30"}
	expected := dec("5000")
	for _, a := range amounts {
		_, err := s.ledger.Apply(dec(a), "mov", "")
		require.NoError(s.T(), err)
		expected = expected.Add(dec(a))
	}
	assert.True(s.T(), s.ledger.Balance().Equal(expected), "got %s want %s", s.ledger.Balance(), expected)
	assert.Len(s.T(), s.ledger.Transactions(), len(amounts))
}

func (s *LedgerTestSuite) TestDebitRejectsOverdraftWithoutPhantom() {
	l := NewLedger(testUser("100"))
	_, err := l.Debit(dec("150"), "Retiro Cajero", "Sin Tarjeta")
	assert.ErrorIs(s.T(), err, ErrInsufficientFunds)
	assert.True(s.T(), l.Balance().Equal(dec("100")))
	assert.Empty(s.T(), l.Transactions())
}

func (s *LedgerTestSuite) TestDebitExactBalance() {
	l := NewLedger(testUser("100"))
	tx, err := l.Debit(dec("100"), "Retiro Cajero", "Sin Tarjeta")
	require.NoError(s.T(), err)
	assert.True(s.T(), tx.Amount.Equal(dec("-100")))
	assert.True(s.T(), l.Balance().IsZero())
}

func (s *LedgerTestSuite) TestDebitAndCreditRejectNonPositive() {
	_, err := s.ledger.Debit(decimal.Zero, "x", "")
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)
	_, err = s.ledger.Credit(dec("-1"), "x", "")
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)
	assert.Empty(s.T(), s.ledger.Transactions())
}

func (s *LedgerTestSuite) TestMarkMessageReadIsIdempotent() {
	flipped, err := s.ledger.MarkMessageRead("m1")
	require.NoError(s.T(), err)
	assert.True(s.T(), flipped)
	first := s.ledger.Snapshot()

	flipped, err = s.ledger.MarkMessageRead("m1")
	require.NoError(s.T(), err)
	assert.False(s.T(), flipped)
	assert.Equal(s.T(), first, s.ledger.Snapshot())

	assert.True(s.T(), first.Messages[0].Read)
	assert.False(s.T(), first.Messages[2].Read)
	assert.Equal(s.T(), 1, s.ledger.UnreadCount())
	assert.Empty(s.T(), s.ledger.Transactions())
}

func (s *LedgerTestSuite) TestMarkMessageReadUnknown() {
	_, err := s.ledger.MarkMessageRead("nope")
	assert.ErrorIs(s.T(), err, ErrMessageNotFound)
	assert.Equal(s.T(), 2, s.ledger.UnreadCount())
}

func (s *LedgerTestSuite) TestMessageFilters() {
	assert.Len(s.T(), s.ledger.Messages(FilterAll), 3)
	assert.Len(s.T(), s.ledger.Messages(FilterUnread), 2)
	legal := s.ledger.Messages(FilterLegal)
	require.Len(s.T(), legal, 1)
	assert.Equal(s.T(), "m1", legal[0].ID)
}

func (s *LedgerTestSuite) TestClosedLedgerFailsLoud() {
	s.ledger.Close()
	assert.True(s.T(), s.ledger.Closed())

	_, err := s.ledger.Apply(dec("1"), "x", "")
	assert.ErrorIs(s.T(), err, ErrNoActiveSession)
	_, err = s.ledger.Debit(dec("1"), "x", "")
	assert.ErrorIs(s.T(), err, ErrNoActiveSession)
	_, err = s.ledger.MarkMessageRead("m1")
	assert.ErrorIs(s.T(), err, ErrNoActiveSession)
	assert.True(s.T(), s.ledger.Balance().Equal(dec("5000")))
}

func (s *LedgerTestSuite) TestIDGeneratorFailure() {
	l := NewLedger(testUser("10"), WithIDGenerator(func() (string, error) {
		return "", errors.New("entropy exhausted")
	}))
	_, err := l.Apply(dec("1"), "x", "")
	assert.Error(s.T(), err)
	assert.True(s.T(), l.Balance().Equal(dec("10")))
}

func (s *LedgerTestSuite) TestSnapshotIsDetached() {
	snap := s.ledger.Snapshot()
	snap.Messages[0].Read = true
	snap.Balance = decimal.Zero
	assert.Equal(s.T(), 2, s.ledger.UnreadCount())
	assert.True(s.T(), s.ledger.Balance().Equal(dec("5000")))
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func TestNewLedgerDoesNotAliasInput(t *testing.T) {
	user := testUser("1")
	l := NewLedger(user)
	_, err := l.MarkMessageRead("m1")
	require.NoError(t, err)
	assert.False(t, user.Messages[0].Read)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	l := NewLedger(testUser("0"))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		tx, err := l.Apply(dec("1"), "x", "")
		require.NoError(t, err)
		assert.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	l := NewLedger(testUser("100"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Debit(dec("3"), "Boleto", "")
			_ = l.Balance()
		}()
	}
	wg.Wait()

	// 33 debits of 3 fit into 100
	assert.True(t, l.Balance().Equal(dec("1")))
	assert.Len(t, l.Transactions(), 33)
}

func TestParseMessageFilter(t *testing.T) {
	f, ok := ParseMessageFilter("unread")
	assert.True(t, ok)
	assert.Equal(t, FilterUnread, f)

	f, ok = ParseMessageFilter("")
	assert.True(t, ok)
	assert.Equal(t, FilterAll, f)

	_, ok = ParseMessageFilter("archived")
	assert.False(t, ok)
}

func TestValidationErrorMatchesCause(t *testing.T) {
	err := Invalid("Fondos insuficientes", ErrInsufficientFunds)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, "Fondos insuficientes", err.Error())

	var verr *ValidationError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &verr)
	assert.Equal(t, "Fondos insuficientes", verr.Message)
}
