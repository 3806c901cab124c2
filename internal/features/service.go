// Package features implements the super-app views (wallet, payments,
// transport, trading, rewards, bills, social, inbox) on top of the session
// ledger. Views only validate input and hold transient state. Every balance
// change goes through the ledger.
package features

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/lobus/superapp-ledger/internal/events"
	interfaces "github.com/lobus/superapp-ledger/internal/interfaces"
	"github.com/lobus/superapp-ledger/internal/latency"
	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/market"
	"github.com/lobus/superapp-ledger/internal/metrics"
	"github.com/lobus/superapp-ledger/internal/models"
	modelevents "github.com/lobus/superapp-ledger/internal/models/events"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/sirupsen/logrus"
)

// Catalogue is the read-only seed data the views render
type Catalogue interface {
	Routes() []models.TransportRoute
	CountryServices() []models.CountryService
	OpeningChat() []models.ChatMessage
	Leaders() []models.Profile
}

// Source supplies uniform floats in [0, 1)
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// publishTimeout bounds event delivery after the request that caused it
const publishTimeout = 5 * time.Second

type Service struct {
	catalogue Catalogue
	board     *market.Board
	latency   latency.Simulator
	publisher interfaces.EventPublisher
	log       logrus.FieldLogger
	rng       Source
	now       func() time.Time

	mu    sync.Mutex
	views map[string]*viewState
}

// viewState is the transient per-session state of the views. It never holds
// balances.
type viewState struct {
	dailyClaimed bool
	autoPay      bool
	chat         []models.ChatMessage
	bills        map[string]Bill
}

type Option func(*Service)

func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = latency.Simulator{Delay: d} }
}

func WithPublisher(p interfaces.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

func WithSource(src Source) Option {
	return func(s *Service) { s.rng = src }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(catalogue Catalogue, board *market.Board, opts ...Option) *Service {
	s := &Service{
		catalogue: catalogue,
		board:     board,
		log:       logrus.StandardLogger(),
		rng:       globalSource{},
		now:       time.Now,
		publisher: events.Nop{},
		views:     make(map[string]*viewState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Forget drops the view state of a closed session
func (s *Service) Forget(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, sess.ID)
}

// withView runs fn with the session's view state under the service lock
func (s *Service) withView(sess *session.Session, fn func(v *viewState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[sess.ID]
	if !ok {
		v = &viewState{
			chat:  s.catalogue.OpeningChat(),
			bills: make(map[string]Bill),
		}
		s.views[sess.ID] = v
	}
	fn(v)
}

// mutate runs op behind the simulated latency. op executes even if ctx is
// cancelled while waiting; only the caller's wait is abandoned. Every
// transaction op returns is observed (metrics and events).
func (s *Service) mutate(ctx context.Context, sess *session.Session, feature string, op func(l *ledger.Ledger) ([]models.Transaction, error)) ([]models.Transaction, error) {
	txs, err := latency.Do(ctx, s.latency, func() ([]models.Transaction, error) {
		txs, err := op(sess.Ledger)
		for _, tx := range txs {
			s.observe(sess, tx)
		}
		return txs, err
	})
	if err != nil {
		if errors.Is(err, ledger.ErrValidation) {
			metrics.RecordRejection(feature)
		}
		s.log.WithError(err).WithFields(logrus.Fields{
			"session": sess.ID,
			"feature": feature,
		}).Info("mutation not applied")
	}
	return txs, err
}

func (s *Service) observe(sess *session.Session, tx models.Transaction) {
	metrics.RecordMutation(string(tx.Kind), tx.Amount)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	err := s.publisher.Publish(ctx, modelevents.TransactionAppliedType, modelevents.TransactionApplied{
		SessionID:     sess.ID,
		Handle:        sess.Handle,
		TransactionID: tx.ID,
		Title:         tx.Title,
		Amount:        tx.Amount,
		Balance:       sess.Ledger.Balance(),
		OccurredAt:    tx.CreatedAt,
	})
	if err != nil {
		s.log.WithError(err).WithField("transaction", tx.ID).Error("failed to publish event")
	}
}

// single wraps a one-transaction ledger call for mutate
func single(tx models.Transaction, err error) ([]models.Transaction, error) {
	if err != nil {
		return nil, err
	}
	return []models.Transaction{tx}, nil
}

func first(txs []models.Transaction) models.Transaction {
	if len(txs) == 0 {
		return models.Transaction{}
	}
	return txs[0]
}
