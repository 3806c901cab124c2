// Package session implements the ANONYMOUS -> AUTHENTICATED -> ANONYMOUS
// lifecycle. Each successful login gets its own ledger built from a deep copy
// of the matched seed identity.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/lobus/superapp-ledger/internal/events"
	interfaces "github.com/lobus/superapp-ledger/internal/interfaces"
	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/metrics"
	"github.com/lobus/superapp-ledger/internal/models"
	modelevents "github.com/lobus/superapp-ledger/internal/models/events"
	"github.com/lobus/superapp-ledger/internal/seed"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("Credenciales no válidas")
	ErrSessionNotFound    = errors.New("session not found")
)

// Login form messages
const (
	msgHandleRequired   = "Introduce tu ID Ciudadano"
	msgHandleTooShort   = "El ID es demasiado corto"
	msgPasswordRequired = "La contraseña es obligatoria"
)

// Session is one authenticated login. The identity fields never change, the
// mutable state lives behind Ledger.
type Session struct {
	ID        string
	Handle    string
	Name      string
	Rank      string
	Country   string
	CreatedAt time.Time
	Ledger    *ledger.Ledger
}

// Store is the session store shape the manager needs
type Store = interfaces.SessionStore[*Session]

// Directory matches credentials against the seed identities
type Directory interface {
	Match(handle, credential string) (models.SessionUser, bool)
}

type Manager struct {
	directory Directory
	store     Store
	publisher interfaces.EventPublisher
	log       logrus.FieldLogger
	ledgerOpt []ledger.Option

	hooksMu sync.RWMutex
	onClose []func(*Session)
}

type Option func(*Manager)

func WithPublisher(p interfaces.EventPublisher) Option {
	return func(m *Manager) { m.publisher = p }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = l }
}

// WithLedgerOptions is applied to every ledger the manager creates
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(m *Manager) { m.ledgerOpt = append(m.ledgerOpt, opts...) }
}

func NewManager(directory Directory, store Store, opts ...Option) *Manager {
	m := &Manager{
		directory: directory,
		store:     store,
		publisher: events.Nop{},
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnClose registers fn to run after a session is logged out. Feature
// services use it to drop their per-session view state.
func (m *Manager) OnClose(fn func(*Session)) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.onClose = append(m.onClose, fn)
}

// Login validates the form input, then matches the seed directory. Unknown
// handles and wrong credentials produce the same ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, handle, password string) (*Session, error) {
	if err := validateLogin(handle, password); err != nil {
		metrics.RecordLogin("invalid")
		return nil, err
	}

	user, ok := m.directory.Match(handle, password)
	if !ok {
		metrics.RecordLogin("rejected")
		m.log.WithField("handle", seed.NormalizeHandle(handle)).Warn("login rejected")
		return nil, ErrInvalidCredentials
	}

	s := &Session{
		ID:        uuid.NewString(),
		Handle:    user.Handle,
		Name:      user.Name,
		Rank:      user.Rank,
		Country:   user.Country,
		CreatedAt: time.Now(),
		Ledger:    ledger.NewLedger(user, m.ledgerOpt...),
	}
	if err := m.store.Save(s.ID, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.RecordLogin("ok")
	metrics.SetActiveSessions(m.store.Len())
	m.log.WithFields(logrus.Fields{"session": s.ID, "handle": s.Handle}).Info("session opened")
	m.publish(ctx, modelevents.SessionOpenedType, modelevents.SessionChanged{
		SessionID:  s.ID,
		Handle:     s.Handle,
		OccurredAt: s.CreatedAt,
	})
	return s, nil
}

func validateLogin(handle, password string) error {
	h := strings.TrimSpace(handle)
	switch {
	case h == "":
		return ledger.Invalid(msgHandleRequired, nil)
	case utf8.RuneCountInString(h) < 3:
		return ledger.Invalid(msgHandleTooShort, nil)
	case password == "":
		return ledger.Invalid(msgPasswordRequired, nil)
	}
	return nil
}

// Logout discards the session and all its mutations. The ledger is closed so
// any reference still held by an in-flight request fails loud.
func (m *Manager) Logout(ctx context.Context, token string) error {
	s, ok := m.store.Delete(token)
	if !ok {
		return ErrSessionNotFound
	}
	s.Ledger.Close()

	m.hooksMu.RLock()
	hooks := append([]func(*Session){}, m.onClose...)
	m.hooksMu.RUnlock()
	for _, fn := range hooks {
		fn(s)
	}

	metrics.SetActiveSessions(m.store.Len())
	m.log.WithFields(logrus.Fields{"session": s.ID, "handle": s.Handle}).Info("session closed")
	m.publish(ctx, modelevents.SessionClosedType, modelevents.SessionChanged{
		SessionID:  s.ID,
		Handle:     s.Handle,
		OccurredAt: time.Now(),
	})
	return nil
}

func (m *Manager) Lookup(token string) (*Session, error) {
	s, ok := m.store.Get(token)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Active() int {
	return m.store.Len()
}

// CloseAll logs every session out, used on shutdown
func (m *Manager) CloseAll(ctx context.Context) {
	for _, s := range m.store.List() {
		_ = m.Logout(ctx, s.ID)
	}
}

func (m *Manager) publish(ctx context.Context, eventType string, event any) {
	if err := m.publisher.Publish(ctx, eventType, event); err != nil {
		m.log.WithError(err).WithField("event_type", eventType).Error("failed to publish event")
	}
}
