package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

type Entry struct {
	ID   string    `json:"id"`
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Asker is the outbound model call
type Asker interface {
	Ask(ctx context.Context, quotaKey, prompt, userContext string) string
}

// Chat keeps one conversation per session. It never touches the ledger.
type Chat struct {
	asker Asker

	mu        sync.Mutex
	histories map[string][]Entry
}

func NewChat(asker Asker) *Chat {
	return &Chat{asker: asker, histories: make(map[string][]Entry)}
}

// ContextLine renders the user summary sent along with every prompt
func ContextLine(name, rank string, balance decimal.Decimal) string {
	return fmt.Sprintf("Nombre de Usuario: %s, Rango: %s, Balance: %s", name, rank, balance.String())
}

func greeting(name string) string {
	return fmt.Sprintf("Saludos, %s. Soy Lobus IA. ¿Cómo puedo asistir tus esfuerzos soberanos hoy?", name)
}

func newEntry(role Role, text string) Entry {
	return Entry{ID: uuid.NewString(), Role: role, Text: text, At: time.Now()}
}

// caller holds c.mu
func (c *Chat) historyLocked(sessionID, name string) []Entry {
	h, ok := c.histories[sessionID]
	if !ok {
		h = []Entry{newEntry(RoleAI, greeting(name))}
		c.histories[sessionID] = h
	}
	return h
}

// History returns the conversation, opening it with the greeting if needed
func (c *Chat) History(sessionID, name string) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.historyLocked(sessionID, name)
	out := make([]Entry, len(h))
	copy(out, h)
	return out
}

// Ask appends the user's prompt and exactly one assistant reply. The only
// error is a blank prompt, which appends nothing.
func (c *Chat) Ask(ctx context.Context, sessionID, name, userContext, prompt string) (Entry, error) {
	if strings.TrimSpace(prompt) == "" {
		return Entry{}, ledger.Invalid("Escribe un mensaje", nil)
	}

	c.mu.Lock()
	c.histories[sessionID] = append(c.historyLocked(sessionID, name), newEntry(RoleUser, prompt))
	c.mu.Unlock()

	reply := newEntry(RoleAI, c.asker.Ask(ctx, sessionID, prompt, userContext))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.histories[sessionID] = append(c.historyLocked(sessionID, name), reply)
	return reply, nil
}

func (c *Chat) Forget(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.histories, sessionID)
}
