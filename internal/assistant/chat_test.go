package assistant

import (
	"context"
	"testing"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAsker struct {
	reply       string
	lastContext string
}

func (m *mockAsker) Ask(_ context.Context, _, _, userContext string) string {
	m.lastContext = userContext
	return m.reply
}

func TestContextLine(t *testing.T) {
	assert.Equal(t,
		"Nombre de Usuario: Bibu Bib, Rango: Omnipotente, Balance: 999999999",
		ContextLine("Bibu Bib", "Omnipotente", decimal.NewFromInt(999999999)))
}

func TestHistoryStartsWithGreeting(t *testing.T) {
	chat := NewChat(&mockAsker{})
	h := chat.History("s1", "Capy Capibara")
	require.Len(t, h, 1)
	assert.Equal(t, RoleAI, h[0].Role)
	assert.Equal(t, "Saludos, Capy Capibara. Soy Lobus IA. ¿Cómo puedo asistir tus esfuerzos soberanos hoy?", h[0].Text)
}

func TestAskAppendsExactlyOnePair(t *testing.T) {
	asker := &mockAsker{reply: ReplyUnavailable}
	chat := NewChat(asker)

	reply, err := chat.Ask(context.Background(), "s1", "Capy", "ctx-line", "hola")
	require.NoError(t, err)
	assert.Equal(t, ReplyUnavailable, reply.Text)
	assert.Equal(t, "ctx-line", asker.lastContext)

	h := chat.History("s1", "Capy")
	require.Len(t, h, 3)
	assert.Equal(t, RoleUser, h[1].Role)
	assert.Equal(t, "hola", h[1].Text)
	assert.Equal(t, RoleAI, h[2].Role)
	assert.Equal(t, ReplyUnavailable, h[2].Text)
}

func TestAskRejectsBlankPrompt(t *testing.T) {
	chat := NewChat(&mockAsker{reply: "x"})
	_, err := chat.Ask(context.Background(), "s1", "Capy", "", "   ")
	assert.ErrorIs(t, err, ledger.ErrValidation)
	assert.Len(t, chat.History("s1", "Capy"), 1)
}

func TestForgetResetsConversation(t *testing.T) {
	chat := NewChat(&mockAsker{reply: "x"})
	_, err := chat.Ask(context.Background(), "s1", "Capy", "", "hola")
	require.NoError(t, err)
	chat.Forget("s1")
	assert.Len(t, chat.History("s1", "Capy"), 1)
}
