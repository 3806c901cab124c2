package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lobus/superapp-ledger/internal/features"
	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

// Features is the set of super-app views served over HTTP.
type Features interface {
	TopUp(ctx context.Context, sess *session.Session, amount decimal.Decimal) (models.Transaction, error)
	Withdraw(ctx context.Context, sess *session.Session, amount decimal.Decimal) (models.Transaction, error)
	Pay(ctx context.Context, sess *session.Session, req features.PaymentRequest) (features.Receipt, error)

	Routes(filter features.RouteFilter) []models.TransportRoute
	BuyTicket(ctx context.Context, sess *session.Session, routeID string) (models.TransportRoute, models.Transaction, error)

	Quotes() []models.Quote
	RefreshQuotes() []models.Quote
	Trade(ctx context.Context, sess *session.Session, order features.Order) (features.Fill, error)

	ClaimDaily(ctx context.Context, sess *session.Session) (models.Transaction, error)
	Scratch(ctx context.Context, sess *session.Session) (features.GameResult, error)
	Spin(ctx context.Context, sess *session.Session) (features.GameResult, error)

	PayableServices(sess *session.Session) []features.PayableService
	QuoteBill(sess *session.Session, service string) (features.Bill, error)
	PayBill(ctx context.Context, sess *session.Session, invoice string) (models.Transaction, error)
	PendingBills(sess *session.Session) []features.Bill
	SetAutoPay(sess *session.Session, enabled bool) bool
	AutoPay(sess *session.Session) bool

	Messages(sess *session.Session, filter ledger.MessageFilter) features.Inbox
	OpenMessage(ctx context.Context, sess *session.Session, id string) (models.Message, error)

	Chat(sess *session.Session) []models.ChatMessage
	Send(ctx context.Context, sess *session.Session, text string) (features.SendResult, error)
	Ranking() []models.Profile
}

type FeatureHandler struct {
	features Features
}

type AmountRequest struct {
	Amount *decimal.Decimal `json:"amount" validate:"required"`
}

type PayRequest struct {
	Mode      string           `json:"mode" validate:"required,oneof=TRANSFER GLOBAL SPLIT REQUEST NFC QR CASH"`
	Recipient string           `json:"recipient"`
	Amount    *decimal.Decimal `json:"amount"`
	Concept   string           `json:"concept" validate:"max=140"`
}

type TicketRequest struct {
	RouteID string `json:"routeId" validate:"required"`
}

type OrderRequest struct {
	Symbol string `json:"symbol" validate:"required"`
	Side   string `json:"side" validate:"required"`
	Shares int64  `json:"shares"`
}

type BillQuoteRequest struct {
	Name string `json:"name" validate:"required"`
}

type BillPaymentRequest struct {
	Invoice string `json:"invoice" validate:"required"`
}

type AutoPayRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type ChatRequest struct {
	Text string `json:"text" validate:"max=500"`
}

func NewFeatureHandler(f Features) *FeatureHandler {
	return &FeatureHandler{features: f}
}

func (h *FeatureHandler) TopUp(c *gin.Context) {
	var req AmountRequest
	if !bind(c, &req) {
		return
	}
	tx, err := h.features.TopUp(c.Request.Context(), CurrentSession(c), *req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *FeatureHandler) Withdraw(c *gin.Context) {
	var req AmountRequest
	if !bind(c, &req) {
		return
	}
	tx, err := h.features.Withdraw(c.Request.Context(), CurrentSession(c), *req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *FeatureHandler) Pay(c *gin.Context) {
	var req PayRequest
	if !bind(c, &req) {
		return
	}
	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}
	receipt, err := h.features.Pay(c.Request.Context(), CurrentSession(c), features.PaymentRequest{
		Mode:      features.PayMode(req.Mode),
		Recipient: req.Recipient,
		Amount:    amount,
		Concept:   req.Concept,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusCreated
	if receipt.Transaction == nil {
		status = http.StatusOK
	}
	c.JSON(status, receipt)
}

func (h *FeatureHandler) Routes(c *gin.Context) {
	filter, ok := features.ParseRouteFilter(c.Query("filter"))
	if !ok {
		RespondWithError(c, http.StatusBadRequest, "Unknown route filter")
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": h.features.Routes(filter)})
}

func (h *FeatureHandler) BuyTicket(c *gin.Context) {
	var req TicketRequest
	if !bind(c, &req) {
		return
	}
	route, tx, err := h.features.BuyTicket(c.Request.Context(), CurrentSession(c), req.RouteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route, "transaction": tx})
}

func (h *FeatureHandler) Quotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quotes": h.features.Quotes()})
}

func (h *FeatureHandler) RefreshQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"quotes": h.features.RefreshQuotes()})
}

func (h *FeatureHandler) Trade(c *gin.Context) {
	var req OrderRequest
	if !bind(c, &req) {
		return
	}
	fill, err := h.features.Trade(c.Request.Context(), CurrentSession(c), features.Order{
		Symbol: req.Symbol,
		Side:   features.Side(req.Side),
		Shares: req.Shares,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fill)
}

func (h *FeatureHandler) ClaimDaily(c *gin.Context) {
	tx, err := h.features.ClaimDaily(c.Request.Context(), CurrentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *FeatureHandler) Scratch(c *gin.Context) {
	h.play(c, h.features.Scratch)
}

func (h *FeatureHandler) Spin(c *gin.Context) {
	h.play(c, h.features.Spin)
}

func (h *FeatureHandler) play(c *gin.Context, game func(context.Context, *session.Session) (features.GameResult, error)) {
	res, err := game(c.Request.Context(), CurrentSession(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *FeatureHandler) Services(c *gin.Context) {
	sess := CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"services": h.features.PayableServices(sess),
		"pending":  h.features.PendingBills(sess),
		"autoPay":  h.features.AutoPay(sess),
	})
}

func (h *FeatureHandler) QuoteBill(c *gin.Context) {
	var req BillQuoteRequest
	if !bind(c, &req) {
		return
	}
	bill, err := h.features.QuoteBill(CurrentSession(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *FeatureHandler) PayBill(c *gin.Context) {
	var req BillPaymentRequest
	if !bind(c, &req) {
		return
	}
	tx, err := h.features.PayBill(c.Request.Context(), CurrentSession(c), req.Invoice)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *FeatureHandler) SetAutoPay(c *gin.Context) {
	var req AutoPayRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"autoPay": h.features.SetAutoPay(CurrentSession(c), *req.Enabled)})
}

func (h *FeatureHandler) Messages(c *gin.Context) {
	filter, ok := ledger.ParseMessageFilter(c.Query("filter"))
	if !ok {
		RespondWithError(c, http.StatusBadRequest, "Unknown message filter")
		return
	}
	c.JSON(http.StatusOK, h.features.Messages(CurrentSession(c), filter))
}

func (h *FeatureHandler) OpenMessage(c *gin.Context) {
	msg, err := h.features.OpenMessage(c.Request.Context(), CurrentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *FeatureHandler) Chat(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.features.Chat(CurrentSession(c))})
}

func (h *FeatureHandler) Send(c *gin.Context) {
	var req ChatRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.features.Send(c.Request.Context(), CurrentSession(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *FeatureHandler) Ranking(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"leaders": h.features.Ranking()})
}
