package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lobus/superapp-ledger/internal/metrics"
	"github.com/sirupsen/logrus"
)

type Dependencies struct {
	Sessions  SessionService
	Features  Features
	Assistant Assistant
	Logger    logrus.FieldLogger
}

// NewRouter builds the HTTP surface. Everything under /v1 except login
// requires a bearer session token.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(deps.Logger), metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := NewAuthHandler(deps.Sessions)
	feat := NewFeatureHandler(deps.Features)
	ai := NewAssistantHandler(deps.Assistant)

	v1 := r.Group("/v1")
	v1.POST("/auth/login", auth.Login)

	authed := v1.Group("", AuthMiddleware(deps.Sessions))
	{
		authed.POST("/auth/logout", auth.Logout)
		authed.GET("/me", auth.Me)
		authed.GET("/me/transactions", auth.Transactions)

		authed.POST("/wallet/topup", feat.TopUp)
		authed.POST("/wallet/withdraw", feat.Withdraw)
		authed.POST("/pay", feat.Pay)

		authed.GET("/transport/routes", feat.Routes)
		authed.POST("/transport/tickets", feat.BuyTicket)

		authed.GET("/market/quotes", feat.Quotes)
		authed.POST("/market/refresh", feat.RefreshQuotes)
		authed.POST("/market/orders", feat.Trade)

		authed.POST("/rewards/daily", feat.ClaimDaily)
		authed.POST("/rewards/scratch", feat.Scratch)
		authed.POST("/rewards/roulette", feat.Spin)

		authed.GET("/services", feat.Services)
		authed.POST("/services/quotes", feat.QuoteBill)
		authed.POST("/services/payments", feat.PayBill)
		authed.POST("/services/autopay", feat.SetAutoPay)

		authed.GET("/messages", feat.Messages)
		authed.POST("/messages/:id/read", feat.OpenMessage)

		authed.GET("/social/chat", feat.Chat)
		authed.POST("/social/chat", feat.Send)
		authed.GET("/social/ranking", feat.Ranking)

		authed.GET("/assistant/history", ai.History)
		authed.POST("/assistant/ask", ai.Ask)
	}
	return r
}
