package features

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

type PayMode string

const (
	PayTransfer PayMode = "TRANSFER"
	PayGlobal   PayMode = "GLOBAL"
	PaySplit    PayMode = "SPLIT"
	PayRequest  PayMode = "REQUEST"
	PayNFC      PayMode = "NFC"
	PayQR       PayMode = "QR"
	PayCash     PayMode = "CASH"
)

// NFC payments always charge the demo terminal
var (
	nfcAmount   = decimal.RequireFromString("25.00")
	nfcTerminal = "Terminal TPV #882"
)

const globalFallbackRecipient = "Destinatario Internacional"

type PaymentRequest struct {
	Mode      PayMode
	Recipient string
	Amount    decimal.Decimal
	Concept   string
}

// Receipt is what the confirmation screen shows. Transaction is nil for
// split and request, which never move money.
type Receipt struct {
	Mode        PayMode             `json:"mode"`
	To          string              `json:"to"`
	Amount      decimal.Decimal     `json:"amount"`
	Title       string              `json:"title"`
	Subtitle    string              `json:"subtitle"`
	Note        string              `json:"note,omitempty"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// Pay validates the request for its mode and settles it
func (s *Service) Pay(ctx context.Context, sess *session.Session, req PaymentRequest) (Receipt, error) {
	req.Recipient = strings.TrimSpace(req.Recipient)
	if req.Mode == PayNFC {
		req.Recipient = nfcTerminal
		req.Amount = nfcAmount
	}
	if err := s.validatePayment(sess, req); err != nil {
		return Receipt{}, err
	}

	rc := Receipt{Mode: req.Mode, To: req.Recipient, Amount: req.Amount, Note: req.Concept, Subtitle: "Completado"}
	if rc.To == "" {
		rc.To = globalFallbackRecipient
	}

	var signed decimal.Decimal
	switch req.Mode {
	case PaySplit:
		rc.Title, rc.Subtitle = "División de Cuenta", "Con "+rc.To
		return rc, nil
	case PayRequest:
		rc.Title, rc.Subtitle = "Solicitud Enviada", "A "+rc.To
		return rc, nil
	case PayNFC:
		rc.Title = "Pago NFC"
	case PayQR:
		rc.Title = "Pago QR"
	case PayCash:
		rc.Title, rc.Subtitle = "Depósito Efectivo", "Ingreso Cajero"
		signed = req.Amount
	default:
		rc.Title = "Envío a " + rc.To
	}

	txs, err := s.mutate(ctx, sess, "pay", func(l *ledger.Ledger) ([]models.Transaction, error) {
		if signed.IsPositive() {
			return single(l.Credit(signed, rc.Title, rc.Subtitle))
		}
		tx, err := l.Debit(req.Amount, rc.Title, rc.Subtitle)
		return single(tx, debitError(err, insufficientForPay(l.Balance())))
	})
	if err != nil {
		return Receipt{}, err
	}
	tx := first(txs)
	rc.Transaction = &tx
	return rc, nil
}

func (s *Service) validatePayment(sess *session.Session, req PaymentRequest) error {
	switch req.Mode {
	case PayTransfer, PaySplit, PayRequest:
		if req.Recipient == "" {
			return ledger.Invalid(msgPayContact, nil)
		}
	case PayGlobal:
		if utf8.RuneCountInString(req.Recipient) < 5 {
			return ledger.Invalid(msgPayIBAN, nil)
		}
	case PayNFC, PayQR, PayCash:
	default:
		return ledger.Invalid(fmt.Sprintf("Modo de pago desconocido: %s", req.Mode), nil)
	}

	if !req.Amount.IsPositive() {
		return ledger.Invalid(msgPayAmount, ledger.ErrInvalidAmount)
	}
	if req.Mode == PayTransfer || req.Mode == PayGlobal {
		if balance := sess.Ledger.Balance(); req.Amount.GreaterThan(balance) {
			return ledger.Invalid(insufficientForPay(balance), ledger.ErrInsufficientFunds)
		}
	}
	return nil
}

func insufficientForPay(balance decimal.Decimal) string {
	return fmt.Sprintf("Saldo insuficiente (Max: €%s)", balance.String())
}
