package features

import (
	"errors"

	"github.com/lobus/superapp-ledger/internal/ledger"
)

var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrBillNotFound    = errors.New("bill not found")
	ErrServiceNotFound = errors.New("service not found")
	ErrAlreadyClaimed  = errors.New("daily reward already claimed")
)

// User-facing messages of the views
const (
	msgInvalidAmount        = "Ingresa un monto válido mayor a 0"
	msgWithdrawInsufficient = "Saldo insuficiente para realizar el retiro"
	msgInsufficient         = "Fondos insuficientes"
	msgBillInsufficient     = "Fondos insuficientes para realizar este pago."
	msgRouletteInsufficient = "Necesitas 10€ para girar la ruleta."
	msgScratchInsufficient  = "Necesitas 5€ para comprar un ticket."
	msgGiftInsufficient     = "Saldo insuficiente para enviar un regalo."
	msgPayAmount            = "Importe debe ser mayor a 0"
	msgPayContact           = "Selecciona un contacto válido"
	msgPayIBAN              = "IBAN/Cuenta inválida"
	msgShares               = "La cantidad debe ser un número entero positivo"
	msgEmptyChat            = "Escribe un mensaje"
	msgAlreadyClaimed       = "Ya reclamaste tu recompensa diaria."
)

// debitError turns the ledger's debit sentinels into the view's message
func debitError(err error, insufficient string) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return ledger.Invalid(insufficient, err)
	case errors.Is(err, ledger.ErrInvalidAmount):
		return ledger.Invalid(msgInvalidAmount, err)
	default:
		return err
	}
}
