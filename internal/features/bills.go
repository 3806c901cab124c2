package features

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
	"github.com/shopspring/decimal"
)

// PayableService is a utility or phone provider of the user's country
type PayableService struct {
	Name string `json:"name"`
	Type string `json:"type"` // utility or phone
}

// Bill is a pending invoice issued for one service
type Bill struct {
	Invoice string          `json:"invoice"`
	Service string          `json:"service"`
	Amount  decimal.Decimal `json:"amount"`
}

// PayableServices lists the UTILITY and PHONE providers of the user's
// country, falling back to the first country of the union.
func (s *Service) PayableServices(sess *session.Session) []PayableService {
	countries := s.catalogue.CountryServices()
	if len(countries) == 0 {
		return nil
	}
	country := countries[0]
	for _, c := range countries {
		if sess.Country != "" && strings.Contains(c.Name, sess.Country) {
			country = c
			break
		}
	}

	var out []PayableService
	for _, kind := range []models.ServiceType{models.ServiceUtility, models.ServicePhone} {
		for _, cat := range country.Services {
			if cat.Type != kind {
				continue
			}
			for _, item := range cat.Items {
				out = append(out, PayableService{Name: item, Type: strings.ToLower(string(kind))})
			}
			break
		}
	}
	return out
}

// QuoteBill issues an invoice between 20 and 150 for a payable service
func (s *Service) QuoteBill(sess *session.Session, service string) (Bill, error) {
	found := false
	for _, p := range s.PayableServices(sess) {
		if p.Name == service {
			found = true
			break
		}
	}
	if !found {
		return Bill{}, fmt.Errorf("%w: %s", ErrServiceNotFound, service)
	}

	bill := Bill{
		Service: service,
		Amount:  decimal.NewFromInt(int64(math.Floor(s.rng.Float64()*131)) + 20),
		Invoice: fmt.Sprintf("INV-%d", int64(math.Floor(s.rng.Float64()*100000))),
	}
	s.withView(sess, func(v *viewState) {
		v.bills[bill.Invoice] = bill
	})
	return bill, nil
}

// PayBill settles a pending invoice. A paid invoice is removed, so paying it
// twice fails with ErrBillNotFound.
func (s *Service) PayBill(ctx context.Context, sess *session.Session, invoice string) (models.Transaction, error) {
	var (
		bill Bill
		ok   bool
	)
	s.withView(sess, func(v *viewState) {
		bill, ok = v.bills[invoice]
		delete(v.bills, invoice)
	})
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: %s", ErrBillNotFound, invoice)
	}

	txs, err := s.mutate(ctx, sess, "bills", func(l *ledger.Ledger) ([]models.Transaction, error) {
		tx, err := l.Debit(bill.Amount, "Pago Servicio: "+bill.Service, "Factura "+bill.Invoice)
		if err != nil {
			s.withView(sess, func(v *viewState) { v.bills[bill.Invoice] = bill })
		}
		return single(tx, debitError(err, msgBillInsufficient))
	})
	return first(txs), err
}

// PendingBills lists the invoices issued but not yet paid
func (s *Service) PendingBills(sess *session.Session) []Bill {
	var out []Bill
	s.withView(sess, func(v *viewState) {
		for _, b := range v.bills {
			out = append(out, b)
		}
	})
	return out
}

// SetAutoPay toggles direct debit for all services. It only records the
// preference; no scheduled payments are made.
func (s *Service) SetAutoPay(sess *session.Session, enabled bool) bool {
	s.withView(sess, func(v *viewState) { v.autoPay = enabled })
	return enabled
}

func (s *Service) AutoPay(sess *session.Session) bool {
	var enabled bool
	s.withView(sess, func(v *viewState) { enabled = v.autoPay })
	return enabled
}
