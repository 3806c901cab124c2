package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
)

type RouteFilter string

const (
	RoutesAll   RouteFilter = "ALL"
	RoutesBus   RouteFilter = "BUS"
	RoutesTrain RouteFilter = "TRAIN"
)

func ParseRouteFilter(s string) (RouteFilter, bool) {
	switch f := RouteFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case "":
		return RoutesAll, true
	case RoutesAll, RoutesBus, RoutesTrain:
		return f, true
	default:
		return "", false
	}
}

func (s *Service) Routes(filter RouteFilter) []models.TransportRoute {
	all := s.catalogue.Routes()
	out := make([]models.TransportRoute, 0, len(all))
	for _, r := range all {
		switch {
		case filter == RoutesBus && !r.IsBus():
			continue
		case filter == RoutesTrain && r.IsBus():
			continue
		}
		out = append(out, r)
	}
	return out
}

// BuyTicket charges the route price
func (s *Service) BuyTicket(ctx context.Context, sess *session.Session, routeID string) (models.TransportRoute, models.Transaction, error) {
	var route models.TransportRoute
	found := false
	for _, r := range s.catalogue.Routes() {
		if r.ID == routeID {
			route, found = r, true
			break
		}
	}
	if !found {
		return models.TransportRoute{}, models.Transaction{}, fmt.Errorf("%w: %s", ErrRouteNotFound, routeID)
	}

	txs, err := s.mutate(ctx, sess, "transport", func(l *ledger.Ledger) ([]models.Transaction, error) {
		tx, err := l.Debit(route.Price, "Boleto: "+route.Name, route.Origin+" -> "+route.Destination)
		return single(tx, debitError(err, msgInsufficient))
	})
	if err != nil {
		return models.TransportRoute{}, models.Transaction{}, err
	}
	return route, first(txs), nil
}
