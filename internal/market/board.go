// Package market keeps the process-wide quote board. Prices drift randomly
// on every tick; sessions only read them.
package market

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/lobus/superapp-ledger/internal/metrics"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Volatility bounds a single tick to a +/-2% move
var Volatility = decimal.RequireFromString("0.02")

var hundred = decimal.NewFromInt(100)

// Source supplies uniform floats in [0, 1)
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

type Board struct {
	mu          sync.RWMutex
	quotes      []models.Quote
	lastUpdated time.Time
	rng         Source
	now         func() time.Time
}

type Option func(*Board)

func WithSource(src Source) Option {
	return func(b *Board) { b.rng = src }
}

func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

func NewBoard(quotes []models.Quote, opts ...Option) *Board {
	b := &Board{
		rng: globalSource{},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.lastUpdated = b.now()
	b.quotes = make([]models.Quote, len(quotes))
	for i, q := range quotes {
		q.UpdatedAt = b.lastUpdated
		b.quotes[i] = q
	}
	return b
}

func (b *Board) Quotes() []models.Quote {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Quote, len(b.quotes))
	copy(out, b.quotes)
	return out
}

// Quote finds a listed company by symbol, case-insensitively
func (b *Board) Quote(symbol string) (models.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, q := range b.quotes {
		if strings.EqualFold(q.Symbol, symbol) {
			return q, true
		}
	}
	return models.Quote{}, false
}

func (b *Board) LastUpdated() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastUpdated
}

// Tick moves every price by a factor in [1-Volatility, 1+Volatility],
// rounded to cents, and relabels the change as a signed percentage.
func (b *Board) Tick() []models.Quote {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	for i := range b.quotes {
		q := &b.quotes[i]
		r := decimal.NewFromFloat(b.rng.Float64())
		factor := decimal.NewFromInt(1).Add(r.Mul(Volatility.Mul(decimal.NewFromInt(2))).Sub(Volatility))
		newPrice := q.Price.Mul(factor).Round(2)

		q.Change = ChangeLabel(q.Price, newPrice)
		q.Price = newPrice
		q.UpdatedAt = now
	}
	b.lastUpdated = now
	metrics.RecordMarketTick()

	out := make([]models.Quote, len(b.quotes))
	copy(out, b.quotes)
	return out
}

// ChangeLabel formats the relative move from old to new as "+1.23%",
// "-0.40%" or "0.00%".
func ChangeLabel(old, new decimal.Decimal) string {
	if old.IsZero() {
		return "0.00%"
	}
	pct := new.Sub(old).Div(old).Mul(hundred)
	label := pct.StringFixed(2) + "%"
	if pct.Round(2).IsPositive() {
		label = "+" + label
	}
	return label
}
