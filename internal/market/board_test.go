package market

import (
	"testing"
	"time"

	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func testQuotes() []models.Quote {
	return []models.Quote{
		{Symbol: "LBX", Name: "Industrias Lobus", Price: decimal.NewFromInt(3490), Change: "+12.5%"},
		{Symbol: "GGA", Name: "Corp Gaga", Price: decimal.NewFromInt(1250), Change: "-2.1%"},
	}
}

func TestTickUpperBound(t *testing.T) {
	b := NewBoard(testQuotes(), WithSource(fixedSource(1)))
	quotes := b.Tick()

	// r=1 is the +2% edge
	assert.True(t, quotes[0].Price.Equal(decimal.RequireFromString("3559.8")), quotes[0].Price.String())
	assert.Equal(t, "+2.00%", quotes[0].Change)
}

func TestTickLowerBound(t *testing.T) {
	b := NewBoard(testQuotes(), WithSource(fixedSource(0)))
	quotes := b.Tick()

	assert.True(t, quotes[1].Price.Equal(decimal.NewFromInt(1225)), quotes[1].Price.String())
	assert.Equal(t, "-2.00%", quotes[1].Change)
}

func TestTickMidpointIsFlat(t *testing.T) {
	b := NewBoard(testQuotes(), WithSource(fixedSource(0.5)))
	quotes := b.Tick()
	assert.True(t, quotes[0].Price.Equal(decimal.NewFromInt(3490)))
	assert.Equal(t, "0.00%", quotes[0].Change)
}

func TestTickStaysWithinVolatility(t *testing.T) {
	b := NewBoard(testQuotes())
	for i := 0; i < 100; i++ {
		before := b.Quotes()
		after := b.Tick()
		for j := range after {
			ratio := after[j].Price.Div(before[j].Price)
			assert.True(t, ratio.GreaterThanOrEqual(decimal.RequireFromString("0.979")), ratio.String())
			assert.True(t, ratio.LessThanOrEqual(decimal.RequireFromString("1.021")), ratio.String())
			assert.True(t, after[j].Price.Equal(after[j].Price.Round(2)))
		}
	}
}

func TestTickUpdatesTimestamp(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewBoard(testQuotes(), WithClock(func() time.Time { return now }))
	now = now.Add(30 * time.Second)
	b.Tick()
	assert.Equal(t, now, b.LastUpdated())
	assert.Equal(t, now, b.Quotes()[0].UpdatedAt)
}

func TestQuoteLookup(t *testing.T) {
	b := NewBoard(testQuotes())
	q, ok := b.Quote("lbx")
	require.True(t, ok)
	assert.Equal(t, "Industrias Lobus", q.Name)

	_, ok = b.Quote("XXX")
	assert.False(t, ok)
}

func TestQuotesAreCopies(t *testing.T) {
	b := NewBoard(testQuotes())
	qs := b.Quotes()
	qs[0].Name = "changed"
	assert.Equal(t, "Industrias Lobus", b.Quotes()[0].Name)
}

func TestChangeLabel(t *testing.T) {
	assert.Equal(t, "+1.23%", ChangeLabel(decimal.NewFromInt(100), decimal.RequireFromString("101.23")))
	assert.Equal(t, "-0.40%", ChangeLabel(decimal.NewFromInt(100), decimal.RequireFromString("99.6")))
	assert.Equal(t, "0.00%", ChangeLabel(decimal.Zero, decimal.NewFromInt(1)))
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := NewScheduler(NewBoard(testQuotes()), "every so often", logger)
	assert.Error(t, err)
}

func TestSchedulerTicks(t *testing.T) {
	logger, _ := test.NewNullLogger()
	b := NewBoard(testQuotes(), WithSource(fixedSource(1)))
	s, err := NewScheduler(b, "", logger)
	require.NoError(t, err)

	s.tick()
	assert.Equal(t, "+2.00%", b.Quotes()[0].Change)

	s.Start()
	s.Stop()
}
