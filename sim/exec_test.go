package sim

import (
	"testing"
	"time"

	"github.com/rustyeddy/daysim/ledger"
	"github.com/rustyeddy/daysim/market"
	"github.com/stretchr/testify/assert"
)

func day(d int) market.Date { return market.NewDate(2004, time.August, d) }

func refBars() []market.Bar {
	return []market.Bar{
		{Date: day(12), Open: 17.50, High: 17.58, Low: 17.50, Close: 17.50, Volume: 2545100, SplitFactor: 1},
		{Date: day(13), Open: 17.50, High: 17.51, Low: 17.50, Close: 17.51, Volume: 593000, SplitFactor: 1},
		{Date: day(16), Open: 17.54, High: 17.54, Low: 17.50, Close: 17.50, Volume: 684700, SplitFactor: 1},
		{Date: day(17), Open: 17.35, High: 17.40, Low: 17.15, Close: 17.34, Volume: 295900, SplitFactor: 1},
		{Date: day(18), Open: 17.25, High: 17.29, Low: 17.00, Close: 17.11, Volume: 121300, SplitFactor: 1},
	}
}

func newTestEngine(t *testing.T, bars []market.Bar, c Commission) *Engine {
	t.Helper()
	s, err := market.NewSeries("acc", bars)
	assert.NoError(t, err)
	return NewEngine(ledger.New(10000), map[string]*market.Series{"acc": s}, c)
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), nil)

	tests := []struct {
		name  string
		order Order
	}{
		{"zero size", Order{Symbol: "acc", Limit: 20, Size: 0, Buy: true, Session: market.Open}},
		{"negative size", Order{Symbol: "acc", Limit: 20, Size: -1, Buy: true, Session: market.Open}},
		{"zero limit", Order{Symbol: "acc", Limit: 0, Size: 1, Buy: true, Session: market.Open}},
		{"unknown symbol", Order{Symbol: "xyz", Limit: 20, Size: 1, Buy: true, Session: market.Open}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, e.Submit(tt.order), ErrInvalidOrder)
		})
	}
}

func TestBuyFillsAtOrBelowLimit(t *testing.T) {
	t.Parallel()

	// Open on the 16th is 17.54.
	e := newTestEngine(t, refBars(), RateCommission(0))

	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 10, Size: 10, Buy: true, Session: market.Open, Tag: "low"}))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 50, Size: 10, Buy: true, Session: market.Open, Tag: "high"}))
	assert.NoError(t, e.evaluate(day(16), market.Open))

	trades := e.Ledger().Trades()
	assert.Len(t, trades, 1)
	assert.Equal(t, "high", trades[0].Tag)
	// fill price is the auction price, not the limit
	assert.InDelta(t, 17.54, trades[0].Price, 1e-12)
	assert.InDelta(t, 10.0, trades[0].Size, 1e-12)
	assert.NotEmpty(t, trades[0].ID)
}

func TestSellFillsAtOrAboveLimit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), RateCommission(0))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 50, Size: 10, Buy: true, Session: market.Open}))
	assert.NoError(t, e.evaluate(day(16), market.Open))

	// Close on the 16th is 17.50: a sell limited above it lapses.
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 18, Size: 5, Buy: false, Session: market.Close, Tag: "greedy"}))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 10, Size: 5, Buy: false, Session: market.Close, Tag: "filled"}))
	assert.NoError(t, e.evaluate(day(16), market.Close))

	trades := e.Ledger().Trades()
	assert.Len(t, trades, 2)
	assert.Equal(t, "filled", trades[1].Tag)
	assert.InDelta(t, 17.50, trades[1].Price, 1e-12)
	assert.InDelta(t, -5.0, trades[1].Size, 1e-12)
	assert.InDelta(t, 5.0, trades[1].Shares(), 1e-12)
}

func TestUnfilledOrdersLapse(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), RateCommission(0))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 10, Size: 10, Buy: true, Session: market.Open}))
	assert.NoError(t, e.evaluate(day(17), market.Open))
	assert.Empty(t, e.Ledger().Trades())

	// Next day's open is 17.25 <= 100; a resting order would have filled,
	// but day orders never carry forward.
	assert.NoError(t, e.evaluate(day(18), market.Open))
	assert.Empty(t, e.Ledger().Trades())
}

func TestEvaluateLeavesOtherSessionPending(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), RateCommission(0))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 50, Size: 1, Buy: true, Session: market.Open}))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 1, Size: 1, Buy: false, Session: market.Close}))

	assert.NoError(t, e.evaluate(day(16), market.Open))
	assert.Len(t, e.Ledger().Trades(), 1)

	assert.NoError(t, e.evaluate(day(16), market.Close))
	assert.Len(t, e.Ledger().Trades(), 2)
}

func TestFillCommission(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), nil) // default 1% of notional
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 50, Size: 10, Buy: true, Session: market.Open}))
	assert.NoError(t, e.evaluate(day(16), market.Open))

	trades := e.Ledger().Trades()
	assert.Len(t, trades, 1)
	assert.InDelta(t, 17.54*10*0.01, trades[0].Commission, 1e-9)
	assert.InDelta(t, 10000-17.54*10-1.754, e.Ledger().Cash(), 1e-9)
}

func TestShortSellRejectedAtFill(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), RateCommission(0))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 1, Size: 5, Buy: false, Session: market.Open}))
	assert.ErrorIs(t, e.evaluate(day(16), market.Open), ledger.ErrInsufficientLots)
}

func TestTakeUnreportedDrains(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, refBars(), RateCommission(0))
	assert.NoError(t, e.Submit(Order{Symbol: "acc", Limit: 50, Size: 1, Buy: true, Session: market.Open}))
	assert.NoError(t, e.evaluate(day(16), market.Open))

	fills := e.takeUnreported()
	assert.Len(t, fills, 1)
	assert.Empty(t, e.takeUnreported())
}

func TestRateCommission(t *testing.T) {
	t.Parallel()

	c := RateCommission(0.01)
	assert.InDelta(t, 0.175, c(17.50, 1), 1e-9)
	assert.InDelta(t, 0.5202, c(17.34, -3), 1e-9) // sells charge on |notional|
}

func TestPerShareCommission(t *testing.T) {
	t.Parallel()

	c := PerShareCommission(0.005, 1.0)

	tests := []struct {
		name  string
		price float64
		size  float64
		want  float64
	}{
		{"minimum applies", 17.54, 10, 1.0},
		{"per-share above minimum", 17.54, 350, 1.75},
		{"capped at 1% of notional", 0.50, 10, 0.05},
		{"sell uses absolute size", 17.54, -350, 1.75},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, c(tt.price, tt.size), 1e-9)
		})
	}
}
