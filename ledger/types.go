package ledger

import (
	"math"

	"github.com/rustyeddy/daysim/market"
)

// Trade is a filled order. Size is signed: positive buys, negative sells.
// Trades are immutable once recorded; the trade log is the ground truth for
// cash reconciliation.
//
// Tag is caller metadata. It is carried through into lots, capital gains and
// dividends for the strategy's own bookkeeping and never interpreted here.
type Trade struct {
	ID         string
	Symbol     string
	Price      float64
	Size       float64
	Date       market.Date
	Session    market.Session
	Tag        string
	Commission float64
}

// Notional is price times signed size.
func (t Trade) Notional() float64 { return t.Price * t.Size }

// CashCost is the signed cash movement caused by the trade: positive for a
// buy (cash out), negative for a sell (cash in, net of commission).
func (t Trade) CashCost() float64 { return t.Price*t.Size + t.Commission }

// Shares is the unsigned size.
func (t Trade) Shares() float64 { return math.Abs(t.Size) }

// Lot is a block of shares acquired at one price on one date. Lots live in
// a per-symbol FIFO queue; Size only shrinks (sells) or is rescaled
// (splits), and the lot is removed once it reaches zero.
type Lot struct {
	Symbol string
	Tag    string
	Size   float64
	Price  float64
	Date   market.Date
}

// CapitalGain records one (partial) lot closure. Emitted by FIFO matching;
// write-once.
type CapitalGain struct {
	Symbol     string
	Size       float64
	OpenPrice  float64
	ClosePrice float64
	OpenDate   market.Date
	CloseDate  market.Date
	OpenTag    string
	CloseTag   string
}

// Gain is the realized gain or loss, before commissions.
func (g CapitalGain) Gain() float64 { return (g.ClosePrice - g.OpenPrice) * g.Size }

// Dividend records the cash paid to one open lot on one ex-date.
type Dividend struct {
	Symbol       string
	Tag          string
	AcquiredDate market.Date
	Shares       float64
	PerShare     float64
	Amount       float64
	ExDate       market.Date
}
