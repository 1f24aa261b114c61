package strategies

import (
	"strconv"

	"github.com/rustyeddy/daysim/ledger"
	"github.com/rustyeddy/daysim/market"
	"github.com/rustyeddy/daysim/oracle"
	"github.com/rustyeddy/daysim/sim"
)

// Ladder buys an increasing number of shares at each open (1, 2, 3, ...)
// and sells one fewer than the previous buy at the close while the ladder
// is short enough. The limits are wide so every order fills at the auction
// price. It alternates between two tags to demonstrate that lot matching
// ignores them.
type Ladder struct {
	Symbol    string
	BuyLimit  float64
	SellLimit float64

	size int
}

func NewLadder(symbol string) *Ladder {
	return &Ladder{
		Symbol:    symbol,
		BuyLimit:  1e6,
		SellLimit: 0.01,
		size:      1,
	}
}

func (l *Ladder) tag() string { return strconv.Itoa(l.size % 2) }

func (l *Ladder) PreOpen(d market.Date, b *sim.Broker, fills []ledger.Trade, data *oracle.Oracle) error {
	return b.LimitOnOpen(l.Symbol, l.BuyLimit, float64(l.size), true, l.tag())
}

func (l *Ladder) PreClose(d market.Date, b *sim.Broker, fills []ledger.Trade, data *oracle.Oracle) error {
	if l.size <= 4 && l.size > 1 {
		if err := b.LimitOnClose(l.Symbol, l.SellLimit, float64(l.size-1), false, l.tag()); err != nil {
			return err
		}
	}
	l.size++
	return nil
}
