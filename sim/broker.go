package sim

import (
	"fmt"

	"github.com/rustyeddy/daysim/ledger"
	"github.com/rustyeddy/daysim/market"
	"github.com/rustyeddy/daysim/oracle"
)

// Broker is the order-submission handle passed to strategy callbacks. It
// accepts orders for the upcoming auction only: before the open you may
// place limit-on-open orders, after the open limit-on-close. Orders are
// executed at the auction itself, never synchronously, and the resulting
// fills are reported at the next callback.
type Broker struct {
	eng       *Engine
	date      market.Date
	afterOpen bool
}

// Date returns the simulation date of the current callback.
func (b *Broker) Date() market.Date { return b.date }

// LimitOnOpen submits a day-limit order for today's open auction.
func (b *Broker) LimitOnOpen(symbol string, price, size float64, buy bool, tag string) error {
	if b.afterOpen {
		return fmt.Errorf("%w: the open has passed, submit a limit-on-close order", ErrInvalidOrder)
	}
	return b.eng.Submit(Order{
		Symbol:  symbol,
		Limit:   price,
		Size:    size,
		Buy:     buy,
		Session: market.Open,
		Tag:     tag,
	})
}

// LimitOnClose submits a day-limit order for today's close auction.
func (b *Broker) LimitOnClose(symbol string, price, size float64, buy bool, tag string) error {
	if !b.afterOpen {
		return fmt.Errorf("%w: limit-on-close orders open up after the open auction", ErrInvalidOrder)
	}
	return b.eng.Submit(Order{
		Symbol:  symbol,
		Limit:   price,
		Size:    size,
		Buy:     buy,
		Session: market.Close,
		Tag:     tag,
	})
}

// HistoricalPrices returns the price history a strategy may act on at the
// current callback: bars strictly before today and, once the open has
// printed, today's bar with only Date and Open set. The current day's
// high, low, close and volume are never observable before the next day.
func (b *Broker) HistoricalPrices(symbol string) ([]market.Bar, error) {
	s, ok := b.eng.series[symbol]
	if !ok {
		return nil, fmt.Errorf("sim: unknown symbol %q", symbol)
	}
	return s.Visible(b.Date(), b.afterOpen), nil
}

// Positions returns the currently open lots.
func (b *Broker) Positions() []ledger.Lot { return b.eng.book.Positions() }

// Cash returns the current cash balance.
func (b *Broker) Cash() float64 { return b.eng.book.Cash() }

// Strategy is the two-callback contract a trading strategy implements.
// Both are invoked synchronously by the clock, once per trading day each:
// PreOpen before the open auction and PreClose between the open and close
// auctions. fills carries the trades executed since the previous callback,
// delivered exactly once; data is the point-in-time view of any auxiliary
// datasets. Returning an error aborts the run.
type Strategy interface {
	PreOpen(d market.Date, b *Broker, fills []ledger.Trade, data *oracle.Oracle) error
	PreClose(d market.Date, b *Broker, fills []ledger.Trade, data *oracle.Oracle) error
}
