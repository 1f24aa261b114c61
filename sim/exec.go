// Package sim drives a backtest: the execution engine turns day-limit
// orders into fills at the open and close auctions, and the session clock
// steps the calendar, invokes the strategy, and keeps the ledger and
// journal in sync.
package sim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rustyeddy/daysim/ledger"
	"github.com/rustyeddy/daysim/market"
	"github.com/rustyeddy/daysim/pkg/id"
)

// ErrInvalidOrder is returned for orders the engine refuses at submission:
// non-positive price or size, an unknown symbol, or a session that has
// already passed. Rejection does not touch ledger state.
var ErrInvalidOrder = errors.New("sim: invalid order")

// Order is a day-limit order: valid only for the session it names, lapsing
// silently if unfilled. Size is always positive; Buy carries the side.
type Order struct {
	Symbol  string
	Limit   float64
	Size    float64
	Buy     bool
	Session market.Session
	Tag     string
}

// Engine matches pending day orders against session prices and forwards
// fills into the ledger. It is single-threaded by construction: only the
// clock calls evaluate, and only strategy callbacks call Submit.
type Engine struct {
	series     map[string]*market.Series
	book       *ledger.Ledger
	commission Commission
	ids        *id.Generator

	pending    []Order // submission order, across symbols
	unreported []ledger.Trade
}

func NewEngine(book *ledger.Ledger, series map[string]*market.Series, c Commission) *Engine {
	if c == nil {
		c = RateCommission(DefaultRate)
	}
	return &Engine{
		series:     series,
		book:       book,
		commission: c,
		ids:        id.NewGenerator(),
	}
}

// Ledger exposes the read API of the underlying ledger.
func (e *Engine) Ledger() *ledger.Ledger { return e.book }

// Symbols returns the watched symbols in sorted order.
func (e *Engine) Symbols() []string {
	syms := make([]string, 0, len(e.series))
	for s := range e.series {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}

// Submit queues a day order for its session.
func (e *Engine) Submit(o Order) error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: size %v must be positive", ErrInvalidOrder, o.Size)
	}
	if o.Limit <= 0 {
		return fmt.Errorf("%w: limit %v must be positive", ErrInvalidOrder, o.Limit)
	}
	if _, ok := e.series[o.Symbol]; !ok {
		return fmt.Errorf("%w: unknown symbol %q", ErrInvalidOrder, o.Symbol)
	}
	e.pending = append(e.pending, o)
	return nil
}

// evaluate runs one session's auction for date d. Orders are matched in
// submission order: a buy fills iff the session price is at or below its
// limit, a sell iff at or above; the fill price is the session price, not
// the limit. Everything pending for this session is consumed — unfilled
// orders lapse and are not carried forward or reported.
func (e *Engine) evaluate(d market.Date, sess market.Session) error {
	var keep []Order
	for _, o := range e.pending {
		if o.Session != sess {
			keep = append(keep, o)
			continue
		}

		s := e.series[o.Symbol]
		if !s.TradingDay(d) {
			continue // symbol closed today, order lapses
		}
		price, err := s.SessionPrice(d, sess)
		if err != nil {
			return err
		}

		filled := (o.Buy && price <= o.Limit) || (!o.Buy && price >= o.Limit)
		if !filled {
			continue
		}

		size := o.Size
		if !o.Buy {
			size = -o.Size
		}
		t := ledger.Trade{
			ID:         e.ids.Next(),
			Symbol:     o.Symbol,
			Price:      price,
			Size:       size,
			Date:       d,
			Session:    sess,
			Tag:        o.Tag,
			Commission: e.commission(price, size),
		}
		if err := e.book.ApplyTrade(t); err != nil {
			return err
		}
		e.unreported = append(e.unreported, t)
	}
	e.pending = keep
	return nil
}

// takeUnreported drains the fill buffer. Each fill is delivered to the
// strategy exactly once.
func (e *Engine) takeUnreported() []ledger.Trade {
	out := e.unreported
	e.unreported = nil
	return out
}

// anyTrading reports whether any watched symbol has a bar on d.
func (e *Engine) anyTrading(d market.Date) bool {
	for _, s := range e.series {
		if s.TradingDay(d) {
			return true
		}
	}
	return false
}

// markToMarket values the open lots at the most recent close on or before
// d and returns (cash, long equities).
func (e *Engine) markToMarket(d market.Date) (cash, long float64, err error) {
	cash = e.book.Cash()
	for _, lot := range e.book.Positions() {
		s, ok := e.series[lot.Symbol]
		if !ok {
			return 0, 0, fmt.Errorf("sim: no series for held symbol %q", lot.Symbol)
		}
		px, ok := s.CloseOn(d)
		if !ok {
			return 0, 0, fmt.Errorf("%w: no close for %s on or before %s", market.ErrNoData, lot.Symbol, d)
		}
		long += lot.Size * px
	}
	return cash, long, nil
}
