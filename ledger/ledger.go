// Package ledger is the accounting core of the simulator: cash, open
// cost-basis lots, and the append-only trade, capital-gain and dividend
// logs. Matching is strict FIFO per symbol.
//
// The ledger is exclusively owned by the session clock; after every
// processed trading day the identity
//
//	cash == initial − Σ(price·size) − Σ(commission) + Σ(dividend)
//
// holds over the logs.
package ledger

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/daysim/market"
)

// ErrInsufficientLots is returned when a sell exceeds the open lot size for
// a symbol. Short selling is not modeled; this aborts the run rather than
// producing a negative-size lot.
var ErrInsufficientLots = errors.New("ledger: insufficient lots")

// sizeEps absorbs float drift when deciding whether a lot is exhausted.
const sizeEps = 1e-9

type Ledger struct {
	cash        float64
	initialCash float64

	lots    map[string][]Lot
	symbols []string // first-seen order, keeps Positions() stable

	trades    []Trade
	gains     []CapitalGain
	dividends []Dividend
}

func New(initialCash float64) *Ledger {
	return &Ledger{
		cash:        initialCash,
		initialCash: initialCash,
		lots:        make(map[string][]Lot),
	}
}

func (l *Ledger) touch(symbol string) {
	if _, ok := l.lots[symbol]; !ok {
		l.lots[symbol] = nil
		l.symbols = append(l.symbols, symbol)
	}
}

// ApplyTrade records a fill. A buy pushes a new lot onto the back of the
// symbol's FIFO queue; a sell consumes lots from the front, oldest first,
// emitting one CapitalGain per (partial) closure. The tag carried by either
// side is never used as a matching key: two buys on different tags still
// close oldest-first.
func (l *Ledger) ApplyTrade(t Trade) error {
	if t.Size == 0 {
		return fmt.Errorf("ledger: zero-size trade for %s on %s", t.Symbol, t.Date)
	}
	l.touch(t.Symbol)

	if t.Size > 0 {
		l.lots[t.Symbol] = append(l.lots[t.Symbol], Lot{
			Symbol: t.Symbol,
			Tag:    t.Tag,
			Size:   t.Size,
			Price:  t.Price,
			Date:   t.Date,
		})
	} else {
		if err := l.closeFIFO(t); err != nil {
			return err
		}
	}

	l.trades = append(l.trades, t)
	l.cash -= t.CashCost()
	return nil
}

func (l *Ledger) closeFIFO(t Trade) error {
	remaining := -t.Size
	queue := l.lots[t.Symbol]

	var open float64
	for _, lot := range queue {
		open += lot.Size
	}
	if remaining > open+sizeEps {
		return fmt.Errorf("%w: sell %v %s but only %v held",
			ErrInsufficientLots, remaining, t.Symbol, open)
	}

	for remaining > sizeEps {
		front := &queue[0]
		closed := remaining
		if front.Size < closed {
			closed = front.Size
		}

		l.gains = append(l.gains, CapitalGain{
			Symbol:     t.Symbol,
			Size:       closed,
			OpenPrice:  front.Price,
			ClosePrice: t.Price,
			OpenDate:   front.Date,
			CloseDate:  t.Date,
			OpenTag:    front.Tag,
			CloseTag:   t.Tag,
		})

		front.Size -= closed
		remaining -= closed
		if front.Size <= sizeEps {
			queue = queue[1:]
		}
	}

	l.lots[t.Symbol] = queue
	return nil
}

// ApplyCorporateAction pays the dividend and applies the split effective on
// d. Only lots acquired strictly before d are entitled: holdings as of the
// prior close. Lots bought on the split day itself are already quoted at
// post-split prices and are not re-adjusted. The clock calls this once per
// symbol per trading day, before any fills for that day.
func (l *Ledger) ApplyCorporateAction(symbol string, d market.Date, divPerShare, splitFactor float64) error {
	queue := l.lots[symbol]

	if divPerShare != 0 {
		for _, lot := range queue {
			if !lot.Date.Before(d) {
				continue
			}
			amount := lot.Size * divPerShare
			l.dividends = append(l.dividends, Dividend{
				Symbol:       symbol,
				Tag:          lot.Tag,
				AcquiredDate: lot.Date,
				Shares:       lot.Size,
				PerShare:     divPerShare,
				Amount:       amount,
				ExDate:       d,
			})
			l.cash += amount
		}
	}

	if splitFactor != 1 {
		if splitFactor <= 0 {
			return fmt.Errorf("ledger: bad split factor %v for %s on %s", splitFactor, symbol, d)
		}
		for i := range queue {
			if !queue[i].Date.Before(d) {
				continue
			}
			// notional preserved: size·price is unchanged
			queue[i].Size *= splitFactor
			queue[i].Price /= splitFactor
		}
	}

	return nil
}

// Cash returns the current balance.
func (l *Ledger) Cash() float64 { return l.cash }

// InitialCash returns the starting balance.
func (l *Ledger) InitialCash() float64 { return l.initialCash }

// Position returns the net open size for a symbol.
func (l *Ledger) Position(symbol string) float64 {
	var n float64
	for _, lot := range l.lots[symbol] {
		n += lot.Size
	}
	return n
}

// Positions returns all open lots, symbols in first-seen order and lots in
// FIFO order within each symbol.
func (l *Ledger) Positions() []Lot {
	var out []Lot
	for _, sym := range l.symbols {
		out = append(out, l.lots[sym]...)
	}
	return out
}

// Trades returns the full trade log in fill order.
func (l *Ledger) Trades() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// CapitalGains returns the realized-gain log in closure order.
func (l *Ledger) CapitalGains() []CapitalGain {
	out := make([]CapitalGain, len(l.gains))
	copy(out, l.gains)
	return out
}

// Dividends returns the dividend log in payment order.
func (l *Ledger) Dividends() []Dividend {
	out := make([]Dividend, len(l.dividends))
	copy(out, l.dividends)
	return out
}
