package market

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a session price is requested for a date the
// series has no bar for. The clock skips non-trading days, so reaching this
// error from the run loop indicates a clock/series desynchronization and the
// run must abort rather than skip.
var ErrNoData = errors.New("market: no data")

// Session identifies one of the two daily auctions.
type Session int

const (
	Open Session = iota
	Close
)

func (s Session) String() string {
	switch s {
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("session(%d)", int(s))
	}
}

// Bar is one trading day of a symbol: OHLCV plus the corporate actions that
// take effect on that date.
type Bar struct {
	Date        Date
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	DivCash     float64 // cash dividend per share, ex-date = Date
	SplitFactor float64 // 1 means no split
}

// Series is the immutable daily price history of one symbol. A date with no
// bar is a non-trading day for that symbol.
type Series struct {
	symbol string
	bars   []Bar
	index  map[Date]int
}

// NewSeries builds a Series from bars sorted ascending by date. Unsorted or
// duplicate dates are rejected; a zero SplitFactor is normalized to 1.
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	if symbol == "" {
		return nil, fmt.Errorf("market: series needs a symbol")
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("market: series %q has no bars", symbol)
	}

	s := &Series{
		symbol: symbol,
		bars:   make([]Bar, len(bars)),
		index:  make(map[Date]int, len(bars)),
	}
	copy(s.bars, bars)

	for i := range s.bars {
		b := &s.bars[i]
		if b.SplitFactor == 0 {
			b.SplitFactor = 1
		}
		if i > 0 && !s.bars[i-1].Date.Before(b.Date) {
			return nil, fmt.Errorf("market: series %q not sorted at %s", symbol, b.Date)
		}
		s.index[b.Date] = i
	}
	return s, nil
}

func (s *Series) Symbol() string { return s.symbol }

// Start returns the first date in the series.
func (s *Series) Start() Date { return s.bars[0].Date }

// End returns the last date in the series.
func (s *Series) End() Date { return s.bars[len(s.bars)-1].Date }

// TradingDay reports whether the symbol traded on d.
func (s *Series) TradingDay(d Date) bool {
	_, ok := s.index[d]
	return ok
}

// Bar returns the bar for d, if any.
func (s *Series) Bar(d Date) (Bar, bool) {
	i, ok := s.index[d]
	if !ok {
		return Bar{}, false
	}
	return s.bars[i], true
}

// SessionPrice returns the open or close auction price for d.
func (s *Series) SessionPrice(d Date, sess Session) (float64, error) {
	b, ok := s.Bar(d)
	if !ok {
		return 0, fmt.Errorf("%w: %s has no bar on %s", ErrNoData, s.symbol, d)
	}
	if sess == Open {
		return b.Open, nil
	}
	return b.Close, nil
}

// DividendAndSplit returns the cash dividend per share and the split factor
// effective on d. Non-trading days have neither: (0, 1).
func (s *Series) DividendAndSplit(d Date) (div, split float64) {
	b, ok := s.Bar(d)
	if !ok {
		return 0, 1
	}
	return b.DivCash, b.SplitFactor
}

// Visible returns fresh copies of the bars an observer on d could know:
// every bar strictly before d and, when afterOpen, d's own bar with only
// Date and Open populated. The rest of the current day's bar prints at the
// close and stays hidden until the next day.
func (s *Series) Visible(d Date, afterOpen bool) []Bar {
	var out []Bar
	for _, b := range s.bars {
		if b.Date.Before(d) {
			out = append(out, b)
			continue
		}
		if afterOpen && b.Date == d {
			out = append(out, Bar{Date: b.Date, Open: b.Open})
		}
		break
	}
	return out
}

// CloseOn returns the most recent close on or before d. Used for
// end-of-day mark-to-market when a held symbol did not trade on d.
func (s *Series) CloseOn(d Date) (float64, bool) {
	if i, ok := s.index[d]; ok {
		return s.bars[i].Close, true
	}
	// bars are sorted; scan back from the end
	for i := len(s.bars) - 1; i >= 0; i-- {
		if !s.bars[i].Date.After(d) {
			return s.bars[i].Close, true
		}
	}
	return 0, false
}
