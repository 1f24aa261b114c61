package journal

import (
	"github.com/rustyeddy/daysim/market"
)

// TradeRecord is one fill, as persisted.
type TradeRecord struct {
	RunID      string
	TradeID    string
	Symbol     string
	Date       market.Date
	Session    string
	Price      float64
	Size       float64 // signed: positive buy, negative sell
	Commission float64
	Tag        string
}

// GainRecord is one realized (partial) lot closure.
type GainRecord struct {
	RunID      string
	Symbol     string
	Size       float64
	OpenPrice  float64
	ClosePrice float64
	OpenDate   market.Date
	CloseDate  market.Date
	OpenTag    string
	CloseTag   string
}

// DividendRecord is one dividend payment to one open lot.
type DividendRecord struct {
	RunID        string
	Symbol       string
	Tag          string
	AcquiredDate market.Date
	ExDate       market.Date
	Shares       float64
	PerShare     float64
	Amount       float64
}

// EquitySnapshot is the end-of-day mark-to-market of a run: cash plus open
// lots valued at the day's closes. One row per processed trading day.
type EquitySnapshot struct {
	RunID        string
	Date         market.Date
	Cash         float64
	LongEquities float64
	Total        float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordGain(GainRecord) error
	RecordDividend(DividendRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything. Used when persistence is off.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error       { return nil }
func (Nop) RecordGain(GainRecord) error         { return nil }
func (Nop) RecordDividend(DividendRecord) error { return nil }
func (Nop) RecordEquity(EquitySnapshot) error   { return nil }
func (Nop) Close() error                        { return nil }
