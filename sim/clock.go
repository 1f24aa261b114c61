package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/daysim/journal"
	"github.com/rustyeddy/daysim/market"
	"github.com/rustyeddy/daysim/oracle"
	"github.com/rustyeddy/daysim/pkg/id"
)

// Clock steps the simulation one trading day at a time. For each date in
// [Start, End] on which at least one watched symbol trades it runs, in
// order: corporate actions, the pre-open callback, the open auction, the
// pre-close callback, the close auction, and an end-of-day mark-to-market
// snapshot. Dates on which nothing trades produce no sessions and no
// callbacks. Any error aborts the run; no date is retried.
type Clock struct {
	Start    market.Date
	End      market.Date
	Engine   *Engine
	Strategy Strategy
	Oracle   *oracle.Oracle
	Journal  journal.Journal
	RunID    string
}

// Run executes the simulation. ctx is checked between days; cancellation
// simply stops the clock, leaving the ledger consistent as of the last
// completed day.
func (c *Clock) Run(ctx context.Context) error {
	if c.Engine == nil {
		return fmt.Errorf("sim: Engine is required")
	}
	if c.Strategy == nil {
		return fmt.Errorf("sim: Strategy is required")
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("sim: end %s before start %s", c.End, c.Start)
	}

	j := c.Journal
	if j == nil {
		j = journal.Nop{}
	}
	orc := c.Oracle
	if orc == nil {
		orc = oracle.New()
	}
	runID := c.RunID
	if runID == "" {
		runID = id.New()
	}

	// journal high-water marks, so each day persists only its new records
	var nTrades, nGains, nDividends int

	d := c.Start
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		d = d.NextBusiness()
	}
	for ; !d.After(c.End); d = d.NextBusiness() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !c.Engine.anyTrading(d) {
			continue
		}
		if err := c.runDay(d, orc); err != nil {
			return fmt.Errorf("sim: %s: %w", d, err)
		}

		var err error
		nTrades, nGains, nDividends, err = c.persistDay(j, runID, d, nTrades, nGains, nDividends)
		if err != nil {
			return fmt.Errorf("sim: journal %s: %w", d, err)
		}
	}
	return nil
}

func (c *Clock) runDay(d market.Date, orc *oracle.Oracle) error {
	book := c.Engine.book

	// Corporate actions take effect on the ex-date, before any fills:
	// entitlement is holdings as of the prior close.
	for _, sym := range c.Engine.Symbols() {
		s := c.Engine.series[sym]
		if !s.TradingDay(d) {
			continue
		}
		div, split := s.DividendAndSplit(d)
		if div == 0 && split == 1 {
			continue
		}
		if err := book.ApplyCorporateAction(sym, d, div, split); err != nil {
			return err
		}
	}

	orc.SetDate(d)

	fills := c.Engine.takeUnreported()
	if err := c.Strategy.PreOpen(d, &Broker{eng: c.Engine, date: d}, fills, orc); err != nil {
		return fmt.Errorf("pre-open: %w", err)
	}
	if err := c.Engine.evaluate(d, market.Open); err != nil {
		return fmt.Errorf("open auction: %w", err)
	}

	fills = c.Engine.takeUnreported()
	if err := c.Strategy.PreClose(d, &Broker{eng: c.Engine, date: d, afterOpen: true}, fills, orc); err != nil {
		return fmt.Errorf("pre-close: %w", err)
	}
	if err := c.Engine.evaluate(d, market.Close); err != nil {
		return fmt.Errorf("close auction: %w", err)
	}

	return nil
}

// persistDay appends the day's new ledger records and the end-of-day
// equity snapshot to the journal. The snapshot is a logging side-channel:
// it never feeds back into the ledger.
func (c *Clock) persistDay(j journal.Journal, runID string, d market.Date, nT, nG, nD int) (int, int, int, error) {
	book := c.Engine.book

	trades := book.Trades()
	for _, t := range trades[nT:] {
		err := j.RecordTrade(journal.TradeRecord{
			RunID:      runID,
			TradeID:    t.ID,
			Symbol:     t.Symbol,
			Date:       t.Date,
			Session:    t.Session.String(),
			Price:      t.Price,
			Size:       t.Size,
			Commission: t.Commission,
			Tag:        t.Tag,
		})
		if err != nil {
			return nT, nG, nD, err
		}
	}

	gains := book.CapitalGains()
	for _, g := range gains[nG:] {
		err := j.RecordGain(journal.GainRecord{
			RunID:      runID,
			Symbol:     g.Symbol,
			Size:       g.Size,
			OpenPrice:  g.OpenPrice,
			ClosePrice: g.ClosePrice,
			OpenDate:   g.OpenDate,
			CloseDate:  g.CloseDate,
			OpenTag:    g.OpenTag,
			CloseTag:   g.CloseTag,
		})
		if err != nil {
			return nT, nG, nD, err
		}
	}

	dividends := book.Dividends()
	for _, dv := range dividends[nD:] {
		err := j.RecordDividend(journal.DividendRecord{
			RunID:        runID,
			Symbol:       dv.Symbol,
			Tag:          dv.Tag,
			AcquiredDate: dv.AcquiredDate,
			ExDate:       dv.ExDate,
			Shares:       dv.Shares,
			PerShare:     dv.PerShare,
			Amount:       dv.Amount,
		})
		if err != nil {
			return nT, nG, nD, err
		}
	}

	cash, long, err := c.Engine.markToMarket(d)
	if err != nil {
		return nT, nG, nD, err
	}
	err = j.RecordEquity(journal.EquitySnapshot{
		RunID:        runID,
		Date:         d,
		Cash:         cash,
		LongEquities: long,
		Total:        cash + long,
	})
	if err != nil {
		return nT, nG, nD, err
	}

	return len(trades), len(gains), len(dividends), nil
}
