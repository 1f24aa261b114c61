package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSV writes each log to its own flat file. Rows are flushed per record so
// a partially completed run still leaves a usable audit trail.
type CSV struct {
	trades, gains, dividends, equity *csv.Writer
	files                            []*os.File
}

func NewCSV(tradesPath, gainsPath, dividendsPath, equityPath string) (*CSV, error) {
	j := &CSV{}

	open := func(path string, header []string) (*csv.Writer, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		j.files = append(j.files, f)
		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		return w, w.Error()
	}

	var err error
	if j.trades, err = open(tradesPath, []string{
		"run_id", "trade_id", "symbol", "date", "session", "price", "size", "commission", "tag",
	}); err != nil {
		j.Close()
		return nil, err
	}
	if j.gains, err = open(gainsPath, []string{
		"run_id", "symbol", "size", "open_price", "close_price", "open_date", "close_date", "open_tag", "close_tag",
	}); err != nil {
		j.Close()
		return nil, err
	}
	if j.dividends, err = open(dividendsPath, []string{
		"run_id", "symbol", "tag", "acquired_date", "ex_date", "shares", "per_share", "amount",
	}); err != nil {
		j.Close()
		return nil, err
	}
	if j.equity, err = open(equityPath, []string{
		"run_id", "date", "cash", "long_equities", "total",
	}); err != nil {
		j.Close()
		return nil, err
	}

	return j, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	return write(j.trades, []string{
		t.RunID, t.TradeID, t.Symbol, t.Date.String(), t.Session,
		f(t.Price), f(t.Size), f(t.Commission), t.Tag,
	})
}

func (j *CSV) RecordGain(g GainRecord) error {
	return write(j.gains, []string{
		g.RunID, g.Symbol, f(g.Size), f(g.OpenPrice), f(g.ClosePrice),
		g.OpenDate.String(), g.CloseDate.String(), g.OpenTag, g.CloseTag,
	})
}

func (j *CSV) RecordDividend(d DividendRecord) error {
	return write(j.dividends, []string{
		d.RunID, d.Symbol, d.Tag, d.AcquiredDate.String(), d.ExDate.String(),
		f(d.Shares), f(d.PerShare), f(d.Amount),
	})
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	return write(j.equity, []string{
		e.RunID, e.Date.String(), f(e.Cash), f(e.LongEquities), f(e.Total),
	})
}

func (j *CSV) Close() error {
	var first error
	for _, w := range []*csv.Writer{j.trades, j.gains, j.dividends, j.equity} {
		if w == nil {
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil && first == nil {
			first = err
		}
	}
	for _, f := range j.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
