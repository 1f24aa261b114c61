package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, trade_id, symbol, date, session, price, size, commission, tag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.TradeID, t.Symbol, t.Date.String(), t.Session,
		t.Price, t.Size, t.Commission, t.Tag,
	)
	return err
}

func (j *SQLite) RecordGain(g GainRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO gains
		(run_id, symbol, size, open_price, close_price, open_date, close_date, open_tag, close_tag)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.RunID, g.Symbol, g.Size, g.OpenPrice, g.ClosePrice,
		g.OpenDate.String(), g.CloseDate.String(), g.OpenTag, g.CloseTag,
	)
	return err
}

func (j *SQLite) RecordDividend(d DividendRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO dividends
		(run_id, symbol, tag, acquired_date, ex_date, shares, per_share, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Symbol, d.Tag, d.AcquiredDate.String(), d.ExDate.String(),
		d.Shares, d.PerShare, d.Amount,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, date, cash, long_equities, total)
		VALUES (?, ?, ?, ?, ?)`,
		e.RunID, e.Date.String(), e.Cash, e.LongEquities, e.Total,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
