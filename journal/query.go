package journal

import (
	"fmt"

	"github.com/rustyeddy/daysim/market"
)

func parseDate(s string) (market.Date, error) {
	d, err := market.ParseDate(s)
	if err != nil {
		return market.Date{}, fmt.Errorf("journal: %w", err)
	}
	return d, nil
}

// ListTrades returns a run's fills in fill order.
func (j *SQLite) ListTrades(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, symbol, date, session, price, size, commission, tag
		FROM trades
		WHERE run_id = ?
		ORDER BY trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		var date string
		if err := rows.Scan(
			&rec.RunID, &rec.TradeID, &rec.Symbol, &date, &rec.Session,
			&rec.Price, &rec.Size, &rec.Commission, &rec.Tag,
		); err != nil {
			return nil, err
		}
		if rec.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListEquity returns a run's daily snapshots in date order.
func (j *SQLite) ListEquity(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, cash, long_equities, total
		FROM equity
		WHERE run_id = ?
		ORDER BY date ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		var date string
		if err := rows.Scan(&rec.RunID, &date, &rec.Cash, &rec.LongEquities, &rec.Total); err != nil {
			return nil, err
		}
		if rec.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListRuns returns the distinct run IDs present in the journal, newest
// first (ULIDs sort by creation time).
func (j *SQLite) ListRuns() ([]string, error) {
	rows, err := j.db.Query(`SELECT DISTINCT run_id FROM trades ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
