package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/daysim/market"
	"github.com/stretchr/testify/assert"
)

func day(d int) market.Date { return market.NewDate(2004, time.August, d) }

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestTradeRoundTrip(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)

	recs := []TradeRecord{
		{RunID: "run-1", TradeID: "01A", Symbol: "acc", Date: day(12), Session: "open", Price: 17.50, Size: 1, Commission: 0.175, Tag: "1"},
		{RunID: "run-1", TradeID: "01B", Symbol: "acc", Date: day(13), Session: "close", Price: 17.51, Size: -1, Commission: 0.1751, Tag: "0"},
		{RunID: "run-2", TradeID: "01C", Symbol: "xyz", Date: day(16), Session: "open", Price: 5.00, Size: 10, Commission: 0.5},
	}
	for _, r := range recs {
		assert.NoError(t, j.RecordTrade(r))
	}

	got, err := j.ListTrades("run-1")
	assert.NoError(t, err)
	assert.Equal(t, recs[:2], got)

	got, err = j.ListTrades("missing")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestEquityRoundTrip(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)

	recs := []EquitySnapshot{
		{RunID: "run-1", Date: day(12), Cash: 9982.325, LongEquities: 17.50, Total: 9999.825},
		{RunID: "run-1", Date: day(13), Cash: 9964.80, LongEquities: 35.02, Total: 9999.82},
	}
	// insert out of order, listing sorts by date
	assert.NoError(t, j.RecordEquity(recs[1]))
	assert.NoError(t, j.RecordEquity(recs[0]))

	got, err := j.ListEquity("run-1")
	assert.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestGainAndDividendInserts(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)

	assert.NoError(t, j.RecordGain(GainRecord{
		RunID: "run-1", Symbol: "acc", Size: 1,
		OpenPrice: 17.50, ClosePrice: 17.51,
		OpenDate: day(12), CloseDate: day(13),
		OpenTag: "1", CloseTag: "0",
	}))
	assert.NoError(t, j.RecordDividend(DividendRecord{
		RunID: "run-1", Symbol: "acc", Tag: "1",
		AcquiredDate: day(16), ExDate: day(17),
		Shares: 3, PerShare: 0.10, Amount: 0.30,
	}))
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	j := openTestDB(t)

	for _, run := range []string{"01AAAA", "01BBBB", "01AAAA"} {
		assert.NoError(t, j.RecordTrade(TradeRecord{
			RunID: run, TradeID: run + "-t", Symbol: "acc",
			Date: day(12), Session: "open", Price: 1, Size: 1,
		}))
	}

	runs, err := j.ListRuns()
	assert.NoError(t, err)
	assert.Equal(t, []string{"01BBBB", "01AAAA"}, runs)
}

func TestNopJournal(t *testing.T) {
	t.Parallel()

	var j Journal = Nop{}
	assert.NoError(t, j.RecordTrade(TradeRecord{}))
	assert.NoError(t, j.RecordGain(GainRecord{}))
	assert.NoError(t, j.RecordDividend(DividendRecord{}))
	assert.NoError(t, j.RecordEquity(EquitySnapshot{}))
	assert.NoError(t, j.Close())
}
