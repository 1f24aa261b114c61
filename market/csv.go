package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a daily bar series from a CSV file with rows:
//
//	date,open,high,low,close,volume[,divCash,splitFactor]
//
// where date is ISO-8601 (2006-01-02). A header row is allowed. Missing
// dividend/split columns default to 0 and 1.
func LoadCSV(symbol, path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []Bar
	sawFirst := false

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				continue
			}
		}

		b, err := parseBarRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		bars = append(bars, b)
	}

	return NewSeries(symbol, bars)
}

func parseBarRow(row []string) (Bar, error) {
	if len(row) < 6 {
		return Bar{}, fmt.Errorf("bad row (need date,open,high,low,close,volume): %v", row)
	}

	d, err := ParseDate(strings.TrimSpace(row[0]))
	if err != nil {
		return Bar{}, err
	}

	vals := make([]float64, 0, 7)
	for i := 1; i < len(row) && i < 8; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad field %q: %w", row[i], err)
		}
		vals = append(vals, v)
	}

	b := Bar{
		Date:        d,
		Open:        vals[0],
		High:        vals[1],
		Low:         vals[2],
		Close:       vals[3],
		Volume:      vals[4],
		SplitFactor: 1,
	}
	if len(vals) > 5 {
		b.DivCash = vals[5]
	}
	if len(vals) > 6 {
		b.SplitFactor = vals[6]
	}
	return b, nil
}
