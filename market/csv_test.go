package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadCSVWithHeader(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `date,open,high,low,close,volume,divCash,splitFactor
2004-08-12,17.50,17.58,17.50,17.50,2545100,0,1
2004-08-13,17.50,17.51,17.50,17.51,593000,0.10,2
`)

	s, err := LoadCSV("acc", path)
	assert.NoError(t, err)
	assert.Equal(t, "acc", s.Symbol())

	b, ok := s.Bar(NewDate(2004, time.August, 13))
	assert.True(t, ok)
	assert.InDelta(t, 17.51, b.Close, 1e-12)
	assert.InDelta(t, 0.10, b.DivCash, 1e-12)
	assert.InDelta(t, 2.0, b.SplitFactor, 1e-12)
}

func TestLoadCSVNoHeaderDefaults(t *testing.T) {
	t.Parallel()

	// no header, no dividend/split columns
	path := writeCSV(t, `2004-08-12,17.50,17.58,17.50,17.50,2545100
2004-08-13,17.50,17.51,17.50,17.51,593000
`)

	s, err := LoadCSV("acc", path)
	assert.NoError(t, err)

	b, ok := s.Bar(NewDate(2004, time.August, 12))
	assert.True(t, ok)
	assert.InDelta(t, 0.0, b.DivCash, 1e-12)
	assert.InDelta(t, 1.0, b.SplitFactor, 1e-12)
}

func TestLoadCSVBadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"short row", "2004-08-12,17.50,17.58\n"},
		{"bad date", "12 Aug 2004,17.50,17.58,17.50,17.50,2545100\n"},
		{"bad number", "2004-08-12,17.50,x,17.50,17.50,2545100\n"},
		{"unsorted", "2004-08-13,17.50,17.51,17.50,17.51,593000\n2004-08-12,17.50,17.58,17.50,17.50,2545100\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadCSV("acc", writeCSV(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadCSV("acc", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
