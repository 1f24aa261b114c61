package market

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateFormat is the ISO-8601 layout used everywhere dates are rendered.
const DateFormat = "2006-01-02"

// Date is a calendar date with day-level granularity. The simulation clock,
// the series index, and every ledger record use Date rather than time.Time
// so that two runs over the same data compare byte for byte.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// ParseDate parses an ISO-8601 date such as "2004-08-12".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Before reports whether d falls strictly before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether d falls strictly after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// Add returns the date i days later (earlier for negative i).
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// NextBusiness returns the next weekday after d. Exchange holidays are not
// modeled here; dates with no bar are skipped by the clock instead.
func (d Date) NextBusiness() Date {
	n := d.Add(1)
	for n.Weekday() == time.Saturday || n.Weekday() == time.Sunday {
		n = n.Add(1)
	}
	return n
}

// MarshalText implements encoding.TextMarshaler, so Date round-trips
// through JSON config files as an ISO-8601 string.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	p, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// MarshalYAML renders the date as an ISO-8601 string. yaml.v3 ignores
// encoding.TextMarshaler, so the YAML hooks are spelled out.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Accepts both quoted strings
// and bare dates, which YAML resolves as timestamps.
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}
