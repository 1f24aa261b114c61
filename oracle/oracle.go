// Package oracle is the point-in-time gate for auxiliary datasets. A
// strategy only ever sees rows keyed on or before the oracle's current
// date; later rows are absent, not masked, so their existence cannot be
// inferred. This is the single mechanism preventing lookahead bias.
package oracle

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/daysim/market"
)

// ErrVisibility is returned when data is requested before the clock has
// set a visibility frontier. Failing loudly beats leaking future rows.
var ErrVisibility = errors.New("oracle: no visibility frontier set")

// Row is one record of an auxiliary dataset: a key date plus arbitrary
// named fields. Fields are opaque to the oracle.
type Row struct {
	Date   market.Date
	Fields map[string]string
}

type view struct {
	rows   []Row
	keys   []market.Date // precomputed censor key per row
	keyCol string
}

// Option configures how a dataset is registered.
type Option func(*view)

// CensorOnColumn keys visibility on a date-valued field instead of the
// row's own Date. The field must parse as an ISO-8601 date in every row.
func CensorOnColumn(col string) Option {
	return func(v *view) { v.keyCol = col }
}

// Oracle holds registered datasets and the current simulation date.
type Oracle struct {
	data     map[string]*view
	frontier market.Date
	set      bool
}

func New() *Oracle {
	return &Oracle{data: make(map[string]*view)}
}

// Add registers a dataset under a name. Re-registration is an error; one
// dataset, one name, for the life of the run.
func (o *Oracle) Add(name string, rows []Row, opts ...Option) error {
	if _, ok := o.data[name]; ok {
		return fmt.Errorf("oracle: dataset %q already registered", name)
	}

	v := &view{rows: make([]Row, len(rows))}
	copy(v.rows, rows)
	for _, opt := range opts {
		opt(v)
	}

	v.keys = make([]market.Date, len(v.rows))
	for i, r := range v.rows {
		if v.keyCol == "" {
			v.keys[i] = r.Date
			continue
		}
		raw, ok := r.Fields[v.keyCol]
		if !ok {
			return fmt.Errorf("oracle: dataset %q row %d missing key column %q", name, i, v.keyCol)
		}
		d, err := market.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("oracle: dataset %q row %d: %w", name, i, err)
		}
		v.keys[i] = d
	}

	o.data[name] = v
	return nil
}

// SetDate advances the visibility frontier. The clock calls this once per
// trading day before the strategy runs.
func (o *Oracle) SetDate(d market.Date) {
	o.frontier = d
	o.set = true
}

// Date returns the current frontier.
func (o *Oracle) Date() (market.Date, bool) { return o.frontier, o.set }

// Query returns the rows of a dataset visible at the current frontier, in
// registration order. The result is a fresh copy every call: two queries
// with the same frontier return identical results, and mutating a returned
// row cannot corrupt the dataset.
func (o *Oracle) Query(name string) ([]Row, error) {
	v, ok := o.data[name]
	if !ok {
		return nil, fmt.Errorf("oracle: unknown dataset %q", name)
	}
	if !o.set {
		return nil, fmt.Errorf("%w: dataset %q", ErrVisibility, name)
	}

	var out []Row
	for i, r := range v.rows {
		if v.keys[i].After(o.frontier) {
			continue
		}
		cp := Row{Date: r.Date}
		if r.Fields != nil {
			cp.Fields = make(map[string]string, len(r.Fields))
			for k, val := range r.Fields {
				cp.Fields[k] = val
			}
		}
		out = append(out, cp)
	}
	return out, nil
}
