package strategies

import (
	"github.com/rustyeddy/daysim/ledger"
	"github.com/rustyeddy/daysim/market"
	"github.com/rustyeddy/daysim/oracle"
	"github.com/rustyeddy/daysim/sim"
)

// Noop never trades. Baseline for wiring tests.
type Noop struct{}

func (Noop) PreOpen(market.Date, *sim.Broker, []ledger.Trade, *oracle.Oracle) error {
	return nil
}

func (Noop) PreClose(market.Date, *sim.Broker, []ledger.Trade, *oracle.Oracle) error {
	return nil
}
