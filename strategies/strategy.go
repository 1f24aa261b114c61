package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/daysim/sim"
)

var registry = make(map[string]sim.Strategy)

// Register makes a strategy available to ByName under a name.
func Register(name string, strat sim.Strategy) {
	registry[name] = strat
}

// Get returns a registered strategy, or nil.
func Get(name string) sim.Strategy {
	return registry[name]
}

// ByName builds one of the built-in strategies. symbol is the instrument
// the strategy trades.
func ByName(name, symbol string) (sim.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "ladder":
		return NewLadder(symbol), nil

	default:
		if s := Get(name); s != nil {
			return s, nil
		}
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, ladder)", name)
	}
}
