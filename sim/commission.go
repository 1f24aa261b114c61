package sim

import "math"

// Commission computes the commission charged on a fill from its price and
// signed size. Models never see tags or dates; commission depends only on
// the fill itself.
type Commission func(price, size float64) float64

// DefaultRate is the flat notional rate used when no model is configured.
const DefaultRate = 0.01

// RateCommission charges a flat fraction of notional.
func RateCommission(rate float64) Commission {
	return func(price, size float64) float64 {
		return math.Abs(price*size) * rate
	}
}

// PerShareCommission charges per share with a minimum per fill, capped at
// 1% of notional. Matches the Interactive Brokers fixed-rate US equities
// schedule.
func PerShareCommission(perShare, minimum float64) Commission {
	return func(price, size float64) float64 {
		shares := math.Abs(size)
		amt := perShare * shares
		if amt < minimum {
			amt = minimum
		}
		if cap := 0.01 * shares * price; amt > cap {
			amt = cap
		}
		return amt
	}
}
