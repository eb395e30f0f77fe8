// Package payoff computes expiry profit and loss for option positions.
//
// Everything here is pure: no I/O, no shared state, no errors. Input range
// checks belong to the caller (see package position).
package payoff

import (
	"math"

	"option-tool/internal/models"
)

// LegPayoff returns the per-unit profit or loss of leg at expiry when the
// underlying settles at price. Quantity is not applied.
//
// Any (kind, side) pair is accepted and negative prices are not rejected.
func LegPayoff(price float64, leg models.OptionLeg) float64 {
	switch leg.Kind {
	case models.Call:
		if leg.Side == models.Long {
			return math.Max(price-leg.Strike, 0) - leg.Premium
		}
		return math.Min(leg.Strike-price, 0) + leg.Premium
	default:
		if leg.Side == models.Long {
			return math.Max(leg.Strike-price, 0) - leg.Premium
		}
		return math.Min(price-leg.Strike, 0) + leg.Premium
	}
}

// LegContribution returns the leg's payoff at price scaled by its quantity.
func LegContribution(price float64, leg models.OptionLeg) float64 {
	return LegPayoff(price, leg) * float64(leg.Quantity)
}

// NetPayoff sums the quantity-weighted payoff of every leg at price.
// An empty leg set pays zero.
func NetPayoff(price float64, legs []models.OptionLeg) float64 {
	var total float64
	for _, leg := range legs {
		total += LegContribution(price, leg)
	}
	return total
}
