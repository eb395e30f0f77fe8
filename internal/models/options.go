// Package models provides domain models for the option payoff tool.
package models

import (
	"fmt"
	"strings"
)

// OptionKind represents the contract type of a leg.
type OptionKind string

const (
	Call OptionKind = "CALL"
	Put  OptionKind = "PUT"
)

// PositionSide represents whether a leg is owned or written.
type PositionSide string

const (
	Long  PositionSide = "LONG"
	Short PositionSide = "SHORT"
)

// ParseOptionKind parses an option kind, accepting common exchange aliases.
func ParseOptionKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c", "ce":
		return Call, nil
	case "put", "p", "pe":
		return Put, nil
	}
	return "", fmt.Errorf("unknown option kind %q (want call or put)", s)
}

// ParsePositionSide parses a leg side. BUY/SELL map to LONG/SHORT.
func ParsePositionSide(s string) (PositionSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy", "l":
		return Long, nil
	case "short", "sell", "write", "s":
		return Short, nil
	}
	return "", fmt.Errorf("unknown position side %q (want long or short)", s)
}

// Valid reports whether k is one of the known kinds.
func (k OptionKind) Valid() bool {
	return k == Call || k == Put
}

// Valid reports whether s is one of the known sides.
func (s PositionSide) Valid() bool {
	return s == Long || s == Short
}

// Title returns the display form, e.g. "Call".
func (k OptionKind) Title() string {
	switch k {
	case Call:
		return "Call"
	case Put:
		return "Put"
	}
	return string(k)
}

// Title returns the display form, e.g. "Long".
func (s PositionSide) Title() string {
	switch s {
	case Long:
		return "Long"
	case Short:
		return "Short"
	}
	return string(s)
}

// OptionLeg represents one contract of a combined position.
// Premium and Strike are per unit; Quantity multiplies the per-unit payoff
// and may be negative.
type OptionLeg struct {
	Kind     OptionKind   `json:"kind" toml:"kind"`
	Side     PositionSide `json:"side" toml:"side"`
	Quantity int          `json:"quantity" toml:"quantity"`
	Premium  float64      `json:"premium" toml:"premium"`
	Strike   float64      `json:"strike" toml:"strike"`
}

// Label returns a display label such as "Long Call".
func (l OptionLeg) Label() string {
	return l.Side.Title() + " " + l.Kind.Title()
}

// Position is an ordered set of legs evaluated against an underlying price.
// Leg order only matters for display numbering.
type Position struct {
	Name       string      `json:"name,omitempty" toml:"name"`
	Underlying float64     `json:"underlying" toml:"underlying"`
	SpreadPct  float64     `json:"spread_pct" toml:"spread_pct"`
	Legs       []OptionLeg `json:"legs" toml:"legs"`
}

// PayoffPoint is the net payoff of a position at one expiry price.
type PayoffPoint struct {
	Price  float64 `json:"price" csv:"price"`
	Payoff float64 `json:"payoff" csv:"net_payoff"`
}

// PayoffCurve is a payoff series in ascending sweep order.
type PayoffCurve []PayoffPoint

// Recommendation is the invest suggestion derived from a Summary.
type Recommendation string

const (
	Invest     Recommendation = "Invest"
	DontInvest Recommendation = "Don't Invest"
)

// Reason returns the explanatory sentence shown next to the suggestion.
func (r Recommendation) Reason() string {
	if r == Invest {
		return "Maximum gain exceeds the cost to set up the position"
	}
	return "The setup cost is equal to or greater than the maximum gain"
}

// Summary holds the scalar results of a position evaluation.
type Summary struct {
	SetupCost      float64        `json:"setup_cost"`
	MaxGain        float64        `json:"max_gain"`
	MaxGainPrice   float64        `json:"max_gain_price"`
	MinGain        float64        `json:"min_gain"`
	MinGainPrice   float64        `json:"min_gain_price"`
	Breakevens     []float64      `json:"breakevens"`
	Recommendation Recommendation `json:"recommendation"`
}

// PriceBand is the shaded price range drawn behind a payoff chart.
type PriceBand struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Contains reports whether price lies within the band, inclusive.
func (b PriceBand) Contains(price float64) bool {
	return price >= b.Lower && price <= b.Upper
}
