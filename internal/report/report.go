// Package report turns an evaluation into the display strings shown to users.
package report

import (
	"math"
	"strings"

	"option-tool/internal/models"
	"option-tool/internal/payoff"
)

// Display holds the rounded, human-readable summary values.
type Display struct {
	SetupCost      string `json:"setup_cost"`
	MaxGain        string `json:"max_gain"`
	MinGain        string `json:"min_gain"`
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
}

// Report is an evaluation result together with its chart band and display
// strings.
type Report struct {
	Name    string             `json:"name,omitempty"`
	Legs    []models.OptionLeg `json:"legs"`
	Result  payoff.Result      `json:"result"`
	Band    models.PriceBand   `json:"band"`
	Display Display            `json:"display"`
}

// New assembles a report for an evaluated position.
func New(pos models.Position, res payoff.Result, band models.PriceBand, currency string) Report {
	s := res.Summary
	return Report{
		Name:   pos.Name,
		Legs:   pos.Legs,
		Result: res,
		Band:   band,
		Display: Display{
			SetupCost:      FormatCurrency(s.SetupCost, currency),
			MaxGain:        FormatCurrency(s.MaxGain, currency),
			MinGain:        FormatCurrency(s.MinGain, currency),
			Recommendation: string(s.Recommendation),
			Reason:         s.Recommendation.Reason(),
		},
	}
}

// FormatCurrency rounds amount to whole units (half to even) and formats it
// with thousands separators, e.g. -$1,235.
func FormatCurrency(amount float64, symbol string) string {
	switch {
	case math.IsNaN(amount):
		return symbol + "NaN"
	case math.IsInf(amount, 1):
		return symbol + "∞"
	case math.IsInf(amount, -1):
		return "-" + symbol + "∞"
	}
	d := payoff.RoundCurrency(amount)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + symbol + groupThousands(d.StringFixed(0))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
