// Package cli provides the command-line interface for the option tool.
package cli

import (
	"fmt"
	"strings"

	"option-tool/internal/models"
)

// FormatPrice formats a price with two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPrices joins prices for display, or "-" when there are none.
func FormatPrices(prices []float64) string {
	if len(prices) == 0 {
		return "-"
	}
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = FormatPrice(p)
	}
	return strings.Join(parts, ", ")
}

// FormatSpreads renders a spread list as "5%, 10%".
func FormatSpreads(spreads []float64) string {
	parts := make([]string, len(spreads))
	for i, s := range spreads {
		parts[i] = fmt.Sprintf("%g%%", s)
	}
	return strings.Join(parts, ", ")
}

// FormatLeg renders a leg in the compact kind:side:qty:premium:strike form.
func FormatLeg(l models.OptionLeg) string {
	return fmt.Sprintf("%s:%s:%d:%g:%g",
		strings.ToLower(string(l.Kind)), strings.ToLower(string(l.Side)), l.Quantity, l.Premium, l.Strike)
}
