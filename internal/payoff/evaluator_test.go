package payoff

import (
	"testing"

	"option-tool/internal/models"
)

func leg(kind models.OptionKind, side models.PositionSide, qty int, premium, strike float64) models.OptionLeg {
	return models.OptionLeg{Kind: kind, Side: side, Quantity: qty, Premium: premium, Strike: strike}
}

func TestLegPayoff(t *testing.T) {
	tests := []struct {
		name  string
		leg   models.OptionLeg
		price float64
		want  float64
	}{
		{"long call ITM", leg(models.Call, models.Long, 1, 5, 100), 115, 10},
		{"long call OTM", leg(models.Call, models.Long, 1, 5, 100), 90, -5},
		{"long call ATM", leg(models.Call, models.Long, 1, 5, 100), 100, -5},
		{"short call ITM", leg(models.Call, models.Short, 1, 5, 100), 115, -10},
		{"short call OTM", leg(models.Call, models.Short, 1, 5, 100), 90, 5},
		{"short call ATM", leg(models.Call, models.Short, 1, 5, 100), 100, 5},
		{"long put ITM", leg(models.Put, models.Long, 1, 4, 100), 80, 16},
		{"long put OTM", leg(models.Put, models.Long, 1, 4, 100), 120, -4},
		{"long put ATM", leg(models.Put, models.Long, 1, 4, 100), 100, -4},
		{"short put ITM", leg(models.Put, models.Short, 1, 4, 100), 80, -16},
		{"short put OTM", leg(models.Put, models.Short, 1, 4, 100), 120, 4},
		{"short put ATM", leg(models.Put, models.Short, 1, 4, 100), 100, 4},
		{"negative price long put", leg(models.Put, models.Long, 1, 1, 10), -5, 14},
		{"negative price long call", leg(models.Call, models.Long, 1, 1, 10), -5, -1},
		{"zero strike call", leg(models.Call, models.Long, 1, 0, 0), 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LegPayoff(tt.price, tt.leg); got != tt.want {
				t.Errorf("LegPayoff(%v) = %v, want %v", tt.price, got, tt.want)
			}
		})
	}
}

func TestLegPayoffIgnoresQuantity(t *testing.T) {
	one := leg(models.Call, models.Long, 1, 5, 100)
	many := leg(models.Call, models.Long, 7, 5, 100)
	if LegPayoff(120, one) != LegPayoff(120, many) {
		t.Error("LegPayoff must be per unit")
	}
	if got := LegContribution(120, many); got != 105 {
		t.Errorf("LegContribution = %v, want 105", got)
	}
}

func TestNegativeQuantityFlipsContribution(t *testing.T) {
	l := leg(models.Put, models.Long, -2, 3, 50)
	if got := LegContribution(40, l); got != -14 {
		t.Errorf("LegContribution = %v, want -14", got)
	}
}

func TestNetPayoffEmpty(t *testing.T) {
	if got := NetPayoff(123.4, nil); got != 0 {
		t.Errorf("NetPayoff(nil) = %v, want 0", got)
	}
}

func TestHedgedCallPairIsFlat(t *testing.T) {
	legs := []models.OptionLeg{
		leg(models.Call, models.Long, 3, 6.5, 105),
		leg(models.Call, models.Short, 3, 6.5, 105),
	}
	for _, p := range []float64{0, 50, 104.99, 105, 105.01, 300} {
		if got := NetPayoff(p, legs); got != 0 {
			t.Errorf("NetPayoff(%v) = %v, want 0", p, got)
		}
	}
}
