package strategy

import (
	"testing"

	apperrors "option-tool/internal/errors"
	"option-tool/internal/models"
	"option-tool/internal/payoff"
)

func TestListSorted(t *testing.T) {
	defs := List()
	if len(defs) < 8 {
		t.Fatalf("expected at least 8 strategies, got %d", len(defs))
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].Name >= defs[i].Name {
			t.Errorf("List not sorted: %q before %q", defs[i-1].Name, defs[i].Name)
		}
	}
}

func TestBuildIronCondor(t *testing.T) {
	legs, err := Build("iron-condor", Params{Strike: 100, Width: 5, Premium: 1})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []models.OptionLeg{
		{Kind: models.Put, Side: models.Long, Quantity: 1, Premium: 1, Strike: 90},
		{Kind: models.Put, Side: models.Short, Quantity: 1, Premium: 1, Strike: 95},
		{Kind: models.Call, Side: models.Short, Quantity: 1, Premium: 1, Strike: 105},
		{Kind: models.Call, Side: models.Long, Quantity: 1, Premium: 1, Strike: 110},
	}
	if len(legs) != len(want) {
		t.Fatalf("got %d legs, want %d", len(legs), len(want))
	}
	for i := range want {
		if legs[i] != want[i] {
			t.Errorf("leg %d = %+v, want %+v", i, legs[i], want[i])
		}
	}
}

func TestBuildButterflyQuantities(t *testing.T) {
	legs, err := Build("butterfly", Params{Strike: 100, Width: 10, Premium: 2, Quantity: 3})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if legs[1].Quantity != 6 || legs[0].Quantity != 3 || legs[2].Quantity != 3 {
		t.Errorf("quantities = %d/%d/%d, want 3/6/3", legs[0].Quantity, legs[1].Quantity, legs[2].Quantity)
	}
}

func TestBuildPerLegPremiums(t *testing.T) {
	legs, err := Build("bull-call-spread", Params{Strike: 100, Width: 5, Premiums: []float64{4, 1}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if legs[0].Premium != 4 || legs[1].Premium != 1 {
		t.Errorf("premiums = %v/%v, want 4/1", legs[0].Premium, legs[1].Premium)
	}
	if got := payoff.SetupCost(legs); got != 3 {
		t.Errorf("SetupCost = %v, want 3", got)
	}
}

func TestBuildStraddleMatchesHandBuilt(t *testing.T) {
	legs, err := Build("straddle", Params{Strike: 100, Premium: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res := payoff.EvaluatePosition(100, 10, legs)
	if res.Summary.SetupCost != 10 {
		t.Errorf("SetupCost = %v, want 10", res.Summary.SetupCost)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		strat  string
		params Params
		target error
	}{
		{"unknown", "jade-lizard", Params{Strike: 100}, apperrors.ErrUnknownStrategy},
		{"missing strike", "straddle", Params{}, apperrors.ErrInputValidation},
		{"missing width", "strangle", Params{Strike: 100}, apperrors.ErrInputValidation},
		{"negative strike", "iron-condor", Params{Strike: 10, Width: 6}, apperrors.ErrInputValidation},
		{"premium count", "straddle", Params{Strike: 100, Premiums: []float64{1}}, apperrors.ErrInputValidation},
		{"negative premium", "long-put", Params{Strike: 100, Premium: -1}, apperrors.ErrInputValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.strat, tt.params)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, tt.target) {
				t.Errorf("error %v does not match %v", err, tt.target)
			}
		})
	}
}
