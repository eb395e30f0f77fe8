// Package strategy builds leg sets for common named option strategies.
package strategy

import (
	"fmt"
	"sort"

	apperrors "option-tool/internal/errors"
	"option-tool/internal/models"
)

// Params describes how to lay out a strategy around a center strike.
type Params struct {
	Strike   float64   `json:"strike"`
	Width    float64   `json:"width"`
	Premium  float64   `json:"premium"`
	Premiums []float64 `json:"premiums,omitempty"` // per leg, overrides Premium when the count matches
	Quantity int       `json:"quantity"`
}

// Definition describes a registered strategy.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	NeedsWidth  bool   `json:"needs_width"`
	build       func(p Params) []models.OptionLeg
}

// template leg: strike offset in widths, quantity multiplier
type tmpl struct {
	kind   models.OptionKind
	side   models.PositionSide
	offset float64
	ratio  int
}

func fromTemplate(legs ...tmpl) func(p Params) []models.OptionLeg {
	return func(p Params) []models.OptionLeg {
		out := make([]models.OptionLeg, len(legs))
		for i, l := range legs {
			out[i] = models.OptionLeg{
				Kind:     l.kind,
				Side:     l.side,
				Quantity: p.Quantity * l.ratio,
				Premium:  p.Premium,
				Strike:   p.Strike + l.offset*p.Width,
			}
		}
		return out
	}
}

var registry = map[string]Definition{}

func register(name, desc string, needsWidth bool, legs ...tmpl) {
	registry[name] = Definition{Name: name, Description: desc, NeedsWidth: needsWidth, build: fromTemplate(legs...)}
}

func init() {
	register("long-call", "Buy a Call", false,
		tmpl{models.Call, models.Long, 0, 1})
	register("long-put", "Buy a Put", false,
		tmpl{models.Put, models.Long, 0, 1})
	register("straddle", "Buy ATM Call + Put", false,
		tmpl{models.Call, models.Long, 0, 1},
		tmpl{models.Put, models.Long, 0, 1})
	register("short-straddle", "Sell ATM Call + Put", false,
		tmpl{models.Call, models.Short, 0, 1},
		tmpl{models.Put, models.Short, 0, 1})
	register("strangle", "Buy OTM Call + Put", true,
		tmpl{models.Call, models.Long, 1, 1},
		tmpl{models.Put, models.Long, -1, 1})
	register("bull-call-spread", "Buy lower strike Call, Sell higher strike Call", true,
		tmpl{models.Call, models.Long, 0, 1},
		tmpl{models.Call, models.Short, 1, 1})
	register("bear-put-spread", "Buy higher strike Put, Sell lower strike Put", true,
		tmpl{models.Put, models.Long, 0, 1},
		tmpl{models.Put, models.Short, -1, 1})
	register("iron-condor", "Sell OTM Call + Put, Buy further OTM Call + Put", true,
		tmpl{models.Put, models.Long, -2, 1},
		tmpl{models.Put, models.Short, -1, 1},
		tmpl{models.Call, models.Short, 1, 1},
		tmpl{models.Call, models.Long, 2, 1})
	register("butterfly", "Buy 1 ITM, Sell 2 ATM, Buy 1 OTM", true,
		tmpl{models.Call, models.Long, -1, 1},
		tmpl{models.Call, models.Short, 0, 2},
		tmpl{models.Call, models.Long, 1, 1})
	register("ratio-spread", "Buy 1 ATM Call, Sell 2 OTM Calls", true,
		tmpl{models.Call, models.Long, 0, 1},
		tmpl{models.Call, models.Short, 1, 2})
}

// List returns all registered strategies sorted by name.
func List() []Definition {
	out := make([]Definition, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the named strategy.
func Lookup(name string) (Definition, bool) {
	d, ok := registry[name]
	return d, ok
}

// Build lays out the legs of the named strategy.
func Build(name string, p Params) ([]models.OptionLeg, error) {
	def, ok := registry[name]
	if !ok {
		return nil, apperrors.NewStrategyError(name, "not registered", apperrors.ErrUnknownStrategy)
	}
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	if p.Strike <= 0 {
		return nil, apperrors.NewStrategyError(name, "invalid parameters",
			apperrors.NewValidationError("strike", p.Strike, "must be positive"))
	}
	if p.Premium < 0 {
		return nil, apperrors.NewStrategyError(name, "invalid parameters",
			apperrors.NewValidationError("premium", p.Premium, "must be non-negative"))
	}
	if def.NeedsWidth && p.Width <= 0 {
		return nil, apperrors.NewStrategyError(name, "invalid parameters",
			apperrors.NewValidationError("width", p.Width, "must be positive"))
	}

	legs := def.build(p)
	for _, l := range legs {
		if l.Strike < 0 {
			return nil, apperrors.NewStrategyError(name, "invalid parameters",
				apperrors.NewValidationError("width", p.Width, fmt.Sprintf("puts a strike below zero (%.2f)", l.Strike)))
		}
	}

	if len(p.Premiums) > 0 {
		if len(p.Premiums) != len(legs) {
			return nil, apperrors.NewStrategyError(name, "invalid parameters",
				apperrors.NewValidationError("premiums", len(p.Premiums), fmt.Sprintf("expected %d values", len(legs))))
		}
		for i := range legs {
			if p.Premiums[i] < 0 {
				return nil, apperrors.NewStrategyError(name, "invalid parameters",
					apperrors.NewValidationError(fmt.Sprintf("premiums[%d]", i), p.Premiums[i], "must be non-negative"))
			}
			legs[i].Premium = p.Premiums[i]
		}
	}

	return legs, nil
}
