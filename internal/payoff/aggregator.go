package payoff

import (
	"math"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"option-tool/internal/models"
)

// SweepPoints is the number of expiry prices sampled per evaluation.
const SweepPoints = 400

// Result is the output of one evaluation run.
type Result struct {
	Underlying float64            `json:"underlying"`
	SpreadPct  float64            `json:"spread_pct"`
	Curve      models.PayoffCurve `json:"curve"`
	Summary    models.Summary     `json:"summary"`
}

// Evaluator runs the sweep → curve → summary pipeline.
// The zero value samples SweepPoints prices and does not log.
type Evaluator struct {
	Points int
	Logger zerolog.Logger
}

// NewEvaluator creates an Evaluator with the given sample count.
// Non-positive counts fall back to SweepPoints.
func NewEvaluator(points int, logger zerolog.Logger) *Evaluator {
	if points <= 0 {
		points = SweepPoints
	}
	return &Evaluator{Points: points, Logger: logger}
}

// EvaluatePosition evaluates legs over the default 400-point sweep.
func EvaluatePosition(underlying, spreadPct float64, legs []models.OptionLeg) Result {
	e := Evaluator{Points: SweepPoints, Logger: zerolog.Nop()}
	return e.Evaluate(underlying, spreadPct, legs)
}

// Evaluate sweeps the price range around underlying and aggregates the net
// payoff of legs at every point.
func (e *Evaluator) Evaluate(underlying, spreadPct float64, legs []models.OptionLeg) Result {
	points := e.Points
	if points <= 0 {
		points = SweepPoints
	}

	prices := Sweep(underlying, spreadPct, points)
	curve := make(models.PayoffCurve, len(prices))
	for i, p := range prices {
		curve[i] = models.PayoffPoint{Price: p, Payoff: NetPayoff(p, legs)}
	}

	summary := Summarize(curve, legs)

	e.Logger.Debug().
		Str("event", "evaluation").
		Float64("underlying", underlying).
		Float64("spread_pct", spreadPct).
		Int("legs", len(legs)).
		Int("points", points).
		Float64("setup_cost", summary.SetupCost).
		Float64("max_gain", summary.MaxGain).
		Float64("min_gain", summary.MinGain).
		Str("recommendation", string(summary.Recommendation)).
		Msg("Position evaluated")

	return Result{
		Underlying: underlying,
		SpreadPct:  spreadPct,
		Curve:      curve,
		Summary:    summary,
	}
}

// Sweep returns n evenly spaced prices over
// [underlying×(1−spreadPct/100), underlying×(1+spreadPct/100)], both ends
// included. A zero spread yields n copies of underlying.
func Sweep(underlying, spreadPct float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	lower, upper := SweepBounds(underlying, spreadPct)
	out := make([]float64, n)
	if n == 1 {
		out[0] = lower
		return out
	}
	step := (upper - lower) / float64(n-1)
	for i := range out {
		out[i] = lower + float64(i)*step
	}
	// pin the endpoint so accumulated error never overshoots
	out[n-1] = upper
	return out
}

// SweepBounds returns the lower and upper sweep prices.
func SweepBounds(underlying, spreadPct float64) (float64, float64) {
	return underlying * (1 - spreadPct/100), underlying * (1 + spreadPct/100)
}

// SetupCost returns the net premium outlay: premium×quantity summed over
// long legs minus the same over short legs.
func SetupCost(legs []models.OptionLeg) float64 {
	var long, short float64
	for _, leg := range legs {
		amount := leg.Premium * float64(leg.Quantity)
		switch leg.Side {
		case models.Long:
			long += amount
		case models.Short:
			short += amount
		}
	}
	return long - short
}

// Summarize derives setup cost, extremes, breakevens and the recommendation
// from an evaluated curve. Ties on an extreme keep the lowest price.
func Summarize(curve models.PayoffCurve, legs []models.OptionLeg) models.Summary {
	s := models.Summary{
		SetupCost:  SetupCost(legs),
		Breakevens: Breakevens(curve),
	}

	if len(curve) > 0 {
		maxIdx, minIdx := 0, 0
		for i := 1; i < len(curve); i++ {
			if curve[i].Payoff > curve[maxIdx].Payoff {
				maxIdx = i
			}
			if curve[i].Payoff < curve[minIdx].Payoff {
				minIdx = i
			}
		}
		s.MaxGain, s.MaxGainPrice = curve[maxIdx].Payoff, curve[maxIdx].Price
		s.MinGain, s.MinGainPrice = curve[minIdx].Payoff, curve[minIdx].Price
	}

	s.Recommendation = Recommend(s.MaxGain, s.SetupCost)
	return s
}

// Recommend returns Invest only when the rounded max gain strictly exceeds
// the rounded setup cost.
func Recommend(maxGain, setupCost float64) models.Recommendation {
	if !IsFinite(maxGain) || !IsFinite(setupCost) {
		// decimal cannot hold Inf or NaN; NaN differences are never > 0
		if math.RoundToEven(maxGain)-math.RoundToEven(setupCost) > 0 {
			return models.Invest
		}
		return models.DontInvest
	}
	if RoundCurrency(maxGain).Sub(RoundCurrency(setupCost)).IsPositive() {
		return models.Invest
	}
	return models.DontInvest
}

// RoundCurrency rounds an amount to whole currency units, half to even.
// Non-finite amounts round to zero; check IsFinite first where that matters.
func RoundCurrency(amount float64) decimal.Decimal {
	if !IsFinite(amount) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(amount).RoundBank(0)
}

// IsFinite reports whether v is neither infinite nor NaN.
func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Breakevens returns the prices where the curve crosses zero, linearly
// interpolated between neighbouring samples. A run of exact zeros is
// reported once, at its first price.
func Breakevens(curve models.PayoffCurve) []float64 {
	out := []float64{}
	for i, pt := range curve {
		if pt.Payoff == 0 {
			if i == 0 || curve[i-1].Payoff != 0 {
				out = append(out, pt.Price)
			}
			continue
		}
		if i == 0 {
			continue
		}
		prev := curve[i-1]
		if prev.Payoff == 0 || (prev.Payoff > 0) == (pt.Payoff > 0) {
			continue
		}
		t := prev.Payoff / (prev.Payoff - pt.Payoff)
		out = append(out, prev.Price+t*(pt.Price-prev.Price))
	}
	return out
}
