package payoff

import (
	"context"

	"golang.org/x/sync/errgroup"

	"option-tool/internal/models"
)

// Compare evaluates the same legs at several spread percentages. Scenarios
// run concurrently and results come back in the order of spreads.
func (e *Evaluator) Compare(ctx context.Context, underlying float64, spreads []float64, legs []models.OptionLeg) ([]Result, error) {
	results := make([]Result, len(spreads))
	g, ctx := errgroup.WithContext(ctx)

	for i, spread := range spreads {
		i, spread := i, spread
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Evaluate(underlying, spread, legs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
