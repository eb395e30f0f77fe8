// Package cli provides the command-line interface for the option tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"option-tool/internal/chart"
	"option-tool/internal/config"
	apperrors "option-tool/internal/errors"
	"option-tool/internal/models"
	"option-tool/internal/payoff"
	"option-tool/internal/position"
	"option-tool/internal/report"
)

// addPayoffCommands adds position evaluation commands.
func addPayoffCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPayoffCmd(app))
	rootCmd.AddCommand(newCompareCmd(app))
}

func addPositionFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("underlying", 0, "Underlying price (default from config)")
	cmd.Flags().Float64("spread", 0, "Sweep half-width in percent of the underlying (default from config)")
	cmd.Flags().StringArray("leg", nil, "Leg as kind:side:qty:premium:strike (repeatable)")
	cmd.Flags().String("file", "", "Position file (.toml or .json)")
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Display payoff diagram",
		Long: `Evaluate a combined options position at expiry.

Sweeps expiry prices (400 by default) across underlying × (1 ± spread/100) and reports
the net payoff curve, setup cost, maximum and minimum gain, and whether the
maximum gain beats the setup cost.

Legs are given as kind:side:qty:premium:strike, e.g. call:long:1:5:100.`,
		Example: `  option-tool payoff --leg call:long:1:5:100
  option-tool payoff --underlying 100 --spread 15 --leg call:long:1:5:100 --leg put:long:1:5:100
  option-tool payoff --file straddle.toml --csv curve.csv
  option-tool payoff --file condor.json --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			pos, err := app.positionFromFlags(cmd)
			if err != nil {
				output.Error("Invalid position: %v", err)
				return err
			}

			bandMode, _ := cmd.Flags().GetString("band")
			if bandMode == "" {
				bandMode = app.Config.Chart.BandMode
			}
			if bandMode != config.BandPercent && bandMode != config.BandAbsolute {
				err := apperrors.NewValidationError("band", bandMode,
					fmt.Sprintf("must be '%s' or '%s'", config.BandPercent, config.BandAbsolute))
				output.Error("Invalid band: %v", err)
				return err
			}

			res := app.Evaluator().Evaluate(pos.Underlying, pos.SpreadPct, pos.Legs)
			rep := report.New(pos, res, chart.Band(pos.Underlying, pos.SpreadPct, bandMode), app.Config.UI.CurrencySymbol)

			csvPath, _ := cmd.Flags().GetString("csv")
			if csvPath == "-" {
				return chart.WriteCSV(output.Writer(), res.Curve)
			}
			if csvPath != "" {
				if err := writeCSVFile(csvPath, res.Curve); err != nil {
					output.Error("Failed to write CSV: %v", err)
					return err
				}
				app.Logger.Debug().Str("path", csvPath).Int("rows", len(res.Curve)).Msg("Curve exported")
			}

			if output.IsJSON() {
				return output.JSON(rep)
			}

			noChart, _ := cmd.Flags().GetBool("no-chart")
			return app.displayReport(output, rep, !noChart)
		},
	}

	addPositionFlags(cmd)
	cmd.Flags().String("csv", "", "Export the curve as CSV to a file ('-' for stdout)")
	cmd.Flags().String("band", "", "Shaded band convention: percent or absolute (default from config)")
	cmd.Flags().Bool("no-chart", false, "Skip the ASCII chart")

	return cmd
}

func newCompareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a position across sweep widths",
		Long: `Evaluate the same legs at several spread percentages side by side.

Scenarios are evaluated concurrently.`,
		Example: `  option-tool compare --leg call:long:1:5:100 --spreads 5,10,20
  option-tool compare --file straddle.toml --spreads 2.5,5,10,25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			pos, err := app.positionFromFlags(cmd)
			if err != nil {
				output.Error("Invalid position: %v", err)
				return err
			}

			spreads, _ := cmd.Flags().GetFloat64Slice("spreads")
			for _, sp := range spreads {
				p := pos
				p.SpreadPct = sp
				if err := position.Validate(p); err != nil {
					output.Error("Invalid spread %g: %v", sp, err)
					return err
				}
			}

			results, err := app.Evaluator().Compare(ctx, pos.Underlying, spreads, pos.Legs)
			if err != nil {
				output.Error("Comparison failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(results)
			}

			output.Bold("Spread Comparison - %s", positionTitle(pos))
			output.Printf("  Underlying: %s  Spreads: %s\n\n", FormatPrice(pos.Underlying), FormatSpreads(spreads))

			sym := app.Config.UI.CurrencySymbol
			table := NewTable(output, "Spread", "Range", "Setup Cost", "Max Gain", "Min Gain", "Suggestion")
			for _, r := range results {
				s := r.Summary
				table.AddRow(
					fmt.Sprintf("%g%%", r.SpreadPct),
					fmt.Sprintf("%s - %s", FormatPrice(r.Curve[0].Price), FormatPrice(r.Curve[len(r.Curve)-1].Price)),
					report.FormatCurrency(s.SetupCost, sym),
					output.ColoredString(output.PnLColor(s.MaxGain), report.FormatCurrency(s.MaxGain, sym)),
					output.ColoredString(output.PnLColor(s.MinGain), report.FormatCurrency(s.MinGain, sym)),
					output.Recommendation(string(s.Recommendation)),
				)
			}
			table.Render()
			return nil
		},
	}

	addPositionFlags(cmd)
	cmd.Flags().Float64Slice("spreads", []float64{5, 10, 20}, "Spread percentages to compare")

	return cmd
}

// positionFromFlags assembles and validates the position described by the
// command flags. Explicit --underlying/--spread override file values.
func (a *App) positionFromFlags(cmd *cobra.Command) (models.Position, error) {
	defaults := models.Position{
		Underlying: a.Config.Defaults.Underlying,
		SpreadPct:  a.Config.Defaults.SpreadPct,
	}

	pos := defaults
	file, _ := cmd.Flags().GetString("file")
	legSpecs, _ := cmd.Flags().GetStringArray("leg")

	if file != "" {
		loaded, err := position.Load(file, defaults)
		if err != nil {
			return models.Position{}, err
		}
		pos = loaded
	}
	if len(legSpecs) > 0 {
		legs, err := position.ParseLegs(legSpecs)
		if err != nil {
			return models.Position{}, err
		}
		pos.Legs = append(pos.Legs, legs...)
	}

	if cmd.Flags().Changed("underlying") {
		pos.Underlying, _ = cmd.Flags().GetFloat64("underlying")
	}
	if cmd.Flags().Changed("spread") {
		pos.SpreadPct, _ = cmd.Flags().GetFloat64("spread")
	}

	if err := position.Validate(pos); err != nil {
		return models.Position{}, err
	}
	return pos, nil
}

func writeCSVFile(path string, curve models.PayoffCurve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.WriteCSV(f, curve); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func positionTitle(pos models.Position) string {
	if pos.Name != "" {
		return pos.Name
	}
	return fmt.Sprintf("%d-leg position", len(pos.Legs))
}

func (a *App) displayReport(output *Output, rep report.Report, withChart bool) error {
	res := rep.Result
	s := res.Summary
	lower, upper := payoff.SweepBounds(res.Underlying, res.SpreadPct)

	output.Bold("Payoff Diagram - %s", positionTitle(models.Position{Name: rep.Name, Legs: rep.Legs}))
	output.Printf("  Underlying: %s  Sweep: %s - %s (±%g%%)\n\n",
		FormatPrice(res.Underlying), FormatPrice(lower), FormatPrice(upper), res.SpreadPct)

	table := NewTable(output, "#", "Position", "Qty", "Premium", "Strike")
	for i, l := range rep.Legs {
		table.AddRow(fmt.Sprintf("%d", i+1), l.Label(), fmt.Sprintf("%d", l.Quantity), FormatPrice(l.Premium), FormatPrice(l.Strike))
	}
	table.Render()
	output.Println()

	if withChart {
		err := chart.RenderASCII(output.Writer(), res, chart.Options{
			Width:  a.Config.Chart.Width,
			Height: a.Config.Chart.Height,
			Band:   rep.Band,
		})
		if err != nil {
			return err
		}
		output.Dim("  ░ band %s - %s   ▲ max gain   ▼ min gain", FormatPrice(rep.Band.Lower), FormatPrice(rep.Band.Upper))
		output.Println()
	}

	d := rep.Display
	output.Printf("  Setup Cost:                  %s\n", d.SetupCost)
	output.Printf("  Maximum Gain:                %s at %s\n",
		output.ColoredString(output.PnLColor(s.MaxGain), d.MaxGain), FormatPrice(s.MaxGainPrice))
	output.Printf("  Minimum Gain [Maximum Loss]: %s at %s\n",
		output.ColoredString(output.PnLColor(s.MinGain), d.MinGain), FormatPrice(s.MinGainPrice))
	output.Printf("  Breakevens:                  %s\n", FormatPrices(s.Breakevens))
	output.Println()

	output.Bold("Suggestion")
	output.Printf("  %s: %s\n", output.Recommendation(d.Recommendation), d.Reason)
	return nil
}
