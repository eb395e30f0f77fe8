package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"option-tool/internal/chart"
	"option-tool/internal/models"
	"option-tool/internal/position"
	"option-tool/internal/report"
	"option-tool/internal/strategy"
)

// addStrategyCommands adds named strategy commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Options strategy presets",
		Long:  "Build common multi-leg strategies around a center strike and evaluate them.",
	}

	cmd.AddCommand(newStrategyListCmd())
	cmd.AddCommand(newStrategyBuildCmd(app))

	rootCmd.AddCommand(cmd)
}

func newStrategyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			defs := strategy.List()
			if output.IsJSON() {
				return output.JSON(defs)
			}

			output.Bold("Available Strategies")
			output.Println()
			table := NewTable(output, "Name", "Width", "Description")
			for _, d := range defs {
				width := ""
				if d.NeedsWidth {
					width = "required"
				}
				table.AddRow(d.Name, width, d.Description)
			}
			table.Render()
			return nil
		},
	}
}

func newStrategyBuildCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <name>",
		Short: "Build and evaluate a strategy",
		Long: `Lay out the legs of a named strategy and show its payoff.

The center strike defaults to the underlying price. --premiums sets a
premium per leg in strategy order and overrides --premium.`,
		Example: `  option-tool strategy build straddle --premium 5
  option-tool strategy build iron-condor --underlying 100 --width 5 --premiums 1,2,2,1
  option-tool strategy build butterfly --strike 105 --width 5 --premium 2 --spread 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			name := args[0]

			if _, ok := strategy.Lookup(name); !ok {
				output.Error("Unknown strategy: %s", name)
				output.Info("Run 'option-tool strategy list' to see available strategies")
				return fmt.Errorf("unknown strategy: %s", name)
			}

			pos := models.Position{
				Name:       name,
				Underlying: app.Config.Defaults.Underlying,
				SpreadPct:  app.Config.Defaults.SpreadPct,
			}
			if cmd.Flags().Changed("underlying") {
				pos.Underlying, _ = cmd.Flags().GetFloat64("underlying")
			}
			if cmd.Flags().Changed("spread") {
				pos.SpreadPct, _ = cmd.Flags().GetFloat64("spread")
			}

			var p strategy.Params
			p.Strike, _ = cmd.Flags().GetFloat64("strike")
			p.Width, _ = cmd.Flags().GetFloat64("width")
			p.Premium, _ = cmd.Flags().GetFloat64("premium")
			p.Premiums, _ = cmd.Flags().GetFloat64Slice("premiums")
			p.Quantity, _ = cmd.Flags().GetInt("qty")
			if p.Strike == 0 {
				p.Strike = pos.Underlying
			}

			if !output.IsJSON() && p.Premium == 0 && len(p.Premiums) == 0 {
				output.Warning("No premium given; every leg is priced at zero")
			}

			legs, err := strategy.Build(name, p)
			if err != nil {
				output.Error("Failed to build %s: %v", name, err)
				return err
			}
			pos.Legs = legs

			if err := position.Validate(pos); err != nil {
				output.Error("Invalid position: %v", err)
				return err
			}

			res := app.Evaluator().Evaluate(pos.Underlying, pos.SpreadPct, pos.Legs)
			rep := report.New(pos, res, chart.Band(pos.Underlying, pos.SpreadPct, app.Config.Chart.BandMode), app.Config.UI.CurrencySymbol)
			if output.IsJSON() {
				return output.JSON(rep)
			}

			legsOnly, _ := cmd.Flags().GetBool("legs")
			if legsOnly {
				for _, l := range legs {
					output.Println(FormatLeg(l))
				}
				return nil
			}
			return app.displayReport(output, rep, true)
		},
	}

	cmd.Flags().Float64("underlying", 0, "Underlying price (default from config)")
	cmd.Flags().Float64("spread", 0, "Sweep half-width in percent (default from config)")
	cmd.Flags().Float64("strike", 0, "Center strike (default: underlying)")
	cmd.Flags().Float64("width", 0, "Distance between strikes")
	cmd.Flags().Float64("premium", 0, "Premium applied to every leg")
	cmd.Flags().Float64Slice("premiums", nil, "Premium per leg, in strategy order")
	cmd.Flags().Int("qty", 1, "Base quantity")
	cmd.Flags().Bool("legs", false, "Print only the legs in kind:side:qty:premium:strike form")

	return cmd
}
