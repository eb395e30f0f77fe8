// Package cli provides the command-line interface for the option tool.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"option-tool/internal/config"
	"option-tool/internal/payoff"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-18"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// Evaluator returns a payoff evaluator configured from the app settings.
func (a *App) Evaluator() *payoff.Evaluator {
	return payoff.NewEvaluator(a.Config.Defaults.SweepPoints, a.Logger)
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "option-tool",
		Short: "Option Tool - options position payoff calculator",
		Long: `Option Tool models a combined options position (calls and puts, long or short)
and shows the net payoff at expiry across a range of underlying prices.

It reports the setup cost, maximum gain, minimum gain (maximum loss) and
whether the best case beats the cost of setting the position up.

Use 'option-tool payoff --help' to get started.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			if !app.Config.UI.ColorEnabled {
				return cmd.Flags().Set("no-color", "true")
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/option-tool)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	addCoreCommands(rootCmd, app)
	addPayoffCommands(rootCmd, app)
	addStrategyCommands(rootCmd, app)
	addServeCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	addHelpCommands(rootCmd)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Option Tool v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			dir := configDir(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": dir})
			} else {
				output.Println(dir)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func configDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		return dir
	}
	return config.DefaultConfigDir()
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Defaults")
	output.Printf("  Underlying:      %.2f\n", cfg.Defaults.Underlying)
	output.Printf("  Spread:          %.1f%%\n", cfg.Defaults.SpreadPct)
	output.Printf("  Sweep Points:    %d\n", cfg.Defaults.SweepPoints)
	output.Println()

	output.Bold("Chart")
	output.Printf("  Band Mode:       %s\n", cfg.Chart.BandMode)
	output.Printf("  Size:            %dx%d\n", cfg.Chart.Width, cfg.Chart.Height)
	output.Println()

	output.Bold("UI")
	output.Printf("  Color:           %v\n", cfg.UI.ColorEnabled)
	output.Printf("  Currency:        %s\n", cfg.UI.CurrencySymbol)
	output.Println()

	output.Bold("Server")
	output.Printf("  Address:         %s\n", cfg.Server.Addr)
	output.Printf("  Mode:            %s\n", cfg.Server.Mode)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v\n", cfg.Logging.File)
	if cfg.Logging.File {
		output.Printf("  Path:            %s\n", cfg.Logging.FilePath)
	}

	return nil
}
