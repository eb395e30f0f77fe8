package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"option-tool/internal/server"
)

// addServeCommands adds the HTTP API command.
func addServeCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newServeCmd(app))
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payoff API over HTTP",
		Long: `Start an HTTP server exposing position evaluation.

Routes:
  GET  /healthz
  POST /api/v1/payoff
  POST /api/v1/compare
  GET  /api/v1/strategies
  POST /api/v1/strategies/:name`,
		Example: `  option-tool serve
  option-tool serve --addr :9090`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			addr := app.Config.Server.Addr
			if cmd.Flags().Changed("addr") {
				addr, _ = cmd.Flags().GetString("addr")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			output.Info("Serving payoff API on %s (Ctrl+C to stop)", addr)
			if err := server.New(app.Config, app.Logger).Run(ctx, addr); err != nil {
				output.Error("Server failed: %v", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default from config)")

	return cmd
}
