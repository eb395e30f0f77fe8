// Command option-tool evaluates options positions at expiry.
package main

import (
	"fmt"
	"os"
	"strings"

	"option-tool/internal/cli"
	"option-tool/internal/config"
	"option-tool/internal/logging"
)

func main() {
	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLoggerWithConfig(logging.FromConfig(cfg.Logging))

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Debug().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs finds --config before cobra parses flags, since the
// config decides how the logger and commands are built.
func configDirFromArgs(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
