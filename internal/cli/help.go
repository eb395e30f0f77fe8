package cli

import (
	"github.com/spf13/cobra"
)

type commandRef struct {
	cmd  string
	desc string
}

type commandGroup struct {
	name     string
	commands []commandRef
}

var commandGroups = []commandGroup{
	{"Evaluate", []commandRef{
		{"payoff", "Payoff diagram, summary and suggestion"},
		{"compare", "Same legs across several spreads"},
	}},
	{"Strategies", []commandRef{
		{"strategy list", "Available presets"},
		{"strategy build <name>", "Lay out and evaluate a preset"},
	}},
	{"Server", []commandRef{
		{"serve", "JSON payoff API"},
	}},
	{"Utilities", []commandRef{
		{"config show/path/validate", "Configuration"},
		{"commands", "List all commands"},
		{"examples", "Common workflows"},
		{"version", "Version information"},
	}},
}

type workflow struct {
	title    string
	commands []string
}

var workflows = []workflow{
	{"Single Leg", []string{
		"option-tool payoff --leg call:long:1:5:100",
		"option-tool payoff --leg put:short:2:3:95 --spread 20",
	}},
	{"Hedged Position From a File", []string{
		"option-tool payoff --file collar.toml",
		"option-tool payoff --file collar.toml --csv collar.csv   # plot elsewhere",
	}},
	{"Presets", []string{
		"option-tool strategy build straddle --premium 5",
		"option-tool strategy build iron-condor --width 5 --premiums 1,2,2,1 --legs",
	}},
	{"How Wide Should I Look?", []string{
		"option-tool compare --leg call:long:1:5:100 --spreads 5,10,20,40",
	}},
	{"Serve the API", []string{
		"option-tool serve --addr :9090",
		`curl -s localhost:9090/api/v1/payoff -d '{"underlying":100,"legs":[{"kind":"call","side":"long","quantity":1,"premium":5,"strike":100}]}'`,
	}},
}

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newCommandsCmd())
	rootCmd.AddCommand(newExamplesCmd())
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Option Tool Commands")
			output.Println()
			for _, g := range commandGroups {
				output.Bold(g.name)
				for _, c := range g.commands {
					output.Printf("  %-30s %s\n", output.Cyan(c.cmd), c.desc)
				}
				output.Println()
			}
			output.Dim("Use 'option-tool help <command>' for detailed help on any command")
			return nil
		},
	}
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()
			for _, w := range workflows {
				output.Bold(w.title)
				for _, c := range w.commands {
					output.Printf("  %s\n", c)
				}
				output.Println()
			}
			return nil
		},
	}
}
