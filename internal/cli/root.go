// Package cli is the rangepick command line: the interactive picker by
// default, plus headless resolution and preset management.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Output  string // "text" | "json"
	Config  string
}

// ValidOutputs defines the allowed output formats.
var ValidOutputs = []string{"text", "json"}

// NewRootCommand creates the root command. Without a subcommand it runs the
// TUI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rangepick",
		Short: "Pick date ranges in the terminal",
		Long: `rangepick is a two-sided date range picker for the terminal.

Run it without arguments for the interactive picker. The resolve and presets
commands work without a terminal.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			if opts.Config != "" {
				// config.Load reads the path from the environment.
				return os.Setenv("RANGEPICK_CONFIG", opts.Config)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (default $RANGEPICK_CONFIG or the user config dir)")

	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewPresetsCommand(opts))

	return cmd
}
