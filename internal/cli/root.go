// Package cli provides the Cobra command structure for formulint.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root formulint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "formulint",
		Short: "Parse, inspect, and check spreadsheet-style formulas",
		Long: `formulint parses formula expressions such as sum(a, b) * 2 or
x > 0 ? "pos" : "neg" into a positioned syntax tree.

It can print the tree or the token stream of a single formula, check whole
directories of formula files for syntax errors, and explore formulas
interactively in a live editor.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.Default()))
		},
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newREPLCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newEnvCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
