package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/internal/ui/repl"
	"github.com/yaklabco/formulint/pkg/config"
)

// errNotATerminal is returned when repl runs without an interactive terminal.
var errNotATerminal = errors.New("repl requires an interactive terminal")

func newREPLCommand() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Edit formulas interactively with live parsing",
		Long: `Start an interactive formula editor.

Every keystroke re-parses the input and shows the canonical, fully
parenthesized form or the error with its position. Enter commits the line
to the history. Esc or Ctrl+C quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
				return withExitCode(ExitInvalidUsage, errNotATerminal)
			}

			cliCfg := &config.Config{}
			if cmd.Flags().Changed("max-depth") {
				cliCfg.MaxDepth = maxDepth
			}
			cfg, _, err := loadConfig(cmd, cliCfg)
			if err != nil {
				return err
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), os.Stdout))
			program := tea.NewProgram(repl.New(styles, cfg.ParserMaxDepth()), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return withExitCode(ExitInternalError, fmt.Errorf("run repl: %w", err))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum nesting depth (0 = configured default, <0 = unlimited)")

	return cmd
}
