package cli

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/pkg/fxast"
	"github.com/yaklabco/formulint/pkg/parser"
)

type tokensFlags struct {
	format string
}

// tokensOutput is the JSON form of the tokens command.
type tokensOutput struct {
	Tokens []fxast.Token      `json:"tokens"`
	Errors []*parser.LexError `json:"errors"`
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [formula]",
		Short: "Print the token stream of a formula",
		Long: `Tokenize a single formula and print every token with its type, value,
byte range, and line:column position.

Unlike parse, all lexical errors are listed, not only the first. The command
exits with status 1 when any lexical error is found.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, flags *tokensFlags) error {
	if flags.format != "table" && flags.format != "json" {
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q; must be table or json", flags.format))
	}

	source, err := readFormula(cmd, args)
	if err != nil {
		return err
	}

	tokens, lexErrs := parser.Tokenize(source)
	out := cmd.OutOrStdout()

	if flags.format == "json" {
		data, err := json.MarshalIndent(tokensOutput{
			Tokens: tokens,
			Errors: append([]*parser.LexError{}, lexErrs...),
		}, "", "  ")
		if err != nil {
			return withExitCode(ExitInternalError, fmt.Errorf("encode JSON: %w", err))
		}
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
	} else {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
		table := pretty.NewTableFormatter(styles, pretty.TermWidth(out))
		if _, err := fmt.Fprint(out, table.FormatTokens(tokens, lexErrs)); err != nil {
			return err
		}
	}

	if len(lexErrs) > 0 {
		return ErrIssuesFound
	}
	return nil
}
