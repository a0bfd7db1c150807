package cli

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/formulint/internal/logging"
	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/fxast"
	"github.com/yaklabco/formulint/pkg/parser"
)

// Output formats of the parse command.
const (
	treeFormatTree  = "tree"
	treeFormatJSON  = "json"
	treeFormatYAML  = "yaml"
	treeFormatSexpr = "sexpr"
)

type parseFlags struct {
	format   string
	maxDepth int
	spans    bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [formula]",
		Short: "Parse a formula and print its syntax tree",
		Long: `Parse a single formula and print its syntax tree.

The formula is taken from the arguments, or read from stdin when no argument
or "-" is given. On failure the error is printed with the offending position
marked and the command exits with status 1.

Examples:
  formulint parse 'sum(a, b) * 2'
  formulint parse --format json 'x > 0 ? "pos" : "neg"'
  echo '1 + 2' | formulint parse --format sexpr`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", treeFormatTree, "output format: tree, json, yaml, sexpr")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0, "maximum nesting depth (0 = configured default, <0 = unlimited)")
	cmd.Flags().BoolVar(&flags.spans, "spans", false, "show byte ranges in tree output")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	switch flags.format {
	case treeFormatTree, treeFormatJSON, treeFormatYAML, treeFormatSexpr:
	default:
		return withExitCode(ExitInvalidUsage,
			fmt.Errorf("invalid format %q; must be one of: tree, json, yaml, sexpr", flags.format))
	}

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("max-depth") {
		cliCfg.MaxDepth = flags.maxDepth
	}

	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	source, err := readFormula(cmd, args)
	if err != nil {
		return err
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))

	result := parser.Parse(source, parser.WithMaxDepth(cfg.ParserMaxDepth()))
	if !result.Success() {
		logging.FromContext(cmd.Context()).Debug("parse failed",
			logging.FieldLine, result.Err.Line,
			logging.FieldColumn, result.Err.Column,
		)
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatParseError(source, result.Err))
		return ErrIssuesFound
	}

	out, err := renderTree(styles, result.AST, flags)
	if err != nil {
		return withExitCode(ExitInternalError, err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func renderTree(styles *pretty.Styles, root fxast.Node, flags *parseFlags) (string, error) {
	switch flags.format {
	case treeFormatJSON:
		data, err := json.MarshalIndent(fxast.Export(root), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode JSON: %w", err)
		}
		return string(data) + "\n", nil

	case treeFormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(config.YAMLIndent())
		if err := encoder.Encode(fxast.Export(root)); err != nil {
			return "", fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return "", fmt.Errorf("close YAML encoder: %w", err)
		}
		return buf.String(), nil

	case treeFormatSexpr:
		return fxast.String(root) + "\n", nil

	default:
		return styles.FormatTree(root, flags.spans), nil
	}
}
