package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/logging"
	"github.com/yaklabco/formulint/pkg/check"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/reporter"
	"github.com/yaklabco/formulint/pkg/runner"
)

type checkFlags struct {
	format         string
	lengthSeverity string
	ignore         []string
	extensions     []string
	noContext      bool
	noSummary      bool
	followSymlinks bool
}

func newCheckCommand() *cobra.Command {
	var cfg config.Config
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check formula files for syntax errors",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, &cfg, flags)
		},
	}

	addCheckFlags(cmd, &cfg, flags)

	return cmd
}

const checkLongDescription = `Check formula files for syntax errors.

A formula file holds one formula per line. Blank lines and lines starting
with # are skipped. By default all .fx and .formula files under the current
directory are checked; hidden files and directories are skipped. Files named
explicitly are always checked.

Exit status is 1 when any error is found, 2 when --strict is set and
warnings are found, and 74 when a file could not be read.

Examples:
  formulint check                      # Check current directory
  formulint check models/              # Check one directory
  formulint check --format sarif       # SARIF output for code scanning
  formulint check --max-length 200     # Flag formulas longer than 200 bytes
  formulint check --strict             # Treat warnings as failures`

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("length-severity") {
		cliCfg.LengthSeverity = config.Severity(flags.lengthSeverity)
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("ext") {
		cliCfg.Extensions = flags.extensions
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldMaxDepth, cfg.MaxDepth,
		logging.FieldMaxLength, cfg.MaxLength,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format: %w", err))
	}

	runOpts := runner.OptionsFromConfig(cfg, workDir, args)
	runOpts.FollowSymlinks = flags.followSymlinks

	checkRunner := runner.New(check.NewEngine(cfg))

	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return withExitCode(ExitIOError, errors.Join(errors.New("check run failed"), err))
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowContext: !flags.noContext,
		ShowSummary: !flags.noSummary,
		Compact:     cfg.Compact,
		ToolVersion: cmd.Root().Version,
	})
	if err != nil {
		return withExitCode(ExitInternalError, fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if code := ExitCodeFromResult(result, cfg.Strict); code != ExitSuccess {
		return withExitCode(code, ErrIssuesFound)
	}

	return nil
}

func addCheckFlags(cmd *cobra.Command, cfg *config.Config, flags *checkFlags) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "output format: text, json, sarif, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().IntVar(&cfg.MaxDepth, "max-depth", 0, "maximum nesting depth (0 = default, <0 = unlimited)")
	cmd.Flags().IntVar(&cfg.MaxLength, "max-length", 0, "maximum formula length in bytes (0 = configured default)")
	cmd.Flags().StringVar(&flags.lengthSeverity, "length-severity", "", "severity of max-length findings: error, warning, info")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "formula file extensions (default .fx, .formula)")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "exit non-zero when warnings are found")
	cmd.Flags().BoolVar(&cfg.Compact, "compact", false, "compact JSON and SARIF output")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide the formula and caret under each diagnostic")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the summary line")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symlinked directories")
}
