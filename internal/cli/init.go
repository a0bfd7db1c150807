package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/logging"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/fsutil"
)

const (
	defaultYAMLConfigName = ".formulint.yml"
	defaultTOMLConfigName = ".formulint.toml"
)

type initFlags struct {
	force  bool
	toml   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a formulint configuration file",
		Long: `Create a .formulint.yml configuration file in the current directory,
populated with the default settings and a comment for each option.

Examples:
  formulint init                     Create .formulint.yml
  formulint init --toml              Create .formulint.toml instead
  formulint init --output ci.yml     Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.toml, "toml", false, "write TOML instead of YAML")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default .formulint.yml or .formulint.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	outputPath := flags.output
	format := config.TemplateYAML
	switch {
	case outputPath == "" && flags.toml:
		outputPath = defaultTOMLConfigName
		format = config.TemplateTOML
	case outputPath == "":
		outputPath = defaultYAMLConfigName
	case flags.toml || config.IsTOMLPath(outputPath):
		format = config.TemplateTOML
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("resolve path: %w", err))
	}

	content, err := config.GenerateTemplate(format)
	if err != nil {
		return withExitCode(ExitInternalError, fmt.Errorf("generate template: %w", err))
	}

	ctx := cmd.Context()
	if flags.force {
		err = fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode)
	} else {
		err = fsutil.WriteNew(ctx, absPath, content, fsutil.DefaultFileMode)
	}
	switch {
	case errors.Is(err, fsutil.ErrExists):
		return withExitCode(ExitIOError, fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
	case err != nil:
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'formulint env' to see the environment overrides")

	return nil
}
