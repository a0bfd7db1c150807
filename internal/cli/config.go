package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/formulint/internal/configloader"
	"github.com/yaklabco/formulint/internal/logging"
	"github.com/yaklabco/formulint/pkg/config"
)

// loadConfig resolves the effective configuration for cmd, layering the
// values of explicitly set flags in cliCfg on top of the config files and
// environment.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(cmd.Context())

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, workDir, nil
}

// colorMode returns the value of the root --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil || mode == "" {
		return "auto"
	}
	return mode
}
