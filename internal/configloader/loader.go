// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support, and validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/formulint/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (FORMULINT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.formulint.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/formulint/config.yaml)
//  6. System config (/etc/formulint/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	sources := []struct {
		name    string
		path    string
		skipped bool
	}{
		{name: "system", path: paths.System, skipped: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skipped: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skipped: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit},
	}

	for _, src := range sources {
		if src.skipped || src.path == "" {
			continue
		}

		fileCfg, unknown, err := loadConfigFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.name, err)
		}
		for _, key := range unknown {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: unknown key %q; it will be ignored", src.path, key))
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML or TOML file, chosen by
// extension. It also returns keys the file sets that formulint does not know.
func loadConfigFile(path string) (*config.Config, []string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	if config.IsTOMLPath(path) {
		return config.FromTOML(content)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, nil, err
	}
	return cfg, nil, nil
}
