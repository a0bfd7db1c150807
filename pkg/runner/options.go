// Package runner checks many formula files concurrently.
package runner

import "github.com/yaklabco/formulint/pkg/config"

// Options controls a multi-file check run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match ExcludeGlobs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) treated
	// as formula files when walking directories. Defaults to
	// config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories
	// found while walking. "**" matches any number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// MaxFileSize bounds the bytes read per file; 0 uses the fsutil default.
	MaxFileSize int64
}

// OptionsFromConfig builds Options for paths from the resolved configuration.
func OptionsFromConfig(cfg *config.Config, workDir string, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
