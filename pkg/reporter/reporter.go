// Package reporter renders check results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/formulint/pkg/runner"
)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of diagnostics reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ToolVersion == "" {
		opts.ToolVersion = defaults.ToolVersion
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
