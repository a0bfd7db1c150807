package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/formulint/pkg/check"
	"github.com/yaklabco/formulint/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes incompatibly.
const jsonSchemaVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string           `json:"version"`
	ToolVersion string           `json:"toolVersion"`
	Files       []JSONFileResult `json:"files"`
	Summary     JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string             `json:"path"`
	SHA256      string             `json:"sha256,omitempty"`
	Formulas    int                `json:"formulas"`
	Diagnostics []check.Diagnostic `json:"diagnostics"`
	Error       string             `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesChecked    int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Formulas        int `json:"formulas"`
	TotalIssues     int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:     jsonSchemaVersion,
		ToolVersion: r.opts.ToolVersion,
		Files:       make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesChecked:    stats.FilesChecked,
		FilesWithIssues: stats.FilesWithIssues,
		FilesErrored:    stats.FilesErrored,
		Formulas:        stats.Formulas,
		TotalIssues:     stats.Diagnostics,
		Errors:          stats.Errors,
		Warnings:        stats.Warnings,
		Infos:           stats.Infos,
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.DisplayPath,
			Diagnostics: make([]check.Diagnostic, 0),
		}
		if file.Info != nil {
			fileResult.SHA256 = file.Info.SHA256
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if file.Result != nil {
			fileResult.Formulas = file.Result.Formulas
			fileResult.Diagnostics = append(fileResult.Diagnostics, file.Result.Diagnostics...)
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
