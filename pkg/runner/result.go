package runner

import (
	"github.com/yaklabco/formulint/pkg/check"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/fsutil"
)

// FileOutcome is the result of checking one discovered file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// DisplayPath is Path relative to the working directory when possible.
	DisplayPath string

	// Info describes the file as it was read. Nil if reading failed.
	Info *fsutil.FileInfo

	// Result contains the diagnostics for the file.
	// Nil if the file could not be read or checked.
	Result *check.FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Diagnostics returns the file's diagnostics, or nil.
func (o *FileOutcome) Diagnostics() []check.Diagnostic {
	if o.Result == nil {
		return nil
	}
	return o.Result.Diagnostics
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesChecked is the number of files read and checked.
	FilesChecked int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// Formulas is the number of formulas checked across all files.
	Formulas int

	// Diagnostics is the total number of diagnostics.
	Diagnostics int

	// Errors, Warnings, and Infos count diagnostics by severity.
	Errors   int
	Warnings int
	Infos    int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, in discovery order.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostics occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Errors > 0
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.Diagnostics > 0
}

// FileErrors returns the processing errors of all files, in order.
func (r *Result) FileErrors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesChecked++
	r.Stats.Formulas += outcome.Result.Formulas
	r.Stats.Diagnostics += len(outcome.Result.Diagnostics)
	if outcome.Result.HasIssues() {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range outcome.Result.Diagnostics {
		switch diag.Severity {
		case config.SeverityError:
			r.Stats.Errors++
		case config.SeverityInfo:
			r.Stats.Infos++
		default:
			r.Stats.Warnings++
		}
	}
}
