package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldMaxDepth  = "max_depth"
	FieldMaxLength = "max_length"
	FieldJobs      = "jobs"
	FieldFormat    = "format"

	// Formula fields.
	FieldLine     = "line"
	FieldColumn   = "column"
	FieldFormulas = "formulas"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesChecked     = "files_checked"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldDuration         = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
