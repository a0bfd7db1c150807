package check

import (
	"cmp"
	"slices"

	"github.com/yaklabco/formulint/pkg/config"
)

// Diagnostic codes.
const (
	// CodeSyntax marks a formula that failed to tokenize or parse.
	CodeSyntax = "syntax"

	// CodeMaxLength marks a formula longer than the configured limit.
	CodeMaxLength = "max-length"
)

// Diagnostic is a single finding about one formula in a file.
type Diagnostic struct {
	// Code identifies the kind of finding (CodeSyntax, CodeMaxLength).
	Code string `json:"code" yaml:"code"`

	// Message is the human-readable description of the issue.
	Message string `json:"message" yaml:"message"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `json:"severity" yaml:"severity"`

	// FilePath is the path to the file containing the formula.
	FilePath string `json:"file,omitempty" yaml:"file,omitempty"`

	// Line is the 1-based line of the formula in the file.
	Line int `json:"line" yaml:"line"`

	// Column is the 1-based rune column in that line.
	Column int `json:"column" yaml:"column"`

	// Offset is the byte offset of the finding inside the formula.
	Offset int `json:"offset" yaml:"offset"`

	// Snippet is the source window around the fault, if any.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`

	// Formula is the full text of the offending line.
	Formula string `json:"formula" yaml:"formula"`
}

// IsError reports whether the diagnostic has error severity.
func (d *Diagnostic) IsError() bool {
	return d.Severity == config.SeverityError
}

// SortDiagnostics orders diagnostics by line, then column, then code.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Code, b.Code),
		)
	})
}
