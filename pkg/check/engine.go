// Package check applies the formula parser to formula files and reports
// diagnostics for each offending line.
package check

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/formulint/internal/logging"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/parser"
)

// FileResult contains the results of checking a single file.
type FileResult struct {
	// Path is the file that was checked.
	Path string

	// Formulas is the number of formulas found in the file.
	Formulas int

	// Diagnostics contains all issues found, sorted by position.
	Diagnostics []Diagnostic
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics with severity s.
func (fr *FileResult) CountBySeverity(s config.Severity) int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == s {
			count++
		}
	}
	return count
}

// Engine checks formulas against the parser and the length limit.
type Engine struct {
	// MaxDepth limits expression nesting. Zero means parser.DefaultMaxDepth;
	// a negative value disables the limit.
	MaxDepth int

	// MaxLength is the longest formula, in bytes, accepted without a
	// diagnostic. Zero disables the check.
	MaxLength int

	// LengthSeverity is the severity of max-length diagnostics.
	// Empty means warning.
	LengthSeverity config.Severity
}

// NewEngine creates an Engine from the resolved configuration.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Engine{
		MaxDepth:       cfg.MaxDepth,
		MaxLength:      cfg.MaxLength,
		LengthSeverity: cfg.LengthSeverity,
	}
}

// CheckFile checks every formula in content. The path is only recorded on
// the diagnostics; nothing is read from disk.
func (e *Engine) CheckFile(ctx context.Context, path string, content []byte) (*FileResult, error) {
	formulas := SplitFormulas(content)
	result := &FileResult{
		Path:     path,
		Formulas: len(formulas),
	}

	for _, f := range formulas {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("check cancelled: %w", ctx.Err())
		default:
		}

		for _, diag := range e.CheckFormula(f.Text) {
			diag.FilePath = path
			diag.Line = f.Line
			result.Diagnostics = append(result.Diagnostics, diag)
		}
	}

	SortDiagnostics(result.Diagnostics)

	logging.FromContext(ctx).Debug("checked file",
		logging.FieldPath, path,
		logging.FieldFormulas, result.Formulas,
		logging.FieldDiagnosticsTotal, len(result.Diagnostics),
	)

	return result, nil
}

// CheckFormula checks a single formula. Diagnostics carry Line 1, since
// a formula occupies one line; CheckFile rewrites Line to the file line.
func (e *Engine) CheckFormula(text string) []Diagnostic {
	var diags []Diagnostic

	if diag, ok := e.checkLength(text); ok {
		diags = append(diags, diag)
	}

	res := parser.Parse(text, parser.WithMaxDepth(e.parserMaxDepth()))
	if !res.Success() {
		perr := res.Err
		diags = append(diags, Diagnostic{
			Code:     CodeSyntax,
			Message:  perr.Message,
			Severity: config.SeverityError,
			Line:     1,
			Column:   perr.Column,
			Offset:   perr.Position,
			Snippet:  perr.Snippet,
			Formula:  text,
		})
	}

	SortDiagnostics(diags)
	return diags
}

func (e *Engine) checkLength(text string) (Diagnostic, bool) {
	trimmed := strings.TrimSpace(text)
	if e.MaxLength <= 0 || len(trimmed) <= e.MaxLength {
		return Diagnostic{}, false
	}

	offset := len(text) - len(strings.TrimLeftFunc(text, unicode.IsSpace))
	severity := e.LengthSeverity
	if severity == "" {
		severity = config.SeverityWarning
	}

	return Diagnostic{
		Code:     CodeMaxLength,
		Message:  fmt.Sprintf("Formula is %d bytes long, exceeding the limit of %d", len(trimmed), e.MaxLength),
		Severity: severity,
		Line:     1,
		Column:   utf8.RuneCountInString(text[:offset]) + 1,
		Offset:   offset,
		Formula:  text,
	}, true
}

func (e *Engine) parserMaxDepth() int {
	cfg := config.Config{MaxDepth: e.MaxDepth}
	return cfg.ParserMaxDepth()
}
