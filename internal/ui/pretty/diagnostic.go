package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/formulint/pkg/check"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/parser"
)

// sourceIndent aligns source context under a diagnostic line.
const sourceIndent = "        "

// FormatDiagnostic formats a single diagnostic for terminal output:
//
//	path:line:col  severity  message  (code)
//
// followed by the formula and a caret when showContext is set.
func (s *Styles) FormatDiagnostic(diag *check.Diagnostic, showContext bool) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(diag.FilePath), diag.Line, diag.Column)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.Code.Render("("+diag.Code+")"),
	)

	if showContext && diag.Formula != "" {
		builder.WriteString(s.FormatSourceContext(diag.Formula, diag.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext formats the source line with a caret under the given
// 1-based rune column. Tabs are expanded to single spaces so the caret
// stays aligned.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	line = strings.ReplaceAll(line, "\t", " ")
	builder.WriteString(sourceIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		builder.WriteString(sourceIndent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatParseError formats a parse failure of source for the parse command:
// the message, the offending line with a caret, and the snippet.
func (s *Styles) FormatParseError(source string, perr *parser.ParseError) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "%s %s %s\n",
		s.Error.Render("error:"),
		s.Message.Render(perr.Message),
		s.Location.Render(fmt.Sprintf("(line %d, column %d)", perr.Line, perr.Column)),
	)

	if line, ok := sourceLine(source, perr.Line); ok {
		builder.WriteString(s.FormatSourceContext(line, perr.Column))
	}

	if perr.Snippet != "" {
		builder.WriteString(sourceIndent + s.Dim.Render("near: ") + s.Snippet.Render(perr.Snippet) + "\n")
	}

	return builder.String()
}

// sourceLine returns the 1-based line n of source without its terminator.
func sourceLine(source string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// truncate shortens text to at most width runes, marking the cut with "…".
func truncate(text string, width int) string {
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(text)
	return string(runes[:width-1]) + "…"
}
