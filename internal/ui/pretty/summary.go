package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/formulint/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (2 errors, 1 warning) in 2 files, 40 formulas checked".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf("%d %s in %d %s checked",
		stats.Formulas, plural(stats.Formulas, "formula", "formulas"),
		stats.FilesChecked, plural(stats.FilesChecked, "file", "files"),
	))

	var msg string
	if stats.Diagnostics == 0 {
		msg = s.Success.Render("No issues found") + " " + checked
	} else {
		var severityParts []string
		if stats.Errors > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", stats.Errors, plural(stats.Errors, "error", "errors"))))
		}
		if stats.Warnings > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", stats.Warnings, plural(stats.Warnings, "warning", "warnings"))))
		}
		if stats.Infos > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", stats.Infos)))
		}

		msg = fmt.Sprintf("%d %s (%s) in %d %s, %s",
			stats.Diagnostics, plural(stats.Diagnostics, "issue", "issues"),
			strings.Join(severityParts, ", "),
			stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files"),
			checked,
		)
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Failure.Render(fmt.Sprintf("%d %s unreadable",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files")))
	}

	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", s.SummaryValue.Render, stats.FilesChecked)
	if stats.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render, stats.FilesWithIssues)
	}
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render, stats.FilesErrored)
	}
	row("Formulas", s.SummaryValue.Render, stats.Formulas)

	builder.WriteString("\n")

	row("Total issues", s.SummaryValue.Render, stats.Diagnostics)
	if stats.Errors > 0 {
		row("  Errors", s.Error.Render, stats.Errors)
	}
	if stats.Warnings > 0 {
		row("  Warnings", s.Warning.Render, stats.Warnings)
	}
	if stats.Infos > 0 {
		row("  Info", s.Info.Render, stats.Infos)
	}

	builder.WriteString("\n")

	switch {
	case stats.Errors > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
