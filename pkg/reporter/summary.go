package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/runner"
)

// Table layout for summary output. Both tables share the same width.
const (
	tableWidth        = 84
	fileColWidth      = 48
	codeColWidth      = 20
	numColWidth       = 9
	maxFilePathLength = 46
)

// padRight pads s to width with spaces. It must run before styling.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s to width with leading spaces. It must run before styling.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncatePath keeps the tail of a long path, which carries the file name.
func truncatePath(path string) string {
	if len(path) <= maxFilePathLength {
		return path
	}
	return "..." + path[len(path)-maxFilePathLength+3:]
}

// SummaryReporter formats results as per-file and per-code tables followed
// by aggregate totals.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	r.writeFileTable(r.bw, result)
	r.writeCodeTable(r.bw, result)
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return result.Stats.Diagnostics, nil
}

type fileRow struct {
	path     string
	formulas int
	errors   int
	warnings int
	infos    int
	failed   bool
}

func (r *SummaryReporter) writeFileTable(w io.Writer, result *runner.Result) {
	var rows []fileRow
	for _, file := range result.Files {
		row := fileRow{path: file.DisplayPath, failed: file.Error != nil}
		if file.Result != nil {
			row.formulas = file.Result.Formulas
			row.errors = file.Result.CountBySeverity(config.SeverityError)
			row.warnings = file.Result.CountBySeverity(config.SeverityWarning)
			row.infos = file.Result.CountBySeverity(config.SeverityInfo)
		}
		if row.failed || row.errors+row.warnings+row.infos > 0 {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return
	}

	header := padRight("FILE", fileColWidth) +
		padLeft("FORMULAS", numColWidth) +
		padLeft("ERRORS", numColWidth) +
		padLeft("WARNINGS", numColWidth) +
		padLeft("INFO", numColWidth)
	fmt.Fprintln(w, r.styles.TableHeader.Render(header))
	fmt.Fprintln(w, r.styles.TableBorder.Render(strings.Repeat("-", tableWidth)))

	for _, row := range rows {
		path := r.styles.FilePath.Render(padRight(truncatePath(row.path), fileColWidth))
		if row.failed {
			fmt.Fprintln(w, path+r.styles.Failure.Render(padLeft("unreadable", numColWidth*4)))
			continue
		}
		fmt.Fprintln(w, path+
			padLeft(strconv.Itoa(row.formulas), numColWidth)+
			r.count(r.styles.Error.Render, row.errors)+
			r.count(r.styles.Warning.Render, row.warnings)+
			r.count(r.styles.Info.Render, row.infos))
	}
	fmt.Fprintln(w)
}

func (r *SummaryReporter) count(style func(...string) string, n int) string {
	cell := padLeft(strconv.Itoa(n), numColWidth)
	if n == 0 {
		return r.styles.Dim.Render(cell)
	}
	return style(cell)
}

type codeRow struct {
	code     string
	severity config.Severity
	count    int
}

func (r *SummaryReporter) writeCodeTable(w io.Writer, result *runner.Result) {
	counts := make(map[string]*codeRow)
	for _, file := range result.Files {
		for _, diag := range file.Diagnostics() {
			key := diag.Code + "\x00" + string(diag.Severity)
			row, ok := counts[key]
			if !ok {
				row = &codeRow{code: diag.Code, severity: diag.Severity}
				counts[key] = row
			}
			row.count++
		}
	}
	if len(counts) == 0 {
		return
	}

	rows := make([]codeRow, 0, len(counts))
	for _, row := range counts {
		rows = append(rows, *row)
	}
	slices.SortFunc(rows, func(a, b codeRow) int {
		return cmp.Or(
			cmp.Compare(b.count, a.count),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.severity, b.severity),
		)
	})

	header := padRight("CODE", codeColWidth) + padRight("SEVERITY", codeColWidth) + padLeft("COUNT", numColWidth)
	fmt.Fprintln(w, r.styles.TableHeader.Render(header))
	fmt.Fprintln(w, r.styles.TableBorder.Render(strings.Repeat("-", tableWidth)))
	for _, row := range rows {
		fmt.Fprintln(w, r.styles.Code.Render(padRight(row.code, codeColWidth))+
			padRight(string(row.severity), codeColWidth)+
			padLeft(strconv.Itoa(row.count), numColWidth))
	}
}

