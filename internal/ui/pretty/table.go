package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/formulint/pkg/fxast"
	"github.com/yaklabco/formulint/pkg/parser"
)

// Table formatting constants.
const (
	tablePadding   = 2
	minValueWidth  = 8
	heavySeparator = "="
	lightSeparator = "-"
)

// tokenColumns are the headers of the token table.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tokenColumns = []string{"#", "TYPE", "VALUE", "RANGE", "LOC"}

// TableFormatter formats token streams as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTokens renders tokens as a table followed by any lexical errors.
// Values longer than the terminal allows are truncated.
func (t *TableFormatter) FormatTokens(tokens []fxast.Token, lexErrs []*parser.LexError) string {
	rows := make([][]string, 0, len(tokens))
	for i, tok := range tokens {
		rows = append(rows, []string{
			strconv.Itoa(i),
			tok.Type.String(),
			strconv.Quote(tok.Value),
			fmt.Sprintf("%d-%d", tok.Start, tok.End),
			fmt.Sprintf("%d:%d", tok.Line, tok.Column),
		})
	}

	widths := t.columnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatRow(tokenColumns, widths, t.styles.TableHeader))
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths, lipgloss.NewStyle()))
	}
	builder.WriteString(t.formatSeparator(widths, heavySeparator))

	if len(lexErrs) > 0 {
		builder.WriteString(t.styles.Error.Render(fmt.Sprintf("%d lexical %s", len(lexErrs), plural(len(lexErrs), "error", "errors"))))
		builder.WriteString("\n")
		builder.WriteString(t.formatSeparator(widths, lightSeparator))
		for _, lerr := range lexErrs {
			fmt.Fprintf(&builder, "  %s  %s\n",
				t.styles.Location.Render(fmt.Sprintf("%d:%d", lerr.Line, lerr.Column)),
				t.styles.Message.Render(lerr.Message),
			)
		}
	}

	return builder.String()
}

// columnWidths sizes each column to its widest cell. The VALUE column
// absorbs any shortfall when the table is wider than the terminal.
func (t *TableFormatter) columnWidths(rows [][]string) []int {
	widths := make([]int, len(tokenColumns))
	for i, h := range tokenColumns {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	const valueCol = 2
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	if over := total - t.termWidth; over > 0 {
		widths[valueCol] = max(minValueWidth, widths[valueCol]-over)
	}

	return widths
}

func (t *TableFormatter) formatRow(cells []string, widths []int, style lipgloss.Style) string {
	var builder strings.Builder
	for i, cell := range cells {
		cell = truncate(cell, widths[i])
		pad := widths[i] - lipgloss.Width(cell)
		builder.WriteString(style.Render(cell))
		if i < len(cells)-1 {
			builder.WriteString(strings.Repeat(" ", pad+tablePadding))
		}
	}
	builder.WriteString("\n")
	return builder.String()
}

func (t *TableFormatter) formatSeparator(widths []int, char string) string {
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	return t.styles.TableBorder.Render(strings.Repeat(char, total-tablePadding)) + "\n"
}
