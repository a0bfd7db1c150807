package check

import (
	"bytes"
	"strings"
)

// CommentPrefix starts a comment line in a formula file.
const CommentPrefix = "#"

// Formula is one non-blank, non-comment line of a formula file.
type Formula struct {
	// Line is the 1-based line number in the file.
	Line int

	// Text is the line content with any trailing carriage return removed.
	Text string
}

// SplitFormulas breaks file content into formulas, one per line.
// Blank lines and lines whose first non-space character is '#' are skipped.
func SplitFormulas(content []byte) []Formula {
	var formulas []Formula

	for lineNum, raw := range bytes.Split(content, []byte{'\n'}) {
		text := strings.TrimSuffix(string(raw), "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, CommentPrefix) {
			continue
		}
		formulas = append(formulas, Formula{Line: lineNum + 1, Text: text})
	}

	return formulas
}
