package fxast

import (
	"sort"
	"unicode/utf8"
)

// LineInfo describes one line of a source string.
type LineInfo struct {
	// StartOffset is the byte index of the first character of the line.
	StartOffset int

	// NewlineStart is the byte index of the line terminator, or the end of
	// the source for the last line. A CRLF terminator starts at the '\r'.
	NewlineStart int

	// EndOffset is the byte index just past the line terminator.
	EndOffset int
}

// Lines indexes the line boundaries of a formula so byte offsets can be
// mapped to the line/column pairs the tokenizer reports.
type Lines struct {
	source string
	lines  []LineInfo
}

// NewLines builds the line index for source.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func NewLines(source string) *Lines {
	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(source); idx++ {
		if source[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && source[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(source),
		EndOffset:    len(source),
	})

	return &Lines{source: source, lines: lines}
}

// Count returns the number of lines. An empty source has one empty line.
func (l *Lines) Count() int {
	return len(l.lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Columns count runes, matching token positions.
// Returns (0, 0) if the offset is out of range.
func (l *Lines) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(l.source) {
		return 0, 0
	}

	// The last line has EndOffset == len(source), so an offset at the very
	// end still resolves to it.
	lineIdx := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].EndOffset > offset
	})
	if lineIdx >= len(l.lines) {
		lineIdx = len(l.lines) - 1
	}

	info := l.lines[lineIdx]
	column := utf8.RuneCountInString(l.source[info.StartOffset:offset]) + 1

	return lineIdx + 1, column
}

// Position converts a byte offset to a Position.
func (l *Lines) Position(offset int) Position {
	line, column := l.LineAt(offset)
	return Position{Line: line, Column: column}
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns an empty string if the line number is out of range.
func (l *Lines) LineContent(line int) string {
	if line < 1 || line > len(l.lines) {
		return ""
	}

	info := l.lines[line-1]
	return l.source[info.StartOffset:info.NewlineStart]
}
