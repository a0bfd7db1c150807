package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/formulint/pkg/fxast"
)

const (
	// snippetRadius is how many characters of source a snippet shows on
	// each side of the fault.
	snippetRadius = 20

	// SnippetMarker is inserted into a snippet at the fault offset.
	SnippetMarker = "→"

	snippetEllipsis = "..."
)

// ParseError is the single error a failed parse reports. Lexical and
// syntax errors share this shape.
type ParseError struct {
	// Message describes the fault, e.g. "Unexpected token: )".
	Message string `json:"message" yaml:"message"`

	// Position is the byte offset of the fault in the source.
	Position int `json:"position" yaml:"position"`

	// Line is the 1-based line of the fault.
	Line int `json:"line" yaml:"line"`

	// Column is the 1-based column of the fault, counted in runes.
	Column int `json:"column" yaml:"column"`

	// Snippet is the source around Position with SnippetMarker at the fault.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// Pos returns the fault location as a Position.
func (e *ParseError) Pos() fxast.Position {
	return fxast.Position{Line: e.Line, Column: e.Column}
}

func newParseError(source, message string, position, line, column int) *ParseError {
	return &ParseError{
		Message:  message,
		Position: position,
		Line:     line,
		Column:   column,
		Snippet:  Snippet(source, position),
	}
}

// Snippet returns up to snippetRadius characters of source on each side of
// pos, with SnippetMarker inserted at pos. A side that was clipped gets "...".
// pos is a byte offset; the window is counted in runes.
func Snippet(source string, pos int) string {
	pos = min(max(pos, 0), len(source))

	start := pos
	for range snippetRadius {
		if start == 0 {
			break
		}
		_, size := utf8.DecodeLastRuneInString(source[:start])
		start -= size
	}

	end := pos
	for range snippetRadius {
		if end == len(source) {
			break
		}
		_, size := utf8.DecodeRuneInString(source[end:])
		end += size
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString(snippetEllipsis)
	}
	sb.WriteString(source[start:pos])
	sb.WriteString(SnippetMarker)
	sb.WriteString(source[pos:end])
	if end < len(source) {
		sb.WriteString(snippetEllipsis)
	}

	return sb.String()
}

// syntaxError is returned by the grammar functions and converted into a
// ParseError once, at the top of Parse.
type syntaxError struct {
	message string
	token   fxast.Token
}

func (e *syntaxError) Error() string {
	return e.message
}

func unexpectedToken(tok fxast.Token) *syntaxError {
	return &syntaxError{message: "Unexpected token: " + tok.Describe(), token: tok}
}
