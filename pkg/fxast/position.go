package fxast

// Span represents a half-open byte range [Start, End) in the formula source.
// Every AST node embeds a Span.
type Span struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// SourceRange returns the span itself. It lets nodes satisfy Node through embedding.
func (s Span) SourceRange() Span {
	return s
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if the given offset is within this span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the source text covered by this span.
// Returns an empty string if the span does not fit the source.
func (s Span) Text(source string) string {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return ""
	}
	return source[s.Start:s.End]
}

// Cover returns the span running from the start of first to the end of last.
func Cover(first, last Node) Span {
	return Span{Start: first.SourceRange().Start, End: last.SourceRange().End}
}

// Position represents a 1-based line and column in a formula.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}
