package fxast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/formulint/pkg/fxast"
)

func TestLines_LineAt(t *testing.T) {
	t.Parallel()

	lines := fxast.NewLines("a +\r\n  b\nπ * c")

	tests := []struct {
		name       string
		offset     int
		wantLine   int
		wantColumn int
	}{
		{name: "start", offset: 0, wantLine: 1, wantColumn: 1},
		{name: "crlf line", offset: 2, wantLine: 1, wantColumn: 3},
		{name: "second line", offset: 7, wantLine: 2, wantColumn: 3},
		{name: "after multibyte rune", offset: 11, wantLine: 3, wantColumn: 2},
		{name: "end of source", offset: 15, wantLine: 3, wantColumn: 6},
		{name: "negative", offset: -1, wantLine: 0, wantColumn: 0},
		{name: "past end", offset: 16, wantLine: 0, wantColumn: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line, column := lines.LineAt(tt.offset)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantColumn, column)
		})
	}
}

func TestLines_LineContent(t *testing.T) {
	t.Parallel()

	lines := fxast.NewLines("a +\r\n  b\n")

	assert.Equal(t, 3, lines.Count())
	assert.Equal(t, "a +", lines.LineContent(1))
	assert.Equal(t, "  b", lines.LineContent(2))
	assert.Empty(t, lines.LineContent(3))
	assert.Empty(t, lines.LineContent(4))
}

func TestSpan(t *testing.T) {
	t.Parallel()

	span := fxast.Span{Start: 2, End: 5}
	assert.Equal(t, 3, span.Len())
	assert.False(t, span.IsEmpty())
	assert.True(t, span.Contains(2))
	assert.False(t, span.Contains(5))
	assert.Equal(t, "cde", span.Text("abcdef"))
	assert.Empty(t, fxast.Span{Start: 4, End: 10}.Text("abc"))
}
