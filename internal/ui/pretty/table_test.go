package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/pkg/parser"
)

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	tokens, lexErrs := parser.Tokenize("a >= 1")
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	out := table.FormatTokens(tokens, lexErrs)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.Len(t, lines, 7)
	assert.Equal(t, "#  TYPE        VALUE  RANGE  LOC", lines[0])
	assert.Equal(t, strings.Repeat("=", 32), lines[1])
	assert.Equal(t, `0  IDENTIFIER  "a"    0-1    1:1`, lines[2])
	assert.Equal(t, `1  GTE         ">="   2-4    1:3`, lines[3])
	assert.Equal(t, `3  EOF         ""     6-6    1:7`, lines[5])
}

func TestFormatTokens_LexErrors(t *testing.T) {
	t.Parallel()

	tokens, lexErrs := parser.Tokenize("a @ # b")
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)

	out := table.FormatTokens(tokens, lexErrs)

	assert.Contains(t, out, "2 lexical errors\n")
	assert.Contains(t, out, "  1:3  Unexpected character: @\n")
	assert.Contains(t, out, "  1:5  Unexpected character: #\n")
}

func TestFormatTokens_TruncatesToWidth(t *testing.T) {
	t.Parallel()

	long := `"` + strings.Repeat("x", 200) + `"`
	tokens, _ := parser.Tokenize(long)
	table := pretty.NewTableFormatter(pretty.NewStyles(false), 60)

	out := table.FormatTokens(tokens, nil)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 60, line)
	}
	assert.Contains(t, out, "…")
}
