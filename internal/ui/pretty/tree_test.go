package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/formulint/internal/ui/pretty"
	"github.com/yaklabco/formulint/pkg/parser"
)

func TestFormatTree(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatTree(parser.MustParse(`f(a.b, [1], {k: "v"}) ? -x : null`), false)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "ConditionalExpression", lines[0])

	for _, want := range []string{
		"test: CallExpression",
		"callee: Identifier f",
		"arg[0]: MemberExpression .",
		"object: Identifier a",
		"property: Identifier b",
		"arg[1]: ArrayExpression",
		"[0]: Literal 1",
		"arg[2]: ObjectExpression",
		`k: Literal "v"`,
		"consequent: UnaryExpression -",
		"argument: Identifier x",
		"alternate: Literal null",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "[0,")
}

func TestFormatTree_Spans(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatTree(parser.MustParse("a[0] + 1"), true)

	assert.Contains(t, out, "BinaryExpression + [0,8)")
	assert.Contains(t, out, "left: MemberExpression [] [0,4)")
	assert.Contains(t, out, "right: Literal 1 [7,8)")
}

func TestFormatTree_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, pretty.NewStyles(false).FormatTree(nil, false))
}
