package pretty_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formulint/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.Error.Render("test"))
	assert.Equal(t, "test", styles.NodeKind.Render("test"))
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is never a terminal")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
	assert.True(t, pretty.IsColorEnabled("always", &bytes.Buffer{}))
}

func TestTermWidth_NonTerminal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, pretty.TermWidth(&bytes.Buffer{}))
}
