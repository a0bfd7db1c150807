package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formulint/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// execute runs the root command with args and returns stdout, stderr, and
// the exit code main would use.
func execute(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), cli.ExitCode(err)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	assert.Equal(t, "formulint", cmd.Use)

	for _, name := range []string{"parse", "tokens", "check", "repl", "init", "env", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}

	for _, flagName := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), flagName)
	}
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	for _, name := range []string{"format", "jobs", "max-depth", "max-length", "strict", "compact", "no-context", "ignore"} {
		assert.NotNil(t, checkCmd.Flags().Lookup(name), name)
	}
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "--help")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "Commands:")
	assert.Contains(t, stdout, "check")
	assert.Contains(t, stdout, "--config")
}

func TestParse_Sexpr(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "parse", "--format", "sexpr", "1 + 2 * 3")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "(1 + (2 * 3))\n", stdout)
}

func TestParse_JoinsArguments(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "parse", "--format", "sexpr", "a", "&&", "b")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "(a && b)\n", stdout)
}

func TestParse_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "a.b\n", "parse", "--format", "sexpr")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "a.b\n", stdout)

	stdout, _, code = execute(t, "-x", "parse", "--format", "sexpr", "-")
	assert.Equal(t, cli.ExitSuccess, code)
	assert.Equal(t, "(-x)\n", stdout)
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "parse", "--format", "json", "sum(a, 1)")
	require.Equal(t, cli.ExitSuccess, code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "CallExpression", decoded["type"])
	assert.InDelta(t, 0, decoded["start"], 0)
	assert.InDelta(t, 9, decoded["end"], 0)

	args, ok := decoded["arguments"].([]any)
	require.True(t, ok)
	assert.Len(t, args, 2)
}

func TestParse_JSONOutOfRangeNumber(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "parse", "--format", "json", "1e999")
	require.Equal(t, cli.ExitSuccess, code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "Literal", decoded["type"])
	assert.Nil(t, decoded["value"])
	assert.Equal(t, "1e999", decoded["raw"])
}

func TestParse_YAML(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "parse", "--format", "yaml", "x")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "type: Identifier")
	assert.Contains(t, stdout, "name: x")
}

func TestParse_Tree(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "parse", "1 + x")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "BinaryExpression")
	assert.Contains(t, stdout, "left: Literal 1")
	assert.Contains(t, stdout, "right: Identifier x")
}

func TestParse_Error(t *testing.T) {
	t.Parallel()

	stdout, stderr, code := execute(t, "", "parse", "sum(a, b")

	assert.Equal(t, cli.ExitIssues, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "error: Expected ')' after arguments but found EOF (line 1, column 9)")
	assert.Contains(t, stderr, "near: sum(a, b→")
}

func TestParse_MaxDepth(t *testing.T) {
	t.Parallel()

	_, stderr, code := execute(t, "", "parse", "--max-depth", "2", "(((1)))")

	assert.Equal(t, cli.ExitIssues, code)
	assert.Contains(t, stderr, "maximum nesting depth exceeded")

	_, _, code = execute(t, "", "parse", "--max-depth", "-1", "(((1)))")
	assert.Equal(t, cli.ExitSuccess, code)
}

func TestParse_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, code := execute(t, "", "parse", "--format", "xml", "1")
	assert.Equal(t, cli.ExitInvalidUsage, code)
}

func TestUnknownFlag(t *testing.T) {
	t.Parallel()

	_, _, code := execute(t, "", "parse", "--bogus", "1")
	assert.Equal(t, cli.ExitInvalidUsage, code)
}

func TestTokens_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "tokens", "--format", "json", "1 + 2")
	require.Equal(t, cli.ExitSuccess, code)

	var decoded struct {
		Tokens []map[string]any `json:"tokens"`
		Errors []map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Len(t, decoded.Tokens, 4)
	assert.Empty(t, decoded.Errors)
}

func TestTokens_ReportsAllLexErrors(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "tokens", "--format", "json", "1 @ 2 #")
	assert.Equal(t, cli.ExitIssues, code)

	var decoded struct {
		Errors []map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded.Errors, 2)
	assert.Equal(t, "Unexpected character: @", decoded.Errors[0]["message"])
	assert.Equal(t, "Unexpected character: #", decoded.Errors[1]["message"])
}

func TestTokens_Table(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "tokens", "a + 1")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "TYPE")
	assert.Contains(t, stdout, "VALUE")
}

func TestCheck_ReportsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "good.fx", "1 + 2\n# comment\nsum(a, b)\n")
	writeFile(t, dir, "bad.fx", "x\n1 +\n")

	stdout, _, code := execute(t, "", "check", "--no-summary", dir)

	assert.Equal(t, cli.ExitIssues, code)
	assert.Contains(t, stdout, "bad.fx:2:4")
	assert.Contains(t, stdout, "Unexpected token: EOF")
	assert.NotContains(t, stdout, "good.fx")
}

func TestCheck_Clean(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "good.fx", "1 + 2\n")

	stdout, _, code := execute(t, "", "check", dir)

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "No issues found")
}

func TestCheck_StrictWarnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "long.fx", "alpha + beta\n")

	_, _, code := execute(t, "", "check", "--max-length", "5", file)
	assert.Equal(t, cli.ExitSuccess, code)

	_, _, code = execute(t, "", "check", "--max-length", "5", "--strict", file)
	assert.Equal(t, cli.ExitWarnings, code)

	_, _, code = execute(t, "", "check", "--max-length", "5", "--length-severity", "error", file)
	assert.Equal(t, cli.ExitIssues, code)
}

func TestCheck_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "bad.fx", "(1\n")

	stdout, _, code := execute(t, "", "check", "--format", "json", "--compact", file)
	assert.Equal(t, cli.ExitIssues, code)

	var decoded struct {
		Files []struct {
			Diagnostics []map[string]any `json:"diagnostics"`
		} `json:"files"`
		Summary struct {
			Errors int `json:"errors"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Len(t, decoded.Files, 1)
	require.Len(t, decoded.Files[0].Diagnostics, 1)
	assert.Equal(t, "syntax", decoded.Files[0].Diagnostics[0]["code"])
	assert.Equal(t, 1, decoded.Summary.Errors)
}

func TestCheck_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "formulint.yml", "max_length: 3\nlength_severity: error\n")
	file := writeFile(t, dir, "f.fx", "1 + 2\n")

	stdout, _, code := execute(t, "", "--config", cfgFile, "check", "--no-summary", file)

	assert.Equal(t, cli.ExitIssues, code)
	assert.Contains(t, stdout, "max-length")
}

func TestCheck_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "formulint.yml", "format: xml\n")

	_, _, code := execute(t, "", "--config", cfgFile, "check", dir)
	assert.Equal(t, cli.ExitConfigError, code)
}

func TestInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, ".formulint.yml")

	_, _, code := execute(t, "", "init", "--output", target)
	require.Equal(t, cli.ExitSuccess, code)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "max_depth")

	_, _, code = execute(t, "", "init", "--output", target)
	assert.Equal(t, cli.ExitIOError, code)

	_, _, code = execute(t, "", "init", "--force", "--output", target)
	assert.Equal(t, cli.ExitSuccess, code)
}

func TestInit_TOML(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "formulint.toml")

	_, _, code := execute(t, "", "init", "--output", target)
	require.Equal(t, cli.ExitSuccess, code)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "max_depth =")
}

func TestEnv(t *testing.T) {
	t.Setenv("FORMULINT_JOBS", "3")

	stdout, _, code := execute(t, "", "env")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "FORMULINT_MAX_DEPTH")
	assert.Contains(t, stdout, "FORMULINT_JOBS")
	assert.Contains(t, stdout, "VARIABLE")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, code := execute(t, "", "version")

	assert.Equal(t, cli.ExitSuccess, code)
	assert.Contains(t, stdout, "1.2.3")
	assert.Contains(t, stdout, "abc123")
}
