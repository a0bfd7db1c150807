package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formulint/pkg/config"
)

// isolatedOptions returns options that only consider files under dir.
func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

// newRepo creates a temp directory marked as a VCS root so the upward
// search never leaves it.
func newRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(newRepo(t)))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.NewConfig(), result.Config)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	path := filepath.Join(dir, ".formulint.yml")
	writeFile(t, path, "max_depth: 32\nextensions: [\".calc\"]\nformat: json\n")

	result, err := Load(context.Background(), isolatedOptions(filepath.Join(dir)))
	require.NoError(t, err)

	assert.Equal(t, []string{path}, result.LoadedFrom)
	assert.Equal(t, 32, result.Config.MaxDepth)
	assert.Equal(t, []string{".calc"}, result.Config.Extensions)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, config.DefaultMaxLength, result.Config.MaxLength, "unset fields keep defaults")
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	path := filepath.Join(dir, ".formulint.toml")
	writeFile(t, path, "max_length = 80\n")
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := Load(context.Background(), isolatedOptions(sub))
	require.NoError(t, err)

	assert.Equal(t, path, result.Paths.Project)
	assert.Equal(t, 80, result.Config.MaxLength)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".formulint.yml"), "max_depth: 32\njobs: 2\n")
	explicit := filepath.Join(dir, "ci", "strict.yml")
	writeFile(t, explicit, "max_depth: 8\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, explicit, result.LoadedFrom[1])
	assert.Equal(t, 8, result.Config.MaxDepth)
	assert.Equal(t, 2, result.Config.Jobs)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".formulint.yml"), "max_depth: 32\nformat: json\n")

	opts := isolatedOptions(dir)
	opts.CLIConfig = &config.Config{MaxDepth: 4, Strict: true}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Config.MaxDepth)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.True(t, result.Config.Strict)
}

func TestLoad_TOMLUnknownKeysWarn(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".formulint.toml"), "jobs = 3\ncolour = \"always\"\n")

	result, err := Load(context.Background(), isolatedOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Config.Jobs)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown key "colour"`)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad format", content: "format: xml\n", wantErr: "invalid format"},
		{name: "bad severity", content: "length_severity: fatal\n", wantErr: "invalid severity"},
		{name: "negative jobs", content: "jobs: -1\n", wantErr: "jobs must be >= 0"},
		{name: "bad glob", content: "ignore: [\"[\"]\n", wantErr: "invalid glob pattern"},
		{name: "bad yaml", content: "max_depth: [\n", wantErr: "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newRepo(t)
			writeFile(t, filepath.Join(dir, ".formulint.yml"), tt.content)

			_, err := Load(context.Background(), isolatedOptions(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ValidationErrorIsTyped(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".formulint.yml"), "extensions: [\"fx\"]\n")

	_, err := Load(context.Background(), isolatedOptions(dir))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "extensions[0]", verr.Field)
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(newRepo(t)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("FORMULINT_MAX_DEPTH", "12")
	t.Setenv("FORMULINT_EXTENSIONS", ".fx, .calc ,")
	t.Setenv("FORMULINT_FORMAT", "sarif")

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, ".formulint.yml"), "max_depth: 32\n")

	opts := isolatedOptions(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 12, result.Config.MaxDepth)
	assert.Equal(t, []string{".fx", ".calc"}, result.Config.Extensions)
	assert.Equal(t, config.FormatSARIF, result.Config.Format)
}

func TestLoadFromEnv_InvalidInteger(t *testing.T) {
	t.Setenv("FORMULINT_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORMULINT_JOBS")
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	writeFile(t, filepath.Join(outer, ".formulint.yml"), "jobs: 1\n")
	inner := filepath.Join(outer, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(inner, ".git"), 0o755))

	found, err := FindProjectConfig(context.Background(), inner)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindProjectConfig_Preference(t *testing.T) {
	t.Parallel()

	dir := newRepo(t)
	writeFile(t, filepath.Join(dir, "formulint.yml"), "")
	writeFile(t, filepath.Join(dir, ".formulint.toml"), "")

	found, err := FindProjectConfig(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".formulint.toml"), found)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"vendor/*"}

	merged := merge(base, &config.Config{MaxLength: 10, Extensions: []string{".x"}})

	assert.Equal(t, 10, merged.MaxLength)
	assert.Equal(t, []string{".x"}, merged.Extensions)
	assert.Equal(t, []string{"vendor/*"}, merged.Ignore)
	assert.Equal(t, config.DefaultExtensions(), base.Extensions, "base must not be modified")

	assert.Same(t, base, merge(base, nil))
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.MaxDepth = -1
	cfg.Extensions = []string{}

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.True(t, result.HasWarnings())
	assert.Len(t, result.Warnings, 2)
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.NotEmpty(t, vars)
	for i, v := range vars {
		assert.Equal(t, GetEnvVarName(v.Field), v.Name)
		assert.NotEmpty(t, v.Description)
		if i > 0 {
			assert.Less(t, vars[i-1].Name, v.Name)
		}
	}
}
