package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/formulint/pkg/config"
	"github.com/yaklabco/formulint/pkg/parser"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, config.DefaultMaxLength, cfg.MaxLength)
	assert.Equal(t, config.SeverityWarning, cfg.LengthSeverity)
	assert.Equal(t, []string{".fx", ".formula"}, cfg.Extensions)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Zero(t, cfg.Jobs)
}

func TestConfig_ParserMaxDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		maxDepth int
		want     int
	}{
		{name: "unset uses parser default", maxDepth: 0, want: parser.DefaultMaxDepth},
		{name: "negative disables", maxDepth: -1, want: 0},
		{name: "explicit", maxDepth: 32, want: 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &config.Config{MaxDepth: tt.maxDepth}
			assert.Equal(t, tt.want, cfg.ParserMaxDepth())
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Ignore = []string{"vendor/**"}
	original.Strict = true

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Extensions[0] = ".changed"
	clone.Ignore[0] = "changed"
	assert.Equal(t, ".fx", original.Extensions[0])
	assert.Equal(t, "vendor/**", original.Ignore[0])

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.SeverityError.IsValid())
	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}

func TestYAML_RoundTripSkipsCLIFields(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"testdata/**"}
	cfg.Strict = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "strict")

	decoded, err := config.FromYAML(data)
	require.NoError(t, err)

	cfg.Strict = false
	assert.Equal(t, cfg, decoded)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("max_depth: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestFromTOML_ReportsUnknownKeys(t *testing.T) {
	t.Parallel()

	data := []byte(`
max_depth = 64
extensions = [".fx"]
colour = "always"

[rules]
strict = true
`)

	cfg, unknown, err := config.FromTOML(data)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, []string{".fx"}, cfg.Extensions)
	assert.Contains(t, unknown, "colour")
	assert.Contains(t, unknown, "rules.strict")
	assert.NotContains(t, unknown, "max_depth")
}

func TestTOML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Ignore = []string{"vendor/**"}
	cfg.Jobs = 4

	data, err := cfg.ToTOML()
	require.NoError(t, err)

	decoded, unknown, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, cfg, decoded)
}

func TestIsTOMLPath(t *testing.T) {
	t.Parallel()

	assert.True(t, config.IsTOMLPath("/etc/formulint/config.toml"))
	assert.True(t, config.IsTOMLPath(".formulint.TOML"))
	assert.False(t, config.IsTOMLPath(".formulint.yml"))
}

func TestGenerateTemplate_DecodesToDefaults(t *testing.T) {
	t.Parallel()

	defaults := config.NewConfig()

	yamlData, err := config.GenerateTemplate(config.TemplateYAML)
	require.NoError(t, err)
	fromYAML, err := config.FromYAML(yamlData)
	require.NoError(t, err)

	tomlData, err := config.GenerateTemplate(config.TemplateTOML)
	require.NoError(t, err)
	fromTOML, unknown, err := config.FromTOML(tomlData)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	for name, got := range map[string]*config.Config{"yaml": fromYAML, "toml": fromTOML} {
		assert.Equal(t, defaults.MaxDepth, got.MaxDepth, name)
		assert.Equal(t, defaults.MaxLength, got.MaxLength, name)
		assert.Equal(t, defaults.LengthSeverity, got.LengthSeverity, name)
		assert.Equal(t, defaults.Extensions, got.Extensions, name)
	}

	_, err = config.GenerateTemplate("ini")
	require.Error(t, err)
}
