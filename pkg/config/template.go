package config

import "fmt"

// Template formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateTOML = "toml"
)

const yamlTemplate = `# formulint configuration
# See: https://github.com/yaklabco/formulint

# Maximum nesting depth of a formula (0 = parser default, negative = unlimited)
max_depth: %d

# Longest formula in bytes before a diagnostic is reported (0 = no limit)
max_length: %d

# Severity of the max-length diagnostic: error, warning, or info
length_severity: %s

# File extensions treated as formula files
extensions:
  - .fx
  - .formula

# Number of parallel workers (0 = auto)
# jobs: 0

# Output format: text, json, sarif, or summary
# format: text

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "testdata/**"
`

const tomlTemplate = `# formulint configuration
# See: https://github.com/yaklabco/formulint

# Maximum nesting depth of a formula (0 = parser default, negative = unlimited)
max_depth = %d

# Longest formula in bytes before a diagnostic is reported (0 = no limit)
max_length = %d

# Severity of the max-length diagnostic: error, warning, or info
length_severity = %q

# File extensions treated as formula files
extensions = [".fx", ".formula"]

# Number of parallel workers (0 = auto)
# jobs = 0

# Output format: text, json, sarif, or summary
# format = "text"

# File patterns to ignore (glob patterns)
# ignore = ["vendor/**", "testdata/**"]
`

// GenerateTemplate creates a commented configuration file populated with
// the default values.
func GenerateTemplate(format string) ([]byte, error) {
	defaults := NewConfig()

	switch format {
	case TemplateYAML, "":
		return fmt.Appendf(nil, yamlTemplate, defaults.MaxDepth, defaults.MaxLength, defaults.LengthSeverity), nil
	case TemplateTOML:
		return fmt.Appendf(nil, tomlTemplate, defaults.MaxDepth, defaults.MaxLength, string(defaults.LengthSeverity)), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q; must be yaml or toml", format)
	}
}
