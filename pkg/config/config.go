// Package config defines core configuration types for formulint.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import "github.com/yaklabco/formulint/pkg/parser"

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid returns true if the severity is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for check results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// DefaultMaxLength is the default limit on formula length in bytes.
const DefaultMaxLength = 4096

// DefaultExtensions returns the file extensions checked by default.
func DefaultExtensions() []string {
	return []string{".fx", ".formula"}
}

// Config is the root configuration structure for formulint.
type Config struct {
	// MaxDepth limits expression nesting. Zero means the parser default;
	// a negative value disables the limit.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth" toml:"max_depth"`

	// MaxLength is the longest formula, in bytes, accepted without a
	// diagnostic. Zero disables the check.
	MaxLength int `mapstructure:"max_length" yaml:"max_length" toml:"max_length"`

	// LengthSeverity is the severity reported for over-long formulas.
	LengthSeverity Severity `mapstructure:"length_severity" yaml:"length_severity" toml:"length_severity"`

	// Extensions lists the file extensions treated as formula files.
	Extensions []string `mapstructure:"extensions" yaml:"extensions" toml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore" toml:"ignore"`

	// Jobs specifies the number of parallel workers (0 = auto).
	Jobs int `mapstructure:"jobs" yaml:"jobs" toml:"jobs"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"format" yaml:"format" toml:"format"`

	// CLI-level options (not persisted to config files).

	// Strict makes warnings fail the run.
	Strict bool `mapstructure:"-" yaml:"-" toml:"-"`

	// Compact disables pretty-printing of JSON and SARIF output.
	Compact bool `mapstructure:"-" yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxDepth:       parser.DefaultMaxDepth,
		MaxLength:      DefaultMaxLength,
		LengthSeverity: SeverityWarning,
		Extensions:     DefaultExtensions(),
		Ignore:         nil,
		Jobs:           0, // 0 means use runtime.NumCPU
		Format:         FormatText,
	}
}

// ParserMaxDepth converts MaxDepth to the value expected by parser.WithMaxDepth.
func (c *Config) ParserMaxDepth() int {
	switch {
	case c.MaxDepth == 0:
		return parser.DefaultMaxDepth
	case c.MaxDepth < 0:
		return 0
	default:
		return c.MaxDepth
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.Extensions != nil {
		clone.Extensions = make([]string, len(c.Extensions))
		copy(clone.Extensions, c.Extensions)
	}
	if c.Ignore != nil {
		clone.Ignore = make([]string, len(c.Ignore))
		copy(clone.Ignore, c.Ignore)
	}

	return &clone
}
