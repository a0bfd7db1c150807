package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/formulint/pkg/config"
)

// envVarPrefix is the prefix for all formulint environment variables.
const envVarPrefix = "FORMULINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"MAX_DEPTH":       {field: "max_depth", typ: envTypeInt, description: "Maximum expression nesting depth (negative disables)"},
	"MAX_LENGTH":      {field: "max_length", typ: envTypeInt, description: "Maximum formula length in bytes (0 disables)"},
	"LENGTH_SEVERITY": {field: "length_severity", typ: envTypeString, description: "Severity of over-long formulas: error, warning, or info"},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of formula file extensions"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"JOBS":            {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: text, json, sarif, or summary"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with FORMULINT_ (e.g., FORMULINT_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "length_severity":
		cfg.LengthSeverity = config.Severity(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_depth":
		cfg.MaxDepth = value
	case "max_length":
		cfg.MaxLength = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Field       string
	Description string
	Value       string
}

// ListEnvVars returns all supported environment variables sorted by name,
// along with their current values.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		vars = append(vars, EnvVar{
			Name:        name,
			Field:       mapping.field,
			Description: mapping.description,
			Value:       os.Getenv(name),
		})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
