package reporter

import (
	"fmt"

	"github.com/yaklabco/formulint/pkg/config"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = Format(config.FormatText)
	FormatJSON    Format = Format(config.FormatJSON)
	FormatSARIF   Format = Format(config.FormatSARIF)
	FormatSummary Format = Format(config.FormatSummary)
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	f := Format(formatStr)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, sarif, summary", formatStr)
	}
	return f, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatSummary:
		return true
	default:
		return false
	}
}
