package configloader

import "github.com/yaklabco/formulint/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: a true override wins; a config file cannot unset a CLI flag
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.MaxLength != 0 {
		result.MaxLength = override.MaxLength
	}
	if override.LengthSeverity != "" {
		result.LengthSeverity = override.LengthSeverity
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.Strict {
		result.Strict = true
	}
	if override.Compact {
		result.Compact = true
	}

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}
