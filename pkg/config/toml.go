package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// FromTOML parses a configuration from TOML bytes. Keys that do not map to
// a configuration field are returned so callers can warn about them.
func FromTOML(data []byte) (*Config, []string, error) {
	cfg := &Config{}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", err)
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)

	return cfg, unknown, nil
}

// IsTOMLPath reports whether a config path should be decoded as TOML.
func IsTOMLPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".toml")
}
