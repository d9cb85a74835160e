package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the embedded default configuration.
// The embedded file is part of the binary, so a parse failure is a build defect.
func DefaultBreakoutConfig() BreakoutConfig {
	cfg, err := Parse(defaultBreakoutYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}

// Parse decodes YAML into a BreakoutConfig. Unknown keys are rejected so a
// misspelled key fails loudly instead of silently falling back to zero.
func Parse(data []byte) (BreakoutConfig, error) {
	var cfg BreakoutConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
