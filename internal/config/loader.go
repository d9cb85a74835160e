package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const fileName = "breakout.yaml"

// Load loads and validates the game configuration.
// Search order: customPath -> ~/.breakout/breakout.yaml -> ./configs/breakout.yaml -> embedded default.
// It returns the path that was used ("" for the embedded default).
func Load(customPath string) (BreakoutConfig, string, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		return cfg, customPath, err
	}

	for _, p := range []string{UserConfigPath(), filepath.Join("configs", fileName)} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		cfg, err := LoadFile(p)
		return cfg, p, err
	}

	cfg := DefaultBreakoutConfig()
	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("embedded config: %w", err)
	}
	return cfg, "", nil
}

// LoadFile reads, parses and validates a config file.
func LoadFile(path string) (BreakoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BreakoutConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakout", fileName)
}
