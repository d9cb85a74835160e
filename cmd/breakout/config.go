package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hostile-breakout/internal/config"
)

var flagWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML.

With --write the defaults are saved to ~/.breakout/breakout.yaml, where
they are picked up automatically. An existing file is never overwritten.

Examples:
  breakout config > my-breakout.yaml
  breakout config --write`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWrite, "write", false, "Save the defaults to the user config path")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagWrite {
		if _, err := os.Stdout.Write(config.DefaultYAML()); err != nil {
			logger.Fatal("cannot print config", "error", err)
		}
		return
	}

	path := config.UserConfigPath()
	if path == "" {
		logger.Fatal("cannot locate home directory")
	}
	if _, err := os.Stat(path); err == nil {
		logger.Fatal("config already exists", "path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Fatal("cannot create config directory", "error", err)
	}
	if err := os.WriteFile(path, config.DefaultYAML(), 0o600); err != nil {
		logger.Fatal("cannot write config", "error", err)
	}
	fmt.Printf("Wrote %s\n", path)
}
