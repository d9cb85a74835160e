// breakout is Hostile Breakout, a terminal breakout game whose blocks shoot back.
//
// Usage:
//
//	breakout                  - Start the main menu
//	breakout play             - Play straight away
//	breakout serve            - Start SSH server for remote play
//	breakout scores           - Show the best recorded runs
//	breakout levels           - Check and describe the configured levels
//	breakout config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.breakout/runs.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

// logger reports CLI progress and errors on stderr.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "breakout",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Hostile Breakout - the blocks shoot back",
	Long: `Hostile Breakout is a terminal breakout game. Clear every block on
each level while the blocks fire back at your paddle.

Available commands:
  play     - Start a game directly
  menu     - Main menu (default)
  serve    - Start SSH server for remote play
  scores   - View the best recorded runs
  levels   - Check and describe the configured levels
  config   - Print the default configuration

Examples:
  breakout
  breakout play --level 3
  breakout play --config ./my-breakout.yaml --watch
  breakout serve --ssh :2222
  breakout scores --limit 20`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breakout/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file while playing")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig resolves the game config and applies the difficulty preset.
// It returns the path that was used, empty for the embedded default.
func loadGameConfig() (config.BreakoutConfig, string, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.BreakoutConfig{}, "", "", err
	}
	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return cfg, path, preset, err
	}
	config.ApplyPreset(&cfg, preset)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	return cfg, path, preset, nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	return rt
}

// gameLogger returns the logger handed to games. The terminal belongs to
// the game while it runs, so logs only go to --log-file.
func gameLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }, nil
}

// playerName is the name stored with local runs.
func playerName() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return ""
}
