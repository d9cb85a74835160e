package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hostile-breakout/internal/platform/tui"
	"github.com/vovakirdan/hostile-breakout/internal/storage"
)

var (
	flagLevel int
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing straight away, skipping the menu.

Controls:
  Left/Right, A/D  - Move the paddle
  Space            - Throw the ball
  Up/W             - Fire a bullet
  P/Esc            - Pause
  Enter            - Restart (when paused or after the game ended)
  B                - Leave (when paused or after the game ended)
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives and a sturdier paddle, fire ramps up slowly
  normal - Fire starts at 30% of its ramp
  hard   - Fewer lives, faster ball, fire starts at 70% of its ramp
  fixed  - Fire rate never changes

Examples:
  breakout play
  breakout play --level 3
  breakout play --difficulty hard
  breakout play --config ./my-breakout.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies on restart)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, path, preset, err := loadGameConfig()
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}
	if flagWatch && path == "" {
		logger.Warn("--watch needs a config file; using the embedded default without reload")
	}

	gameLog, closeLog, err := gameLogger()
	if err != nil {
		logger.Fatal("cannot set up logging", "error", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Config:     cfg,
		ConfigPath: path,
		Watch:      flagWatch,
		Preset:     preset,
		StartLevel: flagLevel,
		Player:     playerName(),
		Logger:     gameLog,
	}
	if _, err := tui.Run(opts, store, runtimeConfig()); err != nil {
		logger.Error("game failed", "error", err)
	}
}
