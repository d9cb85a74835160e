package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hostile-breakout/internal/platform/tui"
	"github.com/vovakirdan/hostile-breakout/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the main menu",
	Long: `Start Hostile Breakout with its main menu.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc/B        - Back
  Q            - Quit

Examples:
  breakout menu
  breakout menu --fps 30
  breakout menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, path, preset, err := loadGameConfig()
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
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

	rt := runtimeConfig()
	for {
		result, err := tui.RunMenu(cfg, rt)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}
		rt = result.Config

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "error", err)
			}
			if !goBack {
				return
			}

		default:
			if flagSeed == 0 {
				rt.Seed = time.Now().UnixNano()
			}
			opts := tui.Options{
				Config:     cfg,
				ConfigPath: path,
				Preset:     preset,
				StartLevel: result.StartLevel,
				Player:     playerName(),
				Logger:     gameLog,
			}
			goBack, err := tui.Run(opts, store, rt)
			if err != nil {
				logger.Error("game failed", "error", err)
			}
			if !goBack {
				return
			}
		}
	}
}
