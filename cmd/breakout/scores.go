package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hostile-breakout/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best recorded runs",
	Long: `Display the best recorded runs and overall statistics.

Examples:
  breakout scores
  breakout scores --limit 20
  breakout scores --recent
  breakout scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open runs database", "error", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			logger.Fatal("cannot clear runs", "error", err)
		}
		fmt.Println("All runs deleted.")
		return
	}

	var runs []storage.Run
	title := "High Scores"
	if flagRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		logger.Fatal("cannot read runs", "error", err)
	}

	fmt.Printf("Hostile Breakout - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-7s  %-5s  %-6s  %-8s  %s\n", "Rank", "Player", "Score", "Level", "Result", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-7s  %-5s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "------", "----", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-12.12s  %-7d  %-5d  %-6s  %-8s  %s\n",
			i+1, player, r.Score, r.Level, r.Outcome,
			r.Duration.Round(time.Second).String(), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("cannot read stats", "error", err)
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.0f  Best level: %d\n",
		stats.Runs, stats.Wins, stats.HighScore, stats.AvgScore, stats.BestLevel)
}
