package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/games/breakout"
)

var flagShowMap bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Check and describe the configured levels",
	Long: `Build every configured level with the level factory and report
what it contains. A level that cannot be populated in full is reported
with the reason and makes the command fail.

Layouts depend on --seed; pass one to preview a reproducible layout.

Examples:
  breakout levels
  breakout levels --map --seed 7
  breakout levels --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagShowMap, "map", false, "Draw each level's grid")
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := readConfigForLevels()
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	seed := uint64(flagSeed) //#nosec G115 -- seed bits
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	factory := breakout.NewLevelFactory(cfg, rng)
	dim := cfg.GridDimension()

	failed := 0
	for n := 1; n <= cfg.LastLevel(); n++ {
		lvl, _ := cfg.Level(n)
		fmt.Printf("Level %d: %s\n", n, lvl.Name)

		layout, err := factory.Build(n)
		if err != nil {
			failed++
			fmt.Printf("  ERROR %v\n\n", err)
			continue
		}

		fmt.Printf("  blocks    %s\n", formatCounts(lvl.Blocks))
		fmt.Printf("  power-ups %s\n", formatCounts(lvl.PowerUps))
		if layout.HostileFireEvery > 0 {
			fmt.Printf("  hostile fire every %d ticks\n", layout.HostileFireEvery)
		}
		if flagShowMap {
			for _, row := range layout.Map(dim) {
				fmt.Printf("    %s\n", row)
			}
		}
		fmt.Println()
	}

	fmt.Printf("%d levels, %dx%d grid\n", cfg.LastLevel(), dim, dim)
	if failed > 0 {
		logger.Error("some levels cannot be built", "failed", failed)
		os.Exit(1)
	}
}

// readConfigForLevels loads the config but tolerates level problems so
// they can be reported one by one.
func readConfigForLevels() (config.BreakoutConfig, error) {
	if flagConfig == "" {
		cfg, _, _, err := loadGameConfig()
		return cfg, err
	}

	data, err := os.ReadFile(flagConfig)
	if err != nil {
		return config.BreakoutConfig{}, err
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil && !isLevelError(err) {
		return cfg, err
	}
	return cfg, nil
}

func isLevelError(err error) bool {
	var verr config.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	switch verr.Code {
	case config.CodeUnknownLevel, config.CodeUnknownBlockType, config.CodeUnknownPowerUpType,
		config.CodeNegativeCount, config.CodeEmptyLevel, config.CodeTooManyBlocks, config.CodeTooManyPowerUps:
		return true
	}
	return false
}

// formatCounts renders per-type counts in a stable order.
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "-"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s×%d", name, counts[name])
	}
	return strings.Join(parts, " ")
}
