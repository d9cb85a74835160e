package breakout

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// LoadError reports a level that could not be populated in full.
type LoadError struct {
	Level int
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load level %d: %v", e.Level, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LevelLayout is the populated content of one level.
type LevelLayout struct {
	Level            int
	Name             string
	Blocks           []*Block
	PowerUps         []*PowerUp
	HostileFireEvery int
}

// LevelFactory places blocks and power-ups for a level from per-type counts.
// Shapes come from configuration, positions from the random source, so a
// layout is reproducible only under the same seed.
type LevelFactory struct {
	cfg            config.BreakoutConfig
	rng            *rand.Rand
	valid          []Cell // cells not yet holding a block
	blockPositions []Cell // cells eligible for power-ups
}

// NewLevelFactory creates a factory over a fixed configuration.
func NewLevelFactory(cfg config.BreakoutConfig, rng *rand.Rand) *LevelFactory {
	return &LevelFactory{cfg: cfg, rng: rng}
}

// Build populates the given 1-based level. Any configuration problem fails
// the whole load; a partial layout is never returned.
func (f *LevelFactory) Build(level int) (*LevelLayout, error) {
	if err := f.cfg.ValidateLevel(level); err != nil {
		return nil, &LoadError{Level: level, Err: err}
	}
	lvl, _ := f.cfg.Level(level)

	f.resetPools()

	layout := &LevelLayout{
		Level:            level,
		Name:             lvl.Name,
		HostileFireEvery: lvl.HostileFireEvery,
	}

	placed := make(map[Cell]bool)
	for _, bt := range f.cfg.Blocks.Types {
		count := lvl.Blocks[bt.Name]
		if count == 0 {
			continue
		}
		color, err := core.ParseColor(bt.Color)
		if err != nil {
			return nil, &LoadError{Level: level, Err: fmt.Errorf("block type %q: %w", bt.Name, err)}
		}
		points := f.cfg.PointsFor(bt)
		for range count {
			cell := draw(f.rng, &f.valid)
			if placed[cell] {
				panic(fmt.Sprintf("breakout: cell %v placed twice in level %d", cell, level))
			}
			placed[cell] = true
			layout.Blocks = append(layout.Blocks, newBlock(cell, bt.Name, bt.Health, bt.Shielded, color, points))
		}
	}

	f.restrictToBlocks()

	covered := make(map[Cell]bool)
	nextID := 1
	for _, pt := range f.cfg.PowerUps.Types {
		count := lvl.PowerUps[pt.Name]
		if count == 0 {
			continue
		}
		effect, err := parseEffect(pt.Effect)
		if err != nil {
			return nil, &LoadError{Level: level, Err: fmt.Errorf("power-up type %q: %w", pt.Name, err)}
		}
		color, err := core.ParseColor(pt.Color)
		if err != nil {
			return nil, &LoadError{Level: level, Err: fmt.Errorf("power-up type %q: %w", pt.Name, err)}
		}
		for range count {
			cell := draw(f.rng, &f.blockPositions)
			if covered[cell] || !placed[cell] {
				panic(fmt.Sprintf("breakout: power-up cell %v invalid in level %d", cell, level))
			}
			covered[cell] = true
			layout.PowerUps = append(layout.PowerUps, &PowerUp{
				ID:     nextID,
				GX:     cell.GX,
				GY:     cell.GY,
				Type:   pt.Name,
				Effect: effect,
				Color:  color,
			})
			nextID++
		}
	}

	return layout, nil
}

// resetPools fills the valid pool with every grid cell and copies it into
// the block-position pool.
func (f *LevelFactory) resetPools() {
	n := f.cfg.GridDimension()
	f.valid = f.valid[:0]
	for gx := range n {
		for gy := range n {
			f.valid = append(f.valid, Cell{GX: gx, GY: gy})
		}
	}
	f.blockPositions = append(f.blockPositions[:0], f.valid...)
}

// restrictToBlocks drops every cell that did not receive a block from the
// block-position pool.
func (f *LevelFactory) restrictToBlocks() {
	empty := make(map[Cell]bool, len(f.valid))
	for _, c := range f.valid {
		empty[c] = true
	}
	kept := f.blockPositions[:0]
	for _, c := range f.blockPositions {
		if !empty[c] {
			kept = append(kept, c)
		}
	}
	f.blockPositions = kept
}

// draw removes and returns a uniformly chosen cell using swap-remove.
func draw(rng *rand.Rand, pool *[]Cell) Cell {
	p := *pool
	if len(p) == 0 {
		panic("breakout: drawing from an empty cell pool")
	}
	i := rng.IntN(len(p))
	c := p[i]
	last := len(p) - 1
	p[i] = p[last]
	*pool = p[:last]
	return c
}

// Map draws the layout as text rows, one rune per grid cell: the first
// letter of the block type, upper-cased when a power-up sits under it,
// and '.' for an empty cell.
func (l *LevelLayout) Map(dim int) []string {
	grid := make([][]rune, dim)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(".", dim))
	}
	for _, b := range l.Blocks {
		r := '#'
		if b.Type != "" {
			r = unicode.ToLower([]rune(b.Type)[0])
		}
		grid[b.GY][b.GX] = r
	}
	for _, p := range l.PowerUps {
		grid[p.GY][p.GX] = unicode.ToUpper(grid[p.GY][p.GX])
	}

	rows := make([]string, dim)
	for y, row := range grid {
		rows[y] = string(row)
	}
	return rows
}
