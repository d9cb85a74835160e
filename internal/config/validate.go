package config

import (
	"fmt"
	"slices"
	"sort"

	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// ValidationError contains details about a configuration failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation error codes.
const (
	CodeInvalidScreen      = "INVALID_SCREEN"
	CodeInvalidEntity      = "INVALID_ENTITY"
	CodeInvalidBlockType   = "INVALID_BLOCK_TYPE"
	CodeInvalidPowerUpType = "INVALID_POWERUP_TYPE"
	CodeUnknownColor       = "UNKNOWN_COLOR"
	CodeNoLevels           = "NO_LEVELS"
	CodeUnknownLevel       = "UNKNOWN_LEVEL"
	CodeUnknownBlockType   = "UNKNOWN_BLOCK_TYPE"
	CodeUnknownPowerUpType = "UNKNOWN_POWERUP_TYPE"
	CodeNegativeCount      = "NEGATIVE_COUNT"
	CodeEmptyLevel         = "EMPTY_LEVEL"
	CodeTooManyBlocks      = "TOO_MANY_BLOCKS"
	CodeTooManyPowerUps    = "TOO_MANY_POWERUPS"
)

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate performs full validation of the configuration.
// Checks:
//   - Scene, grid and entity dimensions are positive
//   - Block and power-up types are well formed and uniquely named
//   - Every declared level can be built (see ValidateLevel)
func (c BreakoutConfig) Validate() error {
	if err := c.validateScene(); err != nil {
		return err
	}
	if err := c.validateEntities(); err != nil {
		return err
	}
	if err := c.validateBlockTypes(); err != nil {
		return err
	}
	if err := c.validatePowerUpTypes(); err != nil {
		return err
	}
	if len(c.Levels) == 0 {
		return invalid(CodeNoLevels, "at least one level must be declared")
	}
	for n := 1; n <= c.LastLevel(); n++ {
		if err := c.ValidateLevel(n); err != nil {
			return err
		}
	}
	return nil
}

func (c BreakoutConfig) validateScene() error {
	s := c.Screen
	if s.Width <= 0 || s.Height <= 0 {
		return invalid(CodeInvalidScreen, "screen must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.HUDHeight < 0 || s.HUDHeight >= s.Height {
		return invalid(CodeInvalidScreen, "hud_height %d must be in [0, %d)", s.HUDHeight, s.Height)
	}
	if c.Blocks.Size <= 0 || c.Blocks.Size > s.Width {
		return invalid(CodeInvalidScreen, "block size %d must be in (0, %d]", c.Blocks.Size, s.Width)
	}
	if float64(c.GridDimension()*c.Blocks.Size) > c.PlayfieldHeight() {
		return invalid(CodeInvalidScreen, "a %dx%d grid of %dpx blocks does not fit a playfield %v tall",
			c.GridDimension(), c.GridDimension(), c.Blocks.Size, c.PlayfieldHeight())
	}
	return nil
}

func (c BreakoutConfig) validateEntities() error {
	switch {
	case c.Gameplay.Lives <= 0:
		return invalid(CodeInvalidEntity, "lives must be positive, got %d", c.Gameplay.Lives)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return invalid(CodeInvalidEntity, "paddle size must be positive")
	case c.Paddle.Width > c.PlayfieldWidth():
		return invalid(CodeInvalidEntity, "paddle width %v exceeds playfield width %v", c.Paddle.Width, c.PlayfieldWidth())
	case c.Paddle.Health <= 0:
		return invalid(CodeInvalidEntity, "paddle health must be positive, got %d", c.Paddle.Health)
	case c.Paddle.MoveSpeed <= 0:
		return invalid(CodeInvalidEntity, "paddle move_speed must be positive")
	case c.Ball.Size <= 0:
		return invalid(CodeInvalidEntity, "ball size must be positive")
	case c.Ball.Speed <= 0 || c.Ball.ThrowX < 0:
		return invalid(CodeInvalidEntity, "ball speed must be positive and throw_x non-negative")
	case c.Bullet.Width <= 0 || c.Bullet.Height <= 0 || c.Bullet.Speed <= 0:
		return invalid(CodeInvalidEntity, "bullet size and speed must be positive")
	case c.Paddle.Damage < 0 || c.Ball.Damage < 0 || c.Bullet.Damage < 0:
		return invalid(CodeInvalidEntity, "damage values must not be negative")
	case c.PowerUps.Size <= 0 || c.PowerUps.Size > float64(c.Blocks.Size):
		return invalid(CodeInvalidEntity, "power-up size %v must be in (0, %d]", c.PowerUps.Size, c.Blocks.Size)
	case c.PowerUps.SpeedMultiplier <= 0 || c.PowerUps.GrowthMultiplier <= 0:
		return invalid(CodeInvalidEntity, "power-up multipliers must be positive")
	case c.PowerUps.SlowAmount < 0 || c.PowerUps.SlowAmount >= c.Ball.Speed:
		return invalid(CodeInvalidEntity, "slow_amount %v must be in [0, %v)", c.PowerUps.SlowAmount, c.Ball.Speed)
	case c.PowerUps.MultiplyCount < 0:
		return invalid(CodeInvalidEntity, "multiply_count must not be negative")
	}
	return nil
}

func (c BreakoutConfig) validateBlockTypes() error {
	seen := make(map[string]bool)
	for _, bt := range c.Blocks.Types {
		if bt.Name == "" {
			return invalid(CodeInvalidBlockType, "block type without a name")
		}
		if seen[bt.Name] {
			return invalid(CodeInvalidBlockType, "block type %q declared twice", bt.Name)
		}
		seen[bt.Name] = true
		if bt.Health <= 0 {
			return invalid(CodeInvalidBlockType, "block type %q health must be positive, got %d", bt.Name, bt.Health)
		}
		if _, err := core.ParseColor(bt.Color); err != nil {
			return invalid(CodeUnknownColor, "block type %q: %v", bt.Name, err)
		}
	}
	return nil
}

func (c BreakoutConfig) validatePowerUpTypes() error {
	seen := make(map[string]bool)
	for _, pt := range c.PowerUps.Types {
		if pt.Name == "" {
			return invalid(CodeInvalidPowerUpType, "power-up type without a name")
		}
		if seen[pt.Name] {
			return invalid(CodeInvalidPowerUpType, "power-up type %q declared twice", pt.Name)
		}
		seen[pt.Name] = true
		if !slices.Contains(KnownEffects, pt.Effect) {
			return invalid(CodeInvalidPowerUpType, "power-up type %q has unknown effect %q", pt.Name, pt.Effect)
		}
		if _, err := core.ParseColor(pt.Color); err != nil {
			return invalid(CodeUnknownColor, "power-up type %q: %v", pt.Name, err)
		}
	}
	return nil
}

// ValidateLevel checks that a 1-based level can be populated in full:
// every referenced type exists, counts are non-negative, blocks fit the
// grid and power-ups do not outnumber blocks.
func (c BreakoutConfig) ValidateLevel(n int) error {
	lvl, ok := c.Level(n)
	if !ok {
		return invalid(CodeUnknownLevel, "level %d is not configured (last level is %d)", n, c.LastLevel())
	}

	// Sorted for stable error messages.
	for _, name := range sortedKeys(lvl.Blocks) {
		if _, ok := c.BlockType(name); !ok {
			return invalid(CodeUnknownBlockType, "level %d references unknown block type %q", n, name)
		}
		if lvl.Blocks[name] < 0 {
			return invalid(CodeNegativeCount, "level %d: negative count %d for block type %q", n, lvl.Blocks[name], name)
		}
	}
	for _, name := range sortedKeys(lvl.PowerUps) {
		if _, ok := c.PowerUpType(name); !ok {
			return invalid(CodeUnknownPowerUpType, "level %d references unknown power-up type %q", n, name)
		}
		if lvl.PowerUps[name] < 0 {
			return invalid(CodeNegativeCount, "level %d: negative count %d for power-up type %q", n, lvl.PowerUps[name], name)
		}
	}

	blocks := lvl.BlockTotal()
	if blocks == 0 {
		return invalid(CodeEmptyLevel, "level %d places no blocks", n)
	}
	grid := c.GridDimension()
	if blocks > grid*grid {
		return invalid(CodeTooManyBlocks, "level %d places %d blocks on a %dx%d grid", n, blocks, grid, grid)
	}
	if p := lvl.PowerUpTotal(); p > blocks {
		return invalid(CodeTooManyPowerUps, "level %d places %d power-ups but only %d blocks", n, p, blocks)
	}
	if lvl.HostileFireEvery < 0 {
		return invalid(CodeNegativeCount, "level %d: hostile_fire_every must not be negative", n)
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
