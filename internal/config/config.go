// Package config provides YAML-based game configuration loading, validation
// and difficulty management for Hostile Breakout.
//
// The configuration is an immutable value: it is loaded once, validated, and
// passed explicitly to the level factory and entity constructors.
package config

// BreakoutConfig contains all configuration for the game.
type BreakoutConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Ball       BallConfig       `yaml:"ball"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Blocks     BlocksConfig     `yaml:"blocks"`
	PowerUps   PowerUpsConfig   `yaml:"power_ups"`
	Levels     []LevelConfig    `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ScreenConfig defines the logical scene size in world pixels.
// The playfield is the scene minus the heads-up display strip.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	HUDHeight int `yaml:"hud_height"`
}

// GameplayConfig defines lives and scoring.
type GameplayConfig struct {
	Lives           int `yaml:"lives"`
	PointsPerHealth int `yaml:"points_per_health"` // score per point of block health when a type sets no points
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Health       int     `yaml:"health"`
	Damage       int     `yaml:"damage"`
	MoveSpeed    float64 `yaml:"move_speed"` // pixels per move intent
	BottomMargin float64 `yaml:"bottom_margin"`
}

// BallConfig defines the primary and auxiliary balls.
type BallConfig struct {
	Size   float64 `yaml:"size"`
	Damage int     `yaml:"damage"`
	Speed  float64 `yaml:"speed"`   // vertical throw speed, pixels per second
	ThrowX float64 `yaml:"throw_x"` // horizontal throw speed, pixels per second
}

// BulletConfig defines projectiles fired by the paddle and the antagonist.
type BulletConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Damage int     `yaml:"damage"`
	Speed  float64 `yaml:"speed"`
}

// BlocksConfig defines the grid cell size and the ordered block types.
// Placement walks Types in declared order.
type BlocksConfig struct {
	Size  int         `yaml:"size"`
	Types []BlockType `yaml:"types"`
}

// BlockType describes one kind of block.
type BlockType struct {
	Name     string `yaml:"name"`
	Health   int    `yaml:"health"`
	Color    string `yaml:"color"`
	Shielded bool   `yaml:"shielded"` // only bullets damage it
	Points   int    `yaml:"points"`
}

// PowerUpsConfig defines collectible modifiers and their tuning.
type PowerUpsConfig struct {
	Size             float64       `yaml:"size"`
	SpeedMultiplier  float64       `yaml:"speed_multiplier"`
	SlowAmount       float64       `yaml:"slow_amount"`
	GrowthMultiplier float64       `yaml:"growth_multiplier"`
	MultiplyCount    int           `yaml:"multiply_count"`
	Types            []PowerUpType `yaml:"types"`
}

// PowerUpType binds a configured power-up name to one of the built-in effects.
type PowerUpType struct {
	Name   string `yaml:"name"`
	Effect string `yaml:"effect"`
	Color  string `yaml:"color"`
	Key    string `yaml:"key"` // cheat key that activates it directly
}

// Known power-up effects.
const (
	EffectSpeed    = "speed"
	EffectSlow     = "slow"
	EffectMultiply = "multiply"
	EffectGrowth   = "growth"
	EffectHeal     = "heal"
)

// KnownEffects lists every effect name a power-up type may bind to.
var KnownEffects = []string{EffectSpeed, EffectSlow, EffectMultiply, EffectGrowth, EffectHeal}

// LevelConfig declares per-type counts for one level.
type LevelConfig struct {
	Name             string         `yaml:"name"`
	Blocks           map[string]int `yaml:"blocks"`
	PowerUps         map[string]int `yaml:"power_ups"`
	HostileFireEvery int            `yaml:"hostile_fire_every"` // ticks between antagonist shots, 0 = never
}

// DifficultyConfig defines how antagonist fire ramps up during a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	FireRateMultiplier float64 `yaml:"fire_rate_multiplier"` // extra fire rate at max difficulty
}

// GridDimension returns N for the N x N block grid.
func (c BreakoutConfig) GridDimension() int {
	if c.Blocks.Size <= 0 {
		return 0
	}
	return c.Screen.Width / c.Blocks.Size
}

// PlayfieldWidth returns the playfield width in world pixels.
func (c BreakoutConfig) PlayfieldWidth() float64 {
	return float64(c.Screen.Width)
}

// PlayfieldHeight returns the playfield height in world pixels.
func (c BreakoutConfig) PlayfieldHeight() float64 {
	return float64(c.Screen.Height - c.Screen.HUDHeight)
}

// LastLevel returns the index of the last configured level (1-based).
func (c BreakoutConfig) LastLevel() int {
	return len(c.Levels)
}

// Level returns the configuration of a 1-based level index.
func (c BreakoutConfig) Level(n int) (LevelConfig, bool) {
	if n < 1 || n > len(c.Levels) {
		return LevelConfig{}, false
	}
	return c.Levels[n-1], true
}

// BlockType looks up a block type by name.
func (c BreakoutConfig) BlockType(name string) (BlockType, bool) {
	for _, bt := range c.Blocks.Types {
		if bt.Name == name {
			return bt, true
		}
	}
	return BlockType{}, false
}

// PowerUpType looks up a power-up type by name.
func (c BreakoutConfig) PowerUpType(name string) (PowerUpType, bool) {
	for _, pt := range c.PowerUps.Types {
		if pt.Name == name {
			return pt, true
		}
	}
	return PowerUpType{}, false
}

// PointsFor returns the score awarded for destroying a block of the type.
func (c BreakoutConfig) PointsFor(bt BlockType) int {
	if bt.Points > 0 {
		return bt.Points
	}
	return bt.Health * c.Gameplay.PointsPerHealth
}

// BlockTotal returns the sum of block counts declared for a level.
func (l LevelConfig) BlockTotal() int {
	total := 0
	for _, n := range l.Blocks {
		total += n
	}
	return total
}

// PowerUpTotal returns the sum of power-up counts declared for a level.
func (l LevelConfig) PowerUpTotal() int {
	total := 0
	for _, n := range l.PowerUps {
		total += n
	}
	return total
}
