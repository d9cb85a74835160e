package breakout

import "math"

// Snapshot contains the complete observable game state.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick       uint64
	Level      int
	Lives      int
	Score      int
	State      int
	Paused     bool
	GodMode    bool
	BallLocked bool
	FireTimer  int

	MoveSpeed  float64
	ThrowSpeed float64

	// Sprites (each is 8 values: Kind, X, Y, VX, VY, W, H, Health)
	SpriteCount int
	SpriteData  []float64

	// Blocks (each is 4 ints: GX, GY, HealthMax, DamageTaken)
	BlockCount int
	BlockData  []int

	// Power-ups (each is 3 ints: GX, GY, Effect)
	PowerUpCount int
	PowerUpData  []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	spriteData := make([]float64, 0, len(g.entities)*8)
	for _, s := range g.entities {
		spriteData = append(spriteData,
			float64(s.Kind), s.Pos.X, s.Pos.Y, s.Vel.X, s.Vel.Y, s.W, s.H, float64(s.Health()))
	}

	blockData := make([]int, 0, len(g.blocks)*4)
	for _, b := range g.blocks {
		blockData = append(blockData, b.GX, b.GY, b.HealthMax, b.DamageTaken)
	}

	powerUpData := make([]int, 0, len(g.powerUps)*3)
	for _, p := range g.powerUps {
		powerUpData = append(powerUpData, p.GX, p.GY, int(p.Effect))
	}

	return Snapshot{
		Tick:       g.tick,
		Level:      g.level,
		Lives:      g.lives,
		Score:      g.score,
		State:      int(g.state),
		Paused:     g.paused,
		GodMode:    g.godMode,
		BallLocked: g.ballLocked,
		FireTimer:  g.fireTimer,

		MoveSpeed:  g.moveSpeed,
		ThrowSpeed: g.throwSpeed,

		SpriteCount:  len(g.entities),
		SpriteData:   spriteData,
		BlockCount:   len(g.blocks),
		BlockData:    blockData,
		PowerUpCount: len(g.powerUps),
		PowerUpData:  powerUpData,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FireTimer)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpriteCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BlockCount)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUpCount) //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.Paused)
	h = h*31 + boolBits(snap.GodMode)
	h = h*31 + boolBits(snap.BallLocked)
	h = h*31 + math.Float64bits(snap.MoveSpeed)
	h = h*31 + math.Float64bits(snap.ThrowSpeed)

	for _, v := range snap.SpriteData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.PowerUpData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
