package breakout

import (
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// modifiers holds the toggle state of the power-up effects. Every toggle is
// binary: a second activation restores the base value.
type modifiers struct {
	speedBoosted bool
	slowed       bool
	grown        bool
}

// applyEffect runs one activation of an effect.
func (g *Game) applyEffect(e Effect) {
	switch e {
	case EffectSpeed:
		g.mods.speedBoosted = !g.mods.speedBoosted
		g.moveSpeed = g.cfg.Paddle.MoveSpeed
		if g.mods.speedBoosted {
			g.moveSpeed *= g.cfg.PowerUps.SpeedMultiplier
		}
	case EffectSlow:
		g.mods.slowed = !g.mods.slowed
		g.throwSpeed = g.cfg.Ball.Speed
		if g.mods.slowed {
			g.throwSpeed -= g.cfg.PowerUps.SlowAmount
		}
	case EffectGrowth:
		g.mods.grown = !g.mods.grown
		w := g.cfg.Paddle.Width
		if g.mods.grown {
			w *= g.cfg.PowerUps.GrowthMultiplier
		}
		g.resizePaddle(w)
	case EffectMultiply:
		g.spawnBalls(g.cfg.PowerUps.MultiplyCount)
	case EffectHeal:
		g.paddle.ResetHealth()
	}
	g.logger.Debug("power-up applied", "effect", e, "moveSpeed", g.moveSpeed, "throwSpeed", g.throwSpeed)
}

// resetModifiers returns every toggle to its base value.
func (g *Game) resetModifiers() {
	g.mods = modifiers{}
	g.moveSpeed = g.cfg.Paddle.MoveSpeed
	g.throwSpeed = g.cfg.Ball.Speed
	g.resizePaddle(g.cfg.Paddle.Width)
}

// resizePaddle changes the paddle width around its center, kept inside the field.
func (g *Game) resizePaddle(w float64) {
	if g.paddle.W == w {
		return
	}
	cx := g.paddle.Center().X
	g.paddle.W = w
	g.paddle.Pos.X = core.ClampF(cx-w/2, 0, g.fieldW()-w)
}

// spawnBalls adds auxiliary balls at the entry point just below the block
// wall, each moving down and right at a random speed.
func (g *Game) spawnBalls(n int) {
	size := g.cfg.Ball.Size
	entry := core.V(0, g.gridBottom())
	for range n {
		b := newSprite(g.nextSpriteID(), KindBall, entry, size, size, g.cfg.Ball.Damage)
		b.Vel = core.V(g.rng.Float64()*g.cfg.Ball.ThrowX, g.rng.Float64()*g.cfg.Ball.Speed)
		g.entities = append(g.entities, b)
	}
}

// ActivatePowerUp applies the effect bound to a configured power-up type as
// if it had been collected. Unknown types are ignored.
func (g *Game) ActivatePowerUp(typ string) {
	if !g.IsRunning() {
		return
	}
	pt, ok := g.cfg.PowerUpType(typ)
	if !ok {
		return
	}
	e, err := parseEffect(pt.Effect)
	if err != nil {
		return
	}
	g.applyEffect(e)
}

// MoveSpeed returns the paddle's current move speed.
func (g *Game) MoveSpeed() float64 {
	return g.moveSpeed
}

// ThrowSpeed returns the ball's current vertical throw speed.
func (g *Game) ThrowSpeed() float64 {
	return g.throwSpeed
}
