package breakout

import (
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// Apply performs the intents of an input frame in arrival order.
// Events left over from the previous step are discarded first.
func (g *Game) Apply(in core.InputFrame) {
	g.events = g.events[:0]
	var pu, lv int
	for _, a := range in.Actions {
		switch a {
		case core.ActionLeft:
			g.MoveLeft()
		case core.ActionRight:
			g.MoveRight()
		case core.ActionFire:
			g.FireBullet()
		case core.ActionThrow:
			g.ThrowBall()
		case core.ActionGodMode:
			g.ToggleGodMode()
		case core.ActionResetPositions:
			g.ResetPositions()
		case core.ActionRestart:
			g.Restart()
		case core.ActionPause:
			if g.paused {
				g.Resume()
			} else {
				g.Pause()
			}
		case core.ActionNuke:
			g.Nuke()
		case core.ActionPowerUp:
			if pu < len(in.PowerUps) {
				g.ActivatePowerUp(in.PowerUps[pu])
				pu++
			}
		case core.ActionJumpLevel:
			if lv < len(in.Levels) {
				g.JumpToLevel(in.Levels[lv])
				lv++
			}
		case core.ActionNone, core.ActionConfirm, core.ActionBack, core.ActionQuit:
		}
	}
}

// MoveLeft moves the paddle one step left.
func (g *Game) MoveLeft() { g.movePaddle(-g.moveSpeed) }

// MoveRight moves the paddle one step right.
func (g *Game) MoveRight() { g.movePaddle(g.moveSpeed) }

// movePaddle shifts the paddle inside the side walls. A locked ball rides along.
func (g *Game) movePaddle(dx float64) {
	if !g.IsRunning() {
		return
	}
	p := g.paddle
	oldX := p.Pos.X
	p.Pos.X = core.ClampF(oldX+dx, 0, g.fieldW()-p.W)
	if g.ballLocked {
		g.ball.Pos.X += p.Pos.X - oldX
	}
}

// FireBullet launches a bullet straight up from the paddle's center.
func (g *Game) FireBullet() {
	if !g.IsRunning() {
		return
	}
	bc := g.cfg.Bullet
	c := g.paddle.Center()
	pos := core.V(c.X-bc.Width/2, g.paddle.Pos.Y-bc.Height)
	s := newSprite(g.nextSpriteID(), KindBullet, pos, bc.Width, bc.Height, bc.Damage)
	s.Vel = core.V(0, -bc.Speed)
	g.entities = append(g.entities, s)
}

// ThrowBall releases a resting primary ball upward, angled away from the
// paddle's center. A ball already in flight is left alone.
func (g *Game) ThrowBall() {
	if !g.IsRunning() || !g.ball.Vel.IsZero() {
		return
	}
	b := g.ball
	b.Pos.Y = g.ballY()
	vx := g.cfg.Ball.ThrowX
	if b.Center().X <= g.paddle.Center().X {
		vx = -vx
	}
	b.Vel = core.V(vx, -g.throwSpeed)
	g.ballLocked = false
}

// ToggleGodMode switches god mode: the paddle takes no damage and balls
// bounce off the bottom wall.
func (g *Game) ToggleGodMode() {
	if !g.IsRunning() {
		return
	}
	g.godMode = !g.godMode
	g.logger.Debug("god mode", "on", g.godMode)
}

// JumpToLevel loads level n directly. Levels outside the configured range
// are ignored.
func (g *Game) JumpToLevel(n int) {
	if !g.IsRunning() || n < 1 || n > g.cfg.LastLevel() {
		return
	}
	g.transitionLevel(n)
}

// ResetPositions puts the paddle and primary ball back on their marks.
func (g *Game) ResetPositions() {
	if !g.IsRunning() {
		return
	}
	g.resetPositions()
}

// Nuke ends the run as lost.
func (g *Game) Nuke() {
	if !g.IsRunning() {
		return
	}
	g.lives = 0
	g.state = StateLost
	g.emit(Event{Kind: EventGameLost, Value: g.score})
	g.logger.Info("game lost", "level", g.level, "score", g.score, "nuked", true)
}

// Restart begins a new run at level 1 from any state.
func (g *Game) Restart() {
	g.logger.Debug("restart", "from", g.state)
	g.newRun(1)
}

// Pause suspends the simulation.
func (g *Game) Pause() {
	if g.state == StatePlaying {
		g.paused = true
	}
}

// Resume continues a paused simulation.
func (g *Game) Resume() {
	g.paused = false
}
