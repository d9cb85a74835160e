package breakout

import "github.com/vovakirdan/hostile-breakout/internal/core"

// collide runs the per-frame collision pass. Blocks are never removed here,
// only damaged; collected power-ups are applied after the scan finishes.
func (g *Game) collide() {
	blockSize := g.blockSize()
	puSize := g.cfg.PowerUps.Size

	g.collected = g.collected[:0]

	// The multiply effect appends to g.entities, but only after the scan.
	for _, s := range g.entities {
		sb := s.Bounds()

		for _, b := range g.blocks {
			if !sb.Intersects(b.Bounds(blockSize)) {
				continue
			}
			b.TakeDamageFrom(s)
			s.BounceOffBlock(b, blockSize)
			g.emit(Event{Kind: EventBlockHit, Cell: b.Cell(), Type: b.Type, Value: b.Health()})
		}

		for _, p := range g.powerUps {
			if sb.Intersects(p.Bounds(blockSize, puSize)) {
				g.collect(p)
			}
		}

		if s == g.paddle || !s.CollidesWith(g.paddle) {
			continue
		}
		if s == g.ball {
			g.catchBall()
			continue
		}
		g.collideSprites(s, g.paddle)
	}

	if len(g.collected) == 0 {
		return
	}
	for _, p := range g.collected {
		g.emit(Event{Kind: EventPowerUpCollected, Cell: p.Cell(), Type: p.Type})
		g.applyEffect(p.Effect)
	}
	g.removePowerUps(g.collected)
}

// collect records a power-up for activation once, in first-seen order.
func (g *Game) collect(p *PowerUp) {
	for _, c := range g.collected {
		if c == p {
			return
		}
	}
	g.collected = append(g.collected, p)
}

func (g *Game) removePowerUps(gone []*PowerUp) {
	kept := g.powerUps[:0]
	for _, p := range g.powerUps {
		drop := false
		for _, c := range gone {
			if c == p {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, p)
		}
	}
	clear(g.powerUps[len(kept):])
	g.powerUps = kept
}

// catchBall locks the primary ball to the paddle.
func (g *Game) catchBall() {
	if g.ballLocked {
		return
	}
	g.ball.Vel = core.Vec2{}
	g.ballLocked = true
	g.emit(Event{Kind: EventBallCaught})
}

// collideSprites exchanges damage both ways and bounces both sprites apart.
func (g *Game) collideSprites(a, b *Sprite) {
	if !g.shielded(a) {
		a.TakeDamageFrom(b)
	}
	if !g.shielded(b) {
		b.TakeDamageFrom(a)
	}
	a.Repel()
	b.Repel()
	g.emit(Event{Kind: EventSpriteCollision, Type: a.Kind.String()})
}

// shielded reports whether god mode protects the sprite.
func (g *Game) shielded(s *Sprite) bool {
	return g.godMode && s == g.paddle
}
