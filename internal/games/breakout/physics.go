package breakout

// integrate moves every entity and applies the wall rules. The paddle moves
// only through intents and bullets fly through the walls.
func (g *Game) integrate(dt float64) {
	w, h := g.fieldW(), g.fieldH()
	for _, s := range g.entities {
		switch s.Kind {
		case KindPaddle:
			continue
		case KindBullet:
			s.UpdatePosition(dt)
		case KindBall:
			s.UpdatePosition(dt)
			g.bounceOffWalls(s, w, h)
		}
	}
}

// bounceOffWalls reflects a ball off the side and top walls, and off the
// bottom wall in god mode. A component is only reversed while it still points
// out of the field, so a ball straddling a wall cannot flip-flop.
func (g *Game) bounceOffWalls(s *Sprite, w, h float64) {
	b := s.Bounds()
	if (b.X < 0 && s.Vel.X < 0) || (b.Right() > w && s.Vel.X > 0) {
		s.ReverseCourseX()
	}
	if b.Y < 0 && s.Vel.Y < 0 {
		s.ReverseCourseY()
	}
	if g.godMode && b.Bottom() > h && s.Vel.Y > 0 {
		s.ReverseCourseY()
	}
}
