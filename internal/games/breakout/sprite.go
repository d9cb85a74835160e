package breakout

import (
	"fmt"

	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// Kind tags the variant of a moving entity.
type Kind int

const (
	KindBall Kind = iota
	KindBullet
	KindPaddle
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindBullet:
		return "bullet"
	case KindPaddle:
		return "paddle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Vitals is the health capability carried by Character entities.
type Vitals struct {
	HealthMax   int
	DamageTaken int
}

func newVitals(health int) *Vitals {
	if health <= 0 {
		panic(fmt.Sprintf("breakout: character health must be positive, got %d", health))
	}
	return &Vitals{HealthMax: health}
}

// Sprite is a moving, collidable entity. Identity is the pointer: two sprites
// with equal fields are still different entities.
type Sprite struct {
	ID      int
	Kind    Kind
	Pos     core.Vec2 // top-left corner, world pixels
	Vel     core.Vec2 // pixels per second
	W, H    float64
	Damage  int     // damage dealt to whatever it hits
	Vitals  *Vitals // non-nil for Characters
	Primary bool    // the player's own ball
	Hostile bool    // fired by the antagonist
}

func newSprite(id int, kind Kind, pos core.Vec2, w, h float64, damage int) *Sprite {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("breakout: negative sprite size %vx%v", w, h))
	}
	return &Sprite{ID: id, Kind: kind, Pos: pos, W: w, H: h, Damage: damage}
}

// Bounds returns the axis-aligned bounding box.
func (s *Sprite) Bounds() core.Box {
	return core.Box{X: s.Pos.X, Y: s.Pos.Y, W: s.W, H: s.H}
}

// Center returns the center point.
func (s *Sprite) Center() core.Vec2 {
	return s.Bounds().Center()
}

// UpdatePosition advances the sprite by velocity * dt.
func (s *Sprite) UpdatePosition(dt float64) {
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))
}

// CollidesWith reports whether the bounds overlap and other is a different entity.
func (s *Sprite) CollidesWith(other *Sprite) bool {
	if other == nil || other == s {
		return false
	}
	return s.Bounds().Intersects(other.Bounds())
}

// ReverseCourseX negates the horizontal velocity.
func (s *Sprite) ReverseCourseX() {
	s.Vel.X = -s.Vel.X
}

// ReverseCourseY negates the vertical velocity.
func (s *Sprite) ReverseCourseY() {
	s.Vel.Y = -s.Vel.Y
}

// Repel negates the full velocity vector.
func (s *Sprite) Repel() {
	s.Vel = s.Vel.Neg()
}

// BounceOffBlock guesses the struck face from center distances alone: when
// the centers are closer horizontally than vertically the hit came from
// above or below. Near corners this can pick the other face; that is kept.
func (s *Sprite) BounceOffBlock(b *Block, blockSize float64) {
	bc := b.Center(blockSize)
	sc := s.Center()
	dx := bc.X - sc.X
	dy := bc.Y - sc.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx < dy {
		s.ReverseCourseY()
	} else {
		s.ReverseCourseX()
	}
}

// IsCharacter reports whether the sprite carries health.
func (s *Sprite) IsCharacter() bool {
	return s.Vitals != nil
}

// TakeDamageFrom applies the aggressor's damage if this sprite is a
// Character that accepts damage from that kind. Paddles are hurt by bullets
// only. Non-characters ignore damage.
func (s *Sprite) TakeDamageFrom(aggressor *Sprite) {
	if s.Vitals == nil {
		return
	}
	if aggressor.Damage < 0 {
		panic(fmt.Sprintf("breakout: negative damage %d from %s", aggressor.Damage, aggressor.Kind))
	}
	switch s.Kind {
	case KindPaddle:
		if aggressor.Kind == KindBullet {
			s.Vitals.DamageTaken += aggressor.Damage
		}
	case KindBall, KindBullet:
		s.Vitals.DamageTaken += aggressor.Damage
	}
}

// IsDead reports whether a Character's health is exhausted.
func (s *Sprite) IsDead() bool {
	return s.Vitals != nil && s.Vitals.DamageTaken >= s.Vitals.HealthMax
}

// Health returns the remaining health, or 0 for non-characters.
func (s *Sprite) Health() int {
	if s.Vitals == nil {
		return 0
	}
	h := s.Vitals.HealthMax - s.Vitals.DamageTaken
	if h < 0 {
		return 0
	}
	return h
}

// ResetHealth clears all damage taken.
func (s *Sprite) ResetHealth() {
	if s.Vitals != nil {
		s.Vitals.DamageTaken = 0
	}
}

// outside reports whether the sprite is entirely out of the playfield.
func (s *Sprite) outside(w, h float64) bool {
	b := s.Bounds()
	return b.Bottom() <= 0 || b.Y >= h || b.Right() <= 0 || b.X >= w
}
