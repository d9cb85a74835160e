package breakout

import (
	"fmt"

	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// Cell is a position on the block grid.
type Cell struct {
	GX, GY int
}

// BlockKey is the identity of a block: grid position plus starting health.
type BlockKey struct {
	GX, GY    int
	HealthMax int
}

// Block is a static, damageable grid cell.
type Block struct {
	GX, GY      int
	Type        string
	HealthMax   int
	DamageTaken int
	Shielded    bool // only bullets damage it
	Color       core.Color
	Points      int
}

func newBlock(cell Cell, typ string, health int, shielded bool, color core.Color, points int) *Block {
	if health <= 0 {
		panic(fmt.Sprintf("breakout: block %q health must be positive, got %d", typ, health))
	}
	return &Block{
		GX:        cell.GX,
		GY:        cell.GY,
		Type:      typ,
		HealthMax: health,
		Shielded:  shielded,
		Color:     color,
		Points:    points,
	}
}

// Key returns the block's identity.
func (b *Block) Key() BlockKey {
	return BlockKey{GX: b.GX, GY: b.GY, HealthMax: b.HealthMax}
}

// Cell returns the grid position.
func (b *Block) Cell() Cell {
	return Cell{GX: b.GX, GY: b.GY}
}

// Bounds returns the block's box for a given cell size.
func (b *Block) Bounds(size float64) core.Box {
	return core.Box{X: float64(b.GX) * size, Y: float64(b.GY) * size, W: size, H: size}
}

// Center returns the block's center for a given cell size.
func (b *Block) Center(size float64) core.Vec2 {
	return b.Bounds(size).Center()
}

// TakeDamageFrom applies the sprite's damage. Shielded blocks only yield to bullets.
func (b *Block) TakeDamageFrom(s *Sprite) {
	if b.Shielded && s.Kind != KindBullet {
		return
	}
	if s.Damage < 0 {
		panic(fmt.Sprintf("breakout: negative damage %d from %s", s.Damage, s.Kind))
	}
	b.DamageTaken += s.Damage
}

// IsDead reports whether the block's health is exhausted.
func (b *Block) IsDead() bool {
	return b.DamageTaken >= b.HealthMax
}

// Health returns the remaining health.
func (b *Block) Health() int {
	if h := b.HealthMax - b.DamageTaken; h > 0 {
		return h
	}
	return 0
}
