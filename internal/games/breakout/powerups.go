package breakout

import (
	"fmt"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// Effect is the built-in modifier a power-up type is bound to.
type Effect int

const (
	EffectSpeed    Effect = iota // toggles paddle move speed
	EffectSlow                   // toggles ball throw speed
	EffectMultiply               // spawns auxiliary balls
	EffectGrowth                 // toggles paddle width
	EffectHeal                   // clears paddle damage
)

// String returns the configuration name of the effect.
func (e Effect) String() string {
	switch e {
	case EffectSpeed:
		return config.EffectSpeed
	case EffectSlow:
		return config.EffectSlow
	case EffectMultiply:
		return config.EffectMultiply
	case EffectGrowth:
		return config.EffectGrowth
	case EffectHeal:
		return config.EffectHeal
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// Glyph returns the character used to draw the power-up.
func (e Effect) Glyph() rune {
	switch e {
	case EffectSpeed:
		return '»'
	case EffectSlow:
		return '«'
	case EffectMultiply:
		return '×'
	case EffectGrowth:
		return '↔'
	case EffectHeal:
		return '+'
	default:
		return '?'
	}
}

func parseEffect(name string) (Effect, error) {
	switch name {
	case config.EffectSpeed:
		return EffectSpeed, nil
	case config.EffectSlow:
		return EffectSlow, nil
	case config.EffectMultiply:
		return EffectMultiply, nil
	case config.EffectGrowth:
		return EffectGrowth, nil
	case config.EffectHeal:
		return EffectHeal, nil
	default:
		return 0, fmt.Errorf("unknown effect %q", name)
	}
}

// PowerUp is a collectible marker sitting in a grid cell.
type PowerUp struct {
	ID     int
	GX, GY int
	Type   string
	Effect Effect
	Color  core.Color
}

// Cell returns the grid position.
func (p *PowerUp) Cell() Cell {
	return Cell{GX: p.GX, GY: p.GY}
}

// Bounds returns the power-up's box, centered inside its cell.
func (p *PowerUp) Bounds(blockSize, size float64) core.Box {
	inset := (blockSize - size) / 2
	return core.Box{
		X: float64(p.GX)*blockSize + inset,
		Y: float64(p.GY)*blockSize + inset,
		W: size,
		H: size,
	}
}
