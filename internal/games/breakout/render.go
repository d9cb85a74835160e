package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar        = '='
	BallChar          = '●'
	BulletChar        = '¦'
	HostileBulletChar = '↓'
	ShieldedChar      = '#'
	BorderHoriz       = '─'
)

// Block glyphs by remaining health, full to nearly gone.
var blockGlyphs = []rune{'█', '▓', '▒', '░'}

// Minimum terminal size for a playable view.
const (
	MinScreenW = 24
	MinScreenH = 12
)

const hudRows = 2

// Render draws the current game state to the screen, scaling the playfield
// from world pixels to terminal cells below the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	v := newViewport(dst, g.fieldW(), g.fieldH())

	g.renderHUD(dst)

	// Power-ups sit behind their blocks and show once the block is gone.
	g.renderPowerUps(dst, v)
	g.renderBlocks(dst, v)
	g.renderEntities(dst, v)

	g.renderOverlay(dst)
}

// viewport maps world boxes to cell rectangles.
type viewport struct {
	top    int
	sx, sy float64
}

func newViewport(dst *core.Screen, w, h float64) viewport {
	return viewport{
		top: hudRows,
		sx:  float64(dst.Width()) / w,
		sy:  float64(dst.Height()-hudRows) / h,
	}
}

// cells returns the cell rectangle covering a world box, at least one cell.
func (v viewport) cells(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y * v.sy))
	x1 := int(math.Ceil(b.Right() * v.sx))
	y1 := int(math.Ceil(b.Bottom() * v.sy))
	return core.NewRect(x0, y0+v.top, max(x1-x0, 1), max(y1-y0, 1))
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))

	hp := fmt.Sprintf("Lives: %d  HP: %d/%d", g.lives, g.paddle.Health(), g.paddle.Vitals.HealthMax)
	dst.DrawTextCentered(0, hp)

	levelText := fmt.Sprintf("Level %d/%d", g.level, g.cfg.LastLevel())
	if g.levelName != "" && dst.Width() >= 60 {
		levelText += ": " + g.levelName
	}
	dst.DrawText(dst.Width()-len([]rune(levelText))-1, 0, levelText)

	dst.DrawHLine(0, 1, dst.Width(), BorderHoriz)
	if flags := g.modifierFlags(); flags != "" {
		dst.DrawTextColor(1, 1, " "+flags+" ", core.ColorBrightYellow)
	}
}

// modifierFlags lists the active toggles and god mode for the HUD.
func (g *Game) modifierFlags() string {
	var parts []string
	if g.godMode {
		parts = append(parts, "GOD")
	}
	if g.mods.speedBoosted {
		parts = append(parts, string(EffectSpeed.Glyph())+"speed")
	}
	if g.mods.slowed {
		parts = append(parts, string(EffectSlow.Glyph())+"slow")
	}
	if g.mods.grown {
		parts = append(parts, string(EffectGrowth.Glyph())+"wide")
	}
	return strings.Join(parts, " ")
}

func (g *Game) renderPowerUps(dst *core.Screen, v viewport) {
	bs := g.blockSize()
	for _, p := range g.powerUps {
		r := v.cells(p.Bounds(bs, g.cfg.PowerUps.Size))
		dst.SetColor(r.X+r.W/2, r.Y+r.H/2, p.Effect.Glyph(), p.Color)
	}
}

func (g *Game) renderBlocks(dst *core.Screen, v viewport) {
	bs := g.blockSize()
	for _, b := range g.blocks {
		r := v.cells(b.Bounds(bs))
		// Leave a one-cell gutter between neighbours when there is room.
		if r.W > 2 {
			r.W--
		}
		dst.FillRect(r, blockGlyph(b), b.Color)
	}
}

func blockGlyph(b *Block) rune {
	if b.Shielded {
		return ShieldedChar
	}
	idx := b.DamageTaken * len(blockGlyphs) / b.HealthMax
	return blockGlyphs[core.Clamp(idx, 0, len(blockGlyphs)-1)]
}

func (g *Game) renderEntities(dst *core.Screen, v viewport) {
	for _, s := range g.entities {
		r := v.cells(s.Bounds())
		switch s.Kind {
		case KindPaddle:
			color := core.ColorBrightWhite
			if g.godMode {
				color = core.ColorBrightYellow
			} else if s.Health() <= s.Vitals.HealthMax/3 {
				color = core.ColorBrightRed
			}
			dst.FillRect(core.NewRect(r.X, r.Y, r.W, 1), PaddleChar, color)
		case KindBall:
			color := core.ColorBrightWhite
			if !s.Primary {
				color = core.ColorBrightCyan
			}
			dst.SetColor(r.X, r.Y, BallChar, color)
		case KindBullet:
			if s.Hostile {
				dst.SetColor(r.X, r.Y, HostileBulletChar, core.ColorRed)
			} else {
				dst.SetColor(r.X, r.Y, BulletChar, core.ColorBrightGreen)
			}
		}
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.state == StateLost:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Enter to restart", g.score))
	case g.state == StateWon:
		g.drawCenteredBox(dst, "YOU WIN!", fmt.Sprintf("Final Score: %d  |  Enter to restart", g.score))
	case g.state == StateFailed:
		g.drawCenteredBox(dst, "LEVEL FAILED TO LOAD", "Check the configuration")
	case g.paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case g.ballLocked:
		dst.DrawTextCentered(dst.Height()-1, "SPACE to throw")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawText(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
