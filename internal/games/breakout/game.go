// Package breakout implements the Hostile Breakout simulation: a paddle and
// balls destroying a grid of blocks across configured levels while an
// antagonist drops bullets on the paddle.
//
// The package owns no clock. A platform layer calls Step at a fixed rate and
// feeds decoded intents between steps; Step must never run concurrently with
// itself or with an intent.
package breakout

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// State is the progression state of a run.
type State int

const (
	StatePlaying State = iota
	StateLost
	StateWon
	StateFailed // a level could not be loaded; see Err
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for level and life transitions.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithSeed seeds block placement, antagonist fire and auxiliary ball speeds.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.seed = seed
	}
}

// WithStartLevel starts the first run at level n instead of 1.
// Restart always returns to level 1.
func WithStartLevel(n int) Option {
	return func(g *Game) {
		g.startLevel = n
	}
}

// Game is the progression controller. It owns the active entity, block and
// power-up sets and mutates them only inside Step and the intent methods.
type Game struct {
	cfg        config.BreakoutConfig
	logger     *log.Logger
	seed       uint64
	rng        *rand.Rand
	factory    *LevelFactory
	difficulty *config.DifficultyManager

	paddle   *Sprite
	ball     *Sprite
	entities []*Sprite // paddle, primary ball, then spawn order
	blocks   []*Block
	powerUps []*PowerUp

	collected []*PowerUp
	events    []Event

	startLevel int
	level      int
	levelName  string
	lives      int
	score      int
	state      State
	err        error
	paused     bool
	godMode    bool
	ballLocked bool

	mods       modifiers
	moveSpeed  float64
	throwSpeed float64

	tick      uint64
	fireEvery int
	fireTimer int
	lastID    int
}

// New validates cfg and starts a run at the first level.
func New(cfg config.BreakoutConfig, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}

	g := &Game{
		cfg:        cfg,
		logger:     log.New(io.Discard),
		startLevel: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.startLevel < 1 || g.startLevel > cfg.LastLevel() {
		return nil, fmt.Errorf("breakout: start level %d out of range [1, %d]", g.startLevel, cfg.LastLevel())
	}

	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	g.factory = NewLevelFactory(cfg, g.rng)
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.newRun(g.startLevel)
	if g.state == StateFailed {
		return nil, g.err
	}
	return g, nil
}

// newRun resets lives, score and entities and loads the given level.
func (g *Game) newRun(level int) {
	g.state = StatePlaying
	g.err = nil
	g.paused = false
	g.godMode = false
	g.lives = g.cfg.Gameplay.Lives
	g.score = 0
	g.tick = 0
	g.lastID = 0

	p := g.cfg.Paddle
	g.paddle = newSprite(g.nextSpriteID(), KindPaddle, core.Vec2{}, p.Width, p.Height, p.Damage)
	g.paddle.Vitals = newVitals(p.Health)

	b := g.cfg.Ball
	g.ball = newSprite(g.nextSpriteID(), KindBall, core.Vec2{}, b.Size, b.Size, b.Damage)
	g.ball.Primary = true

	g.transitionLevel(level)
}

// Step advances the simulation by dt seconds. It is a no-op while paused or
// once the run has ended.
func (g *Game) Step(dt float64) core.StepResult {
	g.events = g.events[:0]
	if !g.IsRunning() {
		return core.StepResult{State: g.Status()}
	}
	g.tick++

	g.hostileFire()
	g.integrate(dt)
	g.collide()
	g.reap()

	if len(g.blocks) == 0 {
		g.transitionLevel(g.level + 1)
	}
	if g.state == StatePlaying {
		g.checkLoss()
	}

	return core.StepResult{State: g.Status()}
}

// hostileFire drops an antagonist bullet from beneath the block wall every
// few ticks. The interval shrinks as difficulty rises.
func (g *Game) hostileFire() {
	interval := g.difficulty.FireInterval(g.fireEvery, g.score, int(g.tick)) //#nosec G115 -- tick count fits in int
	if interval <= 0 {
		return
	}
	g.fireTimer++
	if g.fireTimer < interval {
		return
	}
	g.fireTimer = 0

	bc := g.cfg.Bullet
	x := g.rng.Float64() * (g.fieldW() - bc.Width)
	s := newSprite(g.nextSpriteID(), KindBullet, core.V(x, g.gridBottom()), bc.Width, bc.Height, bc.Damage)
	s.Vel = core.V(0, bc.Speed)
	s.Hostile = true
	g.entities = append(g.entities, s)
	g.emit(Event{Kind: EventHostileFired})
}

// reap removes dead blocks, scoring each, and sprites that left the field.
func (g *Game) reap() {
	kept := g.blocks[:0]
	for _, b := range g.blocks {
		if b.IsDead() {
			g.score += b.Points
			g.emit(Event{Kind: EventBlockDestroyed, Cell: b.Cell(), Type: b.Type, Value: b.Points})
			continue
		}
		kept = append(kept, b)
	}
	clear(g.blocks[len(kept):])
	g.blocks = kept

	w, h := g.fieldW(), g.fieldH()
	live := g.entities[:0]
	for _, s := range g.entities {
		switch s.Kind {
		case KindBullet:
			if s.outside(w, h) {
				continue
			}
		case KindBall:
			if !s.Primary && s.Pos.Y > h {
				continue
			}
		case KindPaddle:
		}
		live = append(live, s)
	}
	clear(g.entities[len(live):])
	g.entities = live
}

// checkLoss costs a life when the paddle is destroyed or the primary ball
// falls past the bottom of the playfield.
func (g *Game) checkLoss() {
	if !g.paddle.IsDead() && g.ball.Pos.Y <= g.fieldH() {
		return
	}
	g.paddle.ResetHealth()
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.state = StateLost
		g.emit(Event{Kind: EventGameLost, Value: g.score})
		g.logger.Info("game lost", "level", g.level, "score", g.score)
		return
	}
	g.resetPositions()
	g.emit(Event{Kind: EventLifeLost, Value: g.lives})
	g.logger.Debug("life lost", "lives", g.lives, "level", g.level)
}

// transitionLevel loads level n, or ends the run as won past the last level.
func (g *Game) transitionLevel(n int) {
	if n > g.cfg.LastLevel() {
		g.state = StateWon
		g.emit(Event{Kind: EventGameWon, Value: g.score})
		g.logger.Info("game won", "score", g.score)
		return
	}

	layout, err := g.factory.Build(n)
	if err != nil {
		g.state = StateFailed
		g.err = err
		g.emit(Event{Kind: EventLoadFailed, Value: n})
		g.logger.Error("level load failed", "level", n, "err", err)
		return
	}

	g.level = n
	g.levelName = layout.Name
	g.blocks = layout.Blocks
	g.powerUps = layout.PowerUps
	g.fireEvery = layout.HostileFireEvery
	g.fireTimer = 0

	clear(g.entities)
	g.entities = append(g.entities[:0], g.paddle, g.ball)
	g.resetModifiers()
	g.resetPositions()

	g.emit(Event{Kind: EventLevelStarted, Type: layout.Name, Value: n})
	g.logger.Debug("level loaded", "level", n, "name", layout.Name,
		"blocks", len(layout.Blocks), "powerUps", len(layout.PowerUps))
}

// resetPositions centers the paddle near the bottom and locks the ball on top of it.
func (g *Game) resetPositions() {
	p := g.paddle
	p.Pos = core.V((g.fieldW()-p.W)/2, g.paddleY())
	p.Vel = core.Vec2{}

	b := g.ball
	b.Pos = core.V(p.Center().X-b.W/2, g.ballY())
	b.Vel = core.Vec2{}
	g.ballLocked = true
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

func (g *Game) nextSpriteID() int {
	g.lastID++
	return g.lastID
}

func (g *Game) fieldW() float64    { return g.cfg.PlayfieldWidth() }
func (g *Game) fieldH() float64    { return g.cfg.PlayfieldHeight() }
func (g *Game) blockSize() float64 { return float64(g.cfg.Blocks.Size) }

func (g *Game) gridBottom() float64 {
	return float64(g.cfg.GridDimension()) * g.blockSize()
}

func (g *Game) paddleY() float64 {
	return g.fieldH() - g.cfg.Paddle.BottomMargin - g.cfg.Paddle.Height
}

func (g *Game) ballY() float64 {
	return g.paddleY() - g.ball.H
}

// IsRunning reports whether the simulation accepts steps and gameplay intents.
func (g *Game) IsRunning() bool {
	return g.state == StatePlaying && !g.paused
}

// Status summarizes the run for the platform layer.
func (g *Game) Status() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lives:    g.lives,
		GameOver: g.state != StatePlaying,
		Won:      g.state == StateWon,
		Paused:   g.paused,
	}
}

// State returns the progression state.
func (g *Game) State() State { return g.state }

// Err returns the level load error that put the game in StateFailed.
func (g *Game) Err() error { return g.err }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.BreakoutConfig { return g.cfg }

// Paddle returns the player's paddle.
func (g *Game) Paddle() *Sprite { return g.paddle }

// Ball returns the primary ball.
func (g *Game) Ball() *Sprite { return g.ball }

// BallLocked reports whether the primary ball rides on the paddle.
func (g *Game) BallLocked() bool { return g.ballLocked }

// Entities returns the active sprites. The slice is owned by the game and
// valid until the next Step or intent.
func (g *Game) Entities() []*Sprite { return g.entities }

// Blocks returns the active blocks.
func (g *Game) Blocks() []*Block { return g.blocks }

// PowerUps returns the power-ups still waiting to be collected.
func (g *Game) PowerUps() []*PowerUp { return g.powerUps }

// Level returns the 1-based current level.
func (g *Game) Level() int { return g.level }

// LevelName returns the configured name of the current level.
func (g *Game) LevelName() string { return g.levelName }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Score returns the points earned this run.
func (g *Game) Score() int { return g.score }

// GodMode reports whether god mode is on.
func (g *Game) GodMode() bool { return g.godMode }

// Events returns what happened during the last Step.
func (g *Game) Events() []Event { return g.events }

// IsLoadError reports whether err came from loading a level.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
