package breakout

import (
	"testing"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

const dt = 1.0 / 60

// testConfig is a 200x300 playfield with a 4x4 grid of 50px blocks and two
// small levels. Antagonist fire is off.
func testConfig() config.BreakoutConfig {
	cfg := config.DefaultBreakoutConfig()
	cfg.Screen = config.ScreenConfig{Width: 200, Height: 350, HUDHeight: 50}
	cfg.Blocks.Size = 50
	cfg.Paddle.Width = 40
	cfg.Difficulty = config.DifficultyConfig{}
	cfg.Levels = []config.LevelConfig{
		{Name: "one", Blocks: map[string]int{"basic": 3}},
		{Name: "two", Blocks: map[string]int{"basic": 5, "sturdy": 2}, PowerUps: map[string]int{"speed": 2}},
	}
	return cfg
}

func newTestGame(t *testing.T, cfg config.BreakoutConfig, opts ...Option) *Game {
	t.Helper()
	g, err := New(cfg, append([]Option{WithSeed(12345)}, opts...)...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return g
}

func destroyBlocks(g *Game) {
	for _, b := range g.Blocks() {
		b.DamageTaken = b.HealthMax
	}
}

func TestNewGame(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	if g.State() != StatePlaying || !g.IsRunning() {
		t.Fatalf("state = %v, expected playing", g.State())
	}
	if g.Level() != 1 || g.Lives() != cfg.Gameplay.Lives || g.Score() != 0 {
		t.Errorf("level %d lives %d score %d", g.Level(), g.Lives(), g.Score())
	}
	if len(g.Blocks()) != 3 || len(g.PowerUps()) != 0 {
		t.Errorf("expected 3 blocks and no power-ups, got %d/%d", len(g.Blocks()), len(g.PowerUps()))
	}

	ents := g.Entities()
	if len(ents) != 2 || ents[0] != g.Paddle() || ents[1] != g.Ball() {
		t.Fatal("entities should be the paddle then the primary ball")
	}
	if !g.BallLocked() || !g.Ball().Vel.IsZero() {
		t.Error("ball should start locked on the paddle")
	}
	if g.Ball().Bounds().Bottom() != g.Paddle().Pos.Y {
		t.Errorf("ball bottom %v should rest on paddle top %v", g.Ball().Bounds().Bottom(), g.Paddle().Pos.Y)
	}
	if g.Paddle().Center().X != cfg.PlayfieldWidth()/2 {
		t.Errorf("paddle should be centered, center x %v", g.Paddle().Center().X)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Levels = nil
	if _, err := New(cfg); err == nil {
		t.Error("expected an error for a config without levels")
	}

	if _, err := New(testConfig(), WithStartLevel(9)); err == nil {
		t.Error("expected an error for a start level past the last level")
	}

	g := newTestGame(t, testConfig(), WithStartLevel(2))
	if g.Level() != 2 {
		t.Errorf("WithStartLevel(2) started at level %d", g.Level())
	}
}

func TestClearingLevelAdvances(t *testing.T) {
	g := newTestGame(t, testConfig())

	for _, b := range g.Blocks() {
		b.TakeDamageFrom(g.Ball())
	}
	if len(g.Blocks()) != 3 {
		t.Fatal("dead blocks must stay until the reap pass")
	}

	g.Step(dt)

	if g.Level() != 2 {
		t.Fatalf("Level() = %d, expected 2", g.Level())
	}
	if len(g.Blocks()) != 7 || len(g.PowerUps()) != 2 {
		t.Errorf("level 2 should have 7 blocks and 2 power-ups, got %d/%d", len(g.Blocks()), len(g.PowerUps()))
	}
	basic, _ := testConfig().BlockType("basic")
	if want := 3 * testConfig().PointsFor(basic); g.Score() != want {
		t.Errorf("Score() = %d, expected %d", g.Score(), want)
	}
	if g.LevelName() != "two" {
		t.Errorf("LevelName() = %q", g.LevelName())
	}
	if !hasEvent(g.Events(), EventLevelStarted) {
		t.Error("expected a level_started event")
	}
}

func TestClearingLastLevelWins(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.JumpToLevel(2)
	destroyBlocks(g)

	res := g.Step(dt)

	if g.State() != StateWon {
		t.Fatalf("State() = %v, expected won", g.State())
	}
	if !res.State.GameOver || !res.State.Won {
		t.Errorf("status = %+v", res.State)
	}
}

func TestDeadBlockReapedOnNextStep(t *testing.T) {
	g := newTestGame(t, testConfig())
	target := g.Blocks()[0]
	target.TakeDamageFrom(g.Ball())

	g.Step(dt)

	if len(g.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks after reap, got %d", len(g.Blocks()))
	}
	for _, b := range g.Blocks() {
		if b == target {
			t.Error("dead block survived the reap")
		}
	}
	if g.Score() != target.Points {
		t.Errorf("Score() = %d, expected %d", g.Score(), target.Points)
	}
}

func TestBallFallLosesLife(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	paddlePos, ballPos := g.Paddle().Pos, g.Ball().Pos

	g.MoveRight()
	g.ThrowBall()
	g.Paddle().Vitals.DamageTaken = 4
	g.Ball().Pos.Y = cfg.PlayfieldHeight() + 50

	g.Step(dt)

	if g.Lives() != 2 {
		t.Errorf("Lives() = %d, expected 2", g.Lives())
	}
	if g.Paddle().Health() != cfg.Paddle.Health {
		t.Errorf("paddle health = %d, expected %d", g.Paddle().Health(), cfg.Paddle.Health)
	}
	if g.Paddle().Pos != paddlePos || g.Ball().Pos != ballPos {
		t.Errorf("positions not reset: paddle %v ball %v", g.Paddle().Pos, g.Ball().Pos)
	}
	if !g.BallLocked() || !g.Ball().Vel.IsZero() {
		t.Error("ball should be locked again")
	}
	if g.State() != StatePlaying {
		t.Errorf("State() = %v", g.State())
	}
}

func TestPaddleDeathLosesLife(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Paddle().Vitals.DamageTaken = g.Paddle().Vitals.HealthMax

	g.Step(dt)

	if g.Lives() != 2 || g.Paddle().IsDead() {
		t.Errorf("lives %d, paddle dead %v", g.Lives(), g.Paddle().IsDead())
	}
}

func TestLastLifeLosesGame(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.Lives = 1
	g := newTestGame(t, cfg)
	g.Ball().Pos.Y = cfg.PlayfieldHeight() + 1

	res := g.Step(dt)
	if g.State() != StateLost || !res.State.GameOver || res.State.Won {
		t.Fatalf("State() = %v, status %+v", g.State(), res.State)
	}

	before := g.Snapshot()
	for range 10 {
		g.Step(dt)
	}
	g.MoveLeft()
	g.ThrowBall()
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("steps and gameplay intents must be no-ops after losing")
	}

	g.Restart()
	if g.State() != StatePlaying || g.Level() != 1 || g.Lives() != 1 || g.Score() != 0 {
		t.Errorf("restart: state %v level %d lives %d score %d", g.State(), g.Level(), g.Lives(), g.Score())
	}
}

func TestNuke(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Nuke()
	if g.State() != StateLost || g.Lives() != 0 {
		t.Errorf("state %v lives %d", g.State(), g.Lives())
	}
}

func TestThrowBall(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	g.ThrowBall()
	want := core.V(-cfg.Ball.ThrowX, -cfg.Ball.Speed)
	if g.Ball().Vel != want {
		t.Fatalf("Vel = %v, expected %v", g.Ball().Vel, want)
	}
	if g.BallLocked() {
		t.Error("ball should be released")
	}

	g.Ball().Vel = core.V(1, 1)
	g.ThrowBall()
	if g.Ball().Vel != core.V(1, 1) {
		t.Error("a moving ball must not be thrown again")
	}
}

func TestThrowDirectionFollowsBallSide(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	g.Ball().Pos.X += 10

	g.ThrowBall()
	if g.Ball().Vel.X != cfg.Ball.ThrowX {
		t.Errorf("ball right of center should go right, Vel %v", g.Ball().Vel)
	}
}

func TestPaddleMovement(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	px, bx := g.Paddle().Pos.X, g.Ball().Pos.X

	g.MoveRight()
	if g.Paddle().Pos.X != px+cfg.Paddle.MoveSpeed {
		t.Errorf("paddle x = %v", g.Paddle().Pos.X)
	}
	if g.Ball().Pos.X != bx+cfg.Paddle.MoveSpeed {
		t.Error("locked ball should ride with the paddle")
	}

	for range 50 {
		g.MoveRight()
	}
	if g.Paddle().Bounds().Right() != cfg.PlayfieldWidth() {
		t.Errorf("paddle should stop at the right wall, right edge %v", g.Paddle().Bounds().Right())
	}
	for range 50 {
		g.MoveLeft()
	}
	if g.Paddle().Pos.X != 0 {
		t.Errorf("paddle should stop at the left wall, x %v", g.Paddle().Pos.X)
	}

	g.ThrowBall()
	bx = g.Ball().Pos.X
	g.MoveRight()
	if g.Ball().Pos.X != bx {
		t.Error("a released ball must not follow the paddle")
	}
}

func TestPausedIgnoresIntents(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Pause()
	if g.IsRunning() || !g.Status().Paused {
		t.Fatal("game should be paused")
	}

	before := g.Snapshot()
	g.MoveLeft()
	g.MoveRight()
	g.ThrowBall()
	g.FireBullet()
	g.ActivatePowerUp("speed")
	g.JumpToLevel(2)
	g.Step(dt)
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("paused game changed")
	}

	g.Resume()
	g.Step(dt)
	if g.Snapshot().Tick != 1 {
		t.Error("resumed game should step")
	}
}

func TestJumpToLevel(t *testing.T) {
	g := newTestGame(t, testConfig())

	for _, n := range []int{0, -1, 3, 99} {
		before := g.Snapshot()
		g.JumpToLevel(n)
		after := g.Snapshot()
		if before.Hash() != after.Hash() {
			t.Errorf("JumpToLevel(%d) should be a no-op", n)
		}
	}

	g.ActivatePowerUp("speed")
	g.JumpToLevel(2)
	if g.Level() != 2 || len(g.Blocks()) != 7 {
		t.Errorf("level %d blocks %d", g.Level(), len(g.Blocks()))
	}
	if g.MoveSpeed() != testConfig().Paddle.MoveSpeed {
		t.Error("level transition should reset modifiers")
	}
}

func TestSpeedToggle(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	base := g.MoveSpeed()

	g.ActivatePowerUp("speed")
	if g.MoveSpeed() != base*cfg.PowerUps.SpeedMultiplier {
		t.Errorf("boosted speed = %v", g.MoveSpeed())
	}
	g.ActivatePowerUp("speed")
	if g.MoveSpeed() != base {
		t.Errorf("second activation should restore %v, got %v", base, g.MoveSpeed())
	}
	g.ActivatePowerUp("speed")
	if g.MoveSpeed() != base*cfg.PowerUps.SpeedMultiplier {
		t.Error("third activation should boost again")
	}
}

func TestSlowAndGrowthToggles(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	g.ActivatePowerUp("slow")
	if g.ThrowSpeed() != cfg.Ball.Speed-cfg.PowerUps.SlowAmount {
		t.Errorf("slowed throw speed = %v", g.ThrowSpeed())
	}
	g.ThrowBall()
	if g.Ball().Vel.Y != -g.ThrowSpeed() {
		t.Error("throw should use the slowed speed")
	}
	g.ActivatePowerUp("slow")
	if g.ThrowSpeed() != cfg.Ball.Speed {
		t.Error("second slow should restore base speed")
	}

	center := g.Paddle().Center().X
	g.ActivatePowerUp("growth")
	if g.Paddle().W != cfg.Paddle.Width*cfg.PowerUps.GrowthMultiplier || g.Paddle().Center().X != center {
		t.Errorf("grown paddle w=%v center=%v", g.Paddle().W, g.Paddle().Center().X)
	}
	g.ActivatePowerUp("growth")
	if g.Paddle().W != cfg.Paddle.Width {
		t.Error("second growth should restore width")
	}

	g.ActivatePowerUp("no-such-power")
	if g.ThrowSpeed() != cfg.Ball.Speed || g.Paddle().W != cfg.Paddle.Width {
		t.Error("unknown power-up types must be ignored")
	}
}

func TestHealRestoresPaddle(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.Paddle().Vitals.DamageTaken = 5
	g.ActivatePowerUp("heal")
	if g.Paddle().Health() != g.Paddle().Vitals.HealthMax {
		t.Errorf("health = %d", g.Paddle().Health())
	}
}

func TestMultiplySpawnsBalls(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	g.ActivatePowerUp("multiply")
	g.ActivatePowerUp("multiply")

	want := 2 + 2*cfg.PowerUps.MultiplyCount
	if len(g.Entities()) != want {
		t.Fatalf("%d entities, expected %d", len(g.Entities()), want)
	}
	for _, s := range g.Entities()[2:] {
		if s.Kind != KindBall || s.Primary {
			t.Errorf("spawned %v primary=%v", s.Kind, s.Primary)
		}
		if s.Vel.X < 0 || s.Vel.X >= cfg.Ball.ThrowX || s.Vel.Y < 0 || s.Vel.Y >= cfg.Ball.Speed {
			t.Errorf("velocity %v outside [0,%v)x[0,%v)", s.Vel, cfg.Ball.ThrowX, cfg.Ball.Speed)
		}
	}
}

func TestAuxiliaryBallsReapedBelowField(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	g.ActivatePowerUp("multiply")
	for _, s := range g.Entities()[2:] {
		s.Pos.Y = cfg.PlayfieldHeight() + 5
	}

	g.Step(dt)

	if len(g.Entities()) != 2 || g.Lives() != cfg.Gameplay.Lives {
		t.Errorf("entities %d lives %d", len(g.Entities()), g.Lives())
	}
}

func TestCollectPowerUp(t *testing.T) {
	cfg := testConfig()
	cfg.Levels = []config.LevelConfig{{Blocks: map[string]int{"tough": 2}, PowerUps: map[string]int{"speed": 1}}}
	g := newTestGame(t, cfg)
	base := g.MoveSpeed()

	p := g.PowerUps()[0]
	c := p.Bounds(float64(cfg.Blocks.Size), cfg.PowerUps.Size).Center()

	// Two balls over the same power-up still activate it once.
	g.ActivatePowerUp("multiply")
	for _, s := range []*Sprite{g.Ball(), g.Entities()[2]} {
		s.Pos = core.V(c.X-s.W/2, c.Y-s.H/2)
		s.Vel = core.Vec2{}
	}

	g.Step(dt)

	if len(g.PowerUps()) != 0 {
		t.Error("collected power-up should be removed")
	}
	if g.MoveSpeed() != base*cfg.PowerUps.SpeedMultiplier {
		t.Errorf("speed should be toggled once, got %v", g.MoveSpeed())
	}
	n := 0
	for _, e := range g.Events() {
		if e.Kind == EventPowerUpCollected {
			n++
		}
	}
	if n != 1 {
		t.Errorf("%d collection events, expected 1", n)
	}
	for _, b := range g.Blocks() {
		if b.Cell() == p.Cell() && b.DamageTaken != 2*cfg.Ball.Damage {
			t.Errorf("block under the power-up took %d damage, expected %d", b.DamageTaken, 2*cfg.Ball.Damage)
		}
	}
}

func TestCatchBall(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.ThrowBall()

	b := g.Ball()
	b.Pos.Y = g.Paddle().Pos.Y - b.H + 2
	b.Vel = core.V(30, 120)

	g.Step(dt)

	if !b.Vel.IsZero() || !g.BallLocked() {
		t.Errorf("ball should be caught, Vel %v", b.Vel)
	}
	if !hasEvent(g.Events(), EventBallCaught) {
		t.Error("expected a ball_caught event")
	}
}

func TestBulletHitsPaddle(t *testing.T) {
	tests := []struct {
		name    string
		godMode bool
		health  int
	}{
		{"normal", false, 10 - 2},
		{"god mode", true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Paddle.Health = 10
			cfg.Bullet.Damage = 2
			g := newTestGame(t, cfg)
			if tt.godMode {
				g.ToggleGodMode()
			}

			g.FireBullet()
			bullet := g.Entities()[2]
			bullet.Pos.Y = g.Paddle().Pos.Y + 1
			bullet.Vel = core.V(0, cfg.Bullet.Speed)

			g.Step(dt)

			if g.Paddle().Health() != tt.health {
				t.Errorf("paddle health = %d, expected %d", g.Paddle().Health(), tt.health)
			}
			if bullet.Vel.Y >= 0 {
				t.Error("bullet should be repelled upward")
			}
		})
	}
}

func TestBulletsLeaveField(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.FireBullet()
	if len(g.Entities()) != 3 {
		t.Fatal("FireBullet should add a bullet")
	}
	bullet := g.Entities()[2]
	if bullet.Kind != KindBullet || bullet.Vel.Y >= 0 || bullet.Hostile {
		t.Fatalf("unexpected bullet %+v", bullet)
	}

	bullet.Pos.Y = -100
	g.Step(dt)
	if len(g.Entities()) != 2 {
		t.Error("bullet above the field should be reaped")
	}
}

func TestHostileFire(t *testing.T) {
	cfg := testConfig()
	cfg.Levels[0].HostileFireEvery = 5
	g := newTestGame(t, cfg)

	for range 4 {
		g.Step(dt)
	}
	if len(g.Entities()) != 2 {
		t.Fatal("fired too early")
	}
	g.Step(dt)
	if !hasEvent(g.Events(), EventHostileFired) {
		t.Fatal("expected a hostile_fired event")
	}

	var hostile *Sprite
	for _, s := range g.Entities() {
		if s.Hostile {
			hostile = s
		}
	}
	if hostile == nil || hostile.Kind != KindBullet || hostile.Vel.Y <= 0 {
		t.Fatalf("expected a falling hostile bullet, got %+v", hostile)
	}
	if hostile.Pos.Y < float64(cfg.GridDimension()*cfg.Blocks.Size) {
		t.Error("hostile bullets should start below the block wall")
	}
}

func TestGodModeBouncesOffBottom(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	g.ToggleGodMode()
	g.ThrowBall()

	b := g.Ball()
	b.Pos = core.V(5, cfg.PlayfieldHeight()-b.H+1)
	b.Vel = core.V(0, 100)

	g.Step(dt)

	if b.Vel.Y >= 0 {
		t.Errorf("ball should bounce off the bottom in god mode, Vel %v", b.Vel)
	}
	if g.Lives() != cfg.Gameplay.Lives {
		t.Error("no life should be lost")
	}
}

func TestWallBounce(t *testing.T) {
	cfg := testConfig()
	w := cfg.PlayfieldWidth()

	tests := []struct {
		name string
		pos  core.Vec2
		vel  core.Vec2
		want core.Vec2
	}{
		{"left wall", core.V(-0.5, 220), core.V(-60, 0), core.V(60, 0)},
		{"right wall", core.V(w-11.5, 220), core.V(60, 0), core.V(-60, 0)},
		{"top wall", core.V(20, -0.5), core.V(0, -60), core.V(0, 60)},
		{"moving inward is left alone", core.V(-5, 220), core.V(60, 0), core.V(60, 0)},
		{"bottom without god mode", core.V(20, cfg.PlayfieldHeight()), core.V(0, 60), core.V(0, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, cfg)
			b := g.Ball()
			b.Pos = tt.pos
			b.Vel = tt.vel

			g.integrate(dt)

			if b.Vel != tt.want {
				t.Errorf("Vel = %v, expected %v", b.Vel, tt.want)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()

	run := func() Snapshot {
		g, err := New(cfg, WithSeed(99), WithStartLevel(3))
		if err != nil {
			t.Fatal(err)
		}
		for i := range 900 {
			in := core.NewInputFrame()
			switch {
			case i%120 == 0:
				in.Set(core.ActionThrow)
			case i%7 < 3:
				in.Set(core.ActionRight)
			case i%7 < 6:
				in.Set(core.ActionLeft)
			default:
				in.Set(core.ActionFire)
			}
			if i == 300 {
				in.SetPowerUp("multiply")
			}
			g.Apply(in)
			if g.Step(dt).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Tick != b.Tick || a.Score != b.Score {
		t.Errorf("tick %d/%d score %d/%d", a.Tick, b.Tick, a.Score, b.Score)
	}
}

func TestApplyInputFrame(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)
	px := g.Paddle().Pos.X

	in := core.NewInputFrame()
	in.Set(core.ActionRight)
	in.SetPowerUp("speed")
	in.Set(core.ActionRight)
	g.Apply(in)

	want := px + cfg.Paddle.MoveSpeed + cfg.Paddle.MoveSpeed*cfg.PowerUps.SpeedMultiplier
	if g.Paddle().Pos.X != want {
		t.Errorf("paddle x = %v, expected %v", g.Paddle().Pos.X, want)
	}

	in.Clear()
	in.SetLevel(2)
	g.Apply(in)
	if g.Level() != 2 || g.MoveSpeed() != cfg.Paddle.MoveSpeed {
		t.Errorf("level %d speed %v after jump", g.Level(), g.MoveSpeed())
	}

	in.Clear()
	in.Set(core.ActionPause)
	g.Apply(in)
	if !g.Status().Paused {
		t.Error("pause action should pause")
	}
	g.Apply(in)
	if g.Status().Paused {
		t.Error("second pause action should resume")
	}
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
