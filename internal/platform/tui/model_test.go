package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
	"github.com/vovakirdan/hostile-breakout/internal/games/breakout"
	"github.com/vovakirdan/hostile-breakout/internal/storage"
)

func newTestModel(t *testing.T) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
	m, err := NewModel(Options{Config: config.DefaultBreakoutConfig(), Player: "tester"}, store, rt)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg{Loop: m.loop})
	return m
}

func TestModelThrowOnTick(t *testing.T) {
	m, _ := newTestModel(t)
	if !m.Game().BallLocked() {
		t.Fatal("ball should start on the paddle")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.Game().BallLocked() {
		t.Error("intents must wait for the next tick")
	}
	m = tick(t, m)
	if m.Game().BallLocked() {
		t.Error("ball should be thrown after the tick")
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.Game().Snapshot().Tick

	m, cmd := update(t, m, TickMsg{Loop: m.loop + 1})
	if cmd != nil {
		t.Error("a stale tick must not schedule another")
	}
	if m.Game().Snapshot().Tick != before {
		t.Error("a stale tick must not step the game")
	}

	m = tick(t, m)
	if m.Game().Snapshot().Tick != before+1 {
		t.Error("an own tick should step the game")
	}
}

func TestModelSavesLostRunOnce(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = update(t, m, runeKey('n'))
	m = tick(t, m)
	m = tick(t, m)

	if m.Game().State() != breakout.StateLost {
		t.Fatalf("state = %v, expected lost", m.Game().State())
	}
	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeLost || runs[0].Player != "tester" || runs[0].Seed != 42 {
		t.Errorf("saved run = %+v", runs[0])
	}
}

func TestModelQuitWithoutScoreSavesNothing(t *testing.T) {
	m, store := newTestModel(t)

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit the program")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
	runs, _ := store.TopRuns(10)
	if len(runs) != 0 {
		t.Errorf("expected no saved runs, got %d", len(runs))
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back must be ignored while playing")
	}

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	if !m.Game().Status().Paused {
		t.Fatal("game should be paused")
	}
	m.embedded = true
	m, cmd := update(t, m, runeKey('b'))
	if !m.BackToMenu() || m.IsQuitting() || cmd != nil {
		t.Error("embedded model should hand back to its session")
	}
}

func TestModelRestartNeedsPause(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.frame.Empty() {
		t.Error("enter must not queue a restart mid-run")
	}

	m, _ = update(t, m, runeKey('n'))
	m = tick(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	if m.Game().State() != breakout.StatePlaying || m.Game().Level() != 1 {
		t.Errorf("restart failed: state %v level %d", m.Game().State(), m.Game().Level())
	}
	if m.saved {
		t.Error("a restarted run starts unsaved")
	}
}

func TestModelReloadAppliesOnRestart(t *testing.T) {
	m, _ := newTestModel(t)

	cfg := config.DefaultBreakoutConfig()
	cfg.Gameplay.Lives = 7
	m, _ = update(t, m, configReloadMsg{cfg: cfg})
	if m.pending == nil {
		t.Fatal("reloaded config should be pending")
	}
	if m.Game().Lives() == 7 {
		t.Fatal("reload must not touch the running game")
	}

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)

	if m.pending != nil {
		t.Error("pending config should be consumed")
	}
	if m.Game().Lives() != 7 {
		t.Errorf("lives = %d, expected the reloaded 7", m.Game().Lives())
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m = tick(t, m)

	out := m.View()
	if !strings.Contains(out, "Score") {
		t.Error("view should contain the HUD")
	}
	if !strings.Contains(out, "throw") {
		t.Error("view should contain the help line")
	}
}
