package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

func newTestMenu() MenuModel {
	return NewMenuModel(config.DefaultBreakoutConfig(), core.RuntimeConfig{ScreenW: 80, ScreenH: 30})
}

func press(t *testing.T, m MenuModel, msgs ...tea.KeyMsg) (MenuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		if m, ok = next.(MenuModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
)

func TestMenuPlay(t *testing.T) {
	m, cmd := press(t, newTestMenu(), keyEnter)
	if m.StartLevel() != 1 {
		t.Errorf("StartLevel() = %d, expected 1", m.StartLevel())
	}
	if cmd == nil {
		t.Error("standalone menu should quit its program")
	}
}

func TestMenuSelectLevel(t *testing.T) {
	m, _ := press(t, newTestMenu(), keyDown, keyEnter)
	if m.page != pageLevels {
		t.Fatalf("page = %v, expected the level list", m.page)
	}
	if !strings.Contains(m.View(), "Hostile Takeover") {
		t.Error("level list should name the configured levels")
	}

	m, _ = press(t, m, keyDown, keyDown, keyEnter)
	if m.StartLevel() != 3 {
		t.Errorf("StartLevel() = %d, expected 3", m.StartLevel())
	}
}

func TestMenuLevelCursorClamps(t *testing.T) {
	m, _ := press(t, newTestMenu(), keyDown, keyEnter, keyUp)
	if m.levelCursor != 0 {
		t.Errorf("cursor moved above the first level: %d", m.levelCursor)
	}
	for range 10 {
		m, _ = press(t, m, keyDown)
	}
	if last := m.cfg.LastLevel() - 1; m.levelCursor != last {
		t.Errorf("cursor = %d, expected %d", m.levelCursor, last)
	}

	m, _ = press(t, m, keyEsc)
	if m.page != pageMain || m.StartLevel() != 0 {
		t.Error("esc should return to the main page without starting")
	}
}

func TestMenuCheatCodes(t *testing.T) {
	m, _ := press(t, newTestMenu(), keyDown, keyDown, keyDown, keyDown, keyEnter)
	if m.page != pageText || m.textTitle != "CHEAT CODES" {
		t.Fatalf("page = %v %q", m.page, m.textTitle)
	}
	for _, want := range []string{"god mode", "activate multiply", "activate heal"} {
		if !strings.Contains(m.text, want) {
			t.Errorf("cheat text missing %q", want)
		}
	}

	m, _ = press(t, m, keyEnter)
	if m.page != pageMain {
		t.Error("enter should close the text page")
	}
}

func TestMenuEmbeddedExit(t *testing.T) {
	m := newTestMenu()
	m.embedded = true
	for range len(m.entries) {
		m, _ = press(t, m, keyDown)
	}
	m, cmd := press(t, m, keyEnter)
	if !m.IsQuitting() {
		t.Error("Exit should mark the menu as quitting")
	}
	if cmd != nil {
		t.Error("embedded menu must leave quitting to its session")
	}
	if m.View() != "" {
		t.Error("quitting menu should render nothing")
	}
}

func TestMenuHighScores(t *testing.T) {
	m, _ := press(t, newTestMenu(), keyDown, keyDown, keyEnter)
	if !m.WantsScoreboard() {
		t.Error("High scores should request the scoreboard")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("wide text should be left alone, got %q", got)
	}
}
