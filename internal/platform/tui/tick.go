// Package tui runs Hostile Breakout in a terminal with Bubble Tea.
// It owns the tick loop, key-to-intent mapping, menus, the scoreboard and
// the Wish SSH server; the game itself lives in internal/games/breakout.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// game loop that scheduled it so a loop left behind by an abandoned game
// dies out instead of speeding up the next one.
type TickMsg struct {
	At   time.Time
	Loop int64
}

var loopIDs atomic.Int64

// newLoopID returns an identifier for a fresh tick loop.
func newLoopID() int64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop int64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
