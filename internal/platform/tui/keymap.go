package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hostile-breakout/internal/config"
	"github.com/vovakirdan/hostile-breakout/internal/core"
)

// GameKeyMap holds the in-game key bindings.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Fire    key.Binding
	Throw   key.Binding
	God     key.Binding
	Reset   key.Binding
	Nuke    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Jump    key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Throw, k.Fire, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Throw, k.Fire},
		{k.Pause, k.Restart, k.Back, k.Quit},
		{k.God, k.Reset, k.Nuke, k.Jump},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "fire"),
		),
		Throw: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "throw"),
		),
		God: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "god mode"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset positions"),
		),
		Nuke: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "give up"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "restart"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to level"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game intents.
// Power-up cheat keys come from the game config; built-in bindings win
// when a configured key collides with one.
type KeyMapper struct {
	Keys     GameKeyMap
	powerUps map[string]string // key -> power-up type name
}

// NewKeyMapper creates a key mapper for the given game config.
func NewKeyMapper(cfg config.BreakoutConfig) *KeyMapper {
	km := &KeyMapper{
		Keys:     DefaultGameKeyMap(),
		powerUps: make(map[string]string, len(cfg.PowerUps.Types)),
	}
	for _, pt := range cfg.PowerUps.Types {
		if pt.Key != "" {
			km.powerUps[pt.Key] = pt.Name
		}
	}
	return km
}

// MapKey translates a key message to a single action.
// Level jumps and power-ups carry a payload and are only reported by
// MapKeyToFrame; here they map to ActionJumpLevel and ActionPowerUp.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Fire):
		return core.ActionFire, false
	case key.Matches(msg, k.Throw):
		return core.ActionThrow, false
	case key.Matches(msg, k.God):
		return core.ActionGodMode, false
	case key.Matches(msg, k.Reset):
		return core.ActionResetPositions, false
	case key.Matches(msg, k.Nuke):
		return core.ActionNuke, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Jump):
		return core.ActionJumpLevel, false
	}
	if _, ok := km.powerUps[msg.String()]; ok {
		return core.ActionPowerUp, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame appends the intent for a key message to an input frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionBack:
	case core.ActionJumpLevel:
		n, err := strconv.Atoi(msg.String())
		if err == nil {
			frame.SetLevel(n)
		}
	case core.ActionPowerUp:
		frame.SetPowerUp(km.powerUps[msg.String()])
	default:
		frame.Set(action)
	}
	return isQuit
}

// PowerUpKeys returns the configured cheat keys by power-up name.
func (km *KeyMapper) PowerUpKeys() map[string]string {
	out := make(map[string]string, len(km.powerUps))
	for k, name := range km.powerUps {
		out[name] = k
	}
	return out
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
