package core

// Action represents a semantic game intent, abstracted from physical key
// presses. Games consume intents, never raw keys.
type Action int

const (
	ActionNone           Action = iota
	ActionLeft                  // Left arrow, A - move paddle left
	ActionRight                 // Right arrow, D - move paddle right
	ActionFire                  // Up arrow, W - fire a bullet from the paddle
	ActionThrow                 // Space - throw the ball off the paddle
	ActionGodMode               // G - toggle god mode
	ActionResetPositions        // R - put paddle and ball back on their marks
	ActionRestart               // Enter - start over after the game ended
	ActionPause                 // P, Esc - pause/resume
	ActionNuke                  // N - lose instantly
	ActionPowerUp               // power-up cheat, type carried in InputFrame.PowerUp
	ActionJumpLevel             // 1-9 - jump to level, carried in InputFrame.Level
	ActionConfirm               // Enter - confirm selection in menu
	ActionBack                  // B, Escape - go back to menu
	ActionQuit                  // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionThrow:
		return "Throw"
	case ActionGodMode:
		return "GodMode"
	case ActionResetPositions:
		return "ResetPositions"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionNuke:
		return "Nuke"
	case ActionPowerUp:
		return "PowerUp"
	case ActionJumpLevel:
		return "JumpLevel"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the intents decoded between two simulation ticks.
// Intents are applied in the order they arrived.
type InputFrame struct {
	Actions  []Action
	PowerUps []string // payloads for ActionPowerUp, in order
	Levels   []int    // payloads for ActionJumpLevel, in order
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an intent to the frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// SetPowerUp appends a power-up activation intent for the given type.
func (f *InputFrame) SetPowerUp(kind string) {
	f.Actions = append(f.Actions, ActionPowerUp)
	f.PowerUps = append(f.PowerUps, kind)
}

// SetLevel appends a level-jump intent.
func (f *InputFrame) SetLevel(n int) {
	f.Actions = append(f.Actions, ActionJumpLevel)
	f.Levels = append(f.Levels, n)
}

// Has returns true if the given intent was queued this frame.
func (f InputFrame) Has(a Action) bool {
	for _, x := range f.Actions {
		if x == a {
			return true
		}
	}
	return false
}

// Empty reports whether no intents are queued.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next tick, keeping allocated capacity.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
	f.PowerUps = f.PowerUps[:0]
	f.Levels = f.Levels[:0]
}
