package breakout

import "fmt"

// EventKind identifies something that happened during a step.
type EventKind int

const (
	EventBlockHit EventKind = iota
	EventBlockDestroyed
	EventPowerUpCollected
	EventBallCaught
	EventSpriteCollision
	EventHostileFired
	EventLevelStarted
	EventLifeLost
	EventGameLost
	EventGameWon
	EventLoadFailed
)

func (k EventKind) String() string {
	switch k {
	case EventBlockHit:
		return "block_hit"
	case EventBlockDestroyed:
		return "block_destroyed"
	case EventPowerUpCollected:
		return "powerup_collected"
	case EventBallCaught:
		return "ball_caught"
	case EventSpriteCollision:
		return "sprite_collision"
	case EventHostileFired:
		return "hostile_fired"
	case EventLevelStarted:
		return "level_started"
	case EventLifeLost:
		return "life_lost"
	case EventGameLost:
		return "game_lost"
	case EventGameWon:
		return "game_won"
	case EventLoadFailed:
		return "load_failed"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is emitted by the collision pass and the progression controller.
// Only the fields relevant to the kind are set.
type Event struct {
	Kind  EventKind
	Cell  Cell   // block or power-up position
	Type  string // block or power-up type name
	Value int    // points scored, level number, or lives left
}
