package playable

import "time"

// Tickable is a game with seats that act on their own, such as bots.
// The dealer ticks it between player actions.
type Tickable interface {
	// Delay is the pause between two ticks
	Delay() time.Duration

	// Tick makes at most one automated move.
	// It returns true if connected players need a new state.
	Tick() (bool, error)
}
