package truco

import "fmt"

// Reason explains how a hand ended
type Reason string

// reasons
const (
	// ReasonRounds the hand was decided by its rounds
	ReasonRounds Reason = "rounds"
	// ReasonQuit a player refused a raise
	ReasonQuit Reason = "quit"
	// ReasonForfeit a player gave up the hand without a pending raise
	ReasonForfeit Reason = "forfeit"
	// ReasonMaoDeOnzeDeclined the player with 11 points declined to play
	ReasonMaoDeOnzeDeclined Reason = "maoDeOnzeDeclined"
)

// Result is the outcome of a finished hand
type Result struct {
	Winner int64  `json:"winner,omitempty"`
	Points int    `json:"points"`
	Draw   bool   `json:"draw"`
	Reason Reason `json:"reason"`
}

func (r Result) String() string {
	if r.Draw {
		return "draw"
	}

	return fmt.Sprintf("player %d scores %d (%s)", r.Winner, r.Points, r.Reason)
}
