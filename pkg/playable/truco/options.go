package truco

import "time"

// Options are options for creating a new truco match
type Options struct {
	// MatchPoints is the score that wins the match
	MatchPoints int
	// BotDelay is the pause between two decisions made by a DecisionMaker when ticked
	BotDelay time.Duration
	// Seed shuffles the decks deterministically when non-zero
	Seed int64
	// SecureShuffle uses crypto/rand to shuffle. Seed is ignored.
	SecureShuffle bool
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		MatchPoints: 12,
		BotDelay:    time.Second,
	}
}
