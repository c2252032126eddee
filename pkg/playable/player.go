package playable

// Player is anyone seated in a game
type Player interface {
	// GetPlayerID is stable for the whole match
	GetPlayerID() int64
	GetName() string
}
