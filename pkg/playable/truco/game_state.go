package truco

// GameState is the state of a match from a player's seat
type GameState struct {
	UUID        string       `json:"uuid"`
	HandNumber  int          `json:"handNumber"`
	MatchPoints int          `json:"matchPoints"`
	Players     []Player     `json:"players"`
	Intel       *Intel       `json:"intel"`
	GameOver    bool         `json:"gameOver"`
	Winner      int64        `json:"winner,omitempty"`
	LastHand    *HandSummary `json:"lastHand,omitempty"`
}

// State returns the state of the match for the player
func (g *Game) State(playerID int64) *GameState {
	state := &GameState{
		UUID:        g.uuid,
		HandNumber:  g.handNumber,
		MatchPoints: g.options.MatchPoints,
		Players:     make([]Player, len(g.players)),
		Intel:       g.hand.Intel(playerID),
		GameOver:    g.winner != nil,
	}

	for i, p := range g.players {
		state.Players[i] = *p
	}

	if g.winner != nil {
		state.Winner = g.winner.ID
	}

	if n := len(g.summaries); n > 0 {
		last := g.summaries[n-1]
		state.LastHand = &last
	}

	return state
}
