package truco

// Player is a player in a truco match
type Player struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NewPlayer returns a player with no points
func NewPlayer(id int64, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
	}
}

// GetPlayerID returns the player ID
func (p *Player) GetPlayerID() int64 {
	return p.ID
}

// GetName returns the display name
func (p *Player) GetName() string {
	return p.Name
}

func (p *Player) seat() Seat {
	return Seat{
		PlayerID: p.ID,
		Score:    p.Score,
	}
}
