package truco

import (
	"fmt"

	"truco-server/pkg/deck"
)

// Play is a card played by a player into a round
type Play struct {
	PlayerID  int64     `json:"playerId"`
	Card      deck.Card `json:"card"`
	Discarded bool      `json:"discarded"`
}

// Strength returns the strength of the play, which is DiscardStrength for a face-down card
func (p Play) Strength(vira deck.Card) int {
	if p.Discarded {
		return DiscardStrength
	}

	return Strength(p.Card, vira)
}

// Outcome is the result of a round, either a winner or a draw
type Outcome struct {
	Winner int64 `json:"winner,omitempty"`
	Draw   bool  `json:"draw"`
}

// Won returns the winner of the round
func (o Outcome) Won() (int64, bool) {
	if o.Draw {
		return 0, false
	}

	return o.Winner, true
}

func (o Outcome) String() string {
	if o.Draw {
		return "draw"
	}

	return fmt.Sprintf("player %d", o.Winner)
}

// ResolveRound determines the winner of a round.
// The strongest play wins. If the strongest strength was reached by more than one player, the round is a draw.
func ResolveRound(plays []Play, vira deck.Card) Outcome {
	if len(plays) < 2 {
		panic(fmt.Sprintf("cannot resolve a round with %d plays", len(plays)))
	}

	best := -1
	var leaders []int64
	for _, play := range plays {
		s := play.Strength(vira)
		switch {
		case s > best:
			best = s
			leaders = []int64{play.PlayerID}
		case s == best:
			leaders = append(leaders, play.PlayerID)
		}
	}

	for _, id := range leaders[1:] {
		if id != leaders[0] {
			return Outcome{Draw: true}
		}
	}

	return Outcome{Winner: leaders[0]}
}

// Round is a resolved round
type Round struct {
	Number  int     `json:"number"`
	Plays   []Play  `json:"plays"`
	Outcome Outcome `json:"outcome"`
}
