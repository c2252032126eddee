package truco

import (
	"encoding/json"
	"fmt"
	"slices"

	"truco-server/pkg/deck"
)

// Event is the transition that produced an Intel
type Event string

// events
const (
	EventHandStart         Event = "handStart"
	EventPlay              Event = "play"
	EventRaise             Event = "raise"
	EventAccept            Event = "accept"
	EventQuit              Event = "quit"
	EventMaoDeOnzeAccepted Event = "maoDeOnzeAccepted"
	EventMaoDeOnzeDeclined Event = "maoDeOnzeDeclined"
)

// TableCardState describes what is known about a card on the table
type TableCardState int

// table card states
const (
	NotPlayed TableCardState = iota
	Hidden
	Known
)

func (t TableCardState) String() string {
	switch t {
	case NotPlayed:
		return "notPlayed"
	case Hidden:
		return "hidden"
	case Known:
		return "known"
	}

	return fmt.Sprintf("TableCardState(%d)", int(t))
}

// TableCard is a card the opponent may have played in the current round
type TableCard struct {
	state TableCardState
	card  deck.Card
}

// KnownCard returns a face-up table card
func KnownCard(card deck.Card) TableCard {
	return TableCard{state: Known, card: card}
}

// HiddenCard returns a face-down table card
func HiddenCard() TableCard {
	return TableCard{state: Hidden}
}

// State returns the state of the table card
func (t TableCard) State() TableCardState {
	return t.state
}

// Card returns the card if it is known
func (t TableCard) Card() (deck.Card, bool) {
	return t.card, t.state == Known
}

// MarshalJSON only includes the card when it is known
func (t TableCard) MarshalJSON() ([]byte, error) {
	out := struct {
		State string     `json:"state"`
		Card  *deck.Card `json:"card,omitempty"`
	}{
		State: t.state.String(),
	}

	if card, ok := t.Card(); ok {
		out.Card = &card
	}

	return json.Marshal(out)
}

// Intel is what a player knows about the hand after a transition.
// It is a copy, nothing in it refers back to the hand.
type Intel struct {
	Event         Event `json:"event"`
	EventPlayerID int64 `json:"eventPlayerId,omitempty"`

	PlayerID   int64 `json:"playerId"`
	OpponentID int64 `json:"opponentId"`
	DealerID   int64 `json:"dealerId"`

	Vira    deck.Card `json:"vira"`
	Manilha deck.Rank `json:"manilha"`

	// Rounds are the outcomes of the resolved rounds
	Rounds []Outcome `json:"rounds"`
	// OpenCards are the vira and every card played face up
	OpenCards    []deck.Card `json:"openCards"`
	OpponentCard TableCard   `json:"opponentCard"`
	Cards        []deck.Card `json:"cards"`

	Score         int `json:"score"`
	OpponentScore int `json:"opponentScore"`
	HandValue     int `json:"handValue"`
	PendingValue  int `json:"pendingValue"`

	// Turn is the player the hand is waiting on, 0 once finished
	Turn            int64    `json:"turn"`
	MaoDeOnze       bool     `json:"maoDeOnze"`
	PossibleActions []Action `json:"possibleActions"`

	result *Result
}

// clone returns a deep copy. Stored intel is never handed out directly.
func (i *Intel) clone() *Intel {
	c := *i
	c.Rounds = slices.Clone(i.Rounds)
	c.OpenCards = slices.Clone(i.OpenCards)
	c.Cards = slices.Clone(i.Cards)
	c.PossibleActions = slices.Clone(i.PossibleActions)
	if i.result != nil {
		result := *i.result
		c.result = &result
	}

	return &c
}

// Result returns the result of the hand if it was finished
func (i *Intel) Result() (Result, bool) {
	if i.result == nil {
		return Result{}, false
	}

	return *i.result, true
}

// IsMyTurn returns true if the hand is waiting on the intel's player
func (i *Intel) IsMyTurn() bool {
	return i.Turn == i.PlayerID
}

// CanDo returns true if the action is currently possible for the player
func (i *Intel) CanDo(action Action) bool {
	for _, a := range i.PossibleActions {
		if a == action {
			return true
		}
	}

	return false
}

// RoundsWon returns how many rounds the player and the opponent won
func (i *Intel) RoundsWon() (mine, theirs int) {
	for _, o := range i.Rounds {
		if winner, ok := o.Won(); ok {
			if winner == i.PlayerID {
				mine++
			} else {
				theirs++
			}
		}
	}

	return mine, theirs
}

// MarshalJSON adds the result to the JSON representation
func (i Intel) MarshalJSON() ([]byte, error) {
	type intel Intel
	return json.Marshal(struct {
		intel
		Result *Result `json:"result,omitempty"`
	}{
		intel:  intel(i),
		Result: i.result,
	})
}
