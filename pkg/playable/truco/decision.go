package truco

import (
	"context"
	"fmt"

	"truco-server/pkg/deck"
)

// Action is a move a player can make in a hand
type Action string

// actions
const (
	ActionPlay      Action = "play"
	ActionRaise     Action = "raise"
	ActionAccept    Action = "accept"
	ActionQuit      Action = "quit"
	ActionMaoDeOnze Action = "maoDeOnze"
)

// CardSelection is the card a player wants to play
type CardSelection struct {
	Card deck.Card `json:"card"`
	// Discard plays the card face down, forfeiting the round
	Discard bool `json:"discard"`
}

// Select returns a face-up selection of card
func Select(card deck.Card) CardSelection {
	return CardSelection{Card: card}
}

// Discard returns a face-down selection of card
func Discard(card deck.Card) CardSelection {
	return CardSelection{Card: card, Discard: true}
}

// WagerAction is a decision about the hand value
type WagerAction int

// wager actions
const (
	NoAction WagerAction = iota
	Raise
	Accept
	Quit
)

func (w WagerAction) String() string {
	switch w {
	case NoAction:
		return "none"
	case Raise:
		return "raise"
	case Accept:
		return "accept"
	case Quit:
		return "quit"
	}

	return fmt.Sprintf("WagerAction(%d)", int(w))
}

// RaiseResponse is the numeric answer to a raise: -1 quits, 0 accepts, 1 raises again
type RaiseResponse int

// raise responses
const (
	RaiseResponseQuit   RaiseResponse = -1
	RaiseResponseAccept RaiseResponse = 0
	RaiseResponseRaise  RaiseResponse = 1
)

// WagerAction converts the response
func (r RaiseResponse) WagerAction() (WagerAction, error) {
	switch r {
	case RaiseResponseQuit:
		return Quit, nil
	case RaiseResponseAccept:
		return Accept, nil
	case RaiseResponseRaise:
		return Raise, nil
	}

	return NoAction, fmt.Errorf("invalid raise response: %d", int(r))
}

// DecisionMaker answers for a player when the hand needs a decision.
// Every call receives the player's own Intel.
type DecisionMaker interface {
	// ChooseCard is called when it is the player's turn to play a card
	ChooseCard(ctx context.Context, intel *Intel) (CardSelection, error)

	// DecideWager is called before ChooseCard, and when the opponent raised.
	// When answering a raise, NoAction is not a valid answer.
	DecideWager(ctx context.Context, intel *Intel) (WagerAction, error)

	// MaoDeOnzeResponse is called when the player has 11 points and must decide whether to play the hand
	MaoDeOnzeResponse(ctx context.Context, intel *Intel) (bool, error)
}
