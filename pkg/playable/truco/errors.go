package truco

import (
	"errors"
	"fmt"
)

// ErrHandIsOver is returned when an action is attempted on a finished hand
var ErrHandIsOver = errors.New("the hand is over")

// ErrUnknownPlayer is returned when the player is not seated in the hand
var ErrUnknownPlayer = errors.New("player is not in this hand")

// ErrNotPlayersTurn is returned when it's not the player's turn
var ErrNotPlayersTurn = errors.New("not player's turn")

// ErrCardNotInPlayersHand happens when the player tries to play a card they don't have
var ErrCardNotInPlayersHand = errors.New("card is not in player's hand")

// ErrCannotDiscardFirstRound happens when a face-down card is played in the first round
var ErrCannotDiscardFirstRound = errors.New("cannot play a card face down in the first round")

// ErrWaitingForRaiseResponse is returned when a card is played while a raise is unanswered
var ErrWaitingForRaiseResponse = errors.New("a raise is waiting for a response")

// ErrRaisePending is returned when a player raises again before the opponent answers
var ErrRaisePending = errors.New("your raise is waiting for a response")

// ErrNotRaiseHolder is returned when the player does not hold the right to raise
var ErrNotRaiseHolder = errors.New("player cannot raise the hand value right now")

// ErrLadderExhausted is returned when the hand is already worth 12 points
var ErrLadderExhausted = errors.New("the hand value cannot be raised above 12")

// ErrRaiseNotAllowed is returned when raising in a hand where a player has 11 points
var ErrRaiseNotAllowed = errors.New("raising is not allowed in a hand of eleven")

// ErrNoPendingRaise is returned when accepting without an outstanding raise
var ErrNoPendingRaise = errors.New("there is no raise to respond to")

// ErrCannotAcceptOwnRaise is returned when the raiser tries to accept their own raise
var ErrCannotAcceptOwnRaise = errors.New("cannot accept your own raise")

// ErrMaoDeOnzePending is returned when the hand is waiting on the mão de onze decision
var ErrMaoDeOnzePending = errors.New("waiting for the mão de onze decision")

// ErrNoMaoDeOnzeDecision is returned when responding to a mão de onze that does not apply
var ErrNoMaoDeOnzeDecision = errors.New("there is no mão de onze decision to make")

// ErrResponseRequired is returned by the driver when a decision maker does not answer a raise
var ErrResponseRequired = errors.New("a raise must be accepted, quit or raised")

// ErrInvalidCard is returned by the driver when a decision maker selects a card that does not exist
var ErrInvalidCard = errors.New("selected card is not a valid card")

// ErrNoDecisionMaker is returned when the driver has no decision maker for the acting player
var ErrNoDecisionMaker = errors.New("no decision maker for player")

// ErrGameIsOver is returned when an action is attempted on a finished match
var ErrGameIsOver = errors.New("game is over")

// ProtocolError is a rejected action. The hand is left untouched.
type ProtocolError struct {
	Action   Action
	PlayerID int64
	Err      error
}

func (p *ProtocolError) Error() string {
	return fmt.Sprintf("%s by player %d rejected: %v", p.Action, p.PlayerID, p.Err)
}

// Unwrap returns the rule that was violated
func (p *ProtocolError) Unwrap() error {
	return p.Err
}

func rejected(action Action, playerID int64, err error) error {
	return &ProtocolError{
		Action:   action,
		PlayerID: playerID,
		Err:      err,
	}
}

// IsProtocolError returns true if err is, or wraps, a rejected action
func IsProtocolError(err error) bool {
	var protocolErr *ProtocolError
	return errors.As(err, &protocolErr)
}

// DecisionError is a failure reported by a DecisionMaker
type DecisionError struct {
	PlayerID int64
	Op       string
	Err      error
}

func (d *DecisionError) Error() string {
	return fmt.Sprintf("decision maker for player %d failed on %s: %v", d.PlayerID, d.Op, d.Err)
}

// Unwrap returns the underlying error
func (d *DecisionError) Unwrap() error {
	return d.Err
}

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected 2 players, got %d", p)
}
