package bot

import (
	"context"
	"errors"

	"truco-server/pkg/playable/truco"
)

// ErrNoCards is returned when a card is requested from an empty hand
var ErrNoCards = errors.New("no cards left to play")

// Machine plays greedily: strongest card when leading, cheapest winner when following,
// and raises when the hand looks strong
type Machine struct{}

var _ truco.DecisionMaker = Machine{}

// ChooseCard chooses the card to play
func (m Machine) ChooseCard(_ context.Context, intel *truco.Intel) (truco.CardSelection, error) {
	if len(intel.Cards) == 0 {
		return truco.CardSelection{}, ErrNoCards
	}

	a := analyze(intel)

	switch intel.OpponentCard.State() {
	case truco.Hidden:
		return truco.Select(a.lowest()), nil
	case truco.Known:
		opponent, _ := intel.OpponentCard.Card()
		if card, ok := a.cheapestWinner(opponent); ok {
			return truco.Select(card), nil
		}

		if card, ok := a.tie(opponent); ok {
			return truco.Select(card), nil
		}

		return truco.Select(a.lowest()), nil
	}

	// leading: keep the top manilha for the last round once the first round is won
	if a.roundNumber() == 2 && a.wonFirstRound() && a.hasTopManilha() && len(a.cards) > 1 {
		return truco.Discard(a.lowest()), nil
	}

	return truco.Select(a.highest()), nil
}

// DecideWager raises on strong hands and answers raises with RaiseResponse
func (m Machine) DecideWager(_ context.Context, intel *truco.Intel) (truco.WagerAction, error) {
	if intel.CanDo(truco.ActionAccept) {
		return m.RaiseResponse(intel).WagerAction()
	}

	if intel.CanDo(truco.ActionRaise) && m.DecideIfRaises(intel) {
		return truco.Raise, nil
	}

	return truco.NoAction, nil
}

// DecideIfRaises returns true if the machine wants to raise the hand value
func (m Machine) DecideIfRaises(intel *truco.Intel) bool {
	if intel.Score == 11 || intel.OpponentScore == 11 || len(intel.Cards) == 0 {
		return false
	}

	a := analyze(intel)
	switch {
	case a.hasTopManilha() && a.manilhas() >= 2:
		return true
	case a.scoreLead() > 3 && a.manilhas() >= 1 && a.strongCards() >= 2:
		return true
	case a.scoreLead() > 3 && a.wonFirstRound() && a.manilhas() >= 1:
		return true
	case a.scoreLead() > 3 && a.strongCards() == 3:
		return true
	case a.lostFirstRound() && a.manilhas() >= 2:
		return true
	case a.roundNumber() == 3 && a.hasTopManilha():
		return true
	}

	if opponent, ok := intel.OpponentCard.Card(); ok && a.roundNumber() == 3 {
		return a.strength(a.highest()) > a.strength(opponent)
	}

	return false
}

// RaiseResponse answers an opponent's raise
func (m Machine) RaiseResponse(intel *truco.Intel) truco.RaiseResponse {
	a := analyze(intel)
	if intel.CanDo(truco.ActionRaise) && a.manilhas() >= 2 {
		return truco.RaiseResponseRaise
	}

	if a.manilhas() >= 1 || a.strongCards() >= 2 || a.wonFirstRound() {
		return truco.RaiseResponseAccept
	}

	return truco.RaiseResponseQuit
}

// MaoDeOnzeResponse plays the hand of eleven with three strong cards and a manilha,
// or with three strong cards when the opponent is close to winning
func (m Machine) MaoDeOnzeResponse(_ context.Context, intel *truco.Intel) (bool, error) {
	a := analyze(intel)
	if a.strongCards() < 3 {
		return false, nil
	}

	return a.manilhas() > 0 || intel.OpponentScore >= 8, nil
}
