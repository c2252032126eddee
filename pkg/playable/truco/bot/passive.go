package bot

import (
	"context"

	"truco-server/pkg/playable/truco"
)

// Passive plays its first card, never raises, accepts every raise and declines the hand of eleven
type Passive struct{}

var _ truco.DecisionMaker = Passive{}

// ChooseCard plays the first card in hand
func (Passive) ChooseCard(_ context.Context, intel *truco.Intel) (truco.CardSelection, error) {
	if len(intel.Cards) == 0 {
		return truco.CardSelection{}, ErrNoCards
	}

	return truco.Select(intel.Cards[0]), nil
}

// DecideWager accepts raises and otherwise does nothing
func (Passive) DecideWager(_ context.Context, intel *truco.Intel) (truco.WagerAction, error) {
	if intel.CanDo(truco.ActionAccept) {
		return truco.RaiseResponseAccept.WagerAction()
	}

	return truco.NoAction, nil
}

// MaoDeOnzeResponse always declines
func (Passive) MaoDeOnzeResponse(context.Context, *truco.Intel) (bool, error) {
	return false, nil
}

// New returns the decision maker for the name ("machine" or "passive")
func New(name string) (truco.DecisionMaker, bool) {
	switch name {
	case "machine", "":
		return Machine{}, true
	case "passive":
		return Passive{}, true
	}

	return nil, false
}
