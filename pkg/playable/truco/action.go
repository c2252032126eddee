package truco

import (
	"errors"
	"fmt"

	"truco-server/pkg/deck"
	"truco-server/pkg/playable"
)

var (
	_ playable.Playable = (*Game)(nil)
	_ playable.Tickable = (*Game)(nil)
	_ playable.Player   = (*Player)(nil)
)

// Name returns "truco"
func (g *Game) Name() string {
	return "truco"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if _, ok := g.idToPlayer[playerID]; !ok {
		return nil, false, errors.New("player not found with that ID")
	}

	log := g.logger.WithField("playerID", playerID)
	log.WithField("action", message.Action).Debug("player action")

	switch Action(message.Action) {
	case ActionPlay:
		card, err := cardFromPayload(message)
		if err != nil {
			return nil, false, err
		}

		discard, _ := message.AdditionalData.GetBool("discard")
		err = g.Play(playerID, CardSelection{Card: card, Discard: discard})
		if err != nil {
			return nil, false, err
		}
	case ActionRaise:
		if err := g.Raise(playerID); err != nil {
			return nil, false, err
		}
	case ActionAccept:
		if err := g.Accept(playerID); err != nil {
			return nil, false, err
		}
	case ActionQuit:
		if err := g.Quit(playerID); err != nil {
			return nil, false, err
		}
	case ActionMaoDeOnze:
		accept, ok := message.AdditionalData.GetBool("accept")
		if !ok {
			return nil, false, errors.New("accept must be a boolean")
		}

		if err := g.RespondMaoDeOnze(playerID, accept); err != nil {
			return nil, false, err
		}
	case "respond":
		response, ok := message.AdditionalData.GetInt("response")
		if !ok {
			return nil, false, errors.New("response must be -1, 0 or 1")
		}

		if err := g.RespondRaise(playerID, RaiseResponse(response)); err != nil {
			return nil, false, err
		}
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}

	return playable.OK(message.Context), true, nil
}

// GetPlayerState returns the current state of the match for the player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	if _, ok := g.idToPlayer[playerID]; !ok {
		return nil, errors.New("player not found with that ID")
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Name(),
		Data:  g.State(playerID),
	}, nil
}

// GetEndOfGameDetails returns the final scores once the match is over
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.winner == nil {
		return nil, false
	}

	scores := make(map[int64]int, len(g.players))
	for _, p := range g.players {
		scores[p.ID] = p.Score
	}

	return &playable.GameOverDetails{
		Winner: g.winner.ID,
		Scores: scores,
		Log:    g.Summaries(),
	}, true
}

func cardFromPayload(message *playable.PayloadIn) (deck.Card, error) {
	if len(message.Cards) == 1 {
		return message.Cards[0], nil
	}

	if len(message.Cards) > 1 {
		return deck.Card{}, fmt.Errorf("expected to get 1 card, got %d", len(message.Cards))
	}

	s, ok := message.AdditionalData.GetString("card")
	if !ok {
		return deck.Card{}, errors.New("a card is required")
	}

	return deck.ParseCard(s)
}
