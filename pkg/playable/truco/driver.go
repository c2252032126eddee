package truco

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"truco-server/pkg/deck"
)

// Driver asks DecisionMakers to act for their players.
// Players without a DecisionMaker are expected to act through the Hand directly.
type Driver struct {
	hand   *Hand
	makers map[int64]DecisionMaker
	logger logrus.FieldLogger
}

// NewDriver returns a driver for the hand
func NewDriver(hand *Hand, makers map[int64]DecisionMaker) *Driver {
	m := make(map[int64]DecisionMaker, len(makers))
	for id, dm := range makers {
		m[id] = dm
	}

	return &Driver{
		hand:   hand,
		makers: m,
		logger: hand.logger,
	}
}

// Hand returns the driven hand
func (d *Driver) Hand() *Hand {
	return d.hand
}

// Step makes one decision for the player the hand is waiting on.
// It returns false without doing anything if that player has no DecisionMaker or the hand is over.
func (d *Driver) Step(ctx context.Context) (bool, error) {
	playerID, expected := d.hand.Waiting()
	if playerID == 0 {
		return false, nil
	}

	dm, ok := d.makers[playerID]
	if !ok {
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		return false, err
	}

	intel := d.hand.Intel(playerID)
	log := d.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"expected": expected,
	})

	switch expected {
	case ActionMaoDeOnze:
		accept, err := dm.MaoDeOnzeResponse(ctx, intel)
		if err != nil {
			return false, &DecisionError{PlayerID: playerID, Op: "MaoDeOnzeResponse", Err: err}
		}

		log.WithField("accept", accept).Debug("mão de onze decision")
		return true, d.hand.RespondMaoDeOnze(playerID, accept)
	case ActionAccept:
		action, err := dm.DecideWager(ctx, intel)
		if err != nil {
			return false, &DecisionError{PlayerID: playerID, Op: "DecideWager", Err: err}
		}

		log.WithField("action", action).Debug("raise response")
		switch action {
		case Accept:
			return true, d.hand.Accept(playerID)
		case Quit:
			return true, d.hand.Quit(playerID)
		case Raise:
			return true, d.hand.Raise(playerID)
		}

		return false, &DecisionError{PlayerID: playerID, Op: "DecideWager", Err: ErrResponseRequired}
	case ActionPlay:
		action, err := dm.DecideWager(ctx, intel)
		if err != nil {
			return false, &DecisionError{PlayerID: playerID, Op: "DecideWager", Err: err}
		}

		switch action {
		case NoAction:
		case Raise:
			log.Debug("decision maker raises")
			return true, d.hand.Raise(playerID)
		case Quit:
			log.Debug("decision maker quits")
			return true, d.hand.Quit(playerID)
		case Accept:
			return true, d.hand.Accept(playerID)
		default:
			return false, &DecisionError{PlayerID: playerID, Op: "DecideWager", Err: fmt.Errorf("unknown action: %d", int(action))}
		}

		selection, err := dm.ChooseCard(ctx, intel)
		if err != nil {
			return false, &DecisionError{PlayerID: playerID, Op: "ChooseCard", Err: err}
		}

		if !selection.Card.Valid() {
			return false, &DecisionError{PlayerID: playerID, Op: "ChooseCard", Err: ErrInvalidCard}
		}

		if err := d.hand.Play(playerID, selection); err != nil {
			return true, err
		}

		log.WithField("card", deck.CardToString(selection.Card)).Debug("decision maker plays")
		return true, nil
	}

	panic(fmt.Sprintf("unexpected action: %s", expected))
}

// PlayWhenNecessary steps until the hand is over or waits on a player without a DecisionMaker
func (d *Driver) PlayWhenNecessary(ctx context.Context) error {
	for {
		acted, err := d.Step(ctx)
		if err != nil {
			return err
		}

		if !acted {
			return nil
		}
	}
}

// PlayHand plays the whole hand through the DecisionMakers
func (d *Driver) PlayHand(ctx context.Context) (Result, error) {
	if err := d.PlayWhenNecessary(ctx); err != nil {
		return Result{}, err
	}

	result, ok := d.hand.Result()
	if !ok {
		playerID, _ := d.hand.Waiting()
		return Result{}, fmt.Errorf("%w %d", ErrNoDecisionMaker, playerID)
	}

	return result, nil
}
