package truco

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"truco-server/pkg/deck"
)

// CardsPerPlayer is the number of cards dealt to each player
const CardsPerPlayer = 3

// maoDeOnzeScore is the score that triggers the mão de onze
const maoDeOnzeScore = 11

// Seat is a player entering a hand
type Seat struct {
	PlayerID int64
	Score    int
	Cards    []deck.Card
}

type seat struct {
	playerID int64
	score    int
	cards    deck.Hand
}

// Hand is a single hand of truco between two players.
// A hand is not safe for concurrent use.
type Hand struct {
	vira deck.Card

	// dealer first
	seats [2]*seat

	rounds   []Round
	plays    []Play // plays of the round in progress
	lastPlay *Play
	turn     int64

	wager WagerState

	// maoDeOnzeDecider must accept or decline the hand before anything else happens
	maoDeOnzeDecider int64
	raisesLocked     bool

	result  *Result
	history map[int64][]*Intel

	logger logrus.FieldLogger
}

// Deal deals three cards to each player, starting with the non-dealer, and turns the vira
func Deal(d *deck.Deck, dealer, nonDealer Seat) (*Hand, error) {
	if !d.CanDraw(CardsPerPlayer*2 + 1) {
		return nil, deck.ErrEndOfDeck
	}

	dealer.Cards = make([]deck.Card, 0, CardsPerPlayer)
	nonDealer.Cards = make([]deck.Card, 0, CardsPerPlayer)
	for i := 0; i < CardsPerPlayer; i++ {
		card, _ := d.Draw()
		nonDealer.Cards = append(nonDealer.Cards, card)

		card, _ = d.Draw()
		dealer.Cards = append(dealer.Cards, card)
	}

	vira, _ := d.Draw()
	return NewHand(vira, dealer, nonDealer)
}

// NewHand returns a hand with the given cards already dealt
func NewHand(vira deck.Card, dealer, nonDealer Seat) (*Hand, error) {
	if dealer.PlayerID == 0 || nonDealer.PlayerID == 0 {
		return nil, errors.New("player ID cannot be zero")
	}

	if dealer.PlayerID == nonDealer.PlayerID {
		return nil, errors.New("players must be different")
	}

	seen := map[deck.Card]bool{vira: true}
	for _, s := range []Seat{dealer, nonDealer} {
		if len(s.Cards) != CardsPerPlayer {
			return nil, fmt.Errorf("player %d must have %d cards, got %d", s.PlayerID, CardsPerPlayer, len(s.Cards))
		}

		for _, card := range s.Cards {
			if seen[card] {
				return nil, fmt.Errorf("card %s was dealt twice", card)
			}

			seen[card] = true
		}
	}

	h := &Hand{
		vira:    vira,
		turn:    nonDealer.PlayerID,
		wager:   newWagerState(),
		history: make(map[int64][]*Intel),
		logger:  logrus.StandardLogger(),
	}

	for i, s := range []Seat{dealer, nonDealer} {
		h.seats[i] = &seat{
			playerID: s.PlayerID,
			score:    s.Score,
			cards:    deck.Hand(s.Cards).Clone(),
		}
	}

	dealerAt11 := dealer.Score == maoDeOnzeScore
	nonDealerAt11 := nonDealer.Score == maoDeOnzeScore
	switch {
	case dealerAt11 && nonDealer.Score < maoDeOnzeScore:
		h.maoDeOnzeDecider = dealer.PlayerID
	case nonDealerAt11 && dealer.Score < maoDeOnzeScore:
		h.maoDeOnzeDecider = nonDealer.PlayerID
	}

	h.raisesLocked = dealerAt11 || nonDealerAt11

	h.record(EventHandStart, 0)
	return h, nil
}

// SetLogger sets the logger
func (h *Hand) SetLogger(logger logrus.FieldLogger) {
	h.logger = logger
}

// Vira returns the card that sets the manilhas
func (h *Hand) Vira() deck.Card {
	return h.vira
}

// DealerID returns the dealer
func (h *Hand) DealerID() int64 {
	return h.seats[0].playerID
}

// PlayerIDs returns the players, dealer first
func (h *Hand) PlayerIDs() []int64 {
	return []int64{h.seats[0].playerID, h.seats[1].playerID}
}

// Wager returns the state of the hand value negotiation
func (h *Hand) Wager() WagerState {
	return h.wager
}

// Value returns the committed value of the hand
func (h *Hand) Value() int {
	return h.wager.Value
}

// Rounds returns the resolved rounds
func (h *Hand) Rounds() []Round {
	rounds := make([]Round, len(h.rounds))
	for i, r := range h.rounds {
		r.Plays = append([]Play(nil), r.Plays...)
		rounds[i] = r
	}

	return rounds
}

// Cards returns the cards the player still holds
func (h *Hand) Cards(playerID int64) []deck.Card {
	s := h.seat(playerID)
	if s == nil {
		return nil
	}

	return s.cards.Clone()
}

// IsMaoDeOnze returns true if a player entered the hand with 11 points
func (h *Hand) IsMaoDeOnze() bool {
	return h.raisesLocked
}

// Finished returns true once the hand has a result
func (h *Hand) Finished() bool {
	return h.result != nil
}

// Result returns the result of the hand, if it's finished
func (h *Hand) Result() (Result, bool) {
	if h.result == nil {
		return Result{}, false
	}

	return *h.result, true
}

// LastPlay returns the most recent card played in the hand
func (h *Hand) LastPlay() (Play, bool) {
	if h.lastPlay == nil {
		return Play{}, false
	}

	return *h.lastPlay, true
}

// Waiting returns the player the hand is waiting on and what is expected of them:
// ActionMaoDeOnze, ActionAccept (answer a raise) or ActionPlay
func (h *Hand) Waiting() (int64, Action) {
	switch {
	case h.result != nil:
		return 0, ""
	case h.maoDeOnzeDecider != 0:
		return h.maoDeOnzeDecider, ActionMaoDeOnze
	case h.wager.Pending():
		return h.opponent(h.wager.Raiser).playerID, ActionAccept
	}

	return h.turn, ActionPlay
}

// CanRaise returns true if the player may raise right now
func (h *Hand) CanRaise(playerID int64) bool {
	return h.checkRaise(playerID) == nil
}

// Intel returns a copy of the latest intel for the player
func (h *Hand) Intel(playerID int64) *Intel {
	history := h.history[playerID]
	if len(history) == 0 {
		return nil
	}

	return history[len(history)-1].clone()
}

// IntelHistory returns copies of every intel the player received in this hand
func (h *Hand) IntelHistory(playerID int64) []*Intel {
	history := make([]*Intel, len(h.history[playerID]))
	for i, intel := range h.history[playerID] {
		history[i] = intel.clone()
	}

	return history
}

// Play plays a card for the player
func (h *Hand) Play(playerID int64, selection CardSelection) error {
	if err := h.checkPlay(playerID, selection); err != nil {
		return rejected(ActionPlay, playerID, err)
	}

	s := h.seat(playerID)
	s.cards.Discard(selection.Card)
	play := Play{
		PlayerID:  playerID,
		Card:      selection.Card,
		Discarded: selection.Discard,
	}
	h.plays = append(h.plays, play)
	h.lastPlay = &play

	h.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"card":     selection.Card.String(),
		"discard":  selection.Discard,
	}).Debug("card played")

	if len(h.plays) < len(h.seats) {
		h.turn = h.opponent(playerID).playerID
	} else {
		h.closeRound()
	}

	h.record(EventPlay, playerID)
	return nil
}

// Raise asks the opponent to play for the next value on the ladder.
// A player answering a raise may raise again.
func (h *Hand) Raise(playerID int64) error {
	if err := h.checkRaise(playerID); err != nil {
		return rejected(ActionRaise, playerID, err)
	}

	h.wager = h.wager.raise(playerID)
	h.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"value":    h.wager.PendingValue,
	}).Debugf("%s!", LadderName(h.wager.PendingValue))

	h.record(EventRaise, playerID)
	return nil
}

// Accept accepts the opponent's raise
func (h *Hand) Accept(playerID int64) error {
	if err := h.checkActive(playerID); err != nil {
		return rejected(ActionAccept, playerID, err)
	}

	if err := h.wager.checkAccept(playerID); err != nil {
		return rejected(ActionAccept, playerID, err)
	}

	h.wager = h.wager.accept(playerID)
	h.logger.WithFields(logrus.Fields{
		"playerID": playerID,
		"value":    h.wager.Value,
	}).Debug("raise accepted")

	h.record(EventAccept, playerID)
	return nil
}

// Quit ends the hand.
// Refusing a pending raise gives the raiser the value committed before the raise.
// Otherwise the hand is forfeited and the opponent scores its committed value.
func (h *Hand) Quit(playerID int64) error {
	if err := h.checkActive(playerID); err != nil {
		return rejected(ActionQuit, playerID, err)
	}

	if h.wager.Pending() && h.wager.Raiser != playerID {
		h.finish(Result{
			Winner: h.wager.Raiser,
			Points: h.wager.Value,
			Reason: ReasonQuit,
		})
	} else {
		h.finish(Result{
			Winner: h.opponent(playerID).playerID,
			Points: h.wager.Value,
			Reason: ReasonForfeit,
		})
	}

	h.record(EventQuit, playerID)
	return nil
}

// RespondMaoDeOnze accepts or declines to play a hand of eleven.
// Declining gives the opponent one point.
func (h *Hand) RespondMaoDeOnze(playerID int64, accept bool) error {
	if err := h.checkActive(playerID); err != nil {
		return rejected(ActionMaoDeOnze, playerID, err)
	}

	if h.maoDeOnzeDecider == 0 {
		return rejected(ActionMaoDeOnze, playerID, ErrNoMaoDeOnzeDecision)
	}

	if h.maoDeOnzeDecider != playerID {
		return rejected(ActionMaoDeOnze, playerID, ErrNotPlayersTurn)
	}

	h.maoDeOnzeDecider = 0
	if !accept {
		h.finish(Result{
			Winner: h.opponent(playerID).playerID,
			Points: 1,
			Reason: ReasonMaoDeOnzeDeclined,
		})
		h.record(EventMaoDeOnzeDeclined, playerID)
		return nil
	}

	h.logger.WithField("playerID", playerID).Debug("mão de onze accepted")
	h.record(EventMaoDeOnzeAccepted, playerID)
	return nil
}

func (h *Hand) seat(playerID int64) *seat {
	for _, s := range h.seats {
		if s.playerID == playerID {
			return s
		}
	}

	return nil
}

func (h *Hand) opponent(playerID int64) *seat {
	if h.seats[0].playerID == playerID {
		return h.seats[1]
	}

	return h.seats[0]
}

func (h *Hand) nonDealer() *seat {
	return h.seats[1]
}

func (h *Hand) checkActive(playerID int64) error {
	if h.result != nil {
		return ErrHandIsOver
	}

	if h.seat(playerID) == nil {
		return ErrUnknownPlayer
	}

	return nil
}

func (h *Hand) checkPlay(playerID int64, selection CardSelection) error {
	if err := h.checkActive(playerID); err != nil {
		return err
	}

	if h.maoDeOnzeDecider != 0 {
		return ErrMaoDeOnzePending
	}

	if h.wager.Pending() {
		return ErrWaitingForRaiseResponse
	}

	if h.turn != playerID {
		return ErrNotPlayersTurn
	}

	if !h.seat(playerID).cards.HasCard(selection.Card) {
		return ErrCardNotInPlayersHand
	}

	if selection.Discard && len(h.rounds) == 0 {
		return ErrCannotDiscardFirstRound
	}

	return nil
}

func (h *Hand) checkRaise(playerID int64) error {
	if err := h.checkActive(playerID); err != nil {
		return err
	}

	if h.maoDeOnzeDecider != 0 {
		return ErrMaoDeOnzePending
	}

	if h.raisesLocked {
		return ErrRaiseNotAllowed
	}

	if !h.wager.Pending() && h.turn != playerID {
		return ErrNotPlayersTurn
	}

	return h.wager.checkRaise(playerID)
}

func (h *Hand) closeRound() {
	round := Round{
		Number:  len(h.rounds) + 1,
		Plays:   h.plays,
		Outcome: ResolveRound(h.plays, h.vira),
	}

	h.rounds = append(h.rounds, round)
	h.plays = nil

	h.logger.WithFields(logrus.Fields{
		"round":   round.Number,
		"outcome": round.Outcome.String(),
	}).Debug("round resolved")

	if outcome, decided := h.decide(); decided {
		if winner, ok := outcome.Won(); ok {
			h.finish(Result{
				Winner: winner,
				Points: h.wager.Value,
				Reason: ReasonRounds,
			})
		} else {
			h.finish(Result{
				Draw:   true,
				Reason: ReasonRounds,
			})
		}

		return
	}

	if winner, ok := round.Outcome.Won(); ok {
		h.turn = winner
	} else {
		h.turn = h.nonDealer().playerID
	}
}

// decide returns the outcome of the hand if the resolved rounds settle it.
// Two round wins take the hand. Once a round was drawn and two or more rounds were
// played, the first decisive round takes the hand. Three drawn rounds draw the hand.
func (h *Hand) decide() (Outcome, bool) {
	wins := make(map[int64]int)
	drawn := false
	var firstWinner int64

	for _, round := range h.rounds {
		winner, ok := round.Outcome.Won()
		if !ok {
			drawn = true
			continue
		}

		wins[winner]++
		if wins[winner] == 2 {
			return Outcome{Winner: winner}, true
		}

		if firstWinner == 0 {
			firstWinner = winner
		}
	}

	if drawn && len(h.rounds) >= 2 && firstWinner != 0 {
		return Outcome{Winner: firstWinner}, true
	}

	if len(h.rounds) == 3 {
		return Outcome{Draw: true}, true
	}

	return Outcome{}, false
}

func (h *Hand) finish(result Result) {
	h.result = &result
	h.turn = 0
	h.logger.WithFields(logrus.Fields{
		"winner": result.Winner,
		"points": result.Points,
		"reason": result.Reason,
	}).Info("hand finished")
}

func (h *Hand) record(event Event, actor int64) {
	for _, s := range h.seats {
		h.history[s.playerID] = append(h.history[s.playerID], h.snapshot(s.playerID, event, actor))
	}
}

func (h *Hand) snapshot(playerID int64, event Event, actor int64) *Intel {
	me := h.seat(playerID)
	opponent := h.opponent(playerID)

	intel := &Intel{
		Event:         event,
		EventPlayerID: actor,
		PlayerID:      playerID,
		OpponentID:    opponent.playerID,
		DealerID:      h.DealerID(),
		Vira:          h.vira,
		Manilha:       ManilhaRank(h.vira),
		Rounds:        make([]Outcome, 0, len(h.rounds)),
		OpenCards:     []deck.Card{h.vira},
		Cards:         me.cards.Clone(),
		Score:         me.score,
		OpponentScore: opponent.score,
		HandValue:     h.wager.Value,
		PendingValue:  h.wager.PendingValue,
		MaoDeOnze:     h.raisesLocked,
	}

	intel.Turn, _ = h.Waiting()

	for _, round := range h.rounds {
		intel.Rounds = append(intel.Rounds, round.Outcome)
		intel.OpenCards = appendFaceUp(intel.OpenCards, round.Plays)
	}

	intel.OpenCards = appendFaceUp(intel.OpenCards, h.plays)
	for _, play := range h.plays {
		if play.PlayerID != opponent.playerID {
			continue
		}

		if play.Discarded {
			intel.OpponentCard = HiddenCard()
		} else {
			intel.OpponentCard = KnownCard(play.Card)
		}
	}

	intel.PossibleActions = h.possibleActions(playerID)

	if h.result != nil {
		result := *h.result
		intel.result = &result
	}

	return intel
}

func (h *Hand) possibleActions(playerID int64) []Action {
	if h.result != nil {
		return []Action{}
	}

	actions := make([]Action, 0, 3)
	waiting, action := h.Waiting()
	if waiting == playerID {
		actions = append(actions, action)
	}

	if h.CanRaise(playerID) {
		actions = append(actions, ActionRaise)
	}

	return append(actions, ActionQuit)
}

func appendFaceUp(cards []deck.Card, plays []Play) []deck.Card {
	for _, play := range plays {
		if !play.Discarded {
			cards = append(cards, play.Card)
		}
	}

	return cards
}
