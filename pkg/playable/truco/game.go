package truco

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"truco-server/internal/rng"
	"truco-server/pkg/deck"
	"truco-server/pkg/playable"
)

const logChanSize = 256

// HandSummary is the record of a finished hand
type HandSummary struct {
	Number   int           `json:"number"`
	DealerID int64         `json:"dealerId"`
	Vira     deck.Card     `json:"vira"`
	Seed     int64         `json:"seed"`
	DeckHash string        `json:"deckHash"`
	Rounds   []Round       `json:"rounds"`
	Value    int           `json:"value"`
	Result   Result        `json:"result"`
	Scores   map[int64]int `json:"scores"`
	EndedAt  time.Time     `json:"endedAt"`
}

// Game is a match of truco between two players
type Game struct {
	uuid    string
	options Options

	players    []*Player
	idToPlayer map[int64]*Player
	dealer     int

	handNumber int
	hand       *Hand
	driver     *Driver
	makers     map[int64]DecisionMaker
	seed       int64
	deckHash   string

	summaries []HandSummary
	winner    *Player

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame creates a match and deals the first hand.
// The second player deals first, so the first player leads.
func NewGame(matchUUID string, players []*Player, opts Options) (*Game, error) {
	if len(players) != 2 {
		return nil, PlayerCountError(len(players))
	}

	if players[0].ID == players[1].ID {
		return nil, errors.New("players must be different")
	}

	if opts.MatchPoints <= 0 {
		opts.MatchPoints = DefaultOptions().MatchPoints
	}

	g := &Game{
		uuid:       matchUUID,
		options:    opts,
		players:    players,
		idToPlayer: make(map[int64]*Player),
		dealer:     1,
		makers:     make(map[int64]DecisionMaker),
		logger:     logrus.WithField("matchID", matchUUID),
		logChan:    make(chan []*playable.LogMessage, logChanSize),
	}

	for _, p := range players {
		g.idToPlayer[p.ID] = p
	}

	if err := g.deal(); err != nil {
		return nil, err
	}

	return g, nil
}

// SetLogger sets the logger
func (g *Game) SetLogger(logger logrus.FieldLogger) {
	g.logger = logger.WithField("matchID", g.uuid)
	g.hand.SetLogger(g.logger.WithField("hand", g.handNumber))
	g.driver.logger = g.hand.logger
}

// SetDecisionMaker lets dm act for the player
func (g *Game) SetDecisionMaker(playerID int64, dm DecisionMaker) error {
	if _, ok := g.idToPlayer[playerID]; !ok {
		return ErrUnknownPlayer
	}

	g.makers[playerID] = dm
	g.driver = NewDriver(g.hand, g.makers)
	return nil
}

// IsAutomated returns true if a DecisionMaker acts for the player
func (g *Game) IsAutomated(playerID int64) bool {
	_, ok := g.makers[playerID]
	return ok
}

// UUID returns the match identifier
func (g *Game) UUID() string {
	return g.uuid
}

// Options returns the options of the match
func (g *Game) Options() Options {
	return g.options
}

// Players returns the players
func (g *Game) Players() []*Player {
	return g.players
}

// Hand returns the hand in progress, or the last hand once the match is over
func (g *Game) Hand() *Hand {
	return g.hand
}

// HandNumber returns the number of the current hand, starting at 1
func (g *Game) HandNumber() int {
	return g.handNumber
}

// Summaries returns the finished hands
func (g *Game) Summaries() []HandSummary {
	return append([]HandSummary(nil), g.summaries...)
}

// IsGameOver returns true once a player reached the match points
func (g *Game) IsGameOver() bool {
	return g.winner != nil
}

// Winner returns the winner of the match
func (g *Game) Winner() (*Player, bool) {
	return g.winner, g.winner != nil
}

// Play plays a card for the player
func (g *Game) Play(playerID int64, selection CardSelection) error {
	return g.do(func() error {
		return g.hand.Play(playerID, selection)
	})
}

// Raise raises the hand value
func (g *Game) Raise(playerID int64) error {
	return g.do(func() error {
		return g.hand.Raise(playerID)
	})
}

// Accept accepts the opponent's raise
func (g *Game) Accept(playerID int64) error {
	return g.do(func() error {
		return g.hand.Accept(playerID)
	})
}

// Quit quits the hand. Without a pending raise this forfeits the hand.
func (g *Game) Quit(playerID int64) error {
	return g.do(func() error {
		return g.hand.Quit(playerID)
	})
}

// RespondRaise answers a raise with -1 (quit), 0 (accept) or 1 (raise again)
func (g *Game) RespondRaise(playerID int64, response RaiseResponse) error {
	action, err := response.WagerAction()
	if err != nil {
		return err
	}

	switch action {
	case Quit:
		return g.Quit(playerID)
	case Accept:
		return g.Accept(playerID)
	}

	return g.Raise(playerID)
}

// RespondMaoDeOnze accepts or declines a hand of eleven
func (g *Game) RespondMaoDeOnze(playerID int64, accept bool) error {
	return g.do(func() error {
		return g.hand.RespondMaoDeOnze(playerID, accept)
	})
}

// Step makes a single decision for an automated player.
// It returns false if the match is waiting on a player without a DecisionMaker.
func (g *Game) Step(ctx context.Context) (bool, error) {
	if g.winner != nil {
		return false, nil
	}

	acted, err := g.driver.Step(ctx)
	if err != nil || !acted {
		return acted, err
	}

	return true, g.afterTransition()
}

// Advance lets automated players act until a human must act or the match is over
func (g *Game) Advance(ctx context.Context) error {
	for {
		acted, err := g.Step(ctx)
		if err != nil {
			return err
		}

		if !acted {
			return nil
		}
	}
}

// Delay returns how long to wait between two automated decisions
func (g *Game) Delay() time.Duration {
	return g.options.BotDelay
}

// Tick makes one automated decision, if one is due
func (g *Game) Tick() (bool, error) {
	return g.Step(context.Background())
}

func (g *Game) do(fn func() error) error {
	if g.winner != nil {
		return ErrGameIsOver
	}

	if err := fn(); err != nil {
		return err
	}

	return g.afterTransition()
}

func (g *Game) afterTransition() error {
	g.sendLogMessages(g.describe())

	if g.hand.Finished() {
		return g.completeHand()
	}

	return nil
}

func (g *Game) deal() error {
	d := deck.New()
	if g.options.SecureShuffle {
		d.ShuffleWith(rng.Crypto{})
	} else {
		var seed int64
		if g.options.Seed > 0 {
			seed = g.options.Seed + int64(g.handNumber)
		}

		d.Shuffle(seed)
	}

	g.seed = d.GetSeed()
	g.deckHash = d.HashCode()

	dealer := g.players[g.dealer]
	nonDealer := g.players[1-g.dealer]
	hand, err := Deal(d, dealer.seat(), nonDealer.seat())
	if err != nil {
		return err
	}

	g.handNumber++
	hand.SetLogger(g.logger.WithField("hand", g.handNumber))
	g.hand = hand
	g.driver = NewDriver(hand, g.makers)

	g.logger.WithFields(logrus.Fields{
		"dealer": dealer.ID,
		"vira":   hand.Vira().String(),
	}).Debug("hand dealt")

	vira := hand.Vira()
	g.sendLogMessages(newLogMessage(dealer.ID, &vira, "{} dealt hand %d", g.handNumber))

	return nil
}

func (g *Game) completeHand() error {
	result, _ := g.hand.Result()
	if !result.Draw {
		g.idToPlayer[result.Winner].Score += result.Points
	}

	scores := make(map[int64]int, len(g.players))
	for _, p := range g.players {
		scores[p.ID] = p.Score
	}

	g.summaries = append(g.summaries, HandSummary{
		Number:   g.handNumber,
		DealerID: g.hand.DealerID(),
		Vira:     g.hand.Vira(),
		Seed:     g.seed,
		DeckHash: g.deckHash,
		Rounds:   g.hand.Rounds(),
		Value:    g.hand.Value(),
		Result:   result,
		Scores:   scores,
		EndedAt:  time.Now(),
	})

	if result.Draw {
		g.sendLogMessages(playable.SimpleLogMessage(0, "hand %d was a draw", g.handNumber))
	} else {
		g.sendLogMessages(newLogMessage(result.Winner, nil, "{} won hand %d for %d point(s)", g.handNumber, result.Points))
	}

	for _, p := range g.players {
		if p.Score >= g.options.MatchPoints {
			g.winner = p
			g.logger.WithField("winner", p.ID).Info("match over")
			g.sendLogMessages(newLogMessage(p.ID, nil, "{} won the match"))
			return nil
		}
	}

	g.dealer = 1 - g.dealer
	return g.deal()
}

// describe returns the log message for the last transition of the hand
func (g *Game) describe() *playable.LogMessage {
	intel := g.hand.Intel(g.players[0].ID)
	actor := intel.EventPlayerID

	switch intel.Event {
	case EventPlay:
		play, _ := g.hand.LastPlay()
		if play.Discarded {
			return newLogMessage(actor, nil, "{} played a card face down")
		}

		return newLogMessage(actor, &play.Card, "{} played %s", play.Card)
	case EventRaise:
		return newLogMessage(actor, nil, "{} called %s", LadderName(intel.PendingValue))
	case EventAccept:
		return newLogMessage(actor, nil, "{} accepted, the hand is worth %d", intel.HandValue)
	case EventQuit:
		return newLogMessage(actor, nil, "{} quit")
	case EventMaoDeOnzeAccepted:
		return newLogMessage(actor, nil, "{} will play the hand of eleven")
	case EventMaoDeOnzeDeclined:
		return newLogMessage(actor, nil, "{} declined the hand of eleven")
	}

	return playable.SimpleLogMessage(actor, "%s", intel.Event)
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	select {
	case g.logChan <- msg:
	default:
		g.logger.Warn("log channel is full, dropping messages")
	}
}

func newLogMessage(playerID int64, card *deck.Card, format string, a ...interface{}) *playable.LogMessage {
	var cards []deck.Card
	if card != nil {
		cards = append(cards, *card)
	}

	return &playable.LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: []int64{playerID},
		Cards:     cards,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
