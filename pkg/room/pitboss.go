package room

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"truco-server/pkg/playable/truco"
)

// PitBoss is responsible for dispatching players to matches
type PitBoss struct {
	dealers  map[string]*Dealer
	lock     sync.RWMutex
	recorder Recorder
	logger   logrus.FieldLogger

	connect    chan *Client
	disconnect chan *Client
	close      chan bool
}

// NewPitBoss returns a new dispatch object
// If recorder is nil, nothing is persisted
func NewPitBoss(recorder Recorder) *PitBoss {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		recorder:   recorder,
		logger:     logrus.StandardLogger(),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
	}
}

// SetLogger sets the logger
func (p *PitBoss) SetLogger(logger logrus.FieldLogger) {
	p.logger = logger
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and every dealer
func (p *PitBoss) EndShift() {
	close(p.close)

	p.lock.Lock()
	defer p.lock.Unlock()
	for id, dealer := range p.dealers {
		dealer.EndShift()
		delete(p.dealers, id)
	}
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			dealer, found := p.Dealer(client.matchUUID)
			if !found {
				p.logger.WithField("uuid", client.matchUUID).WithField("type", "exception").Error("match not found")
				continue
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			dealer, found := p.Dealer(client.matchUUID)
			if !found {
				continue
			}

			dealer.RemoveClient(client)
		case <-p.close:
			return
		}
	}
}

// CreateMatch starts a new match with a dealer of its own.
// makers lets DecisionMakers act for some of the players.
func (p *PitBoss) CreateMatch(ctx context.Context, players []*truco.Player, opts truco.Options, makers map[int64]truco.DecisionMaker) (*Dealer, error) {
	matchUUID := uuid.New().String()
	game, err := truco.NewGame(matchUUID, players, opts)
	if err != nil {
		return nil, err
	}

	game.SetLogger(p.logger)
	for playerID, dm := range makers {
		if err := game.SetDecisionMaker(playerID, dm); err != nil {
			return nil, err
		}
	}

	if err := p.recorder.CreateMatch(ctx, matchUUID, players); err != nil {
		return nil, err
	}

	dealer := NewDealer(game, p.recorder)
	dealer.StartShift()

	p.lock.Lock()
	p.dealers[matchUUID] = dealer
	p.lock.Unlock()

	p.logger.WithField("uuid", matchUUID).Info("match created")
	return dealer, nil
}

// Dealer returns the dealer running the match
func (p *PitBoss) Dealer(matchUUID string) (*Dealer, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, found := p.dealers[matchUUID]
	return dealer, found
}

// MatchCount returns the number of matches being dealt
func (p *PitBoss) MatchCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
