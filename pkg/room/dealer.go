package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"truco-server/pkg/playable"
	"truco-server/pkg/playable/truco"
)

// minTickInterval keeps a zero bot delay from spinning the run loop
const minTickInterval = time.Millisecond * 10

// recordTimeout bounds a single call to the Recorder
const recordTimeout = time.Second * 5

// ErrDealerClosed is returned when the dealer is no longer running
var ErrDealerClosed = errors.New("the dealer is no longer running")

type state int

const (
	stateClientEvent state = iota
)

// Dealer runs a single match.
// Every call into the match happens on the dealer's run loop.
type Dealer struct {
	game     *truco.Game
	recorder Recorder
	clients  map[*Client]bool
	lock     sync.RWMutex
	logger   logrus.FieldLogger

	// only accessed from the run loop
	recordedHands int
	ended         bool
	logMessages   []*playable.LogMessage

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(game *truco.Game, recorder Recorder) *Dealer {
	if recorder == nil {
		recorder = NopRecorder{}
	}

	return &Dealer{
		game:          game,
		recorder:      recorder,
		clients:       make(map[*Client]bool),
		logger:        logrus.WithField("uuid", game.UUID()),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// UUID returns the match identifier
func (d *Dealer) UUID() string {
	return d.game.UUID()
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

func (d *Dealer) runLoop() {
	interval := d.game.Delay()
	if interval < minTickInterval {
		interval = minTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			if s == stateClientEvent {
				d.sendClientState()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case msgs := <-d.game.LogChan():
			d.addLogMessages(msgs)
			d.broadcast(&playable.Response{
				Key:  "log",
				Data: msgs,
			})
		case <-ticker.C:
			d.tick()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// Exec runs fn on the run loop and waits for it.
// Connected clients get the new state when fn succeeds.
func (d *Dealer) Exec(ctx context.Context, fn func(game *truco.Game) error) error {
	return d.exec(ctx, func(game *truco.Game) error {
		if err := fn(game); err != nil {
			return err
		}

		d.stateUpdated()
		return nil
	})
}

// View runs fn on the run loop and waits for it. fn must not change the match.
func (d *Dealer) View(ctx context.Context, fn func(game *truco.Game) error) error {
	return d.exec(ctx, fn)
}

func (d *Dealer) exec(ctx context.Context, fn func(game *truco.Game) error) error {
	result := make(chan error, 1)
	job := func() {
		result <- fn(d.game)
	}

	select {
	case d.execInRunLoop <- job:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		gs, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		action, updateState, err := d.game.Action(c.playerID, msg)
		if err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Info("could not perform action")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		if action != nil {
			action.Context = msg.Context
			c.Send(action)
		}

		if updateState {
			d.stateUpdated()
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) tick() {
	acted, err := d.game.Tick()
	if err != nil {
		d.forfeit(err)
		return
	}

	if acted {
		d.stateUpdated()
	}
}

// forfeit quits the hand for an automated seat whose decision failed or was rejected.
// A failing seat would otherwise be asked again on every tick.
// NOTE: must only be called from the run loop
func (d *Dealer) forfeit(err error) {
	playerID := failedPlayerID(err)
	log := d.logger.WithError(err).WithField("playerID", playerID)
	if playerID == 0 || !d.game.IsAutomated(playerID) {
		log.Error("automated player failed")
		return
	}

	log.Warn("automated player failed, forfeiting the hand")
	if quitErr := d.game.Quit(playerID); quitErr != nil {
		log.WithField("quitError", quitErr.Error()).Error("could not forfeit the hand")
		return
	}

	d.broadcast(newErrorResponse("bot", err))
	d.stateUpdated()
}

func failedPlayerID(err error) int64 {
	var decisionErr *truco.DecisionError
	if errors.As(err, &decisionErr) {
		return decisionErr.PlayerID
	}

	var protocolErr *truco.ProtocolError
	if errors.As(err, &protocolErr) {
		return protocolErr.PlayerID
	}

	return 0
}

// stateUpdated persists what is new and pushes the state to the clients
// NOTE: must only be called from the run loop
func (d *Dealer) stateUpdated() {
	d.record()
	d.sendGameData()
}

// NOTE: must only be called from the run loop
func (d *Dealer) record() {
	summaries := d.game.Summaries()
	for ; d.recordedHands < len(summaries); d.recordedHands++ {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		err := d.recorder.RecordHand(ctx, d.UUID(), summaries[d.recordedHands])
		cancel()

		if err != nil {
			d.logger.WithError(err).WithField("hand", summaries[d.recordedHands].Number).Error("could not record hand")
		}
	}

	details, isOver := d.game.GetEndOfGameDetails()
	if !isOver || d.ended {
		return
	}

	d.ended = true
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := d.recorder.EndMatch(ctx, d.UUID(), details); err != nil {
		d.logger.WithError(err).Error("could not record end of match")
	}

	d.broadcast(&playable.Response{
		Key:  "gameEnded",
		Data: details,
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			continue
		}

		if !client.Send(data) {
			d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropping state")
		}
	}
}

func (d *Dealer) sendClientState() {
	connected := make(map[int64]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	d.broadcast(&playable.Response{
		Key:  "clientState",
		Data: connected,
	})
}

func (d *Dealer) broadcast(msg *playable.Response) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}
