package room

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truco-server/pkg/playable"
	"truco-server/pkg/playable/truco"
	"truco-server/pkg/playable/truco/bot"
)

type memoryRecorder struct {
	lock    sync.Mutex
	created []string
	hands   map[string][]truco.HandSummary
	ended   map[string]*playable.GameOverDetails
	err     error
}

func newMemoryRecorder() *memoryRecorder {
	return &memoryRecorder{
		hands: make(map[string][]truco.HandSummary),
		ended: make(map[string]*playable.GameOverDetails),
	}
}

func (m *memoryRecorder) CreateMatch(_ context.Context, matchUUID string, _ []*truco.Player) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.err != nil {
		return m.err
	}

	m.created = append(m.created, matchUUID)
	return nil
}

func (m *memoryRecorder) RecordHand(_ context.Context, matchUUID string, summary truco.HandSummary) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.hands[matchUUID] = append(m.hands[matchUUID], summary)
	return nil
}

func (m *memoryRecorder) EndMatch(_ context.Context, matchUUID string, details *playable.GameOverDetails) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.ended[matchUUID] = details
	return nil
}

func (m *memoryRecorder) handCount(matchUUID string) int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.hands[matchUUID])
}

func (m *memoryRecorder) endDetails(matchUUID string) *playable.GameOverDetails {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.ended[matchUUID]
}

func testOptions() truco.Options {
	opts := truco.DefaultOptions()
	opts.BotDelay = 0
	opts.Seed = 7
	return opts
}

func testPlayers() []*truco.Player {
	return []*truco.Player{
		truco.NewPlayer(1, "Human"),
		truco.NewPlayer(2, "Bot"),
	}
}

func startPitBoss(t *testing.T, recorder Recorder) *PitBoss {
	t.Helper()

	p := NewPitBoss(recorder)
	p.StartShift()
	t.Cleanup(p.EndShift)

	return p
}

func TestPitBoss_CreateMatch_bots(t *testing.T) {
	a := assert.New(t)
	recorder := newMemoryRecorder()
	p := startPitBoss(t, recorder)

	dealer, err := p.CreateMatch(context.Background(), testPlayers(), testOptions(), map[int64]truco.DecisionMaker{
		1: bot.Machine{},
		2: bot.Passive{},
	})
	require.NoError(t, err)

	found, ok := p.Dealer(dealer.UUID())
	a.True(ok)
	a.Equal(dealer, found)
	a.Equal([]string{dealer.UUID()}, recorder.created)

	a.Eventually(func() bool {
		return recorder.endDetails(dealer.UUID()) != nil
	}, time.Second*10, time.Millisecond*10)

	var summaries []truco.HandSummary
	a.NoError(dealer.View(context.Background(), func(game *truco.Game) error {
		a.True(game.IsGameOver())
		summaries = game.Summaries()
		return nil
	}))

	a.Equal(len(summaries), recorder.handCount(dealer.UUID()))
	details := recorder.endDetails(dealer.UUID())
	a.GreaterOrEqual(details.Scores[details.Winner], 12)
}

type failingMaker struct{}

func (failingMaker) ChooseCard(context.Context, *truco.Intel) (truco.CardSelection, error) {
	return truco.CardSelection{}, errors.New("bot is broken")
}

func (failingMaker) DecideWager(context.Context, *truco.Intel) (truco.WagerAction, error) {
	return truco.NoAction, errors.New("bot is broken")
}

func (failingMaker) MaoDeOnzeResponse(context.Context, *truco.Intel) (bool, error) {
	return false, errors.New("bot is broken")
}

func TestDealer_tick_failingBotForfeits(t *testing.T) {
	a := assert.New(t)
	recorder := newMemoryRecorder()
	p := startPitBoss(t, recorder)

	dealer, err := p.CreateMatch(context.Background(), testPlayers(), testOptions(), map[int64]truco.DecisionMaker{
		1: failingMaker{},
	})
	require.NoError(t, err)

	a.Eventually(func() bool {
		return recorder.handCount(dealer.UUID()) >= 1
	}, time.Second*5, time.Millisecond*10)

	a.NoError(dealer.View(context.Background(), func(game *truco.Game) error {
		summaries := game.Summaries()
		a.Equal(1, len(summaries))
		a.Equal(truco.Result{Winner: 2, Points: 1, Reason: truco.ReasonForfeit}, summaries[0].Result)
		a.Equal(2, game.HandNumber())
		a.Equal(1, game.Players()[1].Score)
		return nil
	}))
}

func TestPitBoss_CreateMatch_errors(t *testing.T) {
	recorder := newMemoryRecorder()
	p := startPitBoss(t, recorder)

	_, err := p.CreateMatch(context.Background(), testPlayers()[:1], testOptions(), nil)
	assert.EqualError(t, err, "expected 2 players, got 1")

	_, err = p.CreateMatch(context.Background(), testPlayers(), testOptions(), map[int64]truco.DecisionMaker{3: bot.Passive{}})
	assert.Equal(t, truco.ErrUnknownPlayer, err)

	recorder.err = errors.New("database is down")
	_, err = p.CreateMatch(context.Background(), testPlayers(), testOptions(), nil)
	assert.EqualError(t, err, "database is down")

	_, ok := p.Dealer("unknown")
	assert.False(t, ok)
}

func TestDealer_Exec(t *testing.T) {
	a := assert.New(t)
	recorder := newMemoryRecorder()
	p := startPitBoss(t, recorder)

	dealer, err := p.CreateMatch(context.Background(), testPlayers(), testOptions(), nil)
	require.NoError(t, err)

	err = dealer.Exec(context.Background(), func(game *truco.Game) error {
		return game.Raise(2)
	})
	a.True(errors.Is(err, truco.ErrNotPlayersTurn))

	a.NoError(dealer.Exec(context.Background(), func(game *truco.Game) error {
		return game.Quit(1)
	}))

	a.Equal(1, recorder.handCount(dealer.UUID()))

	a.NoError(dealer.View(context.Background(), func(game *truco.Game) error {
		a.Equal(2, game.HandNumber())
		a.Equal(1, game.Players()[1].Score)
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Equal(context.Canceled, dealer.View(ctx, func(*truco.Game) error { return nil }))

	dealer.EndShift()
	dealer.EndShift()
	a.Equal(ErrDealerClosed, dealer.View(context.Background(), func(*truco.Game) error { return nil }))
}

func TestDealer_clients(t *testing.T) {
	a := assert.New(t)
	p := startPitBoss(t, nil)

	dealer, err := p.CreateMatch(context.Background(), testPlayers(), testOptions(), nil)
	require.NoError(t, err)

	c := NewClient(nil, 1, dealer.UUID())
	c2 := NewClient(nil, 2, dealer.UUID())
	a.Equal("1:"+dealer.UUID(), c.String())
	a.Equal(int64(1), c.PlayerID())

	dealer.AddClient(c)
	dealer.AddClient(c2)
	a.Equal(2, len(dealer.Clients()))

	// the state of the match is sent on connect
	a.Eventually(func() bool {
		for {
			select {
			case msg := <-c.SendChan():
				if resp, ok := msg.(*playable.Response); ok && resp.Key == "game" {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, time.Millisecond*10)

	c.ReceivedMessage(&playable.PayloadIn{Action: "quit", Context: "ctx-1"})
	a.Eventually(func() bool {
		for {
			select {
			case msg := <-c.SendChan():
				if resp, ok := msg.(*playable.Response); ok && resp.Key == "status" {
					return resp.Context == "ctx-1"
				}
			default:
				return false
			}
		}
	}, time.Second, time.Millisecond*10)

	c2.ReceivedMessage(&playable.PayloadIn{Action: "dance", Context: "ctx-2"})
	a.Eventually(func() bool {
		for {
			select {
			case msg := <-c2.SendChan():
				if resp, ok := msg.(*playable.Response); ok && resp.Key == "error" {
					return resp.Value == "unknown action: dance" && resp.Context == "ctx-2"
				}
			default:
				return false
			}
		}
	}, time.Second, time.Millisecond*10)

	a.False(dealer.RemoveClient(c))
	a.True(dealer.RemoveClient(c2))
}

func TestClient_ReceivedMessage_noDealer(t *testing.T) {
	c := NewClient(nil, 1, "uuid")
	c.ReceivedMessage(&playable.PayloadIn{Action: "quit"})

	select {
	case msg := <-c.SendChan():
		t.Errorf("unexpected message %v", msg)
	default:
	}
}

func TestClient_Send(t *testing.T) {
	c := NewClient(nil, 1, "uuid")
	for i := 0; i < 256; i++ {
		assert.True(t, c.Send(i))
	}

	assert.False(t, c.Send("full"))
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NopRecorder{}
	ctx := context.Background()

	assert.NoError(t, r.CreateMatch(ctx, "uuid", testPlayers()))
	assert.NoError(t, r.RecordHand(ctx, "uuid", truco.HandSummary{}))
	assert.NoError(t, r.EndMatch(ctx, "uuid", &playable.GameOverDetails{}))
}
