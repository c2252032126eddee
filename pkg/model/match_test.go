package model

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truco-server/pkg/db"
	"truco-server/pkg/deck"
	"truco-server/pkg/playable"
	"truco-server/pkg/playable/truco"
)

var cbg = context.Background()

// matchStore connects to the database in TRUCO_PG_DSN, or skips the test
func matchStore(t *testing.T) *MatchStore {
	t.Helper()

	dsn := os.Getenv("TRUCO_PG_DSN")
	if dsn == "" {
		t.Skip("TRUCO_PG_DSN is not set")
	}

	dbh, err := db.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbh.Close() })

	require.NoError(t, db.MigrateDB(dbh, "../../sql"))
	return NewMatchStore(dbh)
}

func TestMatchStore(t *testing.T) {
	a := assert.New(t)
	store := matchStore(t)

	matchUUID := uuid.New().String()
	players := []*truco.Player{truco.NewPlayer(1, "Alice"), truco.NewPlayer(2, "Bruno")}

	before := time.Now().Add(-time.Minute)
	a.NoError(store.CreateMatch(cbg, matchUUID, players))
	a.Equal(ErrDuplicateKey, store.CreateMatch(cbg, matchUUID, players))

	match, err := store.GetMatch(cbg, matchUUID)
	a.NoError(err)
	a.Equal(matchUUID, match.UUID)
	a.Equal("Bruno", match.Players[1].Name)
	a.True(match.Created.After(before))
	a.True(match.Ended.IsZero())
	a.Equal(int64(0), match.Winner)

	summary := truco.HandSummary{
		Number:   1,
		DealerID: 2,
		Vira:     deck.CardFromString("4c"),
		Value:    3,
		Result:   truco.Result{Winner: 1, Points: 3, Reason: truco.ReasonRounds},
		Scores:   map[int64]int{1: 3, 2: 0},
		EndedAt:  time.Now(),
	}
	a.NoError(store.RecordHand(cbg, matchUUID, summary))
	a.Equal(ErrDuplicateKey, store.RecordHand(cbg, matchUUID, summary))

	draw := summary
	draw.Number = 2
	draw.Result = truco.Result{Draw: true, Reason: truco.ReasonRounds}
	a.NoError(store.RecordHand(cbg, matchUUID, draw))

	hands, err := store.Hands(cbg, matchUUID)
	a.NoError(err)
	if a.Equal(2, len(hands)) {
		a.Equal(1, hands[0].Summary.Number)
		a.Equal(summary.Result, hands[0].Summary.Result)
		a.Equal(deck.CardFromString("4c"), hands[0].Summary.Vira)
		a.True(hands[1].Summary.Result.Draw)
	}

	a.NoError(store.EndMatch(cbg, matchUUID, &playable.GameOverDetails{
		Winner: 1,
		Scores: map[int64]int{1: 12, 2: 4},
	}))

	match, err = store.GetMatch(cbg, matchUUID)
	a.NoError(err)
	a.Equal(int64(1), match.Winner)
	a.Equal(map[int64]int{1: 12, 2: 4}, match.Scores)
	a.False(match.Ended.IsZero())

	a.Equal(sql.ErrNoRows, store.EndMatch(cbg, uuid.New().String(), &playable.GameOverDetails{}))

	_, err = store.GetMatch(cbg, uuid.New().String())
	a.Equal(sql.ErrNoRows, err)
}
