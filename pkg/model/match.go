package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"truco-server/pkg/db"
	"truco-server/pkg/playable"
	"truco-server/pkg/playable/truco"
)

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrDuplicateKey happens when a match or hand is recorded twice
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

const matchColumns = `uuid, players, winner, scores, created, ended`

// Match is a record in the `matches` table
type Match struct {
	UUID    string          `json:"uuid"`
	Players []*truco.Player `json:"players"`
	Winner  int64           `json:"winner,omitempty"`
	Scores  map[int64]int   `json:"scores,omitempty"`
	Created time.Time       `json:"created"`
	Ended   time.Time       `json:"ended"`
}

// Hand is a record in the `hands` table
type Hand struct {
	MatchUUID string            `json:"matchUuid"`
	Summary   truco.HandSummary `json:"summary"`
}

// MatchStore records matches in Postgres
type MatchStore struct {
	db *sql.DB
}

// NewMatchStore returns a store backed by the database
func NewMatchStore(dbh *sql.DB) *MatchStore {
	return &MatchStore{db: dbh}
}

// CreateMatch inserts the match
func (m *MatchStore) CreateMatch(ctx context.Context, matchUUID string, players []*truco.Player) error {
	b, err := json.Marshal(players)
	if err != nil {
		return err
	}

	const query = `INSERT INTO matches (uuid, players) VALUES ($1, $2)`
	if _, err := m.db.ExecContext(ctx, query, matchUUID, b); err != nil {
		return convertError(err)
	}

	return nil
}

// RecordHand inserts a finished hand
func (m *MatchStore) RecordHand(ctx context.Context, matchUUID string, summary truco.HandSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	var winner sql.NullInt64
	if !summary.Result.Draw {
		winner = sql.NullInt64{Int64: summary.Result.Winner, Valid: true}
	}

	const query = `
INSERT INTO hands (match_uuid, number, dealer_id, winner, points, reason, data, ended)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = m.db.ExecContext(ctx, query,
		matchUUID,
		summary.Number,
		summary.DealerID,
		winner,
		summary.Result.Points,
		string(summary.Result.Reason),
		b,
		summary.EndedAt.UTC(),
	)

	return convertError(err)
}

// EndMatch sets the winner and final scores
func (m *MatchStore) EndMatch(ctx context.Context, matchUUID string, details *playable.GameOverDetails) error {
	scores, err := json.Marshal(details.Scores)
	if err != nil {
		return err
	}

	const query = `
UPDATE matches
SET winner = $1, scores = $2, ended = NOW() AT TIME ZONE 'UTC'
WHERE uuid = $3`
	res, err := m.db.ExecContext(ctx, query, details.Winner, scores, matchUUID)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetMatch returns a match by its UUID
func (m *MatchStore) GetMatch(ctx context.Context, matchUUID string) (*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM matches
WHERE uuid = $1`

	return getMatchByRow(m.db.QueryRowContext(ctx, query, matchUUID))
}

// Hands returns the recorded hands of a match in order
func (m *MatchStore) Hands(ctx context.Context, matchUUID string) ([]*Hand, error) {
	const query = `
SELECT match_uuid, data
FROM hands
WHERE match_uuid = $1
ORDER BY number`

	rows, err := m.db.QueryContext(ctx, query, matchUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hands := make([]*Hand, 0)
	for rows.Next() {
		var hand Hand
		var data []byte
		if err := rows.Scan(&hand.MatchUUID, &data); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(data, &hand.Summary); err != nil {
			return nil, err
		}

		hands = append(hands, &hand)
	}

	return hands, rows.Err()
}

func getMatchByRow(row db.Scanner) (*Match, error) {
	var match Match
	var players, scores []byte
	var winner sql.NullInt64
	var ended sql.NullTime

	if err := row.Scan(&match.UUID, &players, &winner, &scores, &match.Created, &ended); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(players, &match.Players); err != nil {
		return nil, err
	}

	if scores != nil {
		if err := json.Unmarshal(scores, &match.Scores); err != nil {
			return nil, err
		}
	}

	match.Winner = winner.Int64
	match.Ended = ended.Time

	return &match, nil
}

func convertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqDuplicateKeyErrorCode {
		return ErrDuplicateKey
	}

	return err
}
