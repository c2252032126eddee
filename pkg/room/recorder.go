package room

import (
	"context"

	"truco-server/pkg/playable"
	"truco-server/pkg/playable/truco"
)

// Recorder persists the history of a match
type Recorder interface {
	// CreateMatch is called once, before the first hand is played
	CreateMatch(ctx context.Context, matchUUID string, players []*truco.Player) error

	// RecordHand is called once for every finished hand
	RecordHand(ctx context.Context, matchUUID string, summary truco.HandSummary) error

	// EndMatch is called when a player reaches the match points
	EndMatch(ctx context.Context, matchUUID string, details *playable.GameOverDetails) error
}

// NopRecorder does not persist anything
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

// CreateMatch does nothing
func (NopRecorder) CreateMatch(context.Context, string, []*truco.Player) error {
	return nil
}

// RecordHand does nothing
func (NopRecorder) RecordHand(context.Context, string, truco.HandSummary) error {
	return nil
}

// EndMatch does nothing
func (NopRecorder) EndMatch(context.Context, string, *playable.GameOverDetails) error {
	return nil
}
