package playable

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"truco-server/pkg/deck"
)

// Playable is a game driven by messages from connected clients
type Playable interface {
	// Action applies a client message for the player.
	// playerResponse goes back to the sender only. updateState asks the dealer to push new state to everyone.
	Action(playerID int64, message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns what the player is allowed to see
	GetPlayerState(playerID int64) (*Response, error)

	// GetEndOfGameDetails returns false until the game is over
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	Name() string

	// LogChan carries player-facing messages. Sends must not block.
	LogChan() <-chan []*LogMessage
}

// LogMessage is a line of the match log.
// Each "{}" in Message is replaced by clients with the name of the matching entry in PlayerIDs.
type LogMessage struct {
	UUID      string      `json:"uuid"`
	PlayerIDs []int64     `json:"playerIds"`
	Cards     []deck.Card `json:"cards"`
	Message   string      `json:"message"`
	Time      time.Time   `json:"time"`
}

// Response is a message sent to websocket clients. Key tells the client how to read Data.
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is a message received from a websocket client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	Cards          []deck.Card    `json:"cards"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails is the final result of a match
type GameOverDetails struct {
	Winner int64         `json:"winner"`
	Scores map[int64]int `json:"scores"`
	Log    interface{}   `json:"log"`
}

// AdditionalData holds action arguments decoded from JSON
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns the JSON number stored at key
func (a AdditionalData) GetInt(key string) (int, bool) {
	floatVal, ok := a[key].(float64)
	if !ok {
		return 0, false
	}

	return int(floatVal), true
}

// GetBool returns a boolean value for the given key
func (a AdditionalData) GetBool(key string) (bool, bool) {
	boolVal, ok := a[key].(bool)
	if !ok {
		return false, false
	}

	return boolVal, true
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID int64, format string, a ...interface{}) *LogMessage {
	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
