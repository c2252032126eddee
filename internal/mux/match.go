package mux

import (
	"fmt"
	"net/http"

	"truco-server/internal/jwt"
	"truco-server/internal/util"
	"truco-server/pkg/deck"
	"truco-server/pkg/playable/truco"
	"truco-server/pkg/playable/truco/bot"
)

const (
	humanPlayerID int64 = 1
	botPlayerID   int64 = 2
)

type postMatchPayload struct {
	Name        string `json:"name"`
	Bot         string `json:"bot"`
	MatchPoints int    `json:"matchPoints"`
	Seed        int64  `json:"seed"`
}

type postMatchResponse struct {
	UUID     string           `json:"uuid"`
	PlayerID int64            `json:"playerId"`
	Token    string           `json:"token"`
	State    *truco.GameState `json:"state"`
}

func (m *Mux) postMatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postMatchPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Name == "" {
			writeJSONError(w, http.StatusBadRequest, UserError("name is required"))
			return
		}

		botName := payload.Bot
		if botName == "" {
			botName = m.defaults.Bot
		}

		dm, ok := bot.New(botName)
		if !ok {
			writeJSONError(w, http.StatusBadRequest, UserError(fmt.Sprintf("unknown bot: %s", botName)))
			return
		}

		opts := m.defaults.Options
		if payload.MatchPoints > 0 {
			opts.MatchPoints = payload.MatchPoints
		}

		if payload.Seed != 0 {
			opts.Seed = payload.Seed
			opts.SecureShuffle = false
		}

		players := []*truco.Player{
			truco.NewPlayer(humanPlayerID, payload.Name),
			truco.NewPlayer(botPlayerID, util.GetRandomName()),
		}

		dealer, err := m.pitBoss.CreateMatch(r.Context(), players, opts, map[int64]truco.DecisionMaker{botPlayerID: dm})
		if err != nil {
			writeActionError(w, err)
			return
		}

		token, err := jwt.Sign(jwt.Seat{MatchUUID: dealer.UUID(), PlayerID: humanPlayerID})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		var state *truco.GameState
		if err := dealer.View(r.Context(), func(game *truco.Game) error {
			state = game.State(humanPlayerID)
			return nil
		}); err != nil {
			writeActionError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postMatchResponse{
			UUID:     dealer.UUID(),
			PlayerID: humanPlayerID,
			Token:    token,
			State:    state,
		})
	}
}

func (m *Mux) getMatchUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seat, dealer := seatFromRequest(r)

		var state *truco.GameState
		if err := dealer.View(r.Context(), func(game *truco.Game) error {
			state = game.State(seat.PlayerID)
			return nil
		}); err != nil {
			writeActionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}

func (m *Mux) getMatchUUIDHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parseHistoryPage(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		_, dealer := seatFromRequest(r)

		var summaries []truco.HandSummary
		if err := dealer.View(r.Context(), func(game *truco.Game) error {
			summaries = game.Summaries()
			return nil
		}); err != nil {
			writeActionError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, page.apply(summaries))
	}
}

type postPlayPayload struct {
	Card    string `json:"card"`
	Discard bool   `json:"discard"`
}

func (m *Mux) postMatchUUIDPlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postPlayPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		card, err := deck.ParseCard(payload.Card)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		m.act(w, r, func(game *truco.Game, playerID int64) error {
			return game.Play(playerID, truco.CardSelection{Card: card, Discard: payload.Discard})
		})
	}
}

func (m *Mux) postMatchUUIDRaise() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.act(w, r, (*truco.Game).Raise)
	}
}

func (m *Mux) postMatchUUIDAccept() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.act(w, r, (*truco.Game).Accept)
	}
}

func (m *Mux) postMatchUUIDQuit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.act(w, r, (*truco.Game).Quit)
	}
}

type postRespondPayload struct {
	Response *int `json:"response"`
}

func (m *Mux) postMatchUUIDRespond() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postRespondPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Response == nil {
			writeJSONError(w, http.StatusBadRequest, UserError("response is required"))
			return
		}

		response := truco.RaiseResponse(*payload.Response)
		if _, err := response.WagerAction(); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		m.act(w, r, func(game *truco.Game, playerID int64) error {
			return game.RespondRaise(playerID, response)
		})
	}
}

type postMaoDeOnzePayload struct {
	Accept bool `json:"accept"`
}

func (m *Mux) postMatchUUIDMaoDeOnze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postMaoDeOnzePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		m.act(w, r, func(game *truco.Game, playerID int64) error {
			return game.RespondMaoDeOnze(playerID, payload.Accept)
		})
	}
}

// act runs fn on the dealer's loop and responds with the player's new state
func (m *Mux) act(w http.ResponseWriter, r *http.Request, fn func(game *truco.Game, playerID int64) error) {
	seat, dealer := seatFromRequest(r)

	var state *truco.GameState
	if err := dealer.Exec(r.Context(), func(game *truco.Game) error {
		if err := fn(game, seat.PlayerID); err != nil {
			return err
		}

		state = game.State(seat.PlayerID)
		return nil
	}); err != nil {
		writeActionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
