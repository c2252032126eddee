package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	gmux "github.com/gorilla/mux"

	"truco-server/internal/jwt"
	"truco-server/pkg/playable/truco"
	"truco-server/pkg/room"
)

type ctxKey int

const (
	ctxSeatKey ctxKey = iota
	ctxDealerKey
)

// MatchDefaults are used for matches created through the API
type MatchDefaults struct {
	Options truco.Options
	// Bot is the opponent when the request does not name one
	Bot string
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	defaults MatchDefaults
	version  string
	pitBoss  *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, defaults MatchDefaults) *Mux {
	this := &Mux{
		Router:   gmux.NewRouter(),
		version:  version,
		pitBoss:  pitBoss,
		defaults: defaults,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/match").Handler(this.postMatch())
	}

	// requires a seat token for the match
	{
		r := this.authRouter

		mr := r.PathPrefix("/match/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		mr.Use(this.matchMiddleware)

		mr.Methods(http.MethodGet).Path("").Handler(this.getMatchUUID())
		mr.Methods(http.MethodGet).Path("/history").Handler(this.getMatchUUIDHistory())
		mr.Methods(http.MethodGet).Path("/ws").Handler(this.getMatchUUIDWS())
		mr.Methods(http.MethodPost).Path("/play").Handler(this.postMatchUUIDPlay())
		mr.Methods(http.MethodPost).Path("/raise").Handler(this.postMatchUUIDRaise())
		mr.Methods(http.MethodPost).Path("/accept").Handler(this.postMatchUUIDAccept())
		mr.Methods(http.MethodPost).Path("/quit").Handler(this.postMatchUUIDQuit())
		mr.Methods(http.MethodPost).Path("/respond").Handler(this.postMatchUUIDRespond())
		mr.Methods(http.MethodPost).Path("/mao-de-onze").Handler(this.postMatchUUIDMaoDeOnze())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		seat, err := jwt.ValidSeat(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSeatKey, seat)
		w.Header().Set("Truco-PlayerID", strconv.FormatInt(seat.PlayerID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// matchMiddleware requires authMiddleware to execute first
func (m *Mux) matchMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matchUUID := strings.ToLower(gmux.Vars(r)["uuid"])
		seat := r.Context().Value(ctxSeatKey).(jwt.Seat)
		if seat.MatchUUID != matchUUID {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		dealer, found := m.pitBoss.Dealer(matchUUID)
		if !found {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func seatFromRequest(r *http.Request) (jwt.Seat, *room.Dealer) {
	return r.Context().Value(ctxSeatKey).(jwt.Seat), r.Context().Value(ctxDealerKey).(*room.Dealer)
}
