package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"truco-server/pkg/playable/truco"
	"truco-server/pkg/room"
)

const (
	defaultHistoryRows = 50
	maxHistoryRows     = 100
)

// UserError is a problem with the request that the player can fix
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// historyPage selects a window of finished hands
type historyPage struct {
	Start int
	Rows  int
}

// apply trims summaries to the page, clamping start to the number of hands played
func (p historyPage) apply(summaries []truco.HandSummary) []truco.HandSummary {
	start := min(p.Start, len(summaries))
	end := min(start+p.Rows, len(summaries))
	return summaries[start:end]
}

func parseHistoryPage(r *http.Request) (historyPage, error) {
	page := historyPage{Rows: defaultHistoryRows}

	if v := r.FormValue("start"); v != "" {
		start, err := strconv.Atoi(v)
		if err != nil {
			return historyPage{}, UserError(fmt.Sprintf("start must be a hand index: %s", v))
		}

		if start < 0 {
			return historyPage{}, UserError("start cannot be less than zero")
		}

		page.Start = start
	}

	if v := r.FormValue("rows"); v != "" {
		rows, err := strconv.Atoi(v)
		if err != nil {
			return historyPage{}, UserError(fmt.Sprintf("rows must be a number: %s", v))
		}

		if rows <= 0 || rows > maxHistoryRows {
			return historyPage{}, UserError(fmt.Sprintf("rows must be between 1 and %d", maxHistoryRows))
		}

		page.Rows = rows
	}

	return page, nil
}

// clientAddr strips the port from the connecting address, for logging
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// decodeRequest reads a JSON action payload. It writes the error response and returns false on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, UserError(fmt.Sprintf("malformed payload: %s", err)))
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeJSONError hides the cause of server errors from the player
func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	msg := http.StatusText(statusCode)
	if statusCode < http.StatusInternalServerError && err != nil {
		msg = err.Error()
	}

	if statusCode >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("statusCode", statusCode).Error("request failed")
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}

// writeActionError maps the outcome of a match action to a status code.
// Rejected moves are the player's problem, a closed dealer means the match is gone.
func writeActionError(w http.ResponseWriter, err error) {
	var userErr UserError
	switch {
	case truco.IsProtocolError(err), errors.Is(err, truco.ErrGameIsOver), errors.As(err, &userErr):
		writeJSONError(w, http.StatusBadRequest, err)
	case errors.Is(err, room.ErrDealerClosed):
		writeJSONError(w, http.StatusNotFound, nil)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}
