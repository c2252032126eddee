package mux

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Matches int    `json:"matches"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:  "OK",
			Version: m.version,
		}

		if m.pitBoss != nil {
			resp.Matches = m.pitBoss.MatchCount()
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
