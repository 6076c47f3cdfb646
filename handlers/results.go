// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/models"
	"github.com/danielhkuo/ballotchain/report"
	"github.com/danielhkuo/ballotchain/store"
	"github.com/dustin/go-humanize"
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// GetWinner handles GET /elections/{id}/winner
// Returns 404 until the election has ended.
func (h *ResultsHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	winner, ok := h.store.WinnerForElection(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "No winner for this election")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, winner)
}

// GetTally handles GET /elections/{id}/tally
// Tallies are public while the election is running.
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	election, ok := h.store.ElectionByID(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report.NewTallyReport(election).Tally())
}

// GetRecentlyEnded handles GET /elections/recently-ended
func (h *ResultsHandler) GetRecentlyEnded(w http.ResponseWriter, r *http.Request) {
	elections := h.store.RecentlyEndedElections()

	resp := make([]models.RecentlyEndedElection, 0, len(elections))
	for _, e := range elections {
		item := models.RecentlyEndedElection{
			Election: e,
			Ended:    humanize.Time(e.EndTime),
		}
		for i := range e.Candidates {
			if e.Candidates[i].Winner {
				winner := e.Candidates[i]
				item.Winner = &winner
				break
			}
		}
		resp = append(resp, item)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetStats handles GET /stats
func (h *ResultsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.Stats())
}
