// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/store"
)

// writeStoreError maps a store error to an HTTP error response
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrElectionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
	case errors.Is(err, store.ErrElectionEnded):
		middleware.ErrorResponse(w, http.StatusConflict, "Election has ended")
	case errors.Is(err, store.ErrElectionNotOpen):
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
	case errors.Is(err, store.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "Address has already voted in this election")
	case errors.Is(err, store.ErrDuplicateElection):
		middleware.ErrorResponse(w, http.StatusConflict, "Election already exists")
	case errors.Is(err, store.ErrDuplicateVoter):
		middleware.ErrorResponse(w, http.StatusConflict, "Voter already registered")
	case errors.Is(err, store.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Candidate not found")
	case errors.Is(err, store.ErrEmptyUpdate):
		middleware.ErrorResponse(w, http.StatusBadRequest, "At least one of title, description or end_time is required")
	case errors.Is(err, store.ErrInvalidElection):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("election store error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
