// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/ballotchain/chain"
	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/models"
	"github.com/danielhkuo/ballotchain/store"
)

type VotingHandler struct {
	store *store.Store
}

func NewVotingHandler(st *store.Store) *VotingHandler {
	return &VotingHandler{store: st}
}

// CastVote handles POST /elections/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}
	address := strings.TrimSpace(req.VoterAddress)
	if err := chain.ValidateAddress(address); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_address must be a 0x-prefixed 40 hex digit address")
		return
	}

	tx, err := h.store.CastVote(electionID, req.CandidateID, address, req.CandidateName)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	slog.Info("vote accepted", "election_id", electionID, "voter", chain.ShortenAddress(address))

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Transaction: tx,
		Message:     "Vote recorded in transaction " + chain.ShortenAddress(tx.Hash),
	})
}

// GetTransactions handles GET /elections/{id}/transactions
// Newest first. Unknown elections yield an empty list.
func (h *VotingHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.TransactionsForElection(r.PathValue("id")))
}

// GetVoted handles GET /elections/{id}/voted
// Without ?address= it reports the election-wide voted flag.
func (h *VotingHandler) GetVoted(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	address := strings.TrimSpace(r.URL.Query().Get("address"))

	resp := models.VotedResponse{ElectionID: electionID, Address: address}
	if address == "" {
		resp.HasVoted = h.store.HasVoted(electionID)
	} else {
		resp.HasVoted = h.store.HasAddressVoted(electionID, address)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// MarkVoted handles POST /elections/{id}/voted
func (h *VotingHandler) MarkVoted(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	h.store.MarkElectionAsVoted(electionID)
	w.WriteHeader(http.StatusNoContent)
}
