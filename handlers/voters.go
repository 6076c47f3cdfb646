// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/ballotchain/chain"
	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/models"
	"github.com/danielhkuo/ballotchain/store"
)

type VoterHandler struct {
	store *store.Store
}

func NewVoterHandler(st *store.Store) *VoterHandler {
	return &VoterHandler{store: st}
}

// ListVoters handles GET /elections/{id}/voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.VotersForElection(r.PathValue("id")))
}

// RegisterVoter handles POST /elections/{id}/voters
func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	address := strings.TrimSpace(req.Address)
	if !chain.IsAddress(address) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "address must be a 0x-prefixed 40 hex digit address")
		return
	}

	voter, err := h.store.RegisterVoter(electionID, address)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, voter)
}
