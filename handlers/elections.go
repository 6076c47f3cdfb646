// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/models"
	"github.com/danielhkuo/ballotchain/store"
	"github.com/google/uuid"
)

// DefaultElectionLength is used when a new election has no end_time
const DefaultElectionLength = 7 * 24 * time.Hour

type ElectionHandler struct {
	store *store.Store
}

func NewElectionHandler(st *store.Store) *ElectionHandler {
	return &ElectionHandler{store: st}
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	title := strings.TrimSpace(req.Title)
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Candidates) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least two candidates are required")
		return
	}

	candidates := make([]models.Candidate, 0, len(req.Candidates))
	for i, c := range req.Candidates {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "candidate name is required")
			return
		}
		candidates = append(candidates, models.Candidate{
			ID:    strconv.Itoa(i + 1),
			Name:  name,
			Party: strings.TrimSpace(c.Party),
		})
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	endTime := time.Now().Add(DefaultElectionLength)
	if req.EndTime != nil {
		endTime = *req.EndTime
	}

	election := models.Election{
		ID:           id,
		Title:        title,
		Description:  req.Description,
		EndTime:      endTime,
		Candidates:   candidates,
		Status:       models.StatusActive,
		Transactions: []models.Transaction{},
	}
	if err := h.store.AddElection(election); err != nil {
		writeStoreError(w, err)
		return
	}

	created, _ := h.store.ElectionByID(id)
	middleware.JSONResponse(w, http.StatusCreated, created)
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.ElectionListResponse{
		Active: h.store.ActiveElections(),
		Past:   h.store.PastElections(),
	})
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, election)
}

// UpdateElection handles PATCH /elections/{id}
// Only title, description and end_time can be changed.
func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.store.UpdateElection(id, store.ElectionUpdate{
		Title:       req.Title,
		Description: req.Description,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// EndElection handles POST /elections/{id}/end
func (h *ElectionHandler) EndElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election id is required")
		return
	}

	ended, err := h.store.EndElection(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	resp := models.EndElectionResponse{Election: ended}
	for i := range ended.Candidates {
		if ended.Candidates[i].Winner {
			resp.Winner = &ended.Candidates[i]
			break
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
