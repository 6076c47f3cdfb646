// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballotchain/handlers"
	"github.com/danielhkuo/ballotchain/middleware"
	"github.com/danielhkuo/ballotchain/store"
)

func NewRouter(st *store.Store) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(st)
	votingHandler := handlers.NewVotingHandler(st)
	voterHandler := handlers.NewVoterHandler(st)
	resultsHandler := handlers.NewResultsHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("PATCH /elections/{id}", middleware.WithLogging(electionHandler.UpdateElection))
	mux.HandleFunc("POST /elections/{id}/end", middleware.WithLogging(electionHandler.EndElection))

	// Voting
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /elections/{id}/transactions", middleware.WithLogging(votingHandler.GetTransactions))
	mux.HandleFunc("GET /elections/{id}/voted", middleware.WithLogging(votingHandler.GetVoted))
	mux.HandleFunc("POST /elections/{id}/voted", middleware.WithLogging(votingHandler.MarkVoted))

	// Voter records
	mux.HandleFunc("GET /elections/{id}/voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("POST /elections/{id}/voters", middleware.WithLogging(voterHandler.RegisterVoter))

	// Results
	mux.HandleFunc("GET /elections/recently-ended", middleware.WithLogging(resultsHandler.GetRecentlyEnded))
	mux.HandleFunc("GET /elections/{id}/winner", middleware.WithLogging(resultsHandler.GetWinner))
	mux.HandleFunc("GET /elections/{id}/tally", middleware.WithLogging(resultsHandler.GetTally))
	mux.HandleFunc("GET /stats", middleware.WithLogging(resultsHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotchain API v1"))
	})

	return mux
}
