// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: id (optional), title, description, end_time, candidates
  - UpdateElectionRequest: title, description, end_time (all optional pointers)
  - CastVoteRequest: candidate_id, voter_address, candidate_name
  - RegisterVoterRequest: address

# Response Types

Types for JSON responses:

  - ElectionListResponse: active, past
  - EndElectionResponse: election, winner
  - CastVoteResponse: transaction, message
  - VotedResponse: election_id, address, has_voted
  - RecentlyEndedElection: election, winner, ended
  - TallyResponse: per-candidate vote shares
  - Stats: dashboard totals
  - ErrorResponse: error, message

# Domain Types

  - Election: contest with candidates, running tally and transactions
  - Candidate: option within an election that accumulates votes
  - Transaction: synthetic audit record of one vote (newest first)
  - Voter: per-election record of an address and whom it voted for
  - Snapshot: full copy of store state for persistence

# Constants

Status values:

	StatusPending = "Pending"
	StatusActive  = "Active"
	StatusEnded   = "Ended"

An election is created Active and moves to Ended exactly once.
*/
package models
