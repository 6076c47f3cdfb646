package models

import "time"

// Election status constants
const (
	StatusPending = "Pending"
	StatusActive  = "Active"
	StatusEnded   = "Ended"
)

// Request types

type CandidateInput struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

type CreateElectionRequest struct {
	ID          string           `json:"id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	EndTime     *time.Time       `json:"end_time,omitempty"`
	Candidates  []CandidateInput `json:"candidates"`
}

// Only the fields present in the body are applied.
type UpdateElectionRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

type CastVoteRequest struct {
	CandidateID   string `json:"candidate_id"`
	VoterAddress  string `json:"voter_address"`
	CandidateName string `json:"candidate_name,omitempty"`
}

type RegisterVoterRequest struct {
	Address string `json:"address"`
}

// Response types

type ElectionListResponse struct {
	Active []Election `json:"active"`
	Past   []Election `json:"past"`
}

type EndElectionResponse struct {
	Election Election   `json:"election"`
	Winner   *Candidate `json:"winner,omitempty"`
}

type CastVoteResponse struct {
	Transaction Transaction `json:"transaction"`
	Message     string      `json:"message"`
}

type VotedResponse struct {
	ElectionID string `json:"election_id"`
	Address    string `json:"address,omitempty"`
	HasVoted   bool   `json:"has_voted"`
}

type RecentlyEndedElection struct {
	Election Election   `json:"election"`
	Winner   *Candidate `json:"winner,omitempty"`
	Ended    string     `json:"ended"` // e.g. "3 hours ago"
}

type CandidateShare struct {
	CandidateID string  `json:"candidate_id"`
	Name        string  `json:"name"`
	Party       string  `json:"party"`
	Votes       int     `json:"votes"`
	Share       float64 `json:"share"`
	Winner      bool    `json:"winner,omitempty"`
}

type TallyResponse struct {
	ElectionID string           `json:"election_id"`
	Status     string           `json:"status"`
	TotalVotes int              `json:"total_votes"`
	Candidates []CandidateShare `json:"candidates"`
}

type Stats struct {
	TotalElections  int `json:"total_elections"`
	ActiveElections int `json:"active_elections"`
	PastElections   int `json:"past_elections"`
	TotalVoters     int `json:"total_voters"`
	TotalVotes      int `json:"total_votes"`
}

// Domain types

type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Party  string `json:"party"`
	Votes  int    `json:"votes"`
	Winner bool   `json:"winner,omitempty"`
}

// Transaction is a synthetic record of one cast vote. Hash is random hex,
// not a ledger hash.
type Transaction struct {
	Hash      string    `json:"hash"`
	Voter     string    `json:"voter"`
	Candidate string    `json:"candidate"`
	Timestamp time.Time `json:"timestamp"`
}

type Election struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	EndTime      time.Time     `json:"end_time"`
	Candidates   []Candidate   `json:"candidates"`
	TotalVotes   int           `json:"total_votes"`
	Status       string        `json:"status"`
	Transactions []Transaction `json:"transactions"` // newest first
}

type Voter struct {
	Address    string     `json:"address"`
	Registered bool       `json:"registered"`
	HasVoted   bool       `json:"has_voted"`
	VotedFor   string     `json:"voted_for,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// Snapshot is a full copy of election state, used for persistence
type Snapshot struct {
	Active         []Election
	Past           []Election
	Voters         map[string][]Voter
	VotedElections map[string]bool
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
