// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/ballotchain/chain"
	"github.com/danielhkuo/ballotchain/models"
)

var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrElectionEnded     = errors.New("election has ended")
	ErrElectionNotOpen   = errors.New("election is not open for voting")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrDuplicateVote     = errors.New("address has already voted in this election")
	ErrDuplicateElection = errors.New("election id already exists")
	ErrDuplicateVoter    = errors.New("voter already registered")
	ErrInvalidElection   = errors.New("invalid election")
	ErrEmptyUpdate       = errors.New("update has no fields set")
)

// DefaultRecentWindow is how far back RecentlyEndedElections looks
const DefaultRecentWindow = 24 * time.Hour

// VotePolicy decides whether an address may vote more than once per election
type VotePolicy int

const (
	PolicyOnePerAddress VotePolicy = iota
	PolicyAllowRepeat
)

func (p VotePolicy) String() string {
	switch p {
	case PolicyOnePerAddress:
		return "one-per-address"
	case PolicyAllowRepeat:
		return "allow-repeat"
	default:
		return fmt.Sprintf("VotePolicy(%d)", int(p))
	}
}

// ParseVotePolicy maps a config value to a VotePolicy
func ParseVotePolicy(s string) (VotePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "one-per-address":
		return PolicyOnePerAddress, nil
	case "allow-repeat":
		return PolicyAllowRepeat, nil
	default:
		return 0, fmt.Errorf("unknown vote policy %q (use one-per-address or allow-repeat)", s)
	}
}

// Persister receives a full copy of the state after every successful mutation
type Persister interface {
	Save(snap models.Snapshot) error
}

// ElectionUpdate lists the mutable fields of an election. Nil fields are left
// unchanged.
type ElectionUpdate struct {
	Title       *string
	Description *string
	EndTime     *time.Time
}

func (u ElectionUpdate) empty() bool {
	return u.Title == nil && u.Description == nil && u.EndTime == nil
}

// Store holds the active and past elections, the per-election voter records
// and the voted flags. All methods are safe for concurrent use; returned
// values are copies.
type Store struct {
	mu     sync.RWMutex
	active []models.Election
	past   []models.Election
	voters map[string][]models.Voter
	voted  map[string]bool

	policy       VotePolicy
	now          func() time.Time
	recentWindow time.Duration
	persister    Persister
	newHash      func() (string, error)
	logger       *slog.Logger
}

type Option func(*Store)

func WithVotePolicy(p VotePolicy) Option {
	return func(s *Store) { s.policy = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithRecentWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.recentWindow = d
		}
	}
}

func WithPersister(p Persister) Option {
	return func(s *Store) { s.persister = p }
}

func WithHashFunc(f func() (string, error)) Option {
	return func(s *Store) { s.newHash = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		voters:       make(map[string][]models.Voter),
		voted:        make(map[string]bool),
		policy:       PolicyOnePerAddress,
		now:          time.Now,
		recentWindow: DefaultRecentWindow,
		newHash:      chain.GenerateTxHash,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the vote policy the store was built with
func (s *Store) Policy() VotePolicy {
	return s.policy
}

// Snapshot returns a copy of the whole state
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Restore replaces the whole state with snap. The persister is not called.
func (s *Store) Restore(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = cloneElections(snap.Active)
	s.past = cloneElections(snap.Past)
	s.voters = make(map[string][]models.Voter, len(snap.Voters))
	for id, vs := range snap.Voters {
		s.voters[id] = cloneVoters(vs)
	}
	s.voted = make(map[string]bool, len(snap.VotedElections))
	for id, v := range snap.VotedElections {
		s.voted[id] = v
	}
}

func (s *Store) snapshotLocked() models.Snapshot {
	snap := models.Snapshot{
		Active:         cloneElections(s.active),
		Past:           cloneElections(s.past),
		Voters:         make(map[string][]models.Voter, len(s.voters)),
		VotedElections: make(map[string]bool, len(s.voted)),
	}
	for id, vs := range s.voters {
		snap.Voters[id] = cloneVoters(vs)
	}
	for id, v := range s.voted {
		snap.VotedElections[id] = v
	}
	return snap
}

// persistLocked hands the current state to the persister. A failed save is
// logged and does not undo the mutation.
func (s *Store) persistLocked(op string) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(s.snapshotLocked()); err != nil {
		s.logger.Warn("failed to persist election state", "op", op, "error", err)
	}
}

func indexOf(elections []models.Election, id string) int {
	for i := range elections {
		if elections[i].ID == id {
			return i
		}
	}
	return -1
}

// lookupErr explains why id is not in the active collection
func (s *Store) lookupErr(id string) error {
	if indexOf(s.past, id) >= 0 {
		return fmt.Errorf("%w: %s", ErrElectionEnded, id)
	}
	return fmt.Errorf("%w: %s", ErrElectionNotFound, id)
}

func cloneElection(e models.Election) models.Election {
	out := e
	out.Candidates = make([]models.Candidate, len(e.Candidates))
	copy(out.Candidates, e.Candidates)
	out.Transactions = make([]models.Transaction, len(e.Transactions))
	copy(out.Transactions, e.Transactions)
	return out
}

func cloneElections(src []models.Election) []models.Election {
	out := make([]models.Election, len(src))
	for i := range src {
		out[i] = cloneElection(src[i])
	}
	return out
}

func cloneVoters(src []models.Voter) []models.Voter {
	out := make([]models.Voter, len(src))
	for i, v := range src {
		if v.Timestamp != nil {
			ts := *v.Timestamp
			v.Timestamp = &ts
		}
		out[i] = v
	}
	return out
}
