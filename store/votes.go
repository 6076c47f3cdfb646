// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/ballotchain/models"
)

// CastVote records a vote by voterAddress for candidateID in an active
// election. Nothing is changed unless the vote is accepted. On success the
// candidate and election tallies go up by one, a transaction is prepended to
// the election and the voter record is stored. An empty candidateName is
// replaced with the candidate's recorded name.
func (s *Store) CastVote(electionID, candidateID, voterAddress, candidateName string) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.active, electionID)
	if i < 0 {
		return models.Transaction{}, s.lookupErr(electionID)
	}
	e := &s.active[i]
	if e.Status != models.StatusActive {
		return models.Transaction{}, fmt.Errorf("%w: %s is %s", ErrElectionNotOpen, electionID, e.Status)
	}

	ci := -1
	for j := range e.Candidates {
		if e.Candidates[j].ID == candidateID {
			ci = j
			break
		}
	}
	if ci < 0 {
		return models.Transaction{}, fmt.Errorf("%w: %s in election %s", ErrCandidateNotFound, candidateID, electionID)
	}
	if candidateName == "" {
		candidateName = e.Candidates[ci].Name
	}

	// A registered voter who has not voted yet gets their record completed
	// instead of a new one.
	voters := s.voters[electionID]
	vi := -1
	for j, v := range voters {
		if !strings.EqualFold(v.Address, voterAddress) {
			continue
		}
		if v.HasVoted && s.policy == PolicyOnePerAddress {
			return models.Transaction{}, fmt.Errorf("%w: %s", ErrDuplicateVote, voterAddress)
		}
		if !v.HasVoted && vi < 0 {
			vi = j
		}
	}

	hash, err := s.newHash()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	now := s.now()

	tx := models.Transaction{
		Hash:      hash,
		Voter:     voterAddress,
		Candidate: candidateName,
		Timestamp: now,
	}

	ts := now
	if vi >= 0 {
		voters[vi].HasVoted = true
		voters[vi].VotedFor = candidateName
		voters[vi].Timestamp = &ts
	} else {
		voters = append(voters, models.Voter{
			Address:    voterAddress,
			Registered: true,
			HasVoted:   true,
			VotedFor:   candidateName,
			Timestamp:  &ts,
		})
	}
	s.voters[electionID] = voters

	e.Candidates[ci].Votes++
	e.TotalVotes++
	e.Transactions = append([]models.Transaction{tx}, e.Transactions...)
	s.voted[electionID] = true

	s.persistLocked("cast vote")

	s.logger.Info("vote cast", "election_id", electionID, "candidate_id", candidateID, "tx", hash)
	return tx, nil
}

// RegisterVoter adds a registered voter who has not voted yet
func (s *Store) RegisterVoter(electionID, address string) (models.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.active, electionID) < 0 {
		return models.Voter{}, s.lookupErr(electionID)
	}

	for _, v := range s.voters[electionID] {
		if strings.EqualFold(v.Address, address) {
			return models.Voter{}, fmt.Errorf("%w: %s", ErrDuplicateVoter, address)
		}
	}

	v := models.Voter{Address: address, Registered: true}
	s.voters[electionID] = append(s.voters[electionID], v)
	s.persistLocked("register voter")

	s.logger.Info("voter registered", "election_id", electionID)
	return v, nil
}

// MarkElectionAsVoted sets the voted flag for an election without casting a vote
func (s *Store) MarkElectionAsVoted(electionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voted[electionID] = true
	s.persistLocked("mark voted")
}

// HasVoted reports the store-wide voted flag for an election
func (s *Store) HasVoted(electionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voted[electionID]
}

// HasAddressVoted reports whether address has a voter record marked as voted
func (s *Store) HasAddressVoted(electionID, address string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.voters[electionID] {
		if v.HasVoted && strings.EqualFold(v.Address, address) {
			return true
		}
	}
	return false
}

// VotersForElection returns the voter records of an election in insertion
// order. Unknown ids yield an empty slice.
func (s *Store) VotersForElection(electionID string) []models.Voter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneVoters(s.voters[electionID])
}
