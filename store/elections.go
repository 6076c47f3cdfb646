// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"slices"

	"github.com/danielhkuo/ballotchain/models"
)

// AddElection appends e to the active elections. An empty status becomes
// Active. TotalVotes must equal the sum of the candidate votes.
func (s *Store) AddElection(e models.Election) error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidElection)
	}

	switch e.Status {
	case "":
		e.Status = models.StatusActive
	case models.StatusActive, models.StatusPending:
	default:
		return fmt.Errorf("%w: cannot add election with status %q", ErrInvalidElection, e.Status)
	}

	sum := 0
	for _, c := range e.Candidates {
		if c.Votes < 0 {
			return fmt.Errorf("%w: candidate %s has negative votes", ErrInvalidElection, c.ID)
		}
		sum += c.Votes
	}
	if sum != e.TotalVotes {
		return fmt.Errorf("%w: total_votes %d does not match candidate votes %d", ErrInvalidElection, e.TotalVotes, sum)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.active, e.ID) >= 0 || indexOf(s.past, e.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateElection, e.ID)
	}

	s.active = append(s.active, cloneElection(e))
	s.persistLocked("add election")

	s.logger.Info("election added", "election_id", e.ID, "candidates", len(e.Candidates))
	return nil
}

// UpdateElection applies the set fields of upd to the election with the given
// id, whether it is active or past.
func (s *Store) UpdateElection(id string, upd ElectionUpdate) (models.Election, error) {
	if upd.empty() {
		return models.Election{}, ErrEmptyUpdate
	}
	if upd.Title != nil && *upd.Title == "" {
		return models.Election{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidElection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var e *models.Election
	if i := indexOf(s.active, id); i >= 0 {
		e = &s.active[i]
	} else if i := indexOf(s.past, id); i >= 0 {
		e = &s.past[i]
	} else {
		return models.Election{}, fmt.Errorf("%w: %s", ErrElectionNotFound, id)
	}

	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.EndTime != nil {
		e.EndTime = *upd.EndTime
	}

	s.persistLocked("update election")

	s.logger.Info("election updated", "election_id", id)
	return cloneElection(*e), nil
}

// EndElection closes an active election: the winner is flagged, the status
// becomes Ended and the record moves to the end of the past elections.
// Ending an election twice returns ErrElectionEnded and changes nothing.
func (s *Store) EndElection(id string) (models.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.active, id)
	if i < 0 {
		return models.Election{}, s.lookupErr(id)
	}

	e := s.endLocked(i)
	s.persistLocked("end election")

	return cloneElection(e), nil
}

func (s *Store) endLocked(i int) models.Election {
	e := s.active[i]
	w := winnerIndex(e.Candidates)
	if w >= 0 {
		e.Candidates[w].Winner = true
	}
	e.Status = models.StatusEnded

	s.active = slices.Delete(s.active, i, i+1)
	s.past = append(s.past, e)

	if w >= 0 {
		s.logger.Info("election ended", "election_id", e.ID, "winner", e.Candidates[w].Name, "votes", e.Candidates[w].Votes)
	} else {
		s.logger.Info("election ended without candidates", "election_id", e.ID)
	}
	return e
}

// winnerIndex returns the first candidate holding the highest vote count, or
// -1 when there are no candidates. Ties go to the earlier candidate.
func winnerIndex(candidates []models.Candidate) int {
	w := -1
	for i, c := range candidates {
		if w < 0 || c.Votes > candidates[w].Votes {
			w = i
		}
	}
	return w
}

// ElectionByID looks in the active elections, then the past ones
func (s *Store) ElectionByID(id string) (models.Election, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.active, id); i >= 0 {
		return cloneElection(s.active[i]), true
	}
	if i := indexOf(s.past, id); i >= 0 {
		return cloneElection(s.past[i]), true
	}
	return models.Election{}, false
}

// WinnerForElection returns the flagged winner of an ended election
func (s *Store) WinnerForElection(id string) (models.Candidate, bool) {
	e, ok := s.ElectionByID(id)
	if !ok || e.Status != models.StatusEnded {
		return models.Candidate{}, false
	}
	for _, c := range e.Candidates {
		if c.Winner {
			return c, true
		}
	}
	return models.Candidate{}, false
}

// TransactionsForElection returns the transactions of an election, newest
// first. Unknown ids yield an empty slice.
func (s *Store) TransactionsForElection(id string) []models.Transaction {
	e, ok := s.ElectionByID(id)
	if !ok {
		return []models.Transaction{}
	}
	return e.Transactions
}

// RecentlyEndedElections returns the past elections whose end time lies
// within the recent window before now. Repeated calls report the same
// elections.
func (s *Store) RecentlyEndedElections() []models.Election {
	cutoff := s.now().Add(-s.recentWindow)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Election{}
	for _, e := range s.past {
		if e.Status == models.StatusEnded && e.EndTime.After(cutoff) {
			out = append(out, cloneElection(e))
		}
	}
	return out
}

func (s *Store) ActiveElections() []models.Election {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneElections(s.active)
}

func (s *Store) PastElections() []models.Election {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneElections(s.past)
}

// Stats returns the totals shown on the admin dashboard
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := models.Stats{
		ActiveElections: len(s.active),
		PastElections:   len(s.past),
		TotalElections:  len(s.active) + len(s.past),
	}
	for _, vs := range s.voters {
		st.TotalVoters += len(vs)
	}
	for _, e := range s.active {
		st.TotalVotes += e.TotalVotes
	}
	for _, e := range s.past {
		st.TotalVotes += e.TotalVotes
	}
	return st
}
