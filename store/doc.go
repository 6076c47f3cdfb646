// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds election state: active and past elections, voter records
and voted flags.

# Construction

A Store is created explicitly and injected where it is needed:

	st := store.New(
		store.WithVotePolicy(store.PolicyOnePerAddress),
		store.WithPersister(repo),
	)

# Lifecycle

Elections are added Active and end exactly once:

	st.AddElection(e)          // → active
	st.EndElection(e.ID)       // → past, winner flagged

The winner is the first candidate, in candidate order, holding the highest
vote count.

# Voting

	tx, err := st.CastVote(electionID, candidateID, address, "")

CastVote validates before mutating. Failures are reported with sentinel
errors that callers check with errors.Is:

  - ErrElectionNotFound: unknown election id
  - ErrElectionEnded: election already in the past collection
  - ErrElectionNotOpen: election is Pending
  - ErrCandidateNotFound: candidate id not in the election
  - ErrDuplicateVote: address already voted (PolicyOnePerAddress only)

# Persistence

When a Persister is configured it receives a Snapshot after every successful
mutation. Save errors are logged, not returned.

# Expiry

RunExpiry ends active elections whose end time has passed:

	go st.RunExpiry(ctx, time.Minute)
*/
package store
