// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballotchain API.

# Handler Types

Each handler is a struct holding the election store:

  - ElectionHandler: Election lifecycle (create, update, end)
  - VotingHandler: Vote casting, transactions and voted flags
  - VoterHandler: Voter registration and voter records
  - ResultsHandler: Winners, tallies, recently ended elections and stats

Handlers are created via constructor functions:

	electionHandler := handlers.NewElectionHandler(st)

# Election Lifecycle

Elections are created Active and move to the past list when ended:

	POST  /elections          → CreateElection (id defaults to a UUID)
	PATCH /elections/{id}     → UpdateElection (title, description, end_time)
	POST  /elections/{id}/end → EndElection (flags the winner)

Elections whose end_time has passed are also ended by the expiry loop.

# Voting

	POST /elections/{id}/votes → CastVote

Voter addresses must be 0x followed by 40 hex digits. Under the default
one-per-address policy a second vote from the same address is a 409.

# Errors

Store errors map to status codes in writeStoreError: unknown elections are
404; ended elections and duplicates are 409; invalid input is 400.
*/
package handlers
