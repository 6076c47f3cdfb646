// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotchain API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st)

# Endpoints

Health:

	GET /health

Elections:

	POST  /elections           - Create election
	GET   /elections           - Active and past elections
	GET   /elections/{id}      - Election details
	PATCH /elections/{id}      - Change title, description or end_time
	POST  /elections/{id}/end  - End election and pick the winner

Voting:

	POST /elections/{id}/votes        - Cast a vote
	GET  /elections/{id}/transactions - Vote transactions, newest first
	GET  /elections/{id}/voted        - Voted flag (?address= for one voter)
	POST /elections/{id}/voted        - Set the voted flag
	GET  /elections/{id}/voters       - Voter records
	POST /elections/{id}/voters       - Register a voter

Results:

	GET /elections/recently-ended - Elections that ended in the recent window
	GET /elections/{id}/winner    - Winner of an ended election
	GET /elections/{id}/tally     - Vote shares
	GET /stats                    - Totals

All handlers share the same *store.Store.
*/
package router
