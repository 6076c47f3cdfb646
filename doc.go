// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotchain API server.

Ballotchain runs elections with a simulated ledger: every vote produces a
transaction with a random hash, voters are identified by 0x addresses, and
an election's winner is picked when it ends.

# Starting the Server

With no database the state is kept in memory:

	go run . -seed

With a database, state is loaded at startup and saved after every change:

	DATABASE_URL=file:ballotchain.db go run .
	go run . -t postgres -d "postgres://..."

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Database URL; empty keeps state in memory
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - VOTE_POLICY (-vote-policy): one-per-address or allow-repeat
  - SEED_SAMPLE (-seed): Load sample elections into an empty store
  - EXPIRY_INTERVAL (-expiry): How often elections past their end time are ended
  - RECENT_WINDOW (-recent-window): Window for recently ended elections

Values may also come from a .env file in the working directory.

# Architecture

  - store: The election store (elections, votes, voters, winners)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain, request and response types
  - chain: Transaction hashes and address helpers
  - db: Schema and snapshot persistence
  - report: Vote shares and tally tables
  - cliparse: Configuration parsing

The tally command in cmd/tally prints the elections saved in a database.
*/
package main
