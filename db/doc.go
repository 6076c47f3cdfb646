// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and persistence of
election state.

# Connecting

Open supports SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq):

	conn, err := db.Open(db.TypeSQLite, "file:ballotchain.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: Election metadata, status and position
  - candidate: Candidates per election with vote counts and winner flag
  - vote_transaction: Synthetic vote transactions, newest first
  - voter: Voter records per election id
  - voted_election: Voted flag per election id

# Relationships

	election 1──* candidate
	election 1──* vote_transaction

Voter records and voted flags are keyed by election id without a foreign key.

# Repository

Repository implements the store's Persister. Save replaces the whole stored
state in one transaction; Load rebuilds the snapshot:

	repo := db.NewRepository(conn, db.TypeSQLite)
	snap, err := repo.Load()
*/
package db
