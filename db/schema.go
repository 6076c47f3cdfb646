// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is valid on both SQLite and PostgreSQL; timestamps are stored as
// unix milliseconds.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

var schema = []string{
	// Elections; status decides active vs past, position keeps order
	`CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    end_time BIGINT NOT NULL,
    total_votes INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'Active' CHECK (status IN ('Pending', 'Active', 'Ended'))
)`,
	`CREATE INDEX IF NOT EXISTS idx_election_status ON election(status)`,

	// Candidates; ids are unique per election only
	`CREATE TABLE IF NOT EXISTS candidate (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    party TEXT NOT NULL DEFAULT '',
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    winner BOOLEAN NOT NULL DEFAULT FALSE,
    PRIMARY KEY (election_id, id)
)`,

	// Vote transactions; position 0 is the newest
	`CREATE TABLE IF NOT EXISTS vote_transaction (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    hash TEXT NOT NULL,
    voter TEXT NOT NULL,
    candidate TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    PRIMARY KEY (election_id, position)
)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_transaction_hash ON vote_transaction(hash)`,

	// Voter records; not tied to election rows, keyed by election id only
	`CREATE TABLE IF NOT EXISTS voter (
    election_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    address TEXT NOT NULL,
    registered BOOLEAN NOT NULL DEFAULT TRUE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_for TEXT NOT NULL DEFAULT '',
    voted_at BIGINT,
    PRIMARY KEY (election_id, position)
)`,
	`CREATE INDEX IF NOT EXISTS idx_voter_address ON voter(election_id, address)`,

	// Voted flags per election
	`CREATE TABLE IF NOT EXISTS voted_election (
    election_id TEXT PRIMARY KEY,
    voted BOOLEAN NOT NULL
)`,
}
