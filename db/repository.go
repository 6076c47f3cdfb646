// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotchain/models"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know
	sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
}

// Open connects to the database and verifies the connection
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypeSQLite, TypePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dbType == TypeSQLite {
		// One writer at a time; also keeps ":memory:" on a single database
		conn.SetMaxOpenConns(1)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// Repository stores snapshots of the election store
type Repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sql.DB, dbType string) *Repository {
	return &Repository{db: sqlx.NewDb(conn, dbType)}
}

type electionRow struct {
	ID          string `db:"id"`
	Position    int    `db:"position"`
	Title       string `db:"title"`
	Description string `db:"description"`
	EndTime     int64  `db:"end_time"`
	TotalVotes  int    `db:"total_votes"`
	Status      string `db:"status"`
}

type candidateRow struct {
	ElectionID string `db:"election_id"`
	ID         string `db:"id"`
	Position   int    `db:"position"`
	Name       string `db:"name"`
	Party      string `db:"party"`
	Votes      int    `db:"votes"`
	Winner     bool   `db:"winner"`
}

type transactionRow struct {
	ElectionID string `db:"election_id"`
	Position   int    `db:"position"`
	Hash       string `db:"hash"`
	Voter      string `db:"voter"`
	Candidate  string `db:"candidate"`
	CreatedAt  int64  `db:"created_at"`
}

type voterRow struct {
	ElectionID string        `db:"election_id"`
	Position   int           `db:"position"`
	Address    string        `db:"address"`
	Registered bool          `db:"registered"`
	HasVoted   bool          `db:"has_voted"`
	VotedFor   string        `db:"voted_for"`
	VotedAt    sql.NullInt64 `db:"voted_at"`
}

type votedRow struct {
	ElectionID string `db:"election_id"`
	Voted      bool   `db:"voted"`
}

// Save replaces everything stored with snap in a single transaction
func (r *Repository) Save(snap models.Snapshot) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"voted_election", "voter", "vote_transaction", "candidate", "election"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	position := 0
	for _, group := range [][]models.Election{snap.Active, snap.Past} {
		for _, e := range group {
			if err := insertElection(tx, e, position); err != nil {
				return err
			}
			position++
		}
	}

	for electionID, voters := range snap.Voters {
		for i, v := range voters {
			row := voterRow{
				ElectionID: electionID,
				Position:   i,
				Address:    v.Address,
				Registered: v.Registered,
				HasVoted:   v.HasVoted,
				VotedFor:   v.VotedFor,
			}
			if v.Timestamp != nil {
				row.VotedAt = sql.NullInt64{Int64: v.Timestamp.UnixMilli(), Valid: true}
			}
			_, err := tx.NamedExec(`
				INSERT INTO voter (election_id, position, address, registered, has_voted, voted_for, voted_at)
				VALUES (:election_id, :position, :address, :registered, :has_voted, :voted_for, :voted_at)
			`, row)
			if err != nil {
				return fmt.Errorf("failed to insert voter: %w", err)
			}
		}
	}

	for electionID, voted := range snap.VotedElections {
		_, err := tx.NamedExec(`
			INSERT INTO voted_election (election_id, voted)
			VALUES (:election_id, :voted)
		`, votedRow{ElectionID: electionID, Voted: voted})
		if err != nil {
			return fmt.Errorf("failed to insert voted flag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func insertElection(tx *sqlx.Tx, e models.Election, position int) error {
	_, err := tx.NamedExec(`
		INSERT INTO election (id, position, title, description, end_time, total_votes, status)
		VALUES (:id, :position, :title, :description, :end_time, :total_votes, :status)
	`, electionRow{
		ID:          e.ID,
		Position:    position,
		Title:       e.Title,
		Description: e.Description,
		EndTime:     e.EndTime.UnixMilli(),
		TotalVotes:  e.TotalVotes,
		Status:      e.Status,
	})
	if err != nil {
		return fmt.Errorf("failed to insert election %s: %w", e.ID, err)
	}

	for i, c := range e.Candidates {
		_, err := tx.NamedExec(`
			INSERT INTO candidate (election_id, id, position, name, party, votes, winner)
			VALUES (:election_id, :id, :position, :name, :party, :votes, :winner)
		`, candidateRow{
			ElectionID: e.ID,
			ID:         c.ID,
			Position:   i,
			Name:       c.Name,
			Party:      c.Party,
			Votes:      c.Votes,
			Winner:     c.Winner,
		})
		if err != nil {
			return fmt.Errorf("failed to insert candidate %s/%s: %w", e.ID, c.ID, err)
		}
	}

	for i, t := range e.Transactions {
		_, err := tx.NamedExec(`
			INSERT INTO vote_transaction (election_id, position, hash, voter, candidate, created_at)
			VALUES (:election_id, :position, :hash, :voter, :candidate, :created_at)
		`, transactionRow{
			ElectionID: e.ID,
			Position:   i,
			Hash:       t.Hash,
			Voter:      t.Voter,
			Candidate:  t.Candidate,
			CreatedAt:  t.Timestamp.UnixMilli(),
		})
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", t.Hash, err)
		}
	}

	return nil
}

// Load reads the stored snapshot. An empty database yields an empty snapshot.
func (r *Repository) Load() (models.Snapshot, error) {
	snap := models.Snapshot{
		Active:         []models.Election{},
		Past:           []models.Election{},
		Voters:         map[string][]models.Voter{},
		VotedElections: map[string]bool{},
	}

	var elections []electionRow
	if err := r.db.Select(&elections, `SELECT id, position, title, description, end_time, total_votes, status FROM election ORDER BY position`); err != nil {
		return snap, fmt.Errorf("failed to query elections: %w", err)
	}

	var candidates []candidateRow
	if err := r.db.Select(&candidates, `SELECT election_id, id, position, name, party, votes, winner FROM candidate ORDER BY election_id, position`); err != nil {
		return snap, fmt.Errorf("failed to query candidates: %w", err)
	}
	candidatesByElection := make(map[string][]models.Candidate)
	for _, c := range candidates {
		candidatesByElection[c.ElectionID] = append(candidatesByElection[c.ElectionID], models.Candidate{
			ID:     c.ID,
			Name:   c.Name,
			Party:  c.Party,
			Votes:  c.Votes,
			Winner: c.Winner,
		})
	}

	var transactions []transactionRow
	if err := r.db.Select(&transactions, `SELECT election_id, position, hash, voter, candidate, created_at FROM vote_transaction ORDER BY election_id, position`); err != nil {
		return snap, fmt.Errorf("failed to query transactions: %w", err)
	}
	transactionsByElection := make(map[string][]models.Transaction)
	for _, t := range transactions {
		transactionsByElection[t.ElectionID] = append(transactionsByElection[t.ElectionID], models.Transaction{
			Hash:      t.Hash,
			Voter:     t.Voter,
			Candidate: t.Candidate,
			Timestamp: time.UnixMilli(t.CreatedAt),
		})
	}

	for _, row := range elections {
		e := models.Election{
			ID:           row.ID,
			Title:        row.Title,
			Description:  row.Description,
			EndTime:      time.UnixMilli(row.EndTime),
			TotalVotes:   row.TotalVotes,
			Status:       row.Status,
			Candidates:   candidatesByElection[row.ID],
			Transactions: transactionsByElection[row.ID],
		}
		if e.Candidates == nil {
			e.Candidates = []models.Candidate{}
		}
		if e.Transactions == nil {
			e.Transactions = []models.Transaction{}
		}

		if e.Status == models.StatusEnded {
			snap.Past = append(snap.Past, e)
		} else {
			snap.Active = append(snap.Active, e)
		}
	}

	var voters []voterRow
	if err := r.db.Select(&voters, `SELECT election_id, position, address, registered, has_voted, voted_for, voted_at FROM voter ORDER BY election_id, position`); err != nil {
		return snap, fmt.Errorf("failed to query voters: %w", err)
	}
	for _, v := range voters {
		voter := models.Voter{
			Address:    v.Address,
			Registered: v.Registered,
			HasVoted:   v.HasVoted,
			VotedFor:   v.VotedFor,
		}
		if v.VotedAt.Valid {
			ts := time.UnixMilli(v.VotedAt.Int64)
			voter.Timestamp = &ts
		}
		snap.Voters[v.ElectionID] = append(snap.Voters[v.ElectionID], voter)
	}

	var voted []votedRow
	if err := r.db.Select(&voted, `SELECT election_id, voted FROM voted_election`); err != nil {
		return snap, fmt.Errorf("failed to query voted flags: %w", err)
	}
	for _, v := range voted {
		snap.VotedElections[v.ElectionID] = v.Voted
	}

	return snap, nil
}
