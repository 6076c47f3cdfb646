// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/ballotchain/db"
	"github.com/danielhkuo/ballotchain/models"
	"github.com/danielhkuo/ballotchain/store"
)

// NewTestStore returns an empty store that logs nowhere
func NewTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	opts = append([]store.Option{store.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return store.New(opts...)
}

// SetupTestDB opens an in-memory SQLite database with the full schema.
// The connection is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// TestAddress returns a valid, deterministic voter address
func TestAddress(n int) string {
	return fmt.Sprintf("0x%040x", n)
}

// CreateTestElection adds an election with two candidates and returns it.
// status should be "Active" or "Ended"; ended elections are closed with
// candidate "1" as the winner.
func CreateTestElection(t *testing.T, st *store.Store, id, status string) models.Election {
	t.Helper()

	e := models.Election{
		ID:          id,
		Title:       "Test Election " + id,
		Description: "A test election",
		EndTime:     time.Now().Add(72 * time.Hour),
		Candidates: []models.Candidate{
			{ID: "1", Name: "Jane Smith", Party: "Progressive Party", Votes: 3},
			{ID: "2", Name: "John Doe", Party: "Conservative Party", Votes: 2},
		},
		TotalVotes:   5,
		Status:       models.StatusActive,
		Transactions: []models.Transaction{},
	}
	if err := st.AddElection(e); err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	if status == models.StatusEnded {
		ended, err := st.EndElection(id)
		if err != nil {
			t.Fatalf("Failed to end test election: %v", err)
		}
		return ended
	}

	created, _ := st.ElectionByID(id)
	return created
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
