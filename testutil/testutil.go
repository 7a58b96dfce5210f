// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-spin/cliparse"
	"github.com/danielhkuo/quickly-spin/db"
	"github.com/danielhkuo/quickly-spin/models"
)

// TestDBURL is an in-memory SQLite database, private to its single connection
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration with a fast spin
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   db.TypeSQLite,
		SpinDuration:   60 * time.Millisecond,
		FrameInterval:  5 * time.Millisecond,
		AllowedOrigins: []string{"*"},
	}
}

// CreateTestParticipant inserts a participant with the given score
func CreateTestParticipant(t *testing.T, conn *sql.DB, name string, score int) models.Participant {
	t.Helper()

	now := time.Now().UTC()
	p := models.Participant{
		ID:        uuid.NewString(),
		Name:      name,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := conn.Exec(`
		INSERT INTO participant (id, name, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Name, p.Score, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return p
}

// GetTestScore reads a participant's persisted score
func GetTestScore(t *testing.T, conn *sql.DB, id string) int {
	t.Helper()

	var score int
	if err := conn.QueryRow("SELECT score FROM participant WHERE id = $1", id).Scan(&score); err != nil {
		t.Fatalf("Failed to read score: %v", err)
	}
	return score
}

// CountTestParticipants returns the number of persisted participants
func CountTestParticipants(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM participant").Scan(&count); err != nil {
		t.Fatalf("Failed to count participants: %v", err)
	}
	return count
}

// SetTestShowUpDown overwrites the feature flag
func SetTestShowUpDown(t *testing.T, conn *sql.DB, show bool) {
	t.Helper()

	if _, err := conn.Exec("UPDATE app_config SET show_up_down = $1 WHERE id = 1", show); err != nil {
		t.Fatalf("Failed to update config: %v", err)
	}
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
