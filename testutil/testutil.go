// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/db"
)

// TestAdminPassword is the admin password used by GetTestConfig.
const TestAdminPassword = "test-admin-password"

// SetupTestDB creates a fresh sqlite database in a per-test temp dir
// with the full schema. A single pooled connection keeps concurrent
// test writers serialized the same way the server runs sqlite.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pool.db")
	conn, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseType:  "sqlite",
		AdminPassword: TestAdminPassword,
	}
}

// TestEvent returns a small fixed catalog: one choice question, one
// numeric question, and a 4-dollar squares grid capped at 5 cells.
func TestEvent(t *testing.T) *catalog.Event {
	t.Helper()

	ev := &catalog.Event{
		Name:     "Test Pool",
		HomeTeam: "Home",
		AwayTeam: "Away",
		Squares:  catalog.SquaresConfig{CostPerCell: 4, MaxPerSubmission: 5},
		Questions: []catalog.Question{
			{ID: 1, Text: "Coin toss?", Kind: catalog.KindChoice, Cost: 2, Options: []string{"Heads", "Tails"}},
			{ID: 2, Text: "Total points?", Kind: catalog.KindNumeric, Cost: 1, Min: 0, Max: 500},
		},
	}
	return RequireEvent(t, ev)
}

// RequireEvent round-trips an event through the catalog loader's
// validation so fixtures fail fast when they drift from what Load
// would accept.
func RequireEvent(t *testing.T, ev *catalog.Event) *catalog.Event {
	t.Helper()

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Failed to marshal test event: %v", err)
	}
	checked, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("Invalid test event: %v", err)
	}
	return checked
}

// CreateTestSubmission inserts a submission row and returns its ID
func CreateTestSubmission(t *testing.T, conn *sql.DB, fullName, contactNumber string, totalOwed float64) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO submission (id, full_name, contact_handle, contact_number, payment_method, total_owed, created_at)
		VALUES ($1, $2, '', $3, 'cash', $4, $5)
	`, id, fullName, contactNumber, totalOwed, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}
	return id
}

// AddTestAnswer stores one answer for a submission
func AddTestAnswer(t *testing.T, conn *sql.DB, submissionID string, questionID int, text string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO answer (submission_id, question_id, answer_text)
		VALUES ($1, $2, $3)
	`, submissionID, questionID, text)
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}
}

// ClaimTestCell claims one grid cell for a submission
func ClaimTestCell(t *testing.T, conn *sql.DB, submissionID string, row, col int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO square_claim (row_idx, col_idx, submission_id)
		VALUES ($1, $2, $3)
	`, row, col, submissionID)
	if err != nil {
		t.Fatalf("Failed to claim test cell: %v", err)
	}
}

// SetTestCorrectAnswer declares the correct answer for a question
func SetTestCorrectAnswer(t *testing.T, conn *sql.DB, questionID int, text string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO correct_answer (question_id, answer_text)
		VALUES ($1, $2)
		ON CONFLICT (question_id) DO UPDATE SET answer_text = EXCLUDED.answer_text
	`, questionID, text)
	if err != nil {
		t.Fatalf("Failed to set test correct answer: %v", err)
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
