// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/gameday-pool/grid"
	"github.com/danielhkuo/gameday-pool/models"
	"github.com/danielhkuo/gameday-pool/testutil"
)

func adminHeaders() map[string]string {
	return map[string]string{"X-Admin-Password": testutil.TestAdminPassword}
}

func TestAdminLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAdminHandler(db, testutil.GetTestConfig(), testutil.TestEvent(t))

	t.Run("correct password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/admin/login",
			models.AdminLoginRequest{Password: testutil.TestAdminPassword}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.AdminLoginResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.OK {
			t.Error("Expected ok=true")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/admin/login",
			models.AdminLoginRequest{Password: "wrong"}, nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		var resp models.AdminLoginResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.OK {
			t.Error("Expected ok=false")
		}
	})
}

func TestAdminEndpointsRequirePassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	event := testutil.TestEvent(t)
	admin := NewAdminHandler(db, cfg, event)
	squares := NewSquaresHandler(db, cfg, event)

	endpoints := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
		req  *http.Request
	}{
		{"state", admin.State, testutil.MakeRequest("GET", "/api/admin/state", nil, nil)},
		{"correct answers", admin.SetCorrectAnswers,
			testutil.MakeRequest("POST", "/api/admin/correct-answers", models.CorrectAnswersRequest{}, nil)},
		{"scores", admin.SetScores,
			testutil.MakeRequest("POST", "/api/admin/squares-scores", models.ScoresRequest{}, nil)},
		{"revealed board", squares.Revealed,
			testutil.MakeRequest("GET", "/api/squares/revealed", nil, nil)},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ep.call(w, ep.req)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

// TestAdminSettlementState walks a small pool end to end: two entries,
// declared answers, quarter scores, and the resulting ledger.
func TestAdminSettlementState(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	event := testutil.TestEvent(t)
	admin := NewAdminHandler(db, cfg, event)
	submissions := NewSubmissionHandler(db, cfg, event)

	// Alice: both answers plus one square. Bob: both answers, no squares.
	submit := func(body models.SubmitRequest) models.SubmitResponse {
		t.Helper()
		req := testutil.MakeRequest("POST", "/api/submissions", body, nil)
		w := httptest.NewRecorder()
		submissions.Submit(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.SubmitResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	submit(models.SubmitRequest{
		FullName:      "Alice",
		PaymentMethod: "cash",
		Answers:       map[string]any{"1": "Heads", "2": 40},
		Squares:       []models.CellRef{{Row: 2, Col: 3}},
	})
	submit(models.SubmitRequest{
		FullName:      "Bob",
		PaymentMethod: "electronic",
		Answers:       map[string]any{"1": "Tails", "2": 51},
	})

	// Declare correct answers: Heads, 50. Alice wins the choice pot,
	// Bob is closest on the numeric.
	req := testutil.MakeRequest("POST", "/api/admin/correct-answers",
		models.CorrectAnswersRequest{Answers: map[string]any{"1": "Heads", "2": 50}},
		adminHeaders())
	w := httptest.NewRecorder()
	admin.SetCorrectAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Read the generated board and pick Q1 scores that land on Alice's
	// cell: rows are keyed by the away digit, columns by the home digit.
	board, err := grid.GetBoard(db)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	homeScore := board.ColDigits[3]
	awayScore := board.RowDigits[2]

	req = testutil.MakeRequest("POST", "/api/admin/squares-scores",
		models.ScoresRequest{Scores: map[string]models.QuarterScoreInput{
			"q1": {Home: &homeScore, Away: &awayScore},
		}}, adminHeaders())
	w = httptest.NewRecorder()
	admin.SetScores(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.AdminStateResponse
	testutil.AssertJSON(t, w, &state)

	if state.CorrectAnswers["1"] != "Heads" || state.CorrectAnswers["2"] != "50" {
		t.Errorf("Unexpected correct answers: %v", state.CorrectAnswers)
	}

	// Trivia: choice collects 4, numeric collects 2. Squares pot is one
	// cell at 4 dollars, 1 dollar per quarter.
	if state.TotalCollected != 10 {
		t.Errorf("Expected total collected 10, got %v", state.TotalCollected)
	}

	byQuestion := make(map[int]models.QuestionBreakdown)
	for _, q := range state.QuestionBreakdown {
		byQuestion[q.QuestionID] = q
	}
	if q := byQuestion[1]; len(q.Winners) != 1 || q.Winners[0] != "Alice" || q.SplitAmount != 4 {
		t.Errorf("Choice question settled wrong: %+v", q)
	}
	if q := byQuestion[2]; len(q.Winners) != 1 || q.Winners[0] != "Bob" || q.SplitAmount != 2 {
		t.Errorf("Numeric question settled wrong: %+v", q)
	}

	if state.Squares.Pot != 4 || state.Squares.QuarterShare != 1 {
		t.Errorf("Unexpected squares pot: %+v", state.Squares)
	}
	q1 := state.Squares.Quarters[0]
	if q1.Cell == nil || q1.Cell.Row != 2 || q1.Cell.Col != 3 {
		t.Fatalf("Expected winning cell 2,3, got %+v", q1.Cell)
	}
	if q1.Winner == nil || q1.Winner.Name != "Alice" {
		t.Errorf("Expected Alice to win Q1, got %+v", q1.Winner)
	}
	for i := 1; i < 4; i++ {
		if state.Squares.Quarters[i].Winner != nil {
			t.Errorf("Quarter %d should have no winner", i+1)
		}
	}

	// Ledger: Alice paid 7 (2+1+4), owed 4+1=5, net -2.
	// Bob paid 3, owed 2, net -1. House keeps 10-7=3.
	balances := make(map[string]models.PersonBalance)
	for _, p := range state.ByPerson {
		balances[p.Name] = p
	}
	if b := balances["Alice"]; b.PaidIn != 7 || b.Owed != 5 || b.Net != -2 {
		t.Errorf("Alice balance wrong: %+v", b)
	}
	if b := balances["Bob"]; b.PaidIn != 3 || b.Owed != 2 || b.Net != -1 {
		t.Errorf("Bob balance wrong: %+v", b)
	}
	if state.TotalOwed != 7 || state.HouseRemainder != 3 {
		t.Errorf("Expected owed 7 and remainder 3, got %v and %v",
			state.TotalOwed, state.HouseRemainder)
	}
}

func TestSetCorrectAnswersClearsBlanks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := NewAdminHandler(db, testutil.GetTestConfig(), testutil.TestEvent(t))

	testutil.SetTestCorrectAnswer(t, db, 1, "Heads")
	testutil.SetTestCorrectAnswer(t, db, 2, "50")

	// Re-declare question 1, clear question 2 by omission.
	req := testutil.MakeRequest("POST", "/api/admin/correct-answers",
		models.CorrectAnswersRequest{Answers: map[string]any{"1": "Tails"}},
		adminHeaders())
	w := httptest.NewRecorder()
	admin.SetCorrectAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.AdminStateResponse
	testutil.AssertJSON(t, w, &state)
	if state.CorrectAnswers["1"] != "Tails" {
		t.Errorf("Expected updated answer, got %v", state.CorrectAnswers)
	}
	if _, present := state.CorrectAnswers["2"]; present {
		t.Errorf("Expected question 2 cleared, got %v", state.CorrectAnswers)
	}
}

func TestSetCorrectAnswersRejectsInvalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := NewAdminHandler(db, testutil.GetTestConfig(), testutil.TestEvent(t))

	req := testutil.MakeRequest("POST", "/api/admin/correct-answers",
		models.CorrectAnswersRequest{Answers: map[string]any{"1": "NotAnOption"}},
		adminHeaders())
	w := httptest.NewRecorder()
	admin.SetCorrectAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

// TestSetCorrectAnswersRejectedLeavesStateUntouched covers the error
// path: a payload with any invalid answer must change nothing, even
// for questions earlier in the catalog that validated or were blank.
func TestSetCorrectAnswersRejectedLeavesStateUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := NewAdminHandler(db, testutil.GetTestConfig(), testutil.TestEvent(t))

	storedAnswer := func(questionID int) (string, bool) {
		t.Helper()
		var text string
		err := db.QueryRow(`SELECT answer_text FROM correct_answer WHERE question_id = $1`,
			questionID).Scan(&text)
		if err == sql.ErrNoRows {
			return "", false
		}
		if err != nil {
			t.Fatalf("Failed to read correct answer: %v", err)
		}
		return text, true
	}

	testutil.SetTestCorrectAnswer(t, db, 1, "Heads")
	testutil.SetTestCorrectAnswer(t, db, 2, "50")

	// Question 1 re-declared, question 2 invalid. The overwrite must not
	// land.
	req := testutil.MakeRequest("POST", "/api/admin/correct-answers",
		models.CorrectAnswersRequest{Answers: map[string]any{"1": "Tails", "2": "not-a-number"}},
		adminHeaders())
	w := httptest.NewRecorder()
	admin.SetCorrectAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	if text, ok := storedAnswer(1); !ok || text != "Heads" {
		t.Errorf("Rejected request mutated question 1: got %q, %v", text, ok)
	}
	if text, ok := storedAnswer(2); !ok || text != "50" {
		t.Errorf("Rejected request mutated question 2: got %q, %v", text, ok)
	}

	// Question 1 blank (a clear), question 2 invalid. The clear must not
	// land either.
	req = testutil.MakeRequest("POST", "/api/admin/correct-answers",
		models.CorrectAnswersRequest{Answers: map[string]any{"2": "not-a-number"}},
		adminHeaders())
	w = httptest.NewRecorder()
	admin.SetCorrectAnswers(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	if text, ok := storedAnswer(1); !ok || text != "Heads" {
		t.Errorf("Rejected request cleared question 1: got %q, %v", text, ok)
	}
	if text, ok := storedAnswer(2); !ok || text != "50" {
		t.Errorf("Rejected request mutated question 2: got %q, %v", text, ok)
	}
}

func TestSetScoresValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := NewAdminHandler(db, testutil.GetTestConfig(), testutil.TestEvent(t))

	over := 201
	req := testutil.MakeRequest("POST", "/api/admin/squares-scores",
		models.ScoresRequest{Scores: map[string]models.QuarterScoreInput{
			"q2": {Home: &over},
		}}, adminHeaders())
	w := httptest.NewRecorder()
	admin.SetScores(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	negative := -1
	req = testutil.MakeRequest("POST", "/api/admin/squares-scores",
		models.ScoresRequest{Scores: map[string]models.QuarterScoreInput{
			"q1": {Away: &negative},
		}}, adminHeaders())
	w = httptest.NewRecorder()
	admin.SetScores(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSetScoresPartialEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	admin := NewAdminHandler(db, testutil.GetTestConfig(), testutil.TestEvent(t))

	home := 14
	req := testutil.MakeRequest("POST", "/api/admin/squares-scores",
		models.ScoresRequest{Scores: map[string]models.QuarterScoreInput{
			"q1": {Home: &home},
		}}, adminHeaders())
	w := httptest.NewRecorder()
	admin.SetScores(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var state models.AdminStateResponse
	testutil.AssertJSON(t, w, &state)

	q1 := state.Squares.Board.Scores["q1"]
	if q1.Home == nil || *q1.Home != 14 || q1.Away != nil {
		t.Errorf("Expected partial Q1 score, got %+v", q1)
	}
	// A half-entered quarter settles nobody.
	if state.Squares.Quarters[0].Cell != nil || state.Squares.Quarters[0].Winner != nil {
		t.Errorf("Half-scored quarter must stay unsettled: %+v", state.Squares.Quarters[0])
	}
}
