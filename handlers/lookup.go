// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/middleware"
	"github.com/danielhkuo/gameday-pool/models"
)

type LookupHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	event *catalog.Event
}

func NewLookupHandler(db *sql.DB, cfg cliparse.Config, event *catalog.Event) *LookupHandler {
	return &LookupHandler{db: db, cfg: cfg, event: event}
}

// ViewGuesses handles POST /api/view-guesses
//
// Participants retrieve their own entry with the last four digits of
// the contact number they signed up with. When several submissions
// share a suffix the newest wins. A miss is a normal outcome, not an
// error worth logging.
func (h *LookupHandler) ViewGuesses(w http.ResponseWriter, r *http.Request) {
	var req models.LookupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	last4 := models.DigitsOnly(req.Last4)
	if len(last4) != 4 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please provide exactly 4 digits.")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, full_name, contact_handle, contact_number, created_at
		FROM submission
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	var view models.SubmissionView
	found := false
	for rows.Next() {
		var id, name, handle, number string
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &handle, &number, &createdAt); err != nil {
			slog.Error("failed to scan submission", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if strings.HasSuffix(models.DigitsOnly(number), last4) {
			view = models.SubmissionView{
				SubmissionID:  id,
				FullName:      name,
				ContactHandle: handle,
				ContactNumber: number,
				CreatedAt:     createdAt,
				SubmittedAgo:  humanize.Time(createdAt),
			}
			found = true
			break
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	rows.Close()

	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "No submission found for that phone number.")
		return
	}

	view.Answers = make(map[string]string)
	answerRows, err := h.db.Query(`
		SELECT question_id, answer_text FROM answer WHERE submission_id = $1
	`, view.SubmissionID)
	if err != nil {
		slog.Error("failed to query answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer answerRows.Close()
	for answerRows.Next() {
		var questionID int
		var text string
		if err := answerRows.Scan(&questionID, &text); err != nil {
			slog.Error("failed to scan answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		view.Answers[strconv.Itoa(questionID)] = text
	}
	if err := answerRows.Err(); err != nil {
		slog.Error("failed to read answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	view.Squares = []models.CellRef{}
	cellRows, err := h.db.Query(`
		SELECT row_idx, col_idx FROM square_claim
		WHERE submission_id = $1
		ORDER BY row_idx, col_idx
	`, view.SubmissionID)
	if err != nil {
		slog.Error("failed to query claims", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cellRows.Close()
	for cellRows.Next() {
		var cell models.CellRef
		if err := cellRows.Scan(&cell.Row, &cell.Col); err != nil {
			slog.Error("failed to scan claim", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		view.Squares = append(view.Squares, cell)
	}
	if err := cellRows.Err(); err != nil {
		slog.Error("failed to read claims", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LookupResponse{OK: true, Submission: view})
}
