// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/grid"
	"github.com/danielhkuo/gameday-pool/middleware"
	"github.com/danielhkuo/gameday-pool/models"
)

type SubmissionHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	event *catalog.Event
}

func NewSubmissionHandler(db *sql.DB, cfg cliparse.Config, event *catalog.Event) *SubmissionHandler {
	return &SubmissionHandler{db: db, cfg: cfg, event: event}
}

// Submit handles POST /api/submissions
//
// Validation happens first (answers, cell selections), then the
// submission row, its answers, and its cell claims are committed as one
// transaction. A cell lost to a concurrent submission surfaces as 409
// and nothing persists.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Full name is required.")
		return
	}
	if req.PaymentMethod != models.PaymentCash && req.PaymentMethod != models.PaymentElectronic {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid payment method.")
		return
	}

	cells, err := grid.ParseSelections(req.Squares, h.event.Squares.MaxPerSubmission)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Validate answers against the catalog in question order. Skipped
	// questions cost nothing.
	type storedAnswer struct {
		questionID int
		text       string
	}
	var answers []storedAnswer
	totalOwed := 0
	for _, q := range h.event.Questions {
		raw := req.Answers[strconv.Itoa(q.ID)]
		normalized, answered, err := catalog.Normalize(q, raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if !answered {
			continue
		}
		answers = append(answers, storedAnswer{questionID: q.ID, text: normalized})
		totalOwed += q.Cost
	}
	totalOwed += len(cells) * h.event.Squares.CostPerCell

	submissionID := uuid.NewString()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO submission (id, full_name, contact_handle, contact_number, payment_method, total_owed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, submissionID, fullName, strings.TrimSpace(req.ContactHandle), strings.TrimSpace(req.ContactNumber),
		req.PaymentMethod, float64(totalOwed), time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	for _, a := range answers {
		_, err = tx.Exec(`
			INSERT INTO answer (submission_id, question_id, answer_text)
			VALUES ($1, $2, $3)
		`, submissionID, a.questionID, a.text)
		if err != nil {
			slog.Error("failed to insert answer", "error", err, "question_id", a.questionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save answers")
			return
		}
	}

	if err := grid.ClaimCells(tx, submissionID, cells); err != nil {
		var conflict *grid.ConflictError
		if errors.As(err, &conflict) {
			// The deferred rollback discards the submission row and any
			// claims inserted before the contested one.
			slog.Info("cell claim conflict", "row", conflict.Row, "col", conflict.Col,
				"remote", middleware.GetClientIP(r))
			middleware.ErrorResponse(w, http.StatusConflict, conflict.Error())
			return
		}
		slog.Error("failed to insert claims", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save square selections")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save submission")
		return
	}

	slog.Info("submission created", "submission_id", submissionID, "name", fullName,
		"answers", len(answers), "squares", len(cells), "total_owed", totalOwed)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{
		OK:            true,
		SubmissionID:  submissionID,
		AnsweredCount: len(answers),
		SquareCount:   len(cells),
		TotalOwed:     float64(totalOwed),
	})
}
