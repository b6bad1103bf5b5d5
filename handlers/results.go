// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/middleware"
	"github.com/danielhkuo/gameday-pool/models"
)

type ResultsHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	event *catalog.Event
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, event *catalog.Event) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, event: event}
}

// Results handles GET /api/results
//
// Every stored answer is grouped per question: numeric questions become
// scatter points, choice questions become per-option bars in catalog
// option order.
func (h *ResultsHandler) Results(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT a.question_id, a.answer_text, s.full_name
		FROM answer a
		JOIN submission s ON s.id = a.submission_id
		ORDER BY s.created_at
	`)
	if err != nil {
		slog.Error("failed to load answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	type row struct {
		text string
		name string
	}
	byQuestion := make(map[int][]row)
	for rows.Next() {
		var questionID int
		var rec row
		if err := rows.Scan(&questionID, &rec.text, &rec.name); err != nil {
			slog.Error("failed to scan answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		byQuestion[questionID] = append(byQuestion[questionID], rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var total int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM submission`).Scan(&total); err != nil {
		slog.Error("failed to count submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions := make([]models.QuestionSummary, 0, len(h.event.Questions))
	for _, q := range h.event.Questions {
		summary := models.QuestionSummary{
			ID:   q.ID,
			Text: q.Text,
			Kind: q.Kind,
			Cost: q.Cost,
		}
		answered := byQuestion[q.ID]

		switch q.Kind {
		case catalog.KindNumeric:
			points := make([]models.NumericPoint, 0, len(answered))
			highest := 0
			for _, rec := range answered {
				value, err := strconv.Atoi(rec.text)
				if err != nil {
					continue
				}
				p := models.NewParticipant(rec.name)
				points = append(points, models.NumericPoint{
					Name:     p.Name,
					Initials: p.Initials,
					Color:    p.Color,
					Value:    value,
				})
				if value > highest {
					highest = value
				}
			}
			// Leave a little headroom above the highest guess so the
			// top point does not sit on the chart edge.
			scaleMax := int(math.Round(float64(highest) * 1.05))
			if scaleMax < 5 {
				scaleMax = 5
			}
			summary.Points = points
			summary.ScaleMax = scaleMax
		case catalog.KindChoice:
			counts := make(map[string][]models.Participant, len(q.Options))
			for _, rec := range answered {
				counts[rec.text] = append(counts[rec.text], models.NewParticipant(rec.name))
			}
			bars := make([]models.ChoiceBar, 0, len(q.Options))
			for _, opt := range q.Options {
				bars = append(bars, models.ChoiceBar{
					Option:       opt,
					Count:        len(counts[opt]),
					Participants: counts[opt],
				})
			}
			summary.Bars = bars
		}
		questions = append(questions, summary)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Questions:        questions,
		TotalSubmissions: total,
	})
}
