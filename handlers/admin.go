// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gameday-pool/auth"
	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/grid"
	"github.com/danielhkuo/gameday-pool/middleware"
	"github.com/danielhkuo/gameday-pool/models"
	"github.com/danielhkuo/gameday-pool/settle"
)

type AdminHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	event *catalog.Event
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, event *catalog.Event) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, event: event}
}

// requireAdmin checks the X-Admin-Password header against the configured
// password and writes a 401 on mismatch. Callers return immediately on
// false.
func requireAdmin(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) bool {
	if err := auth.CheckPassword(r.Header.Get("X-Admin-Password"), cfg.AdminPassword); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	return true
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.CheckPassword(req.Password, h.cfg.AdminPassword); err != nil {
		slog.Info("failed admin login", "remote", middleware.GetClientIP(r))
		middleware.JSONResponse(w, http.StatusUnauthorized, models.AdminLoginResponse{OK: false})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{OK: true})
}

// State handles GET /api/admin/state
func (h *AdminHandler) State(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}
	h.respondWithState(w)
}

// SetCorrectAnswers handles POST /api/admin/correct-answers
//
// The payload covers the whole catalog: a question missing from it, or
// mapped to a blank value, is cleared back to unresolved. Settlement is
// recomputed and returned so the operator sees the effect immediately.
func (h *AdminHandler) SetCorrectAnswers(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.CorrectAnswersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate the whole payload before touching the database, so a bad
	// answer for one question cannot clear or overwrite another's.
	type resolved struct {
		questionID int
		text       string
		answered   bool
	}
	updates := make([]resolved, 0, len(h.event.Questions))
	for _, q := range h.event.Questions {
		raw := req.Answers[strconv.Itoa(q.ID)]
		normalized, answered, err := catalog.Normalize(q, raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		updates = append(updates, resolved{questionID: q.ID, text: normalized, answered: answered})
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, u := range updates {
		if !u.answered {
			_, err = tx.Exec(`DELETE FROM correct_answer WHERE question_id = $1`, u.questionID)
		} else {
			_, err = tx.Exec(`
				INSERT INTO correct_answer (question_id, answer_text)
				VALUES ($1, $2)
				ON CONFLICT (question_id) DO UPDATE SET answer_text = EXCLUDED.answer_text
			`, u.questionID, u.text)
		}
		if err != nil {
			slog.Error("failed to store correct answer", "error", err, "question_id", u.questionID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save correct answers")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit correct answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save correct answers")
		return
	}

	slog.Info("correct answers updated")
	h.respondWithState(w)
}

// SetScores handles POST /api/admin/squares-scores
func (h *AdminHandler) SetScores(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	var req models.ScoresRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var scores [4]grid.QuarterScore
	for q := 0; q < 4; q++ {
		input := req.Scores["q"+strconv.Itoa(q+1)]
		if err := checkScore(q+1, "home", input.Home); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := checkScore(q+1, "away", input.Away); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		scores[q] = grid.QuarterScore{Home: input.Home, Away: input.Away}
	}

	if err := grid.SetScores(h.db, scores); err != nil {
		slog.Error("failed to store scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save scores")
		return
	}

	slog.Info("quarter scores updated")
	h.respondWithState(w)
}

func checkScore(quarter int, team string, score *int) error {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 200 {
		return fmt.Errorf("invalid %s score for q%d", team, quarter)
	}
	return nil
}

// respondWithState recomputes the full settlement from stored state and
// writes it. Nothing derived is ever persisted, so a state read always
// reflects the latest answers, claims, and scores.
func (h *AdminHandler) respondWithState(w http.ResponseWriter) {
	state, err := h.buildState()
	if err != nil {
		slog.Error("failed to build admin state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, state)
}

func (h *AdminHandler) buildState() (models.AdminStateResponse, error) {
	answers, err := settle.LoadAnswers(h.db)
	if err != nil {
		return models.AdminStateResponse{}, err
	}
	correct, err := settle.LoadCorrectAnswers(h.db)
	if err != nil {
		return models.AdminStateResponse{}, err
	}
	paidIn, err := settle.LoadPaidIn(h.db)
	if err != nil {
		return models.AdminStateResponse{}, err
	}
	board, err := grid.GetBoard(h.db)
	if err != nil {
		return models.AdminStateResponse{}, err
	}
	claims, err := grid.Claims(h.db)
	if err != nil {
		return models.AdminStateResponse{}, err
	}

	trivia := settle.Trivia(h.event.Questions, correct, answers)
	squares := settle.Squares(h.event.Squares.CostPerCell, board, claims)
	ledger := settle.Ledger(trivia, squares, paidIn)

	correctAnswers := make(map[string]string, len(correct))
	for questionID, text := range correct {
		correctAnswers[strconv.Itoa(questionID)] = text
	}

	byPerson := make([]models.PersonBalance, 0, len(ledger.ByPerson))
	for _, entry := range ledger.ByPerson {
		p := models.NewParticipant(entry.Name)
		byPerson = append(byPerson, models.PersonBalance{
			Name:     entry.Name,
			Initials: p.Initials,
			Color:    p.Color,
			PaidIn:   entry.PaidIn,
			Owed:     entry.Owed,
			Net:      entry.Net,
		})
	}

	breakdown := make([]models.QuestionBreakdown, 0, len(trivia.Questions))
	for _, q := range trivia.Questions {
		winners := q.Winners
		if winners == nil {
			winners = []string{}
		}
		breakdown = append(breakdown, models.QuestionBreakdown{
			QuestionID:    q.QuestionID,
			Text:          q.Text,
			Collected:     q.Collected,
			CorrectAnswer: q.CorrectAnswer,
			Winners:       winners,
			SplitAmount:   q.Split,
		})
	}

	scores := make(map[string]models.QuarterScoreView, 4)
	for i, qs := range board.Scores {
		scores["q"+strconv.Itoa(i+1)] = models.QuarterScoreView{Home: qs.Home, Away: qs.Away}
	}

	quarters := make([]models.QuarterView, 0, 4)
	for _, outcome := range squares.Quarters {
		view := models.QuarterView{
			Quarter: humanize.Ordinal(outcome.Quarter) + " Quarter",
			Home:    outcome.Home,
			Away:    outcome.Away,
			Cell:    outcome.Cell,
			Amount:  outcome.Amount,
		}
		if outcome.Winner != "" {
			p := models.NewParticipant(outcome.Winner)
			view.Winner = &p
		}
		quarters = append(quarters, view)
	}

	return models.AdminStateResponse{
		CorrectAnswers:    correctAnswers,
		ByPerson:          byPerson,
		QuestionBreakdown: breakdown,
		TotalCollected:    ledger.TotalCollected,
		TotalOwed:         ledger.TotalOwed,
		HouseRemainder:    ledger.HouseRemainder,
		Squares: models.SquaresSettlementView{
			Board: models.SquaresRevealedView{
				Cost:      h.event.Squares.CostPerCell,
				RowDigits: board.RowDigits,
				ColDigits: board.ColDigits,
				Scores:    scores,
				Taken:     takenCells(claims),
			},
			Pot:          squares.Pot,
			QuarterShare: squares.QuarterShare,
			Quarters:     quarters,
		},
	}, nil
}
