// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/grid"
	"github.com/danielhkuo/gameday-pool/middleware"
	"github.com/danielhkuo/gameday-pool/models"
)

type SquaresHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	event *catalog.Event
}

func NewSquaresHandler(db *sql.DB, cfg cliparse.Config, event *catalog.Event) *SquaresHandler {
	return &SquaresHandler{db: db, cfg: cfg, event: event}
}

// Public handles GET /api/squares/public
//
// Taken cells and their owners are visible to everyone; the digit
// permutations stay hidden so nobody can tell which cells are live
// before reveal.
func (h *SquaresHandler) Public(w http.ResponseWriter, r *http.Request) {
	claims, err := grid.Claims(h.db)
	if err != nil {
		slog.Error("failed to load claims", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SquaresPublicView{
		Cost:             h.event.Squares.CostPerCell,
		MaxPerSubmission: h.event.Squares.MaxPerSubmission,
		Taken:            takenCells(claims),
	})
}

func takenCells(claims []grid.Claim) []models.TakenCell {
	taken := make([]models.TakenCell, 0, len(claims))
	for _, c := range claims {
		p := models.NewParticipant(c.Name)
		taken = append(taken, models.TakenCell{
			Row:      c.Row,
			Col:      c.Col,
			Name:     p.Name,
			Initials: p.Initials,
			Color:    p.Color,
		})
	}
	return taken
}

// Revealed handles GET /api/squares/revealed
func (h *SquaresHandler) Revealed(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r, h.cfg) {
		return
	}

	board, err := grid.GetBoard(h.db)
	if err != nil {
		slog.Error("failed to load board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	claims, err := grid.Claims(h.db)
	if err != nil {
		slog.Error("failed to load claims", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	scores := make(map[string]models.QuarterScoreView, 4)
	for i, qs := range board.Scores {
		scores["q"+strconv.Itoa(i+1)] = models.QuarterScoreView{Home: qs.Home, Away: qs.Away}
	}

	middleware.JSONResponse(w, http.StatusOK, models.SquaresRevealedView{
		Cost:      h.event.Squares.CostPerCell,
		RowDigits: board.RowDigits,
		ColDigits: board.ColDigits,
		Scores:    scores,
		Taken:     takenCells(claims),
	})
}
