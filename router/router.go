// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/cors"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/cliparse"
	"github.com/danielhkuo/gameday-pool/handlers"
	"github.com/danielhkuo/gameday-pool/middleware"
)

// NewRouter wires every route to its handler and wraps the mux with
// CORS so the static frontend can be served from a different origin.
func NewRouter(db *sql.DB, cfg cliparse.Config, event *catalog.Event) http.Handler {
	mux := http.NewServeMux()

	questions := handlers.NewQuestionsHandler(event)
	submissions := handlers.NewSubmissionHandler(db, cfg, event)
	squares := handlers.NewSquaresHandler(db, cfg, event)
	results := handlers.NewResultsHandler(db, cfg, event)
	lookup := handlers.NewLookupHandler(db, cfg, event)
	admin := handlers.NewAdminHandler(db, cfg, event)

	// Public surface
	mux.HandleFunc("GET /api/questions", middleware.WithLogging(questions.Questions))
	mux.HandleFunc("POST /api/submissions", middleware.WithLogging(submissions.Submit))
	mux.HandleFunc("GET /api/squares/public", middleware.WithLogging(squares.Public))
	mux.HandleFunc("GET /api/results", middleware.WithLogging(results.Results))
	mux.HandleFunc("POST /api/view-guesses", middleware.WithLogging(lookup.ViewGuesses))

	// Admin surface
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(admin.Login))
	mux.HandleFunc("GET /api/admin/state", middleware.WithLogging(admin.State))
	mux.HandleFunc("POST /api/admin/correct-answers", middleware.WithLogging(admin.SetCorrectAnswers))
	mux.HandleFunc("POST /api/admin/squares-scores", middleware.WithLogging(admin.SetScores))
	mux.HandleFunc("GET /api/squares/revealed", middleware.WithLogging(squares.Revealed))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Admin-Password"},
		AllowCredentials: false,
		MaxAge:           300,
	})(mux)
}
