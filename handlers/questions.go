// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/gameday-pool/catalog"
	"github.com/danielhkuo/gameday-pool/middleware"
)

type QuestionsHandler struct {
	event *catalog.Event
}

func NewQuestionsHandler(event *catalog.Event) *QuestionsHandler {
	return &QuestionsHandler{event: event}
}

// Questions handles GET /api/questions
//
// The catalog is immutable after startup, so this is a straight dump of
// the loaded event: teams, squares pricing, and the question list.
func (h *QuestionsHandler) Questions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.event)
}
