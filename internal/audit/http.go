// Copyright (c) 2026 PaperTrack. All rights reserved.

package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/thaind/papertrack/internal/platform/respond"
)

// Handler exposes the admin audit log endpoints.
type Handler struct {
	recorder *Recorder
}

// NewHandler creates a new audit HTTP handler.
func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

// Routes returns the router for the /logs subtree.
//
// Must be mounted behind [middleware.RequireAdmin].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.query)

	return router
}

// query handles GET /logs?q=&limit=.
func (handler *Handler) query(writer http.ResponseWriter, request *http.Request) {
	limit := 0
	if raw := request.URL.Query().Get("limit"); raw != "" {
		// Malformed limits fall back to the default rather than erroring.
		limit, _ = strconv.Atoi(raw)
	}

	entries, err := handler.recorder.Query(request.Context(), request.URL.Query().Get("q"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}
