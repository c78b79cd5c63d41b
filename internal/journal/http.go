// Copyright (c) 2026 PaperTrack. All rights reserved.

package journal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thaind/papertrack/internal/platform/middleware"
	requestutil "github.com/thaind/papertrack/internal/platform/request"
	"github.com/thaind/papertrack/internal/platform/respond"
)

// Handler exposes the journal catalog endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new journal HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /journals subtree. Reading the catalog
// requires a session; writing requires the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/", handler.create)
		admin.Put("/{id}", handler.rename)
		admin.Delete("/{id}", handler.remove)
	})

	return router
}

type titleRequest struct {
	Title string `json:"title"`
}

// list handles GET /journals.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	journals, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, journals)
}

// get handles GET /journals/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	journal, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, journal)
}

// create handles POST /journals.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload titleRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	journal, err := handler.service.Create(request.Context(), payload.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, journal)
}

// rename handles PUT /journals/{id}.
func (handler *Handler) rename(writer http.ResponseWriter, request *http.Request) {
	var payload titleRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	journal, err := handler.service.Rename(request.Context(), requestutil.ID(request, "id"), payload.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, journal)
}

// remove handles DELETE /journals/{id}.
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
