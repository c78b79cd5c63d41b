// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/thaind/papertrack/internal/platform/request"
	"github.com/thaind/papertrack/internal/platform/respond"
)

// Handler exposes the paper endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new paper HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the /papers subtree.
//
// Must be mounted behind [middleware.RequireAuth]; per-paper authorization
// happens in the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{id}", func(paperRouter chi.Router) {
		paperRouter.Get("/", handler.get)
		paperRouter.Put("/", handler.update)
		paperRouter.Delete("/", handler.softDelete)

		// Both verbs accepted for status: older clients PUT, newer PATCH.
		paperRouter.Put("/status", handler.updateStatus)
		paperRouter.Patch("/status", handler.updateStatus)

		paperRouter.Post("/add-journal", handler.addJournal)
		paperRouter.Post("/restore", handler.restore)
	})

	return router
}

type createPaperRequest struct {
	Title   string          `json:"title"`
	URL     string          `json:"url"`
	Authors json.RawMessage `json:"authors"`

	// Single journal id, with the plural form older clients still send.
	JournalID  string   `json:"journalId"`
	JournalIDs []string `json:"journalIds"`
}

// journalID resolves the effective journal selection.
func (payload createPaperRequest) journalID() string {
	if payload.JournalID != "" {
		return payload.JournalID
	}
	if len(payload.JournalIDs) > 0 {
		return payload.JournalIDs[0]
	}
	return ""
}

// list handles GET /papers?deleted=0|1.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted := request.URL.Query().Get("deleted") == "1"

	papers, err := handler.service.List(request.Context(), claims, deleted)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, papers)
}

// create handles POST /papers.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createPaperRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.Create(request.Context(), claims, CreateInput{
		Title:     payload.Title,
		URL:       payload.URL,
		Authors:   payload.Authors,
		JournalID: payload.journalID(),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, paper)
}

// get handles GET /papers/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.Get(request.Context(), claims, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paper)
}

type updatePaperRequest struct {
	Title    *string         `json:"title"`
	URL      *string         `json:"url"`
	Authors  json.RawMessage `json:"authors"`
	Revision *int            `json:"revision"`
}

// update handles PUT /papers/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updatePaperRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.Update(request.Context(), claims, requestutil.ID(request, "id"), UpdateInput{
		Title:    payload.Title,
		URL:      payload.URL,
		Authors:  payload.Authors,
		Revision: payload.Revision,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paper)
}

type statusRequest struct {
	Status string `json:"status"`
}

// updateStatus handles PUT/PATCH /papers/{id}/status.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload statusRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.UpdateStatus(request.Context(), claims, requestutil.ID(request, "id"), payload.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paper)
}

type addJournalRequest struct {
	JournalID string `json:"journalId"`
}

// addJournal handles POST /papers/{id}/add-journal.
func (handler *Handler) addJournal(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload addJournalRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.AddJournal(request.Context(), claims, requestutil.ID(request, "id"), payload.JournalID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paper)
}

// softDelete handles DELETE /papers/{id}.
func (handler *Handler) softDelete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.SoftDelete(request.Context(), claims, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paper)
}

// restore handles POST /papers/{id}/restore.
func (handler *Handler) restore(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paper, err := handler.service.Restore(request.Context(), claims, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paper)
}
