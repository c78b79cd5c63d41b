// Copyright (c) 2026 PaperTrack. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/thaind/papertrack/internal/platform/request"
	"github.com/thaind/papertrack/internal/platform/respond"
	"github.com/thaind/papertrack/internal/platform/validate"
	"github.com/thaind/papertrack/internal/users/auth"
)

// Handler exposes the account management endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a new account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AdminRoutes returns the router for the /admin/users subtree.
//
// The whole subtree must be mounted behind [middleware.RequireAdmin].
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/{id}", handler.update)
	router.Post("/set-role", handler.setRole)
	router.Post("/reset-password", handler.resetPassword)

	return router
}

// Routes returns the router for the member-facing /users subtree.
//
// Must be mounted behind [middleware.RequireAuth].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/search", handler.search)

	return router
}

// list handles GET /admin/users.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

type createRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ORCID    string `json:"orcid"`
	Address  string `json:"address"`
}

// create handles POST /admin/users.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var payload createRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(auth.FieldName, payload.Name).
		Required(auth.FieldEmail, payload.Email).
		Email(auth.FieldEmail, payload.Email).
		MinLen(auth.FieldPassword, payload.Password, auth.MinPasswordLength).
		ORCID(auth.FieldORCID, payload.ORCID).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Create(request.Context(), CreateInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
		ORCID:    payload.ORCID,
		Address:  payload.Address,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

type updateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	ORCID    *string `json:"orcid"`
	Address  *string `json:"address"`
}

// update handles PUT /admin/users/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var payload updateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if payload.Email != nil {
		validator.Email(auth.FieldEmail, *payload.Email)
	}
	if payload.Password != nil && *payload.Password != "" {
		validator.MinLen(auth.FieldPassword, *payload.Password, auth.MinPasswordLength)
	}
	if payload.ORCID != nil {
		validator.ORCID(auth.FieldORCID, *payload.ORCID)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
		ORCID:    payload.ORCID,
		Address:  payload.Address,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type setRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// setRole handles POST /admin/users/set-role.
func (handler *Handler) setRole(writer http.ResponseWriter, request *http.Request) {
	var payload setRoleRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(auth.FieldEmail, payload.Email).
		Required(auth.FieldRole, payload.Role).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetRole(request.Context(), payload.Email, payload.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// resetPassword handles POST /admin/users/reset-password.
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var payload resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(auth.FieldEmail, payload.Email).
		MinLen(auth.FieldNewPassword, payload.NewPassword, auth.MinPasswordLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ResetPassword(request.Context(), payload.Email, payload.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password reset"})
}

// search handles GET /users/search?q=.
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.Search(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}
