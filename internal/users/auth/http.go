// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thaind/papertrack/internal/platform/constants"
	"github.com/thaind/papertrack/internal/platform/middleware"
	requestutil "github.com/thaind/papertrack/internal/platform/request"
	"github.com/thaind/papertrack/internal/platform/respond"
	"github.com/thaind/papertrack/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service

	// secureCookies toggles the Secure attribute on the session cookie.
	// Disabled in development so the portal works over plain http://localhost.
	secureCookies bool
}

// NewHandler creates a new authentication HTTP handler.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{service: service, secureCookies: secureCookies}
}

// Routes returns the router for the /auth subtree.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Get("/logout", handler.logout)
	router.Post("/logout", handler.logout)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.me)
	})

	return router
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ORCID    string `json:"orcid"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register handles POST /auth/register.
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldName, payload.Name).
		MaxLen(FieldName, payload.Name, 200).
		Required(FieldEmail, payload.Email).
		Email(FieldEmail, payload.Email).
		MinLen(FieldPassword, payload.Password, MinPasswordLength).
		ORCID(FieldORCID, payload.ORCID).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		ORCID:    payload.ORCID,
		Address:  payload.Address,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// login handles POST /auth/login. On success the session token is delivered
// in an HttpOnly cookie; the body carries the user profile only.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	err := validator.
		Required(FieldEmail, payload.Email).
		Required(FieldPassword, payload.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, user, err := handler.service.Login(request.Context(), payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, token, SessionTTL)
	respond.OK(writer, user)
}

// logout handles GET|POST /auth/logout. Both verbs are routed because old
// portal clients log out with a plain link. Always clears the cookie, even
// when the token was already revoked.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token := ""
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		token = cookie.Value
	}

	if err := handler.service.Logout(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, "", -time.Hour)
	respond.OK(writer, map[string]string{constants.FieldMessage: "Logged out"})
}

// me handles GET /auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// setSessionCookie writes the session cookie. A non-positive ttl expires it.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	}
	if ttl <= 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	}
	http.SetCookie(writer, cookie)
}
