// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/sec"
	"github.com/thaind/papertrack/pkg/uuid"
)

// # Service

/*
Service orchestrates identity workflows: registration, login, logout and
profile lookup.

# Session Model

A successful login mints a signed JWT and records its SHA-256 digest in the
session store with a matching TTL. Requests are honored only while both the
signature verifies AND the digest is still present, so logout revokes a
token immediately even though the JWT itself is stateless.
*/
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   *sec.TokenService
	logger   *slog.Logger
}

// NewService creates a new authentication service.
func NewService(users UserRepository, sessions SessionRepository, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

/*
Register creates a new user account with the default member role.

Emails are stored lowercased and act as the unique login identifier. A
duplicate email yields a conflict error rather than a validation error, so
the client can distinguish "taken" from "malformed".

Parameters:
  - ctx: context.Context
  - input: RegisterInput (Pre-validated registration fields)

Returns:
  - *User: The newly created account
  - error: Conflict if the email is already in use
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// ── 1. Reject duplicate emails ──
	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already in use")
	} else if !isNotFound(err) {
		return nil, err
	}

	// ── 2. Hash credentials ──
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	// ── 3. Persist ──
	user := &User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleUser,
		ORCID:        strings.TrimSpace(input.ORCID),
		Address:      strings.TrimSpace(input.Address),
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

/*
Login verifies credentials and establishes a session.

Both an unknown email and a wrong password produce the same generic
unauthorized error, so the endpoint cannot be used to probe which emails
are registered.

Returns:
  - string: The signed session token (caller sets the cookie)
  - *User: The authenticated account
  - error: Unauthorized on any credential mismatch
*/
func (service *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := service.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if isNotFound(err) {
			return "", nil, apperr.Unauthorized("Invalid credentials")
		}
		return "", nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, apperr.Unauthorized("Invalid credentials")
	}

	token, err := service.tokens.GenerateSessionToken(user.ID, user.Email, user.Role, SessionTTL)
	if err != nil {
		return "", nil, apperr.Internal(fmt.Errorf("generate session token: %w", err))
	}

	if err := service.sessions.Create(ctx, sec.HashToken(token), user.ID, SessionTTL); err != nil {
		return "", nil, err
	}

	service.logger.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return token, user, nil
}

// Logout revokes the session behind the given raw token. Unknown or
// already-revoked tokens are ignored, so repeated logouts succeed.
func (service *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return service.sessions.Delete(ctx, sec.HashToken(token))
}

// Me returns the account behind an authenticated session.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	ORCID    string
	Address  string
}

func isNotFound(err error) bool {
	var appErr *apperr.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus == http.StatusNotFound
}
