// Copyright (c) 2026 PaperTrack. All rights reserved.

/*
Package account implements administrative user management and the member
directory search used by the paper author picker.

It reuses the auth domain's [auth.User] entity and repository: account is a
management view over the same records, not a second user store.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/sec"
	"github.com/thaind/papertrack/internal/users/auth"
	"github.com/thaind/papertrack/pkg/uuid"
)

// SearchLimit caps how many directory entries a single search returns.
const SearchLimit = 10

// Service orchestrates administrative user workflows.
type Service struct {
	users  auth.UserRepository
	logger *slog.Logger
}

// NewService creates a new account management service.
func NewService(users auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// List returns every registered user, newest first.
func (service *Service) List(ctx context.Context) ([]*auth.User, error) {
	return service.users.List(ctx)
}

// CreateInput carries the fields of an admin-initiated user creation.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	ORCID    string
	Address  string
}

/*
Create provisions a user account on behalf of an administrator.

Unlike self-registration, the admin may assign the role directly. Unknown
role strings degrade to the member role rather than failing, so a typo
never silently grants admin.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*auth.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := service.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already in use")
	} else if apperr.As(err) == nil || apperr.As(err).Code != "NOT_FOUND" {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &auth.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         sec.ParseRole(input.Role),
		ORCID:        strings.TrimSpace(input.ORCID),
		Address:      strings.TrimSpace(input.Address),
	}
	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user provisioned", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// UpdateInput carries optional field updates; nil pointers leave the
// current value untouched.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	ORCID    *string
	Address  *string
}

// Update applies a partial update to an existing user. A new password, when
// provided, replaces the stored hash.
func (service *Service) Update(ctx context.Context, id string, input UpdateInput) (*auth.User, error) {
	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*input.Email))
		if newEmail != user.Email {
			if _, err := service.users.FindByEmail(ctx, newEmail); err == nil {
				return nil, apperr.Conflict("Email already in use")
			}
			user.Email = newEmail
		}
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, apperr.Internal(fmt.Errorf("hash password: %w", err))
		}
		user.PasswordHash = hash
	}
	if input.Role != nil {
		user.Role = sec.ParseRole(*input.Role)
	}
	if input.ORCID != nil {
		user.ORCID = strings.TrimSpace(*input.ORCID)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}

	if err := service.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole changes a user's role, addressed by email. The target email is
// looked up case-insensitively.
func (service *Service) SetRole(ctx context.Context, email, role string) (*auth.User, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	user.Role = sec.ParseRole(role)
	if err := service.users.Update(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user role changed", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// ResetPassword replaces a user's password, addressed by email.
func (service *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	user.PasswordHash = hash

	if err := service.users.Update(ctx, user); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "user password reset", "user_id", user.ID)
	return nil
}

// DirectoryEntry is the slim user projection exposed to the author picker.
// It deliberately omits role, ORCID, and timestamps.
type DirectoryEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Search returns up to [SearchLimit] directory entries matching the query
// by name or email. An empty query yields an empty result, not everyone.
func (service *Service) Search(ctx context.Context, query string) ([]DirectoryEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []DirectoryEntry{}, nil
	}

	users, err := service.users.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, DirectoryEntry{ID: user.ID, Name: user.Name, Email: user.Email})
	}
	return entries, nil
}
