// Copyright (c) 2026 PaperTrack. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entity (User) and the logic for registration,
login, and session lifecycle.

# Architecture

This layer is the "Truth" of the system for identity. Entities defined here
have no transport dependencies and encapsulate all business rules related
to who a lab member is.
*/
package auth

import (
	"time"

	"github.com/thaind/papertrack/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the lab portal.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	ORCID        string    `json:"orcid,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldNewPassword = "newPassword"
	FieldRole        = "role"
	FieldORCID       = "orcid"
	FieldAddress     = "address"
)
