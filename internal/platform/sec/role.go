// Copyright (c) 2026 PaperTrack. All rights reserved.

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Unrestricted system access: user management, journals, audit log
	RoleAdmin Role = "admin"

	// Default role for lab members submitting and tracking papers
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole coerces an arbitrary string into a known [Role].
// Anything that is not exactly "admin" degrades to [RoleUser].
func ParseRole(raw string) Role {
	if Role(raw) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
