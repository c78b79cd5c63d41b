// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import (
	"context"
	"time"
)

// UserRepository abstracts persistent storage of [User] records.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Search(ctx context.Context, query string, limit int) ([]*User, error)
	Update(ctx context.Context, user *User) error
}

// SessionRepository tracks live sessions by token digest.
//
// A record's existence is the single source of truth for "is this token
// still honored": logout deletes the record, expiry lets it lapse.
type SessionRepository interface {
	Create(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenHash string) (bool, error)
	Delete(ctx context.Context, tokenHash string) error
}
