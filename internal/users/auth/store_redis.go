// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements the SessionRepository interface on Redis.
//
// Keys are "auth:session:<sha256(token)>" with the owning user id as the
// value. The TTL mirrors the JWT expiry, so a record never outlives the
// token it vouches for.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis implementation of the SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

// Create records a live session for the given token digest.
func (repository *RedisSessionRepository) Create(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := repository.client.Set(ctx, sessionKey(tokenHash), userID, ttl).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("create session: %w", err))
	}
	return nil
}

// Exists reports whether the token digest still maps to a live session.
func (repository *RedisSessionRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	count, err := repository.client.Exists(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		return false, apperr.Internal(fmt.Errorf("check session: %w", err))
	}
	return count > 0, nil
}

// Delete revokes the session for the given token digest. Deleting a
// missing session is not an error, so logout stays idempotent.
func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := repository.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("delete session: %w", err))
	}
	return nil
}
