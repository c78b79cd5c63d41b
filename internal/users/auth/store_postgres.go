// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, name, email, passwordhash, role, orcid, address, createdat, updatedat`

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ORCID,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO account (id, name, email, passwordhash, role, orcid, address, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ORCID,
		user.Address,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "user_create")
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM account WHERE id = $1`, userColumns)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "user_find_by_id")
	}
	return user, nil
}

// FindByEmail retrieves a user record by email, case-insensitively.
//
// Emails are stored lowercased, but the lookup folds anyway to survive
// records imported from earlier systems.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM account WHERE lower(email) = lower($1)`, userColumns)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "user_find_by_email")
	}
	return user, nil
}

// List returns all users, newest first.
func (repository *PostgresUserRepository) List(ctx context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM account ORDER BY createdat DESC`, userColumns)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "user_list")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "user_list_scan")
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Search returns up to limit users whose name or email contains the query,
// case-insensitively. Used by the author picker on the paper form.
func (repository *PostgresUserRepository) Search(ctx context.Context, query string, limit int) ([]*User, error) {
	const sql = `
		SELECT id, name, email
		FROM account
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name ASC
		LIMIT $2`

	rows, err := repository.pool.Query(ctx, sql, "%"+query+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "user_search")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, dberr.Wrap(err, "user_search_scan")
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// Update persists the full mutable field set of an existing user.
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	const query = `
		UPDATE account
		SET name = $2, email = $3, passwordhash = $4, role = $5, orcid = $6, address = $7, updatedat = $8
		WHERE id = $1`

	user.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ORCID,
		user.Address,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "user_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
