// Copyright (c) 2026 PaperTrack. All rights reserved.

package journal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new journal record.
func (repository *PostgresRepository) Create(ctx context.Context, journal *Journal) error {
	const query = `
		INSERT INTO journal (id, title, createdat, updatedat)
		VALUES ($1, $2, $3, $4)`

	now := time.Now()
	journal.CreatedAt = now
	journal.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query, journal.ID, journal.Title, journal.CreatedAt, journal.UpdatedAt)
	return dberr.Wrap(err, "journal_create")
}

// FindByID retrieves a journal by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Journal, error) {
	const query = `SELECT id, title, createdat, updatedat FROM journal WHERE id = $1`

	journal := &Journal{}
	err := repository.pool.QueryRow(ctx, query, id).
		Scan(&journal.ID, &journal.Title, &journal.CreatedAt, &journal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Journal")
		}
		return nil, dberr.Wrap(err, "journal_find_by_id")
	}
	return journal, nil
}

// List returns the full catalog, alphabetically.
func (repository *PostgresRepository) List(ctx context.Context) ([]*Journal, error) {
	const query = `SELECT id, title, createdat, updatedat FROM journal ORDER BY title ASC`

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "journal_list")
	}
	defer rows.Close()

	journals := make([]*Journal, 0)
	for rows.Next() {
		journal := &Journal{}
		if err := rows.Scan(&journal.ID, &journal.Title, &journal.CreatedAt, &journal.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "journal_list_scan")
		}
		journals = append(journals, journal)
	}
	return journals, rows.Err()
}

// Update renames an existing journal.
func (repository *PostgresRepository) Update(ctx context.Context, journal *Journal) error {
	const query = `UPDATE journal SET title = $2, updatedat = $3 WHERE id = $1`

	journal.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query, journal.ID, journal.Title, journal.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "journal_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Journal")
	}
	return nil
}

// Delete removes a journal from the catalog. Submission history entries
// keep their snapshotted titles.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM journal WHERE id = $1`

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "journal_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Journal")
	}
	return nil
}
