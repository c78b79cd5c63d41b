// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
//
// # Storage Layout
//
// The author list and journal history are stored as JSONB columns rather
// than normalized tables: both are small, ordered, document-shaped lists
// that are always read and written with their paper, and the author column
// still carries legacy shapes that [NormalizeAuthors] converges on read.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const paperColumns = `id, title, url, authors, journalhistory, createdby, isdeleted, revision, createdat, updatedat`

// scanPaper hydrates one row, funneling the raw author JSON through the
// normalizer so legacy shapes never escape the storage layer.
func scanPaper(row pgx.Row) (*Paper, error) {
	paper := &Paper{}
	var rawAuthors, rawHistory []byte

	err := row.Scan(
		&paper.ID,
		&paper.Title,
		&paper.URL,
		&rawAuthors,
		&rawHistory,
		&paper.CreatedBy,
		&paper.IsDeleted,
		&paper.Revision,
		&paper.CreatedAt,
		&paper.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	paper.Authors = NormalizeAuthors(rawAuthors)

	paper.JournalHistory = make([]HistoryEntry, 0)
	if len(rawHistory) > 0 {
		if err := json.Unmarshal(rawHistory, &paper.JournalHistory); err != nil {
			return nil, fmt.Errorf("paper %s: corrupt journal history: %w", paper.ID, err)
		}
	}

	return paper, nil
}

func marshalColumns(paper *Paper) (authors, history []byte, err error) {
	authors, err = json.Marshal(paper.Authors)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal authors: %w", err)
	}
	history, err = json.Marshal(paper.JournalHistory)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal journal history: %w", err)
	}
	return authors, history, nil
}

// Create persists a new paper at revision zero.
func (repository *PostgresRepository) Create(ctx context.Context, paper *Paper) error {
	const query = `
		INSERT INTO paper (id, title, url, authors, journalhistory, createdby, isdeleted, revision, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)`

	authors, history, err := marshalColumns(paper)
	if err != nil {
		return apperr.Internal(err)
	}

	now := time.Now()
	paper.Revision = 0
	paper.CreatedAt = now
	paper.UpdatedAt = now

	_, err = repository.pool.Exec(ctx, query,
		paper.ID,
		paper.Title,
		paper.URL,
		authors,
		history,
		paper.CreatedBy,
		paper.IsDeleted,
		paper.CreatedAt,
		paper.UpdatedAt,
	)
	return dberr.Wrap(err, "paper_create")
}

// FindByID retrieves a paper by primary key, archived or not.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Paper, error) {
	query := fmt.Sprintf(`SELECT %s FROM paper WHERE id = $1`, paperColumns)

	paper, err := scanPaper(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Paper")
		}
		return nil, dberr.Wrap(err, "paper_find_by_id")
	}
	return paper, nil
}

/*
List returns papers visible under the filter, most recently updated first.

Non-admin visibility matches any of:
  - createdby equals the requester's id
  - an author entry back-references the requester's account id
  - a legacy author entry matches the requester's email or name
    (case-insensitive, entries without a userId only)
*/
func (repository *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Paper, error) {
	query := fmt.Sprintf(`SELECT %s FROM paper WHERE isdeleted = $1`, paperColumns)
	args := []interface{}{filter.Deleted}

	if !filter.Admin {
		query += `
			AND (
				createdby = $2
				OR EXISTS (
					SELECT 1 FROM jsonb_array_elements(authors) AS author
					WHERE author->>'userId' = $2
					   OR (coalesce(author->>'userId', '') = '' AND (
							lower(author->>'email') = lower($3)
							OR lower(author->>'name') = lower($4)
					   ))
				)
			)`
		args = append(args, filter.RequesterID, filter.RequesterEmail, filter.RequesterName)
	}

	query += ` ORDER BY updatedat DESC`

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "paper_list")
	}
	defer rows.Close()

	papers := make([]*Paper, 0)
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "paper_list_scan")
		}
		papers = append(papers, paper)
	}
	return papers, rows.Err()
}

/*
Update persists the paper guarded by an optimistic revision check.

The write only lands when the stored revision still equals paper.Revision;
on success the stored revision (and the in-memory copy) increments. A
stale revision means another request won the race and yields a conflict,
never a silent lost update.
*/
func (repository *PostgresRepository) Update(ctx context.Context, paper *Paper) error {
	const query = `
		UPDATE paper
		SET title = $3, url = $4, authors = $5, journalhistory = $6, isdeleted = $7,
		    revision = revision + 1, updatedat = $8
		WHERE id = $1 AND revision = $2`

	authors, history, err := marshalColumns(paper)
	if err != nil {
		return apperr.Internal(err)
	}

	paper.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		paper.ID,
		paper.Revision,
		paper.Title,
		paper.URL,
		authors,
		history,
		paper.IsDeleted,
		paper.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "paper_update")
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a vanished paper from a lost race.
		if _, findErr := repository.FindByID(ctx, paper.ID); findErr != nil {
			return findErr
		}
		return apperr.Conflict("Paper was modified by another request, reload and retry")
	}

	paper.Revision++
	return nil
}
