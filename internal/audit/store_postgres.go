// Copyright (c) 2026 PaperTrack. All rights reserved.

package audit

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

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

// Insert persists an audit entry.
func (repository *PostgresRepository) Insert(ctx context.Context, entry *Entry) error {
	const query = `
		INSERT INTO audit_log (id, actorid, actoremail, action, entitytype, entityid, before, after, meta, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(ctx, query,
		entry.ID,
		entry.ActorID,
		entry.ActorEmail,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.Before,
		entry.After,
		entry.Meta,
		entry.CreatedAt,
	)
	return dberr.Wrap(err, "audit_insert")
}

// likeEscaper neutralizes LIKE metacharacters so a search query always
// matches as a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}

// Search returns the newest entries whose action, actor email, or entity
// type contains the query as a literal substring, case-insensitively. An
// empty query matches all.
func (repository *PostgresRepository) Search(ctx context.Context, query string, limit int) ([]*Entry, error) {
	const sql = `
		SELECT id, actorid, actoremail, action, entitytype, entityid, before, after, meta, createdat
		FROM audit_log
		WHERE ($1 = '' OR action ILIKE $2 OR actoremail ILIKE $2 OR entitytype ILIKE $2)
		ORDER BY createdat DESC
		LIMIT $3`

	rows, err := repository.pool.Query(ctx, sql, query, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "audit_search")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry := &Entry{}
		err := rows.Scan(
			&entry.ID,
			&entry.ActorID,
			&entry.ActorEmail,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Before,
			&entry.After,
			&entry.Meta,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "audit_search_scan")
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
