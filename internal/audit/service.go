// Copyright (c) 2026 PaperTrack. All rights reserved.

package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/thaind/papertrack/pkg/uuid"
)

// # Recorder

// Recorder writes audit entries and serves admin log queries.
type Recorder struct {
	entries Repository
	logger  *slog.Logger
}

// NewRecorder creates a new audit recorder.
func NewRecorder(entries Repository, logger *slog.Logger) *Recorder {
	return &Recorder{entries: entries, logger: logger}
}

// Record captures a mutation. It never returns an error: a failed write is
// logged at ERROR and the caller's mutation proceeds unaffected.
func (recorder *Recorder) Record(ctx context.Context, entry Entry) {
	entry.ID = uuid.New()

	if err := recorder.entries.Insert(ctx, &entry); err != nil {
		recorder.logger.ErrorContext(ctx, "audit write failed",
			slog.String("action", entry.Action),
			slog.String("entity_id", entry.EntityID),
			slog.String("error", err.Error()),
		)
	}
}

// Snapshot marshals a record into a JSON audit snapshot. Marshal failures
// degrade to null rather than blocking the caller.
func Snapshot(value interface{}) json.RawMessage {
	if value == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	return data
}

/*
Query returns the newest audit entries matching a free-text filter.

The filter matches action, actor email, and entity type. The limit is
clamped to [1, MaxQueryLimit]; zero or negative falls back to
[DefaultQueryLimit].
*/
func (recorder *Recorder) Query(ctx context.Context, query string, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	if limit > MaxQueryLimit {
		limit = MaxQueryLimit
	}
	return recorder.entries.Search(ctx, query, limit)
}
