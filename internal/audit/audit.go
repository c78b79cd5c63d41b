// Copyright (c) 2026 PaperTrack. All rights reserved.

/*
Package audit records who did what to which record.

# Best Effort

Audit writes are deliberately best-effort: a failure to record an entry is
logged but never propagated, so a broken audit table cannot block the
mutation it describes. The trade-off is accepted because the portal's audit
trail is an investigation aid, not a compliance ledger.
*/
package audit

import (
	"encoding/json"
	"time"
)

// Entry is a single audit record.
//
// Before and After are JSON snapshots of the affected record around the
// mutation; Meta carries small action-specific context (e.g. the raw and
// normalized status strings of a status change).
type Entry struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	ActorEmail string          `json:"actorEmail"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	Meta       json.RawMessage `json:"meta,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// # Query Limits

const (
	// DefaultQueryLimit is used when the client does not ask for a limit.
	DefaultQueryLimit = 200

	// MaxQueryLimit caps a single log query.
	MaxQueryLimit = 1000
)
