// Copyright (c) 2026 PaperTrack. All rights reserved.

/*
Package paper implements the lab's paper tracking core: the paper record,
its author list, and its journal submission history.

# Architecture

The package follows the layered layout used across PaperTrack: entity and
pure domain rules in paper.go / authors.go / status.go / history.go /
access.go, orchestration in service.go, persistence behind the Repository
interface in store_postgres.go, transport in http.go.

# Legacy Data

The portal inherited records from two earlier systems that stored authors
as a comma-separated string or as a bare list of names. Every read and
write path funnels the author list through [NormalizeAuthors], so the rest
of the code only ever sees the canonical object form.
*/
package paper

import (
	"encoding/json"
	"time"
)

// Author is one entry of a paper's canonical author list.
//
// UserID back-references a portal account when the author is a registered
// member; external co-authors have only a name and, optionally, an email.
type Author struct {
	Name            string `json:"name"`
	UserID          string `json:"userId,omitempty"`
	Email           string `json:"email,omitempty"`
	IsCorresponding bool   `json:"isCorresponding"`
}

// HistoryEntry is one submission cycle in a paper's journal history.
//
// JournalTitle is a snapshot taken when the cycle was recorded; later
// catalog renames do not touch it.
type HistoryEntry struct {
	JournalID     string    `json:"journalId"`
	JournalTitle  string    `json:"journalTitle"`
	Status        Status    `json:"status"`
	DateSubmitted time.Time `json:"date_submitted"`
	LastUpdated   time.Time `json:"last_updated"`
}

// Paper is a tracked manuscript.
type Paper struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	URL            string         `json:"url,omitempty"`
	Authors        []Author       `json:"authors"`
	JournalHistory []HistoryEntry `json:"journalHistory"`
	CreatedBy      string         `json:"createdBy"`
	IsDeleted      bool           `json:"isDeleted"`

	// Revision increments on every successful write and guards concurrent
	// edits: an update carrying a stale revision is rejected.
	Revision int `json:"revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON adds the derived currentStatus field so clients never have
// to re-implement the "last history entry wins" rule.
func (paper Paper) MarshalJSON() ([]byte, error) {
	type alias Paper
	return json.Marshal(struct {
		alias
		CurrentStatus Status `json:"currentStatus"`
	}{
		alias:         alias(paper),
		CurrentStatus: CurrentStatus(paper.JournalHistory),
	})
}

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldURL       = "url"
	FieldAuthors   = "authors"
	FieldJournalID = "journalId"
	FieldStatus    = "status"
)
