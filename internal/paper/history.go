// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"time"

	"github.com/thaind/papertrack/internal/platform/apperr"
)

// # Journal History State Machine

// The journal history is an append-only submission timeline. A new cycle
// is pushed when the paper is (re)submitted to a journal; only the last
// cycle's status ever advances. Earlier entries are immutable provenance.

// CurrentStatus returns the status of the last history entry, or "" when
// the paper has no submissions yet.
func CurrentStatus(history []HistoryEntry) Status {
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].Status
}

// AppendCycle returns history extended with a fresh submission cycle.
//
// A new cycle always starts at [StatusSubmitted]; there is deliberately no
// way to open a cycle in any other state. The input slice is not mutated.
func AppendCycle(history []HistoryEntry, journalID, journalTitle string, now time.Time) []HistoryEntry {
	extended := make([]HistoryEntry, len(history), len(history)+1)
	copy(extended, history)

	return append(extended, HistoryEntry{
		JournalID:     journalID,
		JournalTitle:  journalTitle,
		Status:        StatusSubmitted,
		DateSubmitted: now,
		LastUpdated:   now,
	})
}

/*
AdvanceStatus returns history with the LAST entry's status advanced.

Only the last entry's Status and LastUpdated change; DateSubmitted and all
earlier entries are untouched. The input slice is not mutated.

Returns a validation error when the history is empty: there is no cycle to
advance, and the client should add a journal first.
*/
func AdvanceStatus(history []HistoryEntry, status Status, now time.Time) ([]HistoryEntry, error) {
	if len(history) == 0 {
		return nil, apperr.ValidationError("Paper has no journal submissions to update")
	}

	advanced := make([]HistoryEntry, len(history))
	copy(advanced, history)

	last := &advanced[len(advanced)-1]
	last.Status = status
	last.LastUpdated = now

	return advanced, nil
}
