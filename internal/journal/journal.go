// Copyright (c) 2026 PaperTrack. All rights reserved.

// Package journal manages the shared catalog of target journals.
//
// Papers reference catalog entries by id but snapshot the title into their
// own submission history, so renaming or deleting a journal never rewrites
// history.
package journal

import "time"

// Journal is a catalog entry a paper can be submitted to.
type Journal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
