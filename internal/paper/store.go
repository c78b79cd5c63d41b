// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import "context"

// ListFilter narrows a paper listing.
//
// When Admin is false, the listing is restricted to papers the requester
// owns or co-authors (matched by account id, or by name/email for legacy
// author entries).
type ListFilter struct {
	Deleted bool

	Admin          bool
	RequesterID    string
	RequesterName  string
	RequesterEmail string
}

// Repository abstracts persistent storage of [Paper] records.
type Repository interface {
	Create(ctx context.Context, paper *Paper) error
	FindByID(ctx context.Context, id string) (*Paper, error)
	List(ctx context.Context, filter ListFilter) ([]*Paper, error)

	// Update persists the paper only if the stored revision still matches
	// paper.Revision, then increments it. A stale revision is a conflict.
	Update(ctx context.Context, paper *Paper) error
}
