// Copyright (c) 2026 PaperTrack. All rights reserved.

package journal

import "context"

// Repository abstracts persistent storage of [Journal] records.
type Repository interface {
	Create(ctx context.Context, journal *Journal) error
	FindByID(ctx context.Context, id string) (*Journal, error)
	List(ctx context.Context) ([]*Journal, error)
	Update(ctx context.Context, journal *Journal) error
	Delete(ctx context.Context, id string) error
}
