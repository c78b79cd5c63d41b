// Copyright (c) 2026 PaperTrack. All rights reserved.

package audit

import "context"

// Repository abstracts persistent storage of audit entries.
type Repository interface {
	Insert(ctx context.Context, entry *Entry) error
	Search(ctx context.Context, query string, limit int) ([]*Entry, error)
}
