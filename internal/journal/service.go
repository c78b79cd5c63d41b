// Copyright (c) 2026 PaperTrack. All rights reserved.

package journal

import (
	"context"
	"strings"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/pkg/uuid"
)

// Service orchestrates journal catalog operations.
type Service struct {
	journals Repository
}

// NewService creates a new journal service.
func NewService(journals Repository) *Service {
	return &Service{journals: journals}
}

// List returns the full catalog.
func (service *Service) List(ctx context.Context) ([]*Journal, error) {
	return service.journals.List(ctx)
}

// Get returns a single catalog entry.
func (service *Service) Get(ctx context.Context, id string) (*Journal, error) {
	return service.journals.FindByID(ctx, id)
}

// Create adds a journal to the catalog. Titles are unique; a duplicate
// yields a conflict from the storage layer.
func (service *Service) Create(ctx context.Context, title string) (*Journal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.ValidationError("Journal title is required")
	}

	journal := &Journal{ID: uuid.New(), Title: title}
	if err := service.journals.Create(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Rename changes a journal's title. Papers keep the title that was current
// when they recorded the submission.
func (service *Service) Rename(ctx context.Context, id, title string) (*Journal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.ValidationError("Journal title is required")
	}

	journal, err := service.journals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	journal.Title = title
	if err := service.journals.Update(ctx, journal); err != nil {
		return nil, err
	}
	return journal, nil
}

// Delete removes a journal from the catalog.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.journals.Delete(ctx, id)
}
