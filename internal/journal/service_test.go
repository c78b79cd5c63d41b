// Copyright (c) 2026 PaperTrack. All rights reserved.

package journal

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaind/papertrack/internal/platform/apperr"
)

type memoryRepository struct {
	journals map[string]*Journal
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{journals: make(map[string]*Journal)}
}

func (m *memoryRepository) Create(_ context.Context, journal *Journal) error {
	for _, existing := range m.journals {
		if strings.EqualFold(existing.Title, journal.Title) {
			return apperr.Conflict("Journal already exists")
		}
	}
	m.journals[journal.ID] = journal
	return nil
}

func (m *memoryRepository) FindByID(_ context.Context, id string) (*Journal, error) {
	if journal, ok := m.journals[id]; ok {
		return journal, nil
	}
	return nil, apperr.NotFound("Journal")
}

func (m *memoryRepository) List(_ context.Context) ([]*Journal, error) {
	journals := make([]*Journal, 0, len(m.journals))
	for _, journal := range m.journals {
		journals = append(journals, journal)
	}
	return journals, nil
}

func (m *memoryRepository) Update(_ context.Context, journal *Journal) error {
	if _, ok := m.journals[journal.ID]; !ok {
		return apperr.NotFound("Journal")
	}
	m.journals[journal.ID] = journal
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	if _, ok := m.journals[id]; !ok {
		return apperr.NotFound("Journal")
	}
	delete(m.journals, id)
	return nil
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	service := NewService(newMemoryRepository())

	t.Run("trims the title", func(t *testing.T) {
		journal, err := service.Create(ctx, "  Nature Physics  ")
		require.NoError(t, err)
		assert.Equal(t, "Nature Physics", journal.Title)
		assert.NotEmpty(t, journal.ID)
	})

	t.Run("rejects blank titles", func(t *testing.T) {
		_, err := service.Create(ctx, "   ")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("duplicate titles conflict", func(t *testing.T) {
		_, err := service.Create(ctx, "Nature Physics")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	service := NewService(newMemoryRepository())

	created, err := service.Create(ctx, "Jurnal of Chemistry")
	require.NoError(t, err)

	renamed, err := service.Rename(ctx, created.ID, "Journal of Chemistry")
	require.NoError(t, err)
	assert.Equal(t, "Journal of Chemistry", renamed.Title)

	_, err = service.Rename(ctx, "missing-id", "Anything")
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	service := NewService(newMemoryRepository())

	created, err := service.Create(ctx, "Short-Lived Letters")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	require.Error(t, err)
}
