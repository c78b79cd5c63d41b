// Copyright (c) 2026 PaperTrack. All rights reserved.

package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	entries   []*Entry
	insertErr error
	lastLimit int
}

func (m *memoryRepository) Insert(_ context.Context, entry *Entry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryRepository) Search(_ context.Context, _ string, limit int) ([]*Entry, error) {
	m.lastLimit = limit
	return m.entries, nil
}

func newTestRecorder(repository *memoryRepository) *Recorder {
	return NewRecorder(repository, slog.New(slog.DiscardHandler))
}

func TestRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns an id and persists", func(t *testing.T) {
		repository := &memoryRepository{}
		recorder := newTestRecorder(repository)

		recorder.Record(ctx, Entry{
			ActorID:    "user-1",
			ActorEmail: "alice@lab.edu",
			Action:     "paper.create",
			EntityType: "paper",
			EntityID:   "paper-1",
		})

		require.Len(t, repository.entries, 1)
		assert.NotEmpty(t, repository.entries[0].ID)
		assert.Equal(t, "paper.create", repository.entries[0].Action)
	})

	t.Run("storage failure is swallowed", func(t *testing.T) {
		repository := &memoryRepository{insertErr: errors.New("disk on fire")}
		recorder := newTestRecorder(repository)

		// Must not panic and must not propagate the error.
		recorder.Record(ctx, Entry{Action: "paper.update", EntityID: "paper-1"})
		assert.Empty(t, repository.entries)
	})
}

func TestQueryLimitClamping(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		requested int
		effective int
	}{
		{"zero falls back to default", 0, DefaultQueryLimit},
		{"negative falls back to default", -5, DefaultQueryLimit},
		{"in-range passes through", 50, 50},
		{"over max is capped", 5000, MaxQueryLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &memoryRepository{}
			recorder := newTestRecorder(repository)

			_, err := recorder.Query(ctx, "", tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.effective, repository.lastLimit)
		})
	}
}

func TestSnapshot(t *testing.T) {
	assert.Nil(t, Snapshot(nil))
	assert.JSONEq(t, `{"title":"Paper A"}`, string(Snapshot(map[string]string{"title": "Paper A"})))
}
