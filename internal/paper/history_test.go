// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaind/papertrack/internal/platform/apperr"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"submitted", StatusSubmitted, false},
		{"under_review", StatusUnderReview, false},
		{"Under Review", StatusUnderReview, false},
		{"UNDER_REVIEW", StatusUnderReview, false},
		{"  Revision   Submitted ", StatusRevisionSubmitted, false},
		{"rejected", StatusRejected, false},
		{"accepted", StatusAccepted, false},
		{"published", "", true},
		{"", "", true},
		{"under-review", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentStatus(t *testing.T) {
	assert.Equal(t, Status(""), CurrentStatus(nil))

	history := []HistoryEntry{
		{Status: StatusRejected},
		{Status: StatusSubmitted},
	}
	assert.Equal(t, StatusSubmitted, CurrentStatus(history))
}

func TestAppendCycle(t *testing.T) {
	now := time.Now()

	t.Run("new cycle starts at submitted", func(t *testing.T) {
		history := AppendCycle(nil, "j1", "Nature Physics", now)
		require.Len(t, history, 1)
		assert.Equal(t, StatusSubmitted, history[0].Status)
		assert.Equal(t, "Nature Physics", history[0].JournalTitle)
		assert.Equal(t, now, history[0].DateSubmitted)
		assert.Equal(t, now, history[0].LastUpdated)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		original := []HistoryEntry{{JournalID: "j1", Status: StatusRejected}}
		extended := AppendCycle(original, "j2", "PRL", now)

		require.Len(t, extended, 2)
		require.Len(t, original, 1)
		assert.Equal(t, StatusRejected, original[0].Status)
		assert.Equal(t, StatusRejected, extended[0].Status)
	})
}

func TestAdvanceStatus(t *testing.T) {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	later := base.Add(48 * time.Hour)

	t.Run("empty history cannot be advanced", func(t *testing.T) {
		_, err := AdvanceStatus(nil, StatusRejected, later)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("only the last entry changes", func(t *testing.T) {
		history := []HistoryEntry{
			{JournalID: "j1", Status: StatusRejected, DateSubmitted: base, LastUpdated: base},
			{JournalID: "j2", Status: StatusSubmitted, DateSubmitted: base, LastUpdated: base},
		}

		advanced, err := AdvanceStatus(history, StatusUnderReview, later)
		require.NoError(t, err)

		// First entry untouched.
		assert.Equal(t, StatusRejected, advanced[0].Status)
		assert.Equal(t, base, advanced[0].LastUpdated)

		// Last entry advanced, submission date immutable.
		assert.Equal(t, StatusUnderReview, advanced[1].Status)
		assert.Equal(t, later, advanced[1].LastUpdated)
		assert.Equal(t, base, advanced[1].DateSubmitted)

		// Input slice untouched.
		assert.Equal(t, StatusSubmitted, history[1].Status)
	})
}
