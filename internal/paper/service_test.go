// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaind/papertrack/internal/audit"
	"github.com/thaind/papertrack/internal/journal"
	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/config"
	"github.com/thaind/papertrack/internal/platform/sec"
	"github.com/thaind/papertrack/internal/users/auth"
)

// # Test Fakes

type memoryPaperRepository struct {
	papers map[string]*Paper
}

func newMemoryPaperRepository() *memoryPaperRepository {
	return &memoryPaperRepository{papers: make(map[string]*Paper)}
}

func clonePaper(paper *Paper) *Paper {
	clone := *paper
	clone.Authors = append([]Author(nil), paper.Authors...)
	clone.JournalHistory = append([]HistoryEntry(nil), paper.JournalHistory...)
	return &clone
}

func (m *memoryPaperRepository) Create(_ context.Context, paper *Paper) error {
	paper.Revision = 0
	m.papers[paper.ID] = clonePaper(paper)
	return nil
}

func (m *memoryPaperRepository) FindByID(_ context.Context, id string) (*Paper, error) {
	if paper, ok := m.papers[id]; ok {
		return clonePaper(paper), nil
	}
	return nil, apperr.NotFound("Paper")
}

func (m *memoryPaperRepository) List(_ context.Context, filter ListFilter) ([]*Paper, error) {
	papers := make([]*Paper, 0)
	for _, paper := range m.papers {
		if paper.IsDeleted != filter.Deleted {
			continue
		}
		if !filter.Admin && !CanEdit(&auth.User{
			ID:    filter.RequesterID,
			Name:  filter.RequesterName,
			Email: filter.RequesterEmail,
		}, paper) {
			continue
		}
		papers = append(papers, clonePaper(paper))
	}
	return papers, nil
}

func (m *memoryPaperRepository) Update(_ context.Context, paper *Paper) error {
	stored, ok := m.papers[paper.ID]
	if !ok {
		return apperr.NotFound("Paper")
	}
	if stored.Revision != paper.Revision {
		return apperr.Conflict("Paper was modified by another request, reload and retry")
	}
	paper.Revision++
	m.papers[paper.ID] = clonePaper(paper)
	return nil
}

type fakeJournalDirectory struct {
	journals map[string]*journal.Journal
}

func (f *fakeJournalDirectory) FindByID(_ context.Context, id string) (*journal.Journal, error) {
	if entry, ok := f.journals[id]; ok {
		return entry, nil
	}
	return nil, apperr.NotFound("Journal")
}

type fakeUserDirectory struct {
	users map[string]*auth.User
}

func (f *fakeUserDirectory) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

type fakeAuditRecorder struct {
	entries []audit.Entry
}

func (f *fakeAuditRecorder) Record(_ context.Context, entry audit.Entry) {
	f.entries = append(f.entries, entry)
}

func (f *fakeAuditRecorder) actions() []string {
	actions := make([]string, len(f.entries))
	for i, entry := range f.entries {
		actions[i] = entry.Action
	}
	return actions
}

// # Fixture

type fixture struct {
	service *Service
	papers  *memoryPaperRepository
	audits  *fakeAuditRecorder

	ownerClaims    *sec.SessionClaims
	coClaims       *sec.SessionClaims
	adminClaims    *sec.SessionClaims
	strangerClaims *sec.SessionClaims
}

func newFixture(t *testing.T, restorePolicy string) *fixture {
	t.Helper()

	owner := &auth.User{ID: "owner-1", Name: "Alice Nguyen", Email: "alice@lab.edu", Role: sec.RoleUser}
	coauthor := &auth.User{ID: "co-1", Name: "Bob Tran", Email: "bob@lab.edu", Role: sec.RoleUser}
	admin := &auth.User{ID: "admin-1", Name: "Boss", Email: "boss@lab.edu", Role: sec.RoleAdmin}
	stranger := &auth.User{ID: "str-1", Name: "Mallory", Email: "mallory@lab.edu", Role: sec.RoleUser}

	papers := newMemoryPaperRepository()
	audits := &fakeAuditRecorder{}

	service := NewService(
		papers,
		&fakeJournalDirectory{journals: map[string]*journal.Journal{
			"J1": {ID: "J1", Title: "Journal One"},
			"J2": {ID: "J2", Title: "Journal Two"},
			"J3": {ID: "J3", Title: "Journal Three"},
		}},
		&fakeUserDirectory{users: map[string]*auth.User{
			owner.ID:    owner,
			coauthor.ID: coauthor,
			admin.ID:    admin,
			stranger.ID: stranger,
		}},
		audits,
		restorePolicy,
		slog.New(slog.DiscardHandler),
	)

	claims := func(user *auth.User) *sec.SessionClaims {
		return &sec.SessionClaims{UserID: user.ID, Email: user.Email, Role: user.Role}
	}

	return &fixture{
		service:        service,
		papers:         papers,
		audits:         audits,
		ownerClaims:    claims(owner),
		coClaims:       claims(coauthor),
		adminClaims:    claims(admin),
		strangerClaims: claims(stranger),
	}
}

func (f *fixture) createPaper(t *testing.T) *Paper {
	t.Helper()
	paper, err := f.service.Create(context.Background(), f.ownerClaims, CreateInput{
		Title:     "Quantum Widgets",
		Authors:   json.RawMessage(`[{"name":"Alice Nguyen","userId":"owner-1","email":"alice@lab.edu"},{"name":"Bob Tran","userId":"co-1"}]`),
		JournalID: "J1",
	})
	require.NoError(t, err)
	return paper
}

// # Tests

func TestPaperLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.RestorePolicyAdminOnly)

	// Create: one cycle at submitted.
	paper := f.createPaper(t)
	require.Len(t, paper.JournalHistory, 1)
	assert.Equal(t, StatusSubmitted, paper.JournalHistory[0].Status)
	assert.Equal(t, "Journal One", paper.JournalHistory[0].JournalTitle)

	// Advance to rejected: length unchanged.
	paper, err := f.service.UpdateStatus(ctx, f.ownerClaims, paper.ID, "rejected")
	require.NoError(t, err)
	require.Len(t, paper.JournalHistory, 1)
	assert.Equal(t, StatusRejected, paper.JournalHistory[0].Status)

	// Resubmit to J2: appended cycle, first entry untouched.
	paper, err = f.service.AddJournal(ctx, f.ownerClaims, paper.ID, "J2")
	require.NoError(t, err)
	require.Len(t, paper.JournalHistory, 2)
	assert.Equal(t, StatusRejected, paper.JournalHistory[0].Status)
	assert.Equal(t, StatusSubmitted, paper.JournalHistory[1].Status)
	assert.Equal(t, StatusSubmitted, CurrentStatus(paper.JournalHistory))

	// Archive: further mutations fail with GONE.
	_, err = f.service.SoftDelete(ctx, f.ownerClaims, paper.ID)
	require.NoError(t, err)

	_, err = f.service.AddJournal(ctx, f.ownerClaims, paper.ID, "J3")
	require.Error(t, err)
	assert.Equal(t, "GONE", apperr.As(err).Code)

	_, err = f.service.UpdateStatus(ctx, f.ownerClaims, paper.ID, "accepted")
	require.Error(t, err)
	assert.Equal(t, "GONE", apperr.As(err).Code)

	// Restore (admin) and resubmit: length 3.
	_, err = f.service.Restore(ctx, f.adminClaims, paper.ID)
	require.NoError(t, err)

	paper, err = f.service.AddJournal(ctx, f.ownerClaims, paper.ID, "J3")
	require.NoError(t, err)
	assert.Len(t, paper.JournalHistory, 3)

	// Every mutation audited, in order.
	assert.Equal(t, []string{
		"paper.create",
		"paper.status_update",
		"paper.add_journal",
		"paper.soft_delete",
		"paper.restore",
		"paper.add_journal",
	}, f.audits.actions())
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.RestorePolicyAdminOnly)

	t.Run("empty title", func(t *testing.T) {
		_, err := f.service.Create(ctx, f.ownerClaims, CreateInput{Title: "   ", JournalID: "J1"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("missing journal", func(t *testing.T) {
		_, err := f.service.Create(ctx, f.ownerClaims, CreateInput{Title: "X"})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("unknown journal", func(t *testing.T) {
		_, err := f.service.Create(ctx, f.ownerClaims, CreateInput{Title: "X", JournalID: "nope"})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("author list is stored exactly as submitted", func(t *testing.T) {
		// The submitter is the record owner via CreatedBy; nothing is ever
		// injected into the author list on their behalf.
		paper, err := f.service.Create(ctx, f.ownerClaims, CreateInput{
			Title:     "External Collaboration",
			Authors:   json.RawMessage(`["External Eve"]`),
			JournalID: "J1",
		})
		require.NoError(t, err)

		require.Len(t, paper.Authors, 1)
		assert.Equal(t, "External Eve", paper.Authors[0].Name)
		assert.Equal(t, f.ownerClaims.UserID, paper.CreatedBy)

		// The owner keeps edit rights through ownership alone.
		_, err = f.service.Get(ctx, f.ownerClaims, paper.ID)
		require.NoError(t, err)
	})
}

func TestAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.RestorePolicyAdminOnly)
	paper := f.createPaper(t)

	t.Run("co-author may advance status", func(t *testing.T) {
		_, err := f.service.UpdateStatus(ctx, f.coClaims, paper.ID, "under_review")
		require.NoError(t, err)
	})

	t.Run("stranger is denied every mutation", func(t *testing.T) {
		_, err := f.service.Update(ctx, f.strangerClaims, paper.ID, UpdateInput{})
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		_, err = f.service.UpdateStatus(ctx, f.strangerClaims, paper.ID, "accepted")
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		_, err = f.service.AddJournal(ctx, f.strangerClaims, paper.ID, "J2")
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		_, err = f.service.SoftDelete(ctx, f.strangerClaims, paper.ID)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("stranger cannot even read", func(t *testing.T) {
		_, err := f.service.Get(ctx, f.strangerClaims, paper.ID)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

func TestRestorePolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("admin_only denies the owner", func(t *testing.T) {
		f := newFixture(t, config.RestorePolicyAdminOnly)
		paper := f.createPaper(t)

		_, err := f.service.SoftDelete(ctx, f.ownerClaims, paper.ID)
		require.NoError(t, err)

		_, err = f.service.Restore(ctx, f.ownerClaims, paper.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		_, err = f.service.Restore(ctx, f.adminClaims, paper.ID)
		require.NoError(t, err)
	})

	t.Run("owner_or_admin lets the owner restore", func(t *testing.T) {
		f := newFixture(t, config.RestorePolicyOwnerOrAdmin)
		paper := f.createPaper(t)

		_, err := f.service.SoftDelete(ctx, f.ownerClaims, paper.ID)
		require.NoError(t, err)

		restored, err := f.service.Restore(ctx, f.ownerClaims, paper.ID)
		require.NoError(t, err)
		assert.False(t, restored.IsDeleted)
	})

	t.Run("co-author never restores", func(t *testing.T) {
		f := newFixture(t, config.RestorePolicyOwnerOrAdmin)
		paper := f.createPaper(t)

		_, err := f.service.SoftDelete(ctx, f.ownerClaims, paper.ID)
		require.NoError(t, err)

		_, err = f.service.Restore(ctx, f.coClaims, paper.ID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

func TestUpdateRevisionGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.RestorePolicyAdminOnly)
	paper := f.createPaper(t)

	stale := paper.Revision

	// First writer wins.
	newTitle := "Quantum Widgets v2"
	_, err := f.service.Update(ctx, f.ownerClaims, paper.ID, UpdateInput{Title: &newTitle, Revision: &stale})
	require.NoError(t, err)

	// Second writer carrying the same revision loses loudly.
	otherTitle := "Quantum Widgets v3"
	_, err = f.service.Update(ctx, f.coClaims, paper.ID, UpdateInput{Title: &otherTitle, Revision: &stale})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Current state is the first writer's.
	current, err := f.service.Get(ctx, f.ownerClaims, paper.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quantum Widgets v2", current.Title)
}

func TestUpdateNormalizesLegacyAuthors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.RestorePolicyAdminOnly)
	paper := f.createPaper(t)

	// A legacy-shaped author payload on update converges to canonical form.
	updated, err := f.service.Update(ctx, f.ownerClaims, paper.ID, UpdateInput{
		Authors: json.RawMessage(`"Alice Nguyen, Bob Tran, Alice Nguyen"`),
	})
	require.NoError(t, err)

	require.Len(t, updated.Authors, 2)
	assert.True(t, updated.Authors[0].IsCorresponding)
	assert.False(t, updated.Authors[1].IsCorresponding)
}

func TestStatusUpdateAuditMeta(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, config.RestorePolicyAdminOnly)
	paper := f.createPaper(t)

	_, err := f.service.UpdateStatus(ctx, f.ownerClaims, paper.ID, "Under Review")
	require.NoError(t, err)

	last := f.audits.entries[len(f.audits.entries)-1]
	assert.Equal(t, "paper.status_update", last.Action)
	assert.Equal(t, "alice@lab.edu", last.ActorEmail)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(last.Meta, &meta))
	assert.Equal(t, "Under Review", meta["rawStatus"])
	assert.Equal(t, "under_review", meta["normalized"])
}
