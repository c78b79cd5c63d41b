// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/thaind/papertrack/internal/audit"
	"github.com/thaind/papertrack/internal/journal"
	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/config"
	"github.com/thaind/papertrack/internal/platform/sec"
	"github.com/thaind/papertrack/internal/users/auth"
	"github.com/thaind/papertrack/pkg/uuid"
)

// # Consumed Interfaces

// JournalDirectory resolves journal ids when a submission cycle is recorded.
type JournalDirectory interface {
	FindByID(ctx context.Context, id string) (*journal.Journal, error)
}

// UserDirectory resolves the requester's full profile for the legacy
// name/email co-author match.
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*auth.User, error)
}

// AuditRecorder captures mutations. Implementations must be best-effort:
// Record never fails the calling mutation.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// # Audit Actions

const (
	actionCreate       = "paper.create"
	actionUpdate       = "paper.update"
	actionStatusUpdate = "paper.status_update"
	actionAddJournal   = "paper.add_journal"
	actionSoftDelete   = "paper.soft_delete"
	actionRestore      = "paper.restore"

	entityTypePaper = "paper"
)

// Service composes the normalizer, the history state machine, and the
// authorization gate into the paper mutation engine.
type Service struct {
	papers        Repository
	journals      JournalDirectory
	users         UserDirectory
	audits        AuditRecorder
	restorePolicy string
	logger        *slog.Logger
}

// NewService creates a new paper service.
func NewService(
	papers Repository,
	journals JournalDirectory,
	users UserDirectory,
	audits AuditRecorder,
	restorePolicy string,
	logger *slog.Logger,
) *Service {
	return &Service{
		papers:        papers,
		journals:      journals,
		users:         users,
		audits:        audits,
		restorePolicy: restorePolicy,
		logger:        logger,
	}
}

// CreateInput carries the fields of a paper creation request.
//
// Authors is kept raw so the normalizer can accept every historical shape
// the portal's clients still send.
type CreateInput struct {
	Title     string
	URL       string
	Authors   json.RawMessage
	JournalID string
}

/*
Create registers a new paper with one initial submission cycle.

The journal must exist; the cycle starts at submitted. The requester
becomes the owner.
*/
func (service *Service) Create(ctx context.Context, claims *sec.SessionClaims, input CreateInput) (*Paper, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.ValidationError("Title is required", apperr.FieldError{Field: FieldTitle, Message: "This field is required"})
	}
	if input.JournalID == "" {
		return nil, apperr.ValidationError("A journal selection is required", apperr.FieldError{Field: FieldJournalID, Message: "This field is required"})
	}

	// ── 1. Resolve the journal (NotFound if it vanished) ──
	target, err := service.journals.FindByID(ctx, input.JournalID)
	if err != nil {
		return nil, err
	}

	// ── 2. Build the paper with a normalized author list ──
	now := time.Now()
	paper := &Paper{
		ID:             uuid.New(),
		Title:          title,
		URL:            strings.TrimSpace(input.URL),
		Authors:        NormalizeAuthors(input.Authors),
		JournalHistory: AppendCycle(nil, target.ID, target.Title, now),
		CreatedBy:      claims.UserID,
	}

	if err := service.papers.Create(ctx, paper); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "paper created", "paper_id", paper.ID, "owner", claims.UserID)
	service.recordAudit(ctx, claims, actionCreate, paper.ID, nil, paper, nil)
	return paper, nil
}

// Get returns a paper visible to the requester. Visibility follows the
// edit rule: owner, co-author, or admin.
func (service *Service) Get(ctx context.Context, claims *sec.SessionClaims, id string) (*Paper, error) {
	paper, _, err := service.loadForEdit(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// List returns papers visible to the requester. Admins see everything;
// members see papers they own or co-author. deleted=true lists the archive.
func (service *Service) List(ctx context.Context, claims *sec.SessionClaims, deleted bool) ([]*Paper, error) {
	filter := ListFilter{Deleted: deleted, Admin: claims.IsAdmin()}

	if !filter.Admin {
		requester, err := service.users.FindByID(ctx, claims.UserID)
		if err != nil {
			return nil, err
		}
		filter.RequesterID = requester.ID
		filter.RequesterName = requester.Name
		filter.RequesterEmail = requester.Email
	}

	return service.papers.List(ctx, filter)
}

// UpdateInput carries optional field updates for a paper. Nil pointers
// leave the current value untouched; a nil Authors keeps the current list.
type UpdateInput struct {
	Title   *string
	URL     *string
	Authors json.RawMessage

	// Revision, when provided, must match the stored revision or the
	// update is rejected as a lost race.
	Revision *int
}

// Update applies field changes to a paper.
func (service *Service) Update(ctx context.Context, claims *sec.SessionClaims, id string, input UpdateInput) (*Paper, error) {
	paper, _, err := service.loadForEdit(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if paper.IsDeleted {
		return nil, apperr.Gone("Paper is archived")
	}
	if input.Revision != nil && *input.Revision != paper.Revision {
		return nil, apperr.Conflict("Paper was modified by another request, reload and retry")
	}

	before := snapshot(paper)

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperr.ValidationError("Title is required", apperr.FieldError{Field: FieldTitle, Message: "Must not be empty"})
		}
		paper.Title = title
	}
	if input.URL != nil {
		paper.URL = strings.TrimSpace(*input.URL)
	}
	if input.Authors != nil {
		paper.Authors = NormalizeAuthors(input.Authors)
	}

	// Defensive: legacy records re-converge on every save even when the
	// author list was not part of this update.
	paper.Authors = NormalizeAuthorList(paper.Authors)

	if err := service.papers.Update(ctx, paper); err != nil {
		return nil, err
	}

	service.recordAudit(ctx, claims, actionUpdate, paper.ID, before, paper, nil)
	return paper, nil
}

// UpdateStatus advances the status of the paper's latest submission cycle.
func (service *Service) UpdateStatus(ctx context.Context, claims *sec.SessionClaims, id, rawStatus string) (*Paper, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	paper, _, err := service.loadForEdit(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if paper.IsDeleted {
		return nil, apperr.Gone("Paper is archived")
	}

	before := snapshot(paper)

	history, err := AdvanceStatus(paper.JournalHistory, status, time.Now())
	if err != nil {
		return nil, err
	}
	paper.JournalHistory = history
	paper.Authors = NormalizeAuthorList(paper.Authors)

	if err := service.papers.Update(ctx, paper); err != nil {
		return nil, err
	}

	service.recordAudit(ctx, claims, actionStatusUpdate, paper.ID, before, paper, map[string]interface{}{
		"rawStatus":  rawStatus,
		"normalized": status,
	})
	return paper, nil
}

// AddJournal appends a fresh submission cycle for the given journal.
func (service *Service) AddJournal(ctx context.Context, claims *sec.SessionClaims, id, journalID string) (*Paper, error) {
	if journalID == "" {
		return nil, apperr.ValidationError("A journal selection is required", apperr.FieldError{Field: FieldJournalID, Message: "This field is required"})
	}

	paper, _, err := service.loadForEdit(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if paper.IsDeleted {
		return nil, apperr.Gone("Paper is archived")
	}

	target, err := service.journals.FindByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	before := snapshot(paper)

	paper.JournalHistory = AppendCycle(paper.JournalHistory, target.ID, target.Title, time.Now())
	paper.Authors = NormalizeAuthorList(paper.Authors)

	if err := service.papers.Update(ctx, paper); err != nil {
		return nil, err
	}

	service.recordAudit(ctx, claims, actionAddJournal, paper.ID, before, paper, map[string]interface{}{
		"addedJournalId":    target.ID,
		"addedJournalTitle": target.Title,
	})
	return paper, nil
}

// SoftDelete archives a paper. Archiving an already-archived paper is a
// no-op that still succeeds.
func (service *Service) SoftDelete(ctx context.Context, claims *sec.SessionClaims, id string) (*Paper, error) {
	paper, _, err := service.loadForEdit(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if paper.IsDeleted {
		return paper, nil
	}

	before := snapshot(paper)
	paper.IsDeleted = true
	paper.Authors = NormalizeAuthorList(paper.Authors)

	if err := service.papers.Update(ctx, paper); err != nil {
		return nil, err
	}

	service.recordAudit(ctx, claims, actionSoftDelete, paper.ID, before, paper, nil)
	return paper, nil
}

/*
Restore brings an archived paper back.

Who may restore depends on the deployment's restore policy:

  - admin_only: admins only (the default)
  - owner_or_admin: the paper's owner may also restore
*/
func (service *Service) Restore(ctx context.Context, claims *sec.SessionClaims, id string) (*Paper, error) {
	paper, err := service.papers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := claims.IsAdmin()
	if service.restorePolicy == config.RestorePolicyOwnerOrAdmin && paper.CreatedBy == claims.UserID {
		allowed = true
	}
	if !allowed {
		return nil, apperr.Forbidden("You are not allowed to restore this paper")
	}

	if !paper.IsDeleted {
		return paper, nil
	}

	before := snapshot(paper)
	paper.IsDeleted = false
	paper.Authors = NormalizeAuthorList(paper.Authors)

	if err := service.papers.Update(ctx, paper); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "paper restored", "paper_id", paper.ID, "actor", claims.UserID)
	service.recordAudit(ctx, claims, actionRestore, paper.ID, before, paper, nil)
	return paper, nil
}

// # Helpers

// loadForEdit fetches the paper and enforces the edit rule against the
// requester's full profile.
func (service *Service) loadForEdit(ctx context.Context, claims *sec.SessionClaims, id string) (*Paper, *auth.User, error) {
	paper, err := service.papers.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	requester, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}

	if !CanEdit(requester, paper) {
		return nil, nil, apperr.Forbidden("You are not allowed to modify this paper")
	}
	return paper, requester, nil
}

// snapshot captures the paper state for an audit record. The copy is taken
// eagerly because the service mutates the paper in place afterwards.
func snapshot(paper *Paper) json.RawMessage {
	return audit.Snapshot(paper)
}

// recordAudit emits a best-effort audit entry for a mutation.
func (service *Service) recordAudit(
	ctx context.Context,
	claims *sec.SessionClaims,
	action, paperID string,
	before json.RawMessage,
	after *Paper,
	meta map[string]interface{},
) {
	var rawMeta json.RawMessage
	if meta != nil {
		rawMeta = audit.Snapshot(meta)
	}

	service.audits.Record(ctx, audit.Entry{
		ActorID:    claims.UserID,
		ActorEmail: claims.Email,
		Action:     action,
		EntityType: entityTypePaper,
		EntityID:   paperID,
		Before:     before,
		After:      audit.Snapshot(after),
		Meta:       rawMeta,
	})
}
