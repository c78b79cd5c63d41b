// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"strings"

	"github.com/thaind/papertrack/internal/platform/apperr"
)

// Status is the state of a submission cycle.
type Status string

// The closed set of submission statuses. Values are stored exactly as
// spelled here; casing variants are normalized at the boundary, never
// persisted.
const (
	StatusSubmitted         Status = "submitted"
	StatusUnderReview       Status = "under_review"
	StatusRevisionSubmitted Status = "revision_submitted"
	StatusRejected          Status = "rejected"
	StatusAccepted          Status = "accepted"
)

// allStatuses enumerates the valid values for validation and error messages.
var allStatuses = []Status{
	StatusSubmitted,
	StatusUnderReview,
	StatusRevisionSubmitted,
	StatusRejected,
	StatusAccepted,
}

// Valid reports whether the status is a member of the closed set.
func (status Status) Valid() bool {
	for _, known := range allStatuses {
		if status == known {
			return true
		}
	}
	return false
}

/*
ParseStatus normalizes a client-supplied status string and validates it.

Normalization lowercases the input and collapses whitespace runs into a
single underscore, so "Under Review" and "under_review" both parse to
[StatusUnderReview]. Anything outside the closed set is a validation error.
*/
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.Join(strings.Fields(normalized), "_")

	status := Status(normalized)
	if !status.Valid() {
		return "", apperr.ValidationError("Invalid status", apperr.FieldError{
			Field:   FieldStatus,
			Message: "Must be one of: " + statusList(),
		})
	}
	return status, nil
}

func statusList() string {
	names := make([]string, len(allStatuses))
	for i, status := range allStatuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}
