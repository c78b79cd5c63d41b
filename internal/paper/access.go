// Copyright (c) 2026 PaperTrack. All rights reserved.

package paper

import (
	"strings"

	"github.com/thaind/papertrack/internal/users/auth"
)

// # Authorization Gate

/*
CanEdit reports whether a user may mutate a paper.

The checks, in order:

 1. Admins may edit anything.
 2. The owner (creator) may edit their own papers.
 3. A listed co-author may edit. Registered co-authors are matched by their
    account id back-reference; legacy entries without one fall back to a
    case-insensitive name or email match against the requester's profile.

The requester's full profile is needed for the fallback match, so callers
resolve it before asking.
*/
func CanEdit(requester *auth.User, target *Paper) bool {
	if requester == nil || target == nil {
		return false
	}

	if requester.Role.IsAdmin() {
		return true
	}

	if target.CreatedBy == requester.ID {
		return true
	}

	for _, author := range target.Authors {
		if author.UserID != "" {
			if author.UserID == requester.ID {
				return true
			}
			continue
		}

		if strings.EqualFold(author.Name, requester.Name) {
			return true
		}
		if author.Email != "" && strings.EqualFold(author.Email, requester.Email) {
			return true
		}
	}

	return false
}
