// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTTL is the duration a session token (and its cookie) remains valid.
	// One week matches the portal's usage pattern of short daily visits.
	SessionTTL = 7 * 24 * time.Hour

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)
