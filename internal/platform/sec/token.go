// Copyright (c) 2026 PaperTrack. All rights reserved.

package sec

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the SHA-256 hex digest of a session token.
//
// Session tokens are stored in Redis by digest only, so a dump of the
// session store never yields usable credentials.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
