// Copyright (c) 2026 PaperTrack. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/thaind/papertrack/internal/platform/apperr"
	"github.com/thaind/papertrack/internal/platform/constants"
	"github.com/thaind/papertrack/internal/platform/ctxutil"
	"github.com/thaind/papertrack/internal/platform/respond"
	"github.com/thaind/papertrack/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// TokenService implementation, allowing mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// SessionChecker reports whether a session token (by digest) is still alive.
//
// A verified JWT is not enough on its own: logout deletes the Redis session
// record, and a token without a live record must be treated as revoked.
type SessionChecker interface {
	Exists(ctx context.Context, tokenHash string) (bool, error)
}

// Authenticate extracts and verifies the session token from the request.
//
// # Flow
//  1. Look for the HttpOnly session cookie; fall back to 'Authorization: Bearer'.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Confirm the session record is still alive via the session checker.
//  5. Inject [*sec.SessionClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction (cookie first, bearer fallback) ───────────
			token := extractToken(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Session Liveness (revocation check) ────────────────────────
			alive, err := sessions.Exists(request.Context(), sec.HashToken(token))
			if err != nil || !alive {
				respond.Error(writer, request, apperr.Unauthorized("Session has been revoked"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken pulls the raw session token from the cookie or the
// Authorization header. Returns "" when the request is anonymous.
func extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := request.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests whose session does not carry the admin role.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequireAuth], so there is no need to mount both.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !claims.IsAdmin() {
			respond.Error(writer, request, apperr.Forbidden("Admin access required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
