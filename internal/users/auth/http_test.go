// Copyright (c) 2026 PaperTrack. All rights reserved.

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaind/papertrack/internal/platform/constants"
	"github.com/thaind/papertrack/internal/platform/sec"
)

func newTestHandler(t *testing.T) (*Handler, *Service, *fakeSessionRepository) {
	t.Helper()
	service, _, sessions := newTestService(t)
	return NewHandler(service, false), service, sessions
}

func TestLogoutRoutes(t *testing.T) {
	ctx := context.Background()

	// Legacy clients log out via a plain link, newer ones via POST.
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			handler, service, sessions := newTestHandler(t)
			router := handler.Routes()

			_, err := service.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@lab.edu", Password: "secret123"})
			require.NoError(t, err)

			token, _, err := service.Login(ctx, "alice@lab.edu", "secret123")
			require.NoError(t, err)

			request := httptest.NewRequest(method, "/logout", nil)
			request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusOK, recorder.Code)

			// The session is revoked and the cookie is expired.
			alive, err := sessions.Exists(ctx, sec.HashToken(token))
			require.NoError(t, err)
			assert.False(t, alive)

			cookies := recorder.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
			assert.Empty(t, cookies[0].Value)
			assert.Equal(t, -1, cookies[0].MaxAge)
		})
	}
}

func TestLogoutWithoutSessionCookie(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodGet, "/logout", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
