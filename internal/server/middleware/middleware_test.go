package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadernoapp/caderno/internal/auth"
	"github.com/cadernoapp/caderno/internal/server/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// okHandler records the identity the middleware put in the context.
func okHandler(gotUserID, gotEmail *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := middleware.UserIDFromContext(r.Context()); ok {
			*gotUserID = uid
		}
		if email, ok := middleware.EmailFromContext(r.Context()); ok {
			*gotEmail = email
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthValidToken(t *testing.T) {
	t.Parallel()

	tok, err := auth.IssueAccessToken(testSecret, "user-1", "ana@example.com", time.Minute)
	require.NoError(t, err)

	var gotUserID, gotEmail string
	handler := middleware.Auth(testSecret)(okHandler(&gotUserID, &gotEmail))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
	assert.Equal(t, "ana@example.com", gotEmail)
}

func TestAuthRejects(t *testing.T) {
	t.Parallel()

	refresh, err := auth.IssueRefreshToken(testSecret, "user-1", "ana@example.com", time.Minute)
	require.NoError(t, err)

	expired, err := auth.IssueAccessToken(testSecret, "user-1", "ana@example.com", -time.Minute)
	require.NoError(t, err)

	wrongSecret, err := auth.IssueAccessToken("ffffffffffffffffffffffffffffffff", "user-1", "", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "refresh token on api route", header: "Bearer " + refresh},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong secret", header: "Bearer " + wrongSecret},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUserID, gotEmail string
			handler := middleware.Auth(testSecret)(okHandler(&gotUserID, &gotEmail))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Empty(t, gotUserID)
		})
	}
}

func TestRateLimitByIP(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitByIP(ctx, 1, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2 allowed, third rejected.
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))

	// A different IP has its own bucket.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestRateLimitPerAccount(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 1)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
		if userID != "" {
			reqCtx := context.WithValue(req.Context(), middleware.ContextKeyUserID, userID)
			req = req.WithContext(reqCtx)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("user-a"))
	assert.Equal(t, http.StatusTooManyRequests, send("user-a"))
	assert.Equal(t, http.StatusOK, send("user-b"))

	// Without an identity the limiter is skipped.
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send(""))
}
