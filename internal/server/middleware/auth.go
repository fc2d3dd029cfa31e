package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cadernoapp/caderno/internal/auth"
)

// Auth validates the Bearer access token and stores the account identity in
// the request context. Refresh tokens are rejected here; they are only
// accepted by the token refresh endpoint.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				unauthorized(w)
				return
			}

			ctx, ok := authenticateJWT(r.Context(), tok, jwtSecret)
			if !ok {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`))
}

func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

func authenticateJWT(ctx context.Context, tokenStr, secret string) (context.Context, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		return ctx, false
	}

	if claims.TokenType != "access" || claims.UserID == "" {
		return ctx, false
	}

	ctx = context.WithValue(ctx, ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, ContextKeyEmail, claims.Email)
	return ctx, true
}
