package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// (e.g. auth routes). Uses chi's RealIP middleware value via r.RemoteAddr.
// Stale entries are cleaned up every 10 minutes.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiterFor := newLimiterPool(ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := limiterFor(r.RemoteAddr)
			if !lim.Allow() {
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies per-account rate limiting on authenticated routes. Stale
// limiter entries are cleaned up every 10 minutes to prevent unbounded memory
// growth.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiterFor := newLimiterPool(ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				// No identity in context; skip rate limiting.
				next.ServeHTTP(w, r)
				return
			}

			lim := limiterFor(userID)
			if !lim.Allow() {
				tooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// newLimiterPool returns a keyed limiter lookup with background cleanup of
// entries idle for more than 30 minutes.
func newLimiterPool(ctx context.Context, requestsPerSecond float64, burst int) func(string) *rate.Limiter {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*clientLimiter)
	)

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				mu.Lock()
				cutoff := time.Now().Add(-30 * time.Minute)
				for key, cl := range limiters {
					if cl.lastAccess.Before(cutoff) {
						delete(limiters, key)
					}
				}
				mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		cl, ok := limiters[key]
		if !ok {
			cl = &clientLimiter{
				limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
				lastAccess: time.Now(),
			}
			limiters[key] = cl
		} else {
			cl.lastAccess = time.Now()
		}
		return cl.limiter
	}
}

func tooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`))
}
