package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/motorlane/adengine/internal/models"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies a per-instance request budget. A burst of
// twice the sustained rate absorbs page loads that fan out into several
// listing calls.
type RateLimitMiddleware struct {
	limiter *rate.Limiter
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(rps int) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: rate.NewLimiter(rate.Limit(rps), rps*2),
	}
}

// Middleware returns the HTTP middleware function for rate limiting
func (m *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(models.NewErrorResponse("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
