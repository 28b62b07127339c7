package middleware

import (
	"net/http"

	"github.com/motorlane/adengine/internal/identity"
)

// RequestIDMiddleware adds request IDs to incoming requests
type RequestIDMiddleware struct{}

// NewRequestIDMiddleware creates a new request ID middleware
func NewRequestIDMiddleware() *RequestIDMiddleware {
	return &RequestIDMiddleware{}
}

// Middleware returns the HTTP middleware function for request IDs
func (m *RequestIDMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Reuse an upstream ID when the gateway already assigned one.
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = identity.NewRequestID()
		}

		ctx := identity.WithRequestID(r.Context(), requestID)

		// Echo the ID back so clients can correlate reports.
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
