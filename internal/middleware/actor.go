package middleware

import (
	"net/http"

	"github.com/motorlane/adengine/internal/identity"
	"github.com/motorlane/adengine/internal/models"
)

// ActorMiddleware resolves the acting identity from gateway headers.
// The upstream gateway terminates authentication and forwards the verified
// subject; an absent header means an anonymous reader.
type ActorMiddleware struct{}

// NewActorMiddleware creates a new actor middleware
func NewActorMiddleware() *ActorMiddleware {
	return &ActorMiddleware{}
}

// Middleware returns the HTTP middleware function for actor resolution
func (m *ActorMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := models.Actor{
			ID:   r.Header.Get("X-User-ID"),
			Role: models.ParseRole(r.Header.Get("X-User-Role")),
		}
		if actor.ID == "" {
			actor.Role = models.RoleAnonymous
		}

		ctx := identity.WithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
