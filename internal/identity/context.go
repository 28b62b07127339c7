package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/motorlane/adengine/internal/models"
)

// contextKey represents keys used in request context
type contextKey string

const (
	// actorKey is the context key for the authenticated actor
	actorKey contextKey = "actor"
	// requestIDKey is the context key for request ID
	requestIDKey contextKey = "request_id"
)

// WithActor adds the acting identity to the context. The engine itself
// never reads it back implicitly; the transport layer extracts the actor
// once and passes it as an explicit parameter.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the actor from context, defaulting to anonymous
func ActorFromContext(ctx context.Context) models.Actor {
	if actor, ok := ctx.Value(actorKey).(models.Actor); ok {
		return actor
	}
	return models.Actor{Role: models.RoleAnonymous}
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext retrieves the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// NewRequestID generates a fresh request ID
func NewRequestID() string {
	return uuid.New().String()
}
