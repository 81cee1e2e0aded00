package telemetry

import (
	"context"

	"github.com/google/uuid"
)

// sessionIDKey is the context key type used to store a session ID.
type sessionIDKey struct{}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string { return uuid.NewString() }

// WithSessionID returns a child context carrying the provided session ID.
// If ctx is nil, context.Background() is used.
func WithSessionID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromContext returns the session ID from ctx, if present.
// Returns "", false if the value is missing or not a non-empty string.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(sessionIDKey{}).(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
