package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	userIDKey    ctxKey = "user_id"
	foyerIDKey   ctxKey = "foyer_id"
	requestIDKey ctxKey = "request_id"
)

// WithUserID stores the authenticated user ID in the context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithFoyerID stores the caller's active foyer ID in the context.
// Set by the foyer-membership middleware after resolving membership.
func WithFoyerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, foyerIDKey, id)
}

// FoyerIDFromCtx extracts the active foyer ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func FoyerIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(foyerIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
