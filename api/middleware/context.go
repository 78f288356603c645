package middleware

import (
	"context"

	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
)

type contextKey string

const (
	ctxSessionUserID contextKey = "session_user_id"
	ctxCurrentUser   contextKey = "current_user"
)

// WithSessionUserID injects the authenticated user's id into the context.
func WithSessionUserID(ctx context.Context, userID uint) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionUserID, userID)
}

// SessionUserIDFromContext returns the session's user id, zero when anonymous.
func SessionUserIDFromContext(ctx context.Context) uint {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxSessionUserID).(uint); ok {
		return v
	}
	return 0
}

// WithCurrentUser injects the loaded user row into the context.
func WithCurrentUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCurrentUser, user)
}

// CurrentUserFromContext returns the loaded user, nil when anonymous.
func CurrentUserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxCurrentUser).(*models.User); ok {
		return v
	}
	return nil
}
