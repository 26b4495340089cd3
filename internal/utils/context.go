package utils

import (
	"context"

	"pizza-orders-be/internal/auth"
)

type contextKey string

const userKey contextKey = "user"

// SetUserContext stores the session user (called by the auth middleware).
func SetUserContext(ctx context.Context, u *auth.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUserFromContext retrieves the session user safely.
func GetUserFromContext(ctx context.Context) (*auth.User, bool) {
	u, ok := ctx.Value(userKey).(*auth.User)
	return u, ok && u != nil
}

// HasSession reports whether a user session is attached to ctx.
func HasSession(ctx context.Context) bool {
	_, ok := GetUserFromContext(ctx)
	return ok
}
