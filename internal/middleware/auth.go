package middleware

import (
	"net/http"

	"pizza-orders-be/internal/auth"
	"pizza-orders-be/internal/logger"
	"pizza-orders-be/internal/utils"

	"go.uber.org/zap"
)

// SessionParser turns a raw access token into a user.
type SessionParser interface {
	Parse(token string) (*auth.User, error)
}

// AuthMiddleware attaches the session user to the request context when a
// valid token is present. It never rejects a request by itself.
func AuthMiddleware(tokens SessionParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring invalid session token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), user)
			ctx = logger.WithFields(ctx, zap.String("operator", user.Email))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession answers 401 for requests without a session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.HasSession(r.Context()) {
			utils.WriteJSONError(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
