package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// TokenCookieName is the cookie carrying the session token.
const TokenCookieName = "token"

type contextKey struct{}

var userIDKey contextKey

// TokenVerifier verifies a session token and returns the embedded user ID.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireAuth rejects requests without a valid session token cookie and
// attaches the resolved user ID to the request context otherwise.
func RequireAuth(verifier TokenVerifier, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(TokenCookieName)
			if err != nil {
				unauthorized(w)
				return
			}

			userID, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				log.Debugw("rejected session token", "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user ID set by RequireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
}
