package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubVerifier resolves known tokens to user IDs.
type stubVerifier struct {
	tokens map[string]string
}

func (s *stubVerifier) VerifyToken(token string) (string, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return userID, nil
}

func guardedHandler(t *testing.T, expectedUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok, "user ID should be in context")
		assert.Equal(t, expectedUserID, userID)
		w.WriteHeader(http.StatusOK)
	}
}

func TestRequireAuthSuccess(t *testing.T) {
	verifier := &stubVerifier{tokens: map[string]string{"good-token": "user123"}}
	guard := RequireAuth(verifier, zap.NewNop().Sugar())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "good-token"})
	w := httptest.NewRecorder()

	guard(guardedHandler(t, "user123")).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthMissingCookie(t *testing.T) {
	verifier := &stubVerifier{tokens: map[string]string{}}
	guard := RequireAuth(verifier, zap.NewNop().Sugar())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()

	guard(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
}

func TestRequireAuthInvalidToken(t *testing.T) {
	verifier := &stubVerifier{tokens: map[string]string{"good-token": "user123"}}
	guard := RequireAuth(verifier, zap.NewNop().Sugar())

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "forged-token"})
	w := httptest.NewRecorder()

	guard(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())
}

func TestUserIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
