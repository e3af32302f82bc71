package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamfolio/teamfolio-go/internal/crypto"
)

const testSecret = "test-secret"

func echoUserID(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestJWTAuth(t *testing.T) {
	valid, err := crypto.GenerateToken(42, testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := crypto.GenerateToken(42, testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, err := crypto.GenerateToken(42, "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"no header", "", http.StatusUnauthorized, false},
		{"scheme only", "Bearer", http.StatusUnauthorized, false},
		{"empty token", "Bearer ", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, false},
		{"garbage token", "Bearer not-a-jwt", http.StatusForbidden, false},
		{"expired token", "Bearer " + expired, http.StatusForbidden, false},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden, false},
		{"valid token", "Bearer " + valid, http.StatusNoContent, true},
		{"lowercase scheme", "bearer " + valid, http.StatusNoContent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			h := JWTAuth(testSecret)(echoUserID(t, &called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}

func TestJWTAuth_FailureBodiesDoNotLeakCause(t *testing.T) {
	expired, err := crypto.GenerateToken(42, testSecret, -time.Minute)
	require.NoError(t, err)
	foreign, err := crypto.GenerateToken(42, "other-secret", time.Hour)
	require.NoError(t, err)

	bodies := make([]string, 0, 2)
	for _, tok := range []string{expired, foreign} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		JWTAuth(testSecret)(http.NotFoundHandler()).ServeHTTP(rec, req)
		bodies = append(bodies, rec.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1])
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
