package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianramos/wardrobe-api/utils"
)

func protectedEcho(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		w.Write([]byte(userID))
	}
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := utils.GenerateToken("64f000000000000000000001")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/wardrobe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(protectedEcho(t))(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "64f000000000000000000001", rec.Body.String())
}

func TestAuthMiddlewareMissingTokenIs401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/wardrobe", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(protectedEcho(t))(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidTokenIs403(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/wardrobe", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	AuthMiddleware(protectedEcho(t))(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddlewareWrongSecretIs403(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateToken("64f000000000000000000001")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	req := httptest.NewRequest(http.MethodGet, "/api/wardrobe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(protectedEcho(t))(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
