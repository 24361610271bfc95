package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tunevault/config"
	"tunevault/core/auth"
	"tunevault/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondCatalogError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("song 9: %w", model.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("title is required: %w", model.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("duplicate entry: %w", model.ErrPersistence), http.StatusConflict},
		{fmt.Errorf("dial tcp: %w", model.ErrConnection), http.StatusServiceUnavailable},
		{fmt.Errorf("backend play: %w", model.ErrPlayback), http.StatusUnprocessableEntity},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		respondCatalogError(rec, tc.err, "test")
		assert.Equal(t, tc.status, rec.Code, "error: %v", tc.err)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestAuthMiddleware(t *testing.T) {
	h := &APIHandler{cfg: &config.Config{JWTSecret: "test-secret"}}

	var gotClaims *auth.Claims
	protected := h.AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = claimsFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// No token.
	rec := httptest.NewRecorder()
	protected(rec, httptest.NewRequest(http.MethodGet, "/api/songs/popular", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/songs/popular", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	protected(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token.
	token, err := auth.GenerateToken("test-secret", 42, "ann@example.com", false)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/songs/popular", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protected(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotClaims)
	assert.Equal(t, int64(42), gotClaims.UserID)
}

func TestAdminMiddleware(t *testing.T) {
	h := &APIHandler{cfg: &config.Config{JWTSecret: "test-secret"}}

	protected := h.AdminMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	regular, err := auth.GenerateToken("test-secret", 42, "ann@example.com", false)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/songs/1", nil)
	req.Header.Set("Authorization", "Bearer "+regular)
	protected(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := auth.GenerateToken("test-secret", 1, "admin@example.com", true)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/songs/1", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	protected(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
