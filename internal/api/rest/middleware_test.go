package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	RecoveryMiddleware(panicky).ServeHTTP(rec, httptest.NewRequest("GET", "/teams", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler()).ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/v1/teams", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminAuthMiddleware(t *testing.T) {
	mw := AdminAuthMiddleware("sekrit")

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/ingest/scores", nil)
		req.Header.Set("X-Admin-Token", "sekrit")
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/ingest/scores", nil)
		req.Header.Set("X-Admin-Token", "guess")
		rec := httptest.NewRecorder()

		mw(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/admin/players", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin disabled without configured token", func(t *testing.T) {
		disabled := AdminAuthMiddleware("")
		req := httptest.NewRequest("POST", "/api/v1/admin/players", nil)
		req.Header.Set("X-Admin-Token", "")
		rec := httptest.NewRecorder()

		disabled(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
