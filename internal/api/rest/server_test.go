package rest

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hoophub/internal/config"
)

func TestServerRegistersRoutes(t *testing.T) {
	srv := NewServer(&config.Config{}, nil, nil, nil, nil)
	router, ok := srv.server.Handler.(*mux.Router)
	require.True(t, ok)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/api/v1/teams"},
		{"GET", "/api/v1/teams/5"},
		{"GET", "/api/v1/teams/5/record"},
		{"GET", "/api/v1/teams/5/roster"},
		{"GET", "/api/v1/teams/5/head-to-head"},
		{"GET", "/api/v1/players"},
		{"GET", "/api/v1/players/compare"},
		{"GET", "/api/v1/players/100"},
		{"GET", "/api/v1/games"},
		{"GET", "/api/v1/games/yesterday"},
		{"GET", "/api/v1/games/22500123/boxscore"},
		{"GET", "/api/v1/standings"},
		{"POST", "/api/v1/admin/players"},
		{"POST", "/api/v1/admin/ingest/scores"},
		{"POST", "/api/v1/admin/ingest/stats"},
		{"POST", "/api/v1/admin/ingest/enrich"},
	}

	for _, route := range routes {
		req := httptest.NewRequest(route.method, route.path, nil)
		var match mux.RouteMatch
		assert.True(t, router.Match(req, &match), "%s %s", route.method, route.path)
		assert.NoError(t, match.MatchErr, "%s %s", route.method, route.path)
	}
}
