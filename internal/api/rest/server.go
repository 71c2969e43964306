package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtside/hoophub/internal/cache"
	"github.com/courtside/hoophub/internal/config"
	"github.com/courtside/hoophub/internal/ingest"
	"github.com/courtside/hoophub/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    int
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. redisCache may be nil, in which
// case the standings endpoint reads straight from Postgres. The pipelines
// back the admin ingestion triggers.
func NewServer(cfg *config.Config, db *store.Database, redisCache *cache.RedisCache,
	scores *ingest.ScoresPipeline, stats *ingest.StatsPipeline) *Server {

	handler := NewHandler(cfg, db, redisCache)
	admin := NewAdminHandler(cfg, scores, stats, handler.standingsService, handler.playerService)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/record", handler.GetTeamRecord).Methods("GET")
	api.HandleFunc("/teams/{teamID}/roster", handler.GetTeamRoster).Methods("GET")
	api.HandleFunc("/teams/{teamID}/head-to-head", handler.GetHeadToHead).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players/compare", handler.ComparePlayers).Methods("GET")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	// Games
	api.HandleFunc("/games", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games/yesterday", handler.GetYesterdaysGames).Methods("GET")
	api.HandleFunc("/games/{gameID}/boxscore", handler.GetBoxScore).Methods("GET")

	// Standings
	api.HandleFunc("/standings", handler.GetStandings).Methods("GET")

	// Admin: ingestion triggers and roster edits, token-gated
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(AdminAuthMiddleware(cfg.AdminToken))
	adminRoutes.HandleFunc("/players", admin.CreatePlayer).Methods("POST")
	adminRoutes.HandleFunc("/ingest/scores", admin.TriggerScores).Methods("POST")
	adminRoutes.HandleFunc("/ingest/stats", admin.TriggerStats).Methods("POST")
	adminRoutes.HandleFunc("/ingest/enrich", admin.TriggerEnrichment).Methods("POST")

	return &Server{
		port:    cfg.HTTPPort,
		handler: handler,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
