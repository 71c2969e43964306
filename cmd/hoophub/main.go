package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtside/hoophub/internal/api/rest"
	"github.com/courtside/hoophub/internal/cache"
	"github.com/courtside/hoophub/internal/config"
	"github.com/courtside/hoophub/internal/feed"
	"github.com/courtside/hoophub/internal/ingest"
	"github.com/courtside/hoophub/internal/retry"
	"github.com/courtside/hoophub/internal/scheduler"
	"github.com/courtside/hoophub/internal/service"
	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

const (
	serviceName    = "hoophub"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - Basketball Statistics Service", serviceName, serviceVersion)

	cfg := config.MustLoad()

	db, err := store.NewDatabase(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// Seed initial data (non-fatal - may already exist)
	if err := db.SeedData(); err != nil {
		log.Printf("⚠️  Seed data warning: %v (continuing anyway)", err)
	} else {
		log.Println("✓ Seed data applied")
	}

	// Redis is a cache, not a dependency: without it standings reads just
	// go to Postgres.
	redisCache, err := cache.NewRedisCache(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Printf("⚠️  Running without Redis cache: %v", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	feedClient := feed.NewClient(cfg.FeedBaseURL, cfg.SeasonType, cfg.FeedTimeout)

	resolverSrc := &ingest.RepoResolverSource{
		Teams:   repository.NewTeamRepository(db),
		Venues:  repository.NewVenueRepository(db),
		Players: repository.NewPlayerRepository(db),
	}
	gameRepo := repository.NewGameRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	enrichPolicy := retry.Policy{Attempts: cfg.EnrichAttempts, Delay: cfg.EnrichDelay}

	scoresPipeline := ingest.NewScoresPipeline(feedClient, resolverSrc, gameRepo, statsRepo, cfg.Season, enrichPolicy)
	statsPipeline := ingest.NewStatsPipeline(feedClient, resolverSrc, statsRepo, cfg.Season)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.EnableScheduler {
		standingsService := service.NewStandingsService(db, redisCache,
			time.Duration(cfg.CacheTTLStandings)*time.Second)
		sched := scheduler.NewScheduler(cfg, scoresPipeline, statsPipeline, standingsService)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	} else {
		log.Println("Scheduler disabled")
	}

	restServer := rest.NewServer(cfg, db, redisCache, scoresPipeline, statsPipeline)
	go func() {
		log.Printf("Starting REST API server on port %d", cfg.HTTPPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%d", cfg.HTTPPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
