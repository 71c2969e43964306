// Command backfill loads a whole season: all game results, a post-hoc
// venue/attendance pass for anything the scoreboard missed the first time,
// then every player box-score line. Safe to re-run; stored games and stat
// lines are skipped as duplicates.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/courtside/hoophub/internal/config"
	"github.com/courtside/hoophub/internal/feed"
	"github.com/courtside/hoophub/internal/ingest"
	"github.com/courtside/hoophub/internal/retry"
	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

func main() {
	var (
		start      = flag.String("start", "", "window start YYYY-MM-DD (default: open)")
		end        = flag.String("end", "", "window end YYYY-MM-DD (default: open)")
		policy     = flag.String("policy", "lenient", "venue policy: strict or lenient")
		skipStats  = flag.Bool("skip-stats", false, "only backfill games, not player stats")
		skipScores = flag.Bool("skip-scores", false, "only backfill player stats, not games")
	)
	flag.Parse()

	cfg := config.MustLoad()

	venuePolicy, err := ingest.ParseVenuePolicy(*policy)
	if err != nil {
		log.Fatalf("Invalid policy: %v", err)
	}

	db, err := store.NewDatabase(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	if err := db.SeedData(); err != nil {
		log.Printf("⚠️  Seed data warning: %v (continuing anyway)", err)
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

	window := ingest.Window{Start: *start, End: *end}

	// A whole season of scoreboard fetches takes a while
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	failed := false

	if !*skipScores {
		report, err := scoresPipeline.Run(ctx, window, venuePolicy)
		if err != nil {
			log.Printf("Scores backfill failed: %v", err)
			failed = true
		}
		log.Printf("Scores report: %s", report)

		enrichReport, err := scoresPipeline.AttachEnrichment(ctx)
		if err != nil {
			log.Printf("Enrichment pass failed: %v", err)
			failed = true
		}
		log.Printf("Enrichment report: %s", enrichReport)
	}

	if !*skipStats {
		report, err := statsPipeline.Run(ctx, window)
		if err != nil {
			log.Printf("Stats backfill failed: %v", err)
			failed = true
		}
		log.Printf("Stats report: %s", report)
	}

	if failed {
		os.Exit(1)
	}
	log.Println("✓ Backfill complete")
}
