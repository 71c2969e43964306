// Command dailyscores runs one scores ingestion: fetch the league games,
// reconcile yesterday's results, enrich with venue and attendance, and
// commit. Intended for cron or manual runs; the long-lived service
// schedules the same job internally.
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
		start  = flag.String("start", "", "window start YYYY-MM-DD (default: yesterday)")
		end    = flag.String("end", "", "window end YYYY-MM-DD (default: yesterday)")
		policy = flag.String("policy", "", "venue policy: strict or lenient (default: from env)")
	)
	flag.Parse()

	cfg := config.MustLoad()

	if *start == "" && *end == "" {
		yesterday := time.Now().In(cfg.Location()).AddDate(0, 0, -1).Format("2006-01-02")
		*start, *end = yesterday, yesterday
	}

	policyStr := *policy
	if policyStr == "" {
		policyStr = cfg.VenuePolicy
	}
	venuePolicy, err := ingest.ParseVenuePolicy(policyStr)
	if err != nil {
		log.Fatalf("Invalid policy: %v", err)
	}

	db, err := store.NewDatabase(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	feedClient := feed.NewClient(cfg.FeedBaseURL, cfg.SeasonType, cfg.FeedTimeout)
	resolverSrc := &ingest.RepoResolverSource{
		Teams:   repository.NewTeamRepository(db),
		Venues:  repository.NewVenueRepository(db),
		Players: repository.NewPlayerRepository(db),
	}

	pipeline := ingest.NewScoresPipeline(
		feedClient, resolverSrc,
		repository.NewGameRepository(db),
		repository.NewStatsRepository(db),
		cfg.Season,
		retry.Policy{Attempts: cfg.EnrichAttempts, Delay: cfg.EnrichDelay},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := pipeline.Run(ctx, ingest.Window{Start: *start, End: *end}, venuePolicy)
	if err != nil {
		log.Printf("Run failed: %v", err)
		log.Printf("Report: %s", report)
		os.Exit(1)
	}

	log.Printf("Report: %s", report)
}
