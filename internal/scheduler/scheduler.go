package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/courtside/hoophub/internal/config"
	"github.com/courtside/hoophub/internal/ingest"
	"github.com/courtside/hoophub/internal/service"
)

// Scheduler drives the daily ingestion jobs: scores in the morning, then
// player stats once scores have landed. Cron expressions and the timezone
// come from configuration.
type Scheduler struct {
	cfg       *config.Config
	scores    *ingest.ScoresPipeline
	stats     *ingest.StatsPipeline
	standings *service.StandingsService
	cron      *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, scores *ingest.ScoresPipeline, stats *ingest.StatsPipeline, standings *service.StandingsService) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		scores:    scores,
		stats:     stats,
		standings: standings,
		cron:      cron.New(cron.WithLocation(cfg.Location())),
	}
}

// Start registers the cron jobs and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	log.Println("[scheduler] starting...")

	if _, err := s.cron.AddFunc(s.cfg.DailyScoresCron, func() {
		s.runDailyScores(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule daily scores: %w", err)
	}

	if _, err := s.cron.AddFunc(s.cfg.DailyStatsCron, func() {
		s.runDailyStats(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule daily stats: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] ✓ scores at %q, stats at %q (%s)",
		s.cfg.DailyScoresCron, s.cfg.DailyStatsCron, s.cfg.Timezone)
	return nil
}

// Stop stops the scheduler, waiting for any running job.
func (s *Scheduler) Stop() {
	log.Println("[scheduler] stopping...")
	<-s.cron.Stop().Done()
	log.Println("[scheduler] ✓ stopped")
}

// yesterday returns the previous day in the configured timezone.
func (s *Scheduler) yesterday() string {
	return time.Now().In(s.cfg.Location()).AddDate(0, 0, -1).Format("2006-01-02")
}

func (s *Scheduler) runDailyScores(ctx context.Context) {
	date := s.yesterday()
	log.Printf("[scheduler] daily scores run for %s", date)

	policy, err := ingest.ParseVenuePolicy(s.cfg.VenuePolicy)
	if err != nil {
		log.Printf("[scheduler] ⚠️ %v", err)
		return
	}

	report, err := s.scores.Run(ctx, ingest.Window{Start: date, End: date}, policy)
	if err != nil {
		log.Printf("[scheduler] ⚠️ daily scores failed: %v (%s)", err, report)
		return
	}

	s.standings.Invalidate(ctx)
	log.Printf("[scheduler] ✓ daily scores: %s", report)
}

func (s *Scheduler) runDailyStats(ctx context.Context) {
	date := s.yesterday()
	log.Printf("[scheduler] daily stats run for %s", date)

	report, err := s.stats.Run(ctx, ingest.Window{Start: date, End: date})
	if err != nil {
		log.Printf("[scheduler] ⚠️ daily stats failed: %v (%s)", err, report)
		return
	}

	log.Printf("[scheduler] ✓ daily stats: %s", report)
}
