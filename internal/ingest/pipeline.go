package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/courtside/hoophub/internal/feed"
	"github.com/courtside/hoophub/internal/retry"
	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// FeedSource is the slice of the feed client the pipelines use.
type FeedSource interface {
	LeagueGames(ctx context.Context, season string) (*feed.Envelope, error)
	PlayerGameLogs(ctx context.Context, season string) (*feed.Envelope, error)
	Scoreboard(ctx context.Context, date string) (*feed.Envelope, error)
}

// GameSource is the slice of the game repository the pipelines use.
type GameSource interface {
	GameStore
	ExistingIDs(ctx context.Context) (map[int]struct{}, error)
	ListUnenriched(ctx context.Context) ([]*store.Game, error)
	AttachVenueAttendance(ctx context.Context, gameID int, venueID, attendance sql.NullInt32) error
}

// StatSource is the slice of the stats repository the pipelines use.
type StatSource interface {
	StatStore
	ExistingKeys(ctx context.Context) (map[repository.StatKey]struct{}, error)
}

// RepoResolverSource adapts the repositories to the resolver's loader
// interface.
type RepoResolverSource struct {
	Teams   *repository.TeamRepository
	Venues  *repository.VenueRepository
	Players *repository.PlayerRepository
}

func (s *RepoResolverSource) AbbreviationMap(ctx context.Context) (map[string]int, error) {
	return s.Teams.AbbreviationMap(ctx)
}

func (s *RepoResolverSource) VenueNameMap(ctx context.Context) (map[string]int, error) {
	return s.Venues.NameMap(ctx)
}

func (s *RepoResolverSource) PlayerNameMap(ctx context.Context) (map[string]int, error) {
	return s.Players.NameMap(ctx)
}

func (s *RepoResolverSource) DefaultVenueID(ctx context.Context) (int, error) {
	return s.Venues.DefaultVenueID(ctx)
}

// ScoresPipeline ingests game results: fetch, normalize, reconcile,
// enrich, commit, in that order.
type ScoresPipeline struct {
	feed        FeedSource
	resolverSrc ResolverSource
	games       GameSource
	stats       StatStore
	season      string
	enrichWith  retry.Policy
}

// NewScoresPipeline wires a scores pipeline.
func NewScoresPipeline(feedSrc FeedSource, resolverSrc ResolverSource, games GameSource, stats StatStore, season string, enrichPolicy retry.Policy) *ScoresPipeline {
	return &ScoresPipeline{
		feed:        feedSrc,
		resolverSrc: resolverSrc,
		games:       games,
		stats:       stats,
		season:      season,
		enrichWith:  enrichPolicy,
	}
}

// Run executes one scores ingestion over the window. The primary fetch and
// index loads are fatal; enrichment degrades per date. The returned report
// is populated even when Run returns an error.
func (p *ScoresPipeline) Run(ctx context.Context, window Window, policy VenuePolicy) (*Report, error) {
	report := NewReport()

	log.Printf("[scores] starting run window=[%s,%s] policy=%s", window.Start, window.End, policy)

	env, err := p.feed.LeagueGames(ctx, p.season)
	if err != nil {
		return report, fmt.Errorf("fetching league games: %w", err)
	}
	rawRows, err := feed.ParseLeagueGames(env)
	if err != nil {
		return report, fmt.Errorf("parsing league games: %w", err)
	}

	rows := NormalizeScores(rawRows, window)
	log.Printf("[scores] %d feed rows, %d in window", len(rawRows), len(rows))

	resolver, err := BuildResolver(ctx, p.resolverSrc)
	if err != nil {
		return report, fmt.Errorf("building resolver: %w", err)
	}

	existing, err := p.games.ExistingIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("loading existing game ids: %w", err)
	}

	records := NewReconciler(resolver, existing).Reconcile(rows, report)
	log.Printf("[scores] %d game(s) reconciled, %d duplicate, %d skipped",
		len(records), report.SkippedDuplicate, report.SkippedOther)

	NewEnricher(p.feed, resolver, p.enrichWith).Enrich(ctx, records, report)

	committer := NewCommitter(p.games, p.stats)
	if err := committer.CommitGames(ctx, records, policy, resolver.DefaultVenue(), report); err != nil {
		log.Printf("[scores] ⚠️ run failed: %v", err)
		return report, err
	}

	log.Printf("[scores] ✓ run complete: %s", report)
	return report, nil
}

// AttachEnrichment is the post-hoc pass: fetch the scoreboard for every
// date that has stored games missing a venue or attendance, and fill in
// only the columns that are still unset.
func (p *ScoresPipeline) AttachEnrichment(ctx context.Context) (*Report, error) {
	report := NewReport()

	resolver, err := BuildResolver(ctx, p.resolverSrc)
	if err != nil {
		return report, fmt.Errorf("building resolver: %w", err)
	}

	games, err := p.games.ListUnenriched(ctx)
	if err != nil {
		return report, fmt.Errorf("loading unenriched games: %w", err)
	}
	if len(games) == 0 {
		log.Println("[enrich] nothing to attach")
		return report, nil
	}

	records := make([]*GameRecord, 0, len(games))
	byID := make(map[int]*store.Game, len(games))
	for _, game := range games {
		byID[game.GameID] = game
		records = append(records, &GameRecord{GameID: game.GameID, Date: game.GameDate})
	}

	NewEnricher(p.feed, resolver, p.enrichWith).Enrich(ctx, records, report)

	for _, rec := range records {
		game := byID[rec.GameID]

		var venueID, attendance sql.NullInt32
		if rec.VenueID != nil && !game.VenueID.Valid {
			venueID = sql.NullInt32{Int32: int32(*rec.VenueID), Valid: true}
		}
		if rec.Attendance != nil && !game.Attendance.Valid {
			attendance = sql.NullInt32{Int32: int32(*rec.Attendance), Valid: true}
		}
		if !venueID.Valid && !attendance.Valid {
			continue
		}

		if err := p.games.AttachVenueAttendance(ctx, rec.GameID, venueID, attendance); err != nil {
			report.Failed++
			log.Printf("[enrich] ⚠️ %v", err)
			continue
		}
		report.Inserted++
	}

	log.Printf("[enrich] ✓ attached enrichment to %d game(s)", report.Inserted)
	return report, nil
}

// StatsPipeline ingests player box-score lines.
type StatsPipeline struct {
	feed        FeedSource
	resolverSrc ResolverSource
	stats       StatSource
	season      string
}

// NewStatsPipeline wires a stats pipeline.
func NewStatsPipeline(feedSrc FeedSource, resolverSrc ResolverSource, stats StatSource, season string) *StatsPipeline {
	return &StatsPipeline{
		feed:        feedSrc,
		resolverSrc: resolverSrc,
		stats:       stats,
		season:      season,
	}
}

// Run executes one stats ingestion over the window. An unmapped player
// name fails the whole batch; nothing partial lands.
func (p *StatsPipeline) Run(ctx context.Context, window Window) (*Report, error) {
	report := NewReport()

	log.Printf("[stats] starting run window=[%s,%s]", window.Start, window.End)

	env, err := p.feed.PlayerGameLogs(ctx, p.season)
	if err != nil {
		return report, fmt.Errorf("fetching player game logs: %w", err)
	}
	rawRows, err := feed.ParsePlayerGameLogs(env)
	if err != nil {
		return report, fmt.Errorf("parsing player game logs: %w", err)
	}

	rows := NormalizeStats(rawRows, window)
	log.Printf("[stats] %d feed rows, %d in window", len(rawRows), len(rows))

	resolver, err := BuildResolver(ctx, p.resolverSrc)
	if err != nil {
		return report, fmt.Errorf("building resolver: %w", err)
	}

	existing, err := p.stats.ExistingKeys(ctx)
	if err != nil {
		return report, fmt.Errorf("loading existing stat keys: %w", err)
	}

	committer := NewCommitter(nil, p.stats)
	if err := committer.CommitStats(ctx, rows, resolver, existing, report); err != nil {
		log.Printf("[stats] ⚠️ run failed: %v", err)
		return report, err
	}

	log.Printf("[stats] ✓ run complete: %s", report)
	return report, nil
}
