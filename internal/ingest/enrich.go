package ingest

import (
	"context"
	"log"

	"github.com/courtside/hoophub/internal/feed"
	"github.com/courtside/hoophub/internal/retry"
)

// ScoreboardSource fetches the daily scoreboard used for venue and
// attendance enrichment.
type ScoreboardSource interface {
	Scoreboard(ctx context.Context, date string) (*feed.Envelope, error)
}

// Enricher attaches venue and attendance data to reconciled games, one
// scoreboard fetch per distinct date. Enrichment is best-effort: a date
// whose fetch keeps failing is left unenriched, never fatal.
type Enricher struct {
	source   ScoreboardSource
	resolver *Resolver
	policy   retry.Policy
}

// NewEnricher creates an enricher. The retry policy applies per date.
func NewEnricher(source ScoreboardSource, resolver *Resolver, policy retry.Policy) *Enricher {
	return &Enricher{source: source, resolver: resolver, policy: policy}
}

// Enrich fills VenueID and Attendance on records in place. Arena names
// with no venue match are recorded in report.MissingArenas so the strict
// commit policy can name them. Attendance attaches only when positive;
// the feed reports 0 for games it has no count for.
func (e *Enricher) Enrich(ctx context.Context, records []*GameRecord, report *Report) {
	byDate := make(map[string][]*GameRecord)
	for _, rec := range records {
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}

	for date, recs := range byDate {
		var env *feed.Envelope
		runner := retry.NewRunner(e.policy)
		err := runner.Do(ctx, func(ctx context.Context) error {
			var fetchErr error
			env, fetchErr = e.source.Scoreboard(ctx, date)
			return fetchErr
		})
		if err != nil {
			log.Printf("[enrich] ⚠️ scoreboard for %s unavailable after %d attempts, games proceed unenriched: %v",
				date, runner.Attempts(), err)
			continue
		}

		games, err := feed.ParseScoreboard(env)
		if err != nil {
			log.Printf("[enrich] ⚠️ scoreboard for %s unusable, games proceed unenriched: %v", date, err)
			continue
		}

		byGame := make(map[int]feed.ScoreboardGame, len(games))
		for _, g := range games {
			id, err := NormalizeGameID(g.GameID)
			if err != nil {
				continue
			}
			byGame[id] = g
		}

		for _, rec := range recs {
			sb, found := byGame[rec.GameID]
			if !found {
				continue
			}

			rec.Arena = sb.ArenaName
			if venueID, ok := e.resolver.Venue(sb.ArenaName); ok {
				rec.VenueID = &venueID
			} else if sb.ArenaName != "" {
				report.MissingArenas[rec.GameID] = sb.ArenaName
			}

			if sb.Attendance > 0 {
				attendance := sb.Attendance
				rec.Attendance = &attendance
			}
		}
	}
}
