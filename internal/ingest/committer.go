package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"

	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// VenuePolicy decides what happens to a game whose arena has no venue
// match at commit time.
type VenuePolicy int

const (
	// VenueStrict fails the whole batch when any game lacks a venue.
	VenueStrict VenuePolicy = iota
	// VenueLenient assigns the default venue and commits anyway.
	VenueLenient
)

func (p VenuePolicy) String() string {
	if p == VenueLenient {
		return "lenient"
	}
	return "strict"
}

// ParseVenuePolicy converts the configuration string form.
func ParseVenuePolicy(s string) (VenuePolicy, error) {
	switch s {
	case "strict":
		return VenueStrict, nil
	case "lenient":
		return VenueLenient, nil
	default:
		return VenueStrict, fmt.Errorf("unknown venue policy %q", s)
	}
}

// GameStore is the slice of the game repository the committer needs.
type GameStore interface {
	InsertBatch(ctx context.Context, games []*store.Game) error
}

// StatStore is the slice of the stats repository the committer needs.
type StatStore interface {
	InsertBatch(ctx context.Context, stats []*store.PlayerGameStats) error
}

// Committer turns reconciled records into rows. Each Commit call maps to
// one repository transaction; the batch lands entirely or not at all.
type Committer struct {
	games GameStore
	stats StatStore
}

// NewCommitter creates a committer over the two stores.
func NewCommitter(games GameStore, stats StatStore) *Committer {
	return &Committer{games: games, stats: stats}
}

// CommitGames persists a batch of reconciled games under the given policy.
// Under VenueStrict a single unmatched venue rejects the whole batch
// before anything is inserted, and the report names every offending game.
// Under VenueLenient unmatched games take defaultVenue instead.
func (c *Committer) CommitGames(ctx context.Context, records []*GameRecord, policy VenuePolicy, defaultVenue int, report *Report) error {
	if len(records) == 0 {
		return nil
	}

	if policy == VenueStrict {
		missing := false
		for _, rec := range records {
			if rec.VenueID == nil {
				report.MissingArenas[rec.GameID] = rec.Arena
				missing = true
			}
		}
		if missing {
			report.Failed += len(records)
			ids := make([]int, 0, len(report.MissingArenas))
			for id := range report.MissingArenas {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			return fmt.Errorf("strict venue policy: %d game(s) without a venue match %v, batch aborted", len(ids), ids)
		}
	}

	games := make([]*store.Game, 0, len(records))
	for _, rec := range records {
		game := &store.Game{
			GameID:     rec.GameID,
			GameDate:   rec.Date,
			HomeTeamID: rec.HomeTeamID,
			AwayTeamID: rec.AwayTeamID,
		}
		if rec.VenueID != nil {
			game.VenueID = sql.NullInt32{Int32: int32(*rec.VenueID), Valid: true}
		} else if policy == VenueLenient {
			log.Printf("[commit] game %d arena %q unmatched, using default venue %d", rec.GameID, rec.Arena, defaultVenue)
			game.VenueID = sql.NullInt32{Int32: int32(defaultVenue), Valid: true}
		}
		if rec.HomeScore != nil {
			game.HomeScore = sql.NullInt32{Int32: int32(*rec.HomeScore), Valid: true}
		}
		if rec.AwayScore != nil {
			game.AwayScore = sql.NullInt32{Int32: int32(*rec.AwayScore), Valid: true}
		}
		if rec.Attendance != nil {
			game.Attendance = sql.NullInt32{Int32: int32(*rec.Attendance), Valid: true}
		}
		games = append(games, game)
	}

	if err := c.games.InsertBatch(ctx, games); err != nil {
		report.Failed += len(games)
		return fmt.Errorf("committing game batch: %w", err)
	}

	report.Inserted += len(games)
	return nil
}

// CommitStats persists a batch of box-score lines. A player name the
// resolver cannot place rejects the whole batch; the report lists every
// unmapped name verbatim. Lines whose (game, player) pair is already
// stored, or that repeat within the batch, count as duplicates.
func (c *Committer) CommitStats(ctx context.Context, rows []StatRow, resolver *Resolver, existing map[repository.StatKey]struct{}, report *Report) error {
	var unmapped []string
	seen := make(map[string]struct{})
	lines := make([]*store.PlayerGameStats, 0, len(rows))
	batch := make(map[repository.StatKey]struct{})

	for _, row := range rows {
		playerID, ok := resolver.Player(row.PlayerName)
		if !ok {
			if _, dup := seen[row.PlayerName]; !dup {
				seen[row.PlayerName] = struct{}{}
				unmapped = append(unmapped, row.PlayerName)
			}
			continue
		}

		key := repository.StatKey{GameID: row.GameID, PlayerID: playerID}
		if _, dup := existing[key]; dup {
			report.SkippedDuplicate++
			continue
		}
		if _, dup := batch[key]; dup {
			report.SkippedDuplicate++
			continue
		}
		batch[key] = struct{}{}

		lines = append(lines, &store.PlayerGameStats{
			GameID:    row.GameID,
			PlayerID:  playerID,
			Minutes:   row.Minutes,
			Points:    row.Points,
			Rebounds:  row.Rebounds,
			Assists:   row.Assists,
			Steals:    row.Steals,
			Blocks:    row.Blocks,
			Turnovers: row.Turnovers,
			Fouls:     row.Fouls,
		})
	}

	if len(unmapped) > 0 {
		sort.Strings(unmapped)
		report.UnmappedPlayers = unmapped
		report.Failed += len(rows)
		return fmt.Errorf("unmapped player name(s) %v, batch aborted", unmapped)
	}

	if err := c.stats.InsertBatch(ctx, lines); err != nil {
		report.Failed += len(lines)
		return fmt.Errorf("committing stats batch: %w", err)
	}

	report.Inserted += len(lines)
	return nil
}
