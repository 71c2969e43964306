package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtside/hoophub/internal/store"
)

// GameRepository handles game data access
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// GetByID finds a game by ID.
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.Game, error) {
	query := `
		SELECT game_id, game_date::TEXT, home_team_id, away_team_id,
			venue_id, home_score, away_score, attendance
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID,
		&game.VenueID, &game.HomeScore, &game.AwayScore, &game.Attendance,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return game, nil
}

// ListByDate returns the games on one date joined with team names.
func (r *GameRepository) ListByDate(ctx context.Context, date string) ([]*store.GameSummary, error) {
	query := `
		SELECT g.game_id, g.game_date::TEXT, ht.name AS home_team, at.name AS away_team,
			g.home_score, g.away_score
		FROM games g
		JOIN teams ht ON ht.team_id = g.home_team_id
		JOIN teams at ON at.team_id = g.away_team_id
		WHERE g.game_date = $1
		ORDER BY g.game_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("querying games by date: %w", err)
	}
	defer rows.Close()

	var games []*store.GameSummary
	for rows.Next() {
		game := &store.GameSummary{}
		if err := rows.Scan(
			&game.GameID, &game.GameDate, &game.HomeTeam, &game.AwayTeam,
			&game.HomeScore, &game.AwayScore,
		); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// ExistingIDs returns the set of game IDs already stored. The ingestion
// pipeline loads this once per run to skip duplicates without re-querying.
func (r *GameRepository) ExistingIDs(ctx context.Context) (map[int]struct{}, error) {
	rows, err := r.db.DB().QueryContext(ctx, "SELECT game_id FROM games")
	if err != nil {
		return nil, fmt.Errorf("querying existing game ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning game id: %w", err)
		}
		ids[id] = struct{}{}
	}

	return ids, rows.Err()
}

// InsertBatch inserts a batch of games in one transaction. Either every
// game lands or none does.
func (r *GameRepository) InsertBatch(ctx context.Context, games []*store.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO games (game_id, game_date, home_team_id, away_team_id,
			venue_id, home_score, away_score, attendance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, game := range games {
		if _, err := tx.ExecContext(ctx, query,
			game.GameID, game.GameDate, game.HomeTeamID, game.AwayTeamID,
			game.VenueID, game.HomeScore, game.AwayScore, game.Attendance,
		); err != nil {
			return fmt.Errorf("inserting game %d: %w", game.GameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing games: %w", err)
	}

	return nil
}

// AttachVenueAttendance fills in venue and attendance on an already-stored
// game, touching only columns that are currently null. Stored values are
// never overwritten by a later enrichment pass.
func (r *GameRepository) AttachVenueAttendance(ctx context.Context, gameID int, venueID, attendance sql.NullInt32) error {
	query := `
		UPDATE games
		SET venue_id = COALESCE(venue_id, $2),
			attendance = COALESCE(attendance, $3)
		WHERE game_id = $1
	`

	if _, err := r.db.DB().ExecContext(ctx, query, gameID, venueID, attendance); err != nil {
		return fmt.Errorf("attaching enrichment to game %d: %w", gameID, err)
	}

	return nil
}

// ListUnenriched returns stored games missing a venue or attendance, with
// their dates, for the post-hoc enrichment pass.
func (r *GameRepository) ListUnenriched(ctx context.Context) ([]*store.Game, error) {
	query := `
		SELECT game_id, game_date::TEXT, home_team_id, away_team_id,
			venue_id, home_score, away_score, attendance
		FROM games
		WHERE venue_id IS NULL OR attendance IS NULL
		ORDER BY game_date
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying unenriched games: %w", err)
	}
	defer rows.Close()

	var games []*store.Game
	for rows.Next() {
		game := &store.Game{}
		if err := rows.Scan(
			&game.GameID, &game.GameDate, &game.HomeTeamID, &game.AwayTeamID,
			&game.VenueID, &game.HomeScore, &game.AwayScore, &game.Attendance,
		); err != nil {
			return nil, fmt.Errorf("scanning unenriched game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
