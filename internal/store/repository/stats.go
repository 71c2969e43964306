package repository

import (
	"context"
	"fmt"

	"github.com/courtside/hoophub/internal/store"
)

// StatKey identifies one box-score line.
type StatKey struct {
	GameID   int
	PlayerID int
}

// StatsRepository handles player game stats data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// ExistingKeys returns the set of (game, player) pairs already stored.
func (r *StatsRepository) ExistingKeys(ctx context.Context) (map[StatKey]struct{}, error) {
	rows, err := r.db.DB().QueryContext(ctx, "SELECT game_id, player_id FROM player_game_stats")
	if err != nil {
		return nil, fmt.Errorf("querying existing stat keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[StatKey]struct{})
	for rows.Next() {
		var key StatKey
		if err := rows.Scan(&key.GameID, &key.PlayerID); err != nil {
			return nil, fmt.Errorf("scanning stat key: %w", err)
		}
		keys[key] = struct{}{}
	}

	return keys, rows.Err()
}

// InsertBatch inserts a batch of box-score lines in one transaction.
func (r *StatsRepository) InsertBatch(ctx context.Context, stats []*store.PlayerGameStats) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO player_game_stats (game_id, player_id, minutes, points,
			rebounds, assists, steals, blocks, turnovers, fouls)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, line := range stats {
		if _, err := tx.ExecContext(ctx, query,
			line.GameID, line.PlayerID, line.Minutes, line.Points,
			line.Rebounds, line.Assists, line.Steals, line.Blocks,
			line.Turnovers, line.Fouls,
		); err != nil {
			return fmt.Errorf("inserting stats for game %d player %d: %w", line.GameID, line.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing player stats: %w", err)
	}

	return nil
}

// BoxScore returns every player line for one game joined with player and
// team names, home team first, scorers first within each team.
func (r *StatsRepository) BoxScore(ctx context.Context, gameID int) ([]*store.BoxScoreLine, error) {
	query := `
		SELECT t.name AS team_name,
			p.first_name || ' ' || p.last_name AS player_name,
			s.minutes, s.points, s.rebounds, s.assists,
			s.blocks, s.steals, s.turnovers, s.fouls
		FROM player_game_stats s
		JOIN players p ON p.player_id = s.player_id
		JOIN teams t ON t.team_id = p.team_id
		JOIN games g ON g.game_id = s.game_id
		WHERE s.game_id = $1
		ORDER BY (t.team_id = g.home_team_id) DESC, s.points DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying box score: %w", err)
	}
	defer rows.Close()

	var lines []*store.BoxScoreLine
	for rows.Next() {
		line := &store.BoxScoreLine{}
		if err := rows.Scan(
			&line.TeamName, &line.PlayerName, &line.Minutes, &line.Points,
			&line.Rebounds, &line.Assists, &line.Blocks, &line.Steals,
			&line.Turnovers, &line.Fouls,
		); err != nil {
			return nil, fmt.Errorf("scanning box score line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
