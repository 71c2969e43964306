package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/courtside/hoophub/internal/store"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ListAverages returns every player with per-game averages across all
// stored games, sorted by points per game.
func (r *PlayerRepository) ListAverages(ctx context.Context) ([]*store.PlayerAverages, error) {
	query := `
		SELECT p.player_id, p.first_name || ' ' || p.last_name AS name,
			t.name AS team, p.position,
			COUNT(s.game_id) AS games,
			ROUND(AVG(s.points), 1) AS points,
			ROUND(AVG(s.rebounds), 1) AS rebounds,
			ROUND(AVG(s.assists), 1) AS assists,
			ROUND(AVG(s.blocks), 1) AS blocks,
			ROUND(AVG(s.steals), 1) AS steals,
			ROUND(AVG(s.turnovers), 1) AS turnovers,
			ROUND(AVG(s.fouls), 1) AS fouls
		FROM players p
		JOIN teams t ON t.team_id = p.team_id
		LEFT JOIN player_game_stats s ON s.player_id = p.player_id
		GROUP BY p.player_id, p.first_name, p.last_name, t.name, p.position
		ORDER BY points DESC NULLS LAST
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying player averages: %w", err)
	}
	defer rows.Close()

	var players []*store.PlayerAverages
	for rows.Next() {
		p := &store.PlayerAverages{}
		if err := rows.Scan(
			&p.PlayerID, &p.Name, &p.Team, &p.Position, &p.Games,
			&p.Points, &p.Rebounds, &p.Assists, &p.Blocks,
			&p.Steals, &p.Turnovers, &p.Fouls,
		); err != nil {
			return nil, fmt.Errorf("scanning player averages: %w", err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}

// GetByID finds a player by ID.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.Player, error) {
	query := `
		SELECT player_id, team_id, first_name, last_name, age, position,
			jersey_number, height_inches, weight_pounds
		FROM players
		WHERE player_id = $1
	`

	player := &store.Player{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&player.PlayerID, &player.TeamID, &player.FirstName, &player.LastName,
		&player.Age, &player.Position, &player.JerseyNumber,
		&player.HeightInches, &player.WeightPounds,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// GetAverages returns one player's per-game averages.
func (r *PlayerRepository) GetAverages(ctx context.Context, playerID int) (*store.PlayerAverages, error) {
	query := `
		SELECT p.player_id, p.first_name || ' ' || p.last_name AS name,
			t.name AS team, p.position,
			COUNT(s.game_id) AS games,
			ROUND(AVG(s.points), 1) AS points,
			ROUND(AVG(s.rebounds), 1) AS rebounds,
			ROUND(AVG(s.assists), 1) AS assists,
			ROUND(AVG(s.blocks), 1) AS blocks,
			ROUND(AVG(s.steals), 1) AS steals,
			ROUND(AVG(s.turnovers), 1) AS turnovers,
			ROUND(AVG(s.fouls), 1) AS fouls
		FROM players p
		JOIN teams t ON t.team_id = p.team_id
		LEFT JOIN player_game_stats s ON s.player_id = p.player_id
		WHERE p.player_id = $1
		GROUP BY p.player_id, p.first_name, p.last_name, t.name, p.position
	`

	p := &store.PlayerAverages{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(
		&p.PlayerID, &p.Name, &p.Team, &p.Position, &p.Games,
		&p.Points, &p.Rebounds, &p.Assists, &p.Blocks,
		&p.Steals, &p.Turnovers, &p.Fouls,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player averages: %w", err)
	}

	return p, nil
}

// ListByTeam returns a team's roster ordered by last name.
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*store.Player, error) {
	query := `
		SELECT player_id, team_id, first_name, last_name, age, position,
			jersey_number, height_inches, weight_pounds
		FROM players
		WHERE team_id = $1
		ORDER BY last_name, first_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying roster: %w", err)
	}
	defer rows.Close()

	var players []*store.Player
	for rows.Next() {
		player := &store.Player{}
		if err := rows.Scan(
			&player.PlayerID, &player.TeamID, &player.FirstName, &player.LastName,
			&player.Age, &player.Position, &player.JerseyNumber,
			&player.HeightInches, &player.WeightPounds,
		); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players = append(players, player)
	}

	return players, rows.Err()
}

// Insert creates a new player and returns its assigned ID.
func (r *PlayerRepository) Insert(ctx context.Context, player *store.Player) (int, error) {
	query := `
		INSERT INTO players (team_id, first_name, last_name, age, position,
			jersey_number, height_inches, weight_pounds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING player_id
	`

	var id int
	err := r.db.DB().QueryRowContext(ctx, query,
		player.TeamID, player.FirstName, player.LastName, player.Age,
		player.Position, player.JerseyNumber, player.HeightInches, player.WeightPounds,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting player: %w", err)
	}

	return id, nil
}

// NameMap returns lowercased trimmed "first last" -> player_id for the
// identity resolver. When two players share a full name the later row wins
// and the collision is logged; the stats feed gives us nothing better to
// key on than the display name.
func (r *PlayerRepository) NameMap(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.DB().QueryContext(ctx, "SELECT first_name, last_name, player_id FROM players ORDER BY player_id")
	if err != nil {
		return nil, fmt.Errorf("querying player names: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var first, last string
		var id int
		if err := rows.Scan(&first, &last, &id); err != nil {
			return nil, fmt.Errorf("scanning player name: %w", err)
		}
		key := strings.ToLower(strings.TrimSpace(first + " " + last))
		if prev, exists := index[key]; exists {
			log.Printf("[players] ⚠️ name collision on %q: player %d shadows player %d", key, id, prev)
		}
		index[key] = id
	}

	return index, rows.Err()
}
