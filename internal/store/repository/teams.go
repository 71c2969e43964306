package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtside/hoophub/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// List returns all teams ordered by name.
func (r *TeamRepository) List(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, name, abbreviation, conference, division, city, state, coach_id, venue_id
		FROM teams
		ORDER BY name
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		if err := rows.Scan(
			&team.TeamID, &team.Name, &team.Abbreviation, &team.Conference,
			&team.Division, &team.City, &team.State, &team.CoachID, &team.VenueID,
		); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// TeamBio is a team joined with its coach and home venue.
type TeamBio struct {
	store.Team
	CoachName sql.NullString `json:"coach_name,omitempty" db:"coach_name"`
	VenueName sql.NullString `json:"venue_name,omitempty" db:"venue_name"`
	Capacity  sql.NullInt32  `json:"capacity,omitempty" db:"capacity"`
}

// GetByID finds a team with its coach and venue joined in.
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*TeamBio, error) {
	query := `
		SELECT t.team_id, t.name, t.abbreviation, t.conference, t.division,
			t.city, t.state, t.coach_id, t.venue_id,
			hc.first_name || ' ' || hc.last_name AS coach_name,
			v.name AS venue_name, v.capacity
		FROM teams t
		LEFT JOIN head_coaches hc ON hc.coach_id = t.coach_id
		LEFT JOIN venues v ON v.venue_id = t.venue_id
		WHERE t.team_id = $1
	`

	bio := &TeamBio{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&bio.TeamID, &bio.Name, &bio.Abbreviation, &bio.Conference, &bio.Division,
		&bio.City, &bio.State, &bio.CoachID, &bio.VenueID,
		&bio.CoachName, &bio.VenueName, &bio.Capacity,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return bio, nil
}

// AbbreviationMap returns abbreviation -> team_id for the identity resolver.
// Matching is case-sensitive exact, the form the feed emits.
func (r *TeamRepository) AbbreviationMap(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.DB().QueryContext(ctx, "SELECT abbreviation, team_id FROM teams")
	if err != nil {
		return nil, fmt.Errorf("querying team abbreviations: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var abbr string
		var id int
		if err := rows.Scan(&abbr, &id); err != nil {
			return nil, fmt.Errorf("scanning team abbreviation: %w", err)
		}
		index[abbr] = id
	}

	return index, rows.Err()
}

// Record returns a team's win/loss record across final games. When homeOnly
// or awayOnly is set the record is restricted to that side.
func (r *TeamRepository) Record(ctx context.Context, teamID int, homeOnly, awayOnly bool) (*store.TeamRecord, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE
				WHEN home_team_id = $1 AND home_score > away_score THEN 1
				WHEN away_team_id = $1 AND away_score > home_score THEN 1
				ELSE 0 END), 0) AS wins,
			COALESCE(SUM(CASE
				WHEN home_team_id = $1 AND home_score < away_score THEN 1
				WHEN away_team_id = $1 AND away_score < home_score THEN 1
				ELSE 0 END), 0) AS losses
		FROM games
		WHERE (home_team_id = $1 OR away_team_id = $1)
			AND home_score IS NOT NULL AND away_score IS NOT NULL
			AND ($2 = FALSE OR home_team_id = $1)
			AND ($3 = FALSE OR away_team_id = $1)
	`

	record := &store.TeamRecord{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID, homeOnly, awayOnly).Scan(&record.Wins, &record.Losses)
	if err != nil {
		return nil, fmt.Errorf("querying team record: %w", err)
	}

	return record, nil
}

// HeadToHead returns the completed games between two teams, newest first.
func (r *TeamRepository) HeadToHead(ctx context.Context, teamID, opponentID int) ([]*store.GameSummary, error) {
	query := `
		SELECT g.game_id, g.game_date::TEXT, ht.name AS home_team, at.name AS away_team,
			g.home_score, g.away_score
		FROM games g
		JOIN teams ht ON ht.team_id = g.home_team_id
		JOIN teams at ON at.team_id = g.away_team_id
		WHERE ((g.home_team_id = $1 AND g.away_team_id = $2)
			OR (g.home_team_id = $2 AND g.away_team_id = $1))
			AND g.home_score IS NOT NULL AND g.away_score IS NOT NULL
		ORDER BY g.game_date DESC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, opponentID)
	if err != nil {
		return nil, fmt.Errorf("querying head to head: %w", err)
	}
	defer rows.Close()

	var games []*store.GameSummary
	for rows.Next() {
		game := &store.GameSummary{}
		if err := rows.Scan(
			&game.GameID, &game.GameDate, &game.HomeTeam, &game.AwayTeam,
			&game.HomeScore, &game.AwayScore,
		); err != nil {
			return nil, fmt.Errorf("scanning head to head game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
