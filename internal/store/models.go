package store

import (
	"database/sql"
)

// Team represents an NBA franchise.
type Team struct {
	TeamID       int            `json:"team_id" db:"team_id"`
	Name         string         `json:"name" db:"name"`
	Abbreviation string         `json:"abbreviation" db:"abbreviation"`
	Conference   sql.NullString `json:"conference,omitempty" db:"conference"`
	Division     sql.NullString `json:"division,omitempty" db:"division"`
	City         sql.NullString `json:"city,omitempty" db:"city"`
	State        sql.NullString `json:"state,omitempty" db:"state"`
	CoachID      sql.NullInt32  `json:"coach_id,omitempty" db:"coach_id"`
	VenueID      sql.NullInt32  `json:"venue_id,omitempty" db:"venue_id"`
}

// Venue represents an arena. Names are stored whitespace-trimmed and are
// the exact-match key used when attaching feed arena data to games.
type Venue struct {
	VenueID  int           `json:"venue_id" db:"venue_id"`
	Name     string        `json:"name" db:"name"`
	Capacity sql.NullInt32 `json:"capacity,omitempty" db:"capacity"`
}

// Coach represents a head coach.
type Coach struct {
	CoachID   int    `json:"coach_id" db:"coach_id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
}

// Player represents a rostered player.
type Player struct {
	PlayerID     int            `json:"player_id" db:"player_id"`
	TeamID       int            `json:"team_id" db:"team_id"`
	FirstName    string         `json:"first_name" db:"first_name"`
	LastName     string         `json:"last_name" db:"last_name"`
	Age          sql.NullInt32  `json:"age,omitempty" db:"age"`
	Position     sql.NullString `json:"position,omitempty" db:"position"`
	JerseyNumber sql.NullInt32  `json:"jersey_number,omitempty" db:"jersey_number"`
	HeightInches sql.NullInt32  `json:"height_inches,omitempty" db:"height_inches"`
	WeightPounds sql.NullInt32  `json:"weight_pounds,omitempty" db:"weight_pounds"`
}

// Game represents a single game. GameID is derived from the feed's external
// game ID with leading zeros stripped, so it is stable across runs.
type Game struct {
	GameID     int           `json:"game_id" db:"game_id"`
	GameDate   string        `json:"game_date" db:"game_date"`
	HomeTeamID int           `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int           `json:"away_team_id" db:"away_team_id"`
	VenueID    sql.NullInt32 `json:"venue_id,omitempty" db:"venue_id"`
	HomeScore  sql.NullInt32 `json:"home_score,omitempty" db:"home_score"`
	AwayScore  sql.NullInt32 `json:"away_score,omitempty" db:"away_score"`
	Attendance sql.NullInt32 `json:"attendance,omitempty" db:"attendance"`
}

// PlayerGameStats is one player's box-score line for one game.
// (game_id, player_id) is the primary key; at most one line per pair.
type PlayerGameStats struct {
	GameID    int `json:"game_id" db:"game_id"`
	PlayerID  int `json:"player_id" db:"player_id"`
	Minutes   int `json:"minutes" db:"minutes"`
	Points    int `json:"points" db:"points"`
	Rebounds  int `json:"rebounds" db:"rebounds"`
	Assists   int `json:"assists" db:"assists"`
	Steals    int `json:"steals" db:"steals"`
	Blocks    int `json:"blocks" db:"blocks"`
	Turnovers int `json:"turnovers" db:"turnovers"`
	Fouls     int `json:"fouls" db:"fouls"`
}

// StandingsRow is one row of the standings view. Wins/losses/win_pct are
// computed by the database; Go never re-derives them.
type StandingsRow struct {
	TeamID     int             `json:"team_id" db:"team_id"`
	Name       string          `json:"name" db:"name"`
	Conference sql.NullString  `json:"conference,omitempty" db:"conference"`
	Division   sql.NullString  `json:"division,omitempty" db:"division"`
	Wins       int             `json:"wins" db:"wins"`
	Losses     int             `json:"losses" db:"losses"`
	WinPct     sql.NullFloat64 `json:"win_pct,omitempty" db:"win_pct"`
}

// BoxScoreLine is one player's line in a game box score, joined with the
// player and team names the dashboard renders.
type BoxScoreLine struct {
	TeamName   string `json:"team_name" db:"team_name"`
	PlayerName string `json:"player_name" db:"player_name"`
	Minutes    int    `json:"minutes" db:"minutes"`
	Points     int    `json:"points" db:"points"`
	Rebounds   int    `json:"rebounds" db:"rebounds"`
	Assists    int    `json:"assists" db:"assists"`
	Blocks     int    `json:"blocks" db:"blocks"`
	Steals     int    `json:"steals" db:"steals"`
	Turnovers  int    `json:"turnovers" db:"turnovers"`
	Fouls      int    `json:"fouls" db:"fouls"`
}

// GameSummary is a game row joined with team names for listing pages.
type GameSummary struct {
	GameID    int           `json:"game_id" db:"game_id"`
	GameDate  string        `json:"game_date" db:"game_date"`
	HomeTeam  string        `json:"home_team" db:"home_team"`
	AwayTeam  string        `json:"away_team" db:"away_team"`
	HomeScore sql.NullInt32 `json:"home_score,omitempty" db:"home_score"`
	AwayScore sql.NullInt32 `json:"away_score,omitempty" db:"away_score"`
}

// PlayerAverages is a player's per-game averages across all stored games.
type PlayerAverages struct {
	PlayerID  int             `json:"player_id" db:"player_id"`
	Name      string          `json:"name" db:"name"`
	Team      string          `json:"team" db:"team"`
	Position  sql.NullString  `json:"position,omitempty" db:"position"`
	Games     int             `json:"games" db:"games"`
	Points    sql.NullFloat64 `json:"points,omitempty" db:"points"`
	Rebounds  sql.NullFloat64 `json:"rebounds,omitempty" db:"rebounds"`
	Assists   sql.NullFloat64 `json:"assists,omitempty" db:"assists"`
	Blocks    sql.NullFloat64 `json:"blocks,omitempty" db:"blocks"`
	Steals    sql.NullFloat64 `json:"steals,omitempty" db:"steals"`
	Turnovers sql.NullFloat64 `json:"turnovers,omitempty" db:"turnovers"`
	Fouls     sql.NullFloat64 `json:"fouls,omitempty" db:"fouls"`
}

// TeamRecord is a win/loss split for a team, optionally restricted to home
// or away games.
type TeamRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}
