package feed

import "encoding/json"

// Envelope is the feed's response shape: a resource name plus a list of
// named result sets, each a flat headers array and a row-set of cells.
type Envelope struct {
	Resource   string          `json:"resource"`
	Parameters json.RawMessage `json:"parameters"`
	ResultSets []ResultSet     `json:"resultSets"`
}

// ResultSet is one named table inside an Envelope.
type ResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// LeagueGameRow is one row from the league game finder. The feed emits one
// row per team per game, so every game appears twice.
type LeagueGameRow struct {
	GameID           string `json:"game_id"`
	GameDate         string `json:"game_date"`
	TeamAbbreviation string `json:"team_abbreviation"`
	Matchup          string `json:"matchup"`
	SeasonType       string `json:"season_type"`
	Points           *int   `json:"points"`
}

// PlayerGameLogRow is one player's line from the player game logs.
type PlayerGameLogRow struct {
	GameID     string `json:"game_id"`
	GameDate   string `json:"game_date"`
	PlayerName string `json:"player_name"`
	Minutes    int    `json:"minutes"`
	Points     int    `json:"points"`
	Rebounds   int    `json:"rebounds"`
	Assists    int    `json:"assists"`
	Steals     int    `json:"steals"`
	Blocks     int    `json:"blocks"`
	Turnovers  int    `json:"turnovers"`
	Fouls      int    `json:"fouls"`
}

// ScoreboardGame is one game header row from the daily scoreboard, the
// source for venue and attendance enrichment.
type ScoreboardGame struct {
	GameID     string `json:"game_id"`
	ArenaName  string `json:"arena_name"`
	Attendance int    `json:"attendance"`
}
