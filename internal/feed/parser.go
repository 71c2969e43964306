package feed

import (
	"fmt"
	"strconv"
	"strings"
)

// Result set and column names used by the feed. Columns are looked up by
// header label rather than position, which survives the feed reordering or
// appending columns.
const (
	setLeagueGameFinder = "LeagueGameFinderResults"
	setPlayerGameLogs   = "PlayerGameLogs"
	setGameHeader       = "GameHeader"

	colGameID     = "GAME_ID"
	colGameDate   = "GAME_DATE"
	colTeamAbbrev = "TEAM_ABBREVIATION"
	colMatchup    = "MATCHUP"
	colSeasonType = "SEASON_TYPE"
	colPlayerName = "PLAYER_NAME"
	colArenaName  = "ARENA_NAME"
	colAttendance = "ATTENDANCE"
	colMinutes    = "MIN"
	colPoints     = "PTS"
	colRebounds   = "REB"
	colAssists    = "AST"
	colSteals     = "STL"
	colBlocks     = "BLK"
	colTurnovers  = "TOV"
	colFouls      = "PF"
)

// rowReader reads cells out of a result set row by header label.
type rowReader struct {
	index map[string]int
}

func newRowReader(rs *ResultSet) *rowReader {
	index := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		index[h] = i
	}
	return &rowReader{index: index}
}

// str returns the cell as a string, or "" when absent or null.
func (r *rowReader) str(row []interface{}, col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// intOrZero returns the cell as an int, coercing missing, null, or
// non-numeric cells to 0.
func (r *rowReader) intOrZero(row []interface{}, col string) int {
	i, ok := r.index[col]
	if !ok || i >= len(row) || row[i] == nil {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// nullableInt returns the cell as an int, or nil when absent, null, or
// non-numeric. Used for scores, where "no value yet" must stay null.
func (r *rowReader) nullableInt(row []interface{}, col string) *int {
	i, ok := r.index[col]
	if !ok || i >= len(row) || row[i] == nil {
		return nil
	}
	switch v := row[i].(type) {
	case float64:
		n := int(v)
		return &n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// findResultSet locates a result set by name within an envelope.
func findResultSet(env *Envelope, name string) (*ResultSet, error) {
	for i := range env.ResultSets {
		if env.ResultSets[i].Name == name {
			return &env.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("result set %q not found in response", name)
}

// ParseLeagueGames extracts league game finder rows from an envelope.
func ParseLeagueGames(env *Envelope) ([]LeagueGameRow, error) {
	rs, err := findResultSet(env, setLeagueGameFinder)
	if err != nil {
		return nil, err
	}

	reader := newRowReader(rs)
	rows := make([]LeagueGameRow, 0, len(rs.RowSet))
	for _, raw := range rs.RowSet {
		rows = append(rows, LeagueGameRow{
			GameID:           reader.str(raw, colGameID),
			GameDate:         reader.str(raw, colGameDate),
			TeamAbbreviation: reader.str(raw, colTeamAbbrev),
			Matchup:          reader.str(raw, colMatchup),
			SeasonType:       reader.str(raw, colSeasonType),
			Points:           reader.nullableInt(raw, colPoints),
		})
	}
	return rows, nil
}

// ParsePlayerGameLogs extracts player game log rows from an envelope.
// Counting stats coerce to 0 when the feed leaves a cell empty.
func ParsePlayerGameLogs(env *Envelope) ([]PlayerGameLogRow, error) {
	rs, err := findResultSet(env, setPlayerGameLogs)
	if err != nil {
		return nil, err
	}

	reader := newRowReader(rs)
	rows := make([]PlayerGameLogRow, 0, len(rs.RowSet))
	for _, raw := range rs.RowSet {
		rows = append(rows, PlayerGameLogRow{
			GameID:     reader.str(raw, colGameID),
			GameDate:   reader.str(raw, colGameDate),
			PlayerName: reader.str(raw, colPlayerName),
			Minutes:    reader.intOrZero(raw, colMinutes),
			Points:     reader.intOrZero(raw, colPoints),
			Rebounds:   reader.intOrZero(raw, colRebounds),
			Assists:    reader.intOrZero(raw, colAssists),
			Steals:     reader.intOrZero(raw, colSteals),
			Blocks:     reader.intOrZero(raw, colBlocks),
			Turnovers:  reader.intOrZero(raw, colTurnovers),
			Fouls:      reader.intOrZero(raw, colFouls),
		})
	}
	return rows, nil
}

// ParseScoreboard extracts game header rows from a daily scoreboard
// envelope.
func ParseScoreboard(env *Envelope) ([]ScoreboardGame, error) {
	rs, err := findResultSet(env, setGameHeader)
	if err != nil {
		return nil, err
	}

	reader := newRowReader(rs)
	games := make([]ScoreboardGame, 0, len(rs.RowSet))
	for _, raw := range rs.RowSet {
		games = append(games, ScoreboardGame{
			GameID:     reader.str(raw, colGameID),
			ArenaName:  reader.str(raw, colArenaName),
			Attendance: reader.intOrZero(raw, colAttendance),
		})
	}
	return games, nil
}
