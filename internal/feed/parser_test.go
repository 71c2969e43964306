package feed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelopeFromJSON(t *testing.T, raw string) *Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	return &env
}

func TestParseLeagueGames(t *testing.T) {
	env := envelopeFromJSON(t, `{
		"resource": "leaguegamefinder",
		"resultSets": [{
			"name": "LeagueGameFinderResults",
			"headers": ["SEASON_TYPE", "GAME_ID", "GAME_DATE", "TEAM_ABBREVIATION", "MATCHUP", "PTS"],
			"rowSet": [
				["Regular Season", "0022500123", "2026-01-15", "BOS", "BOS vs. NYK", 112],
				["Regular Season", "0022500123", "2026-01-15", "NYK", "NYK @ BOS", 104],
				["Regular Season", "0022500124", "2026-01-15", "LAL", "LAL vs. DEN", null]
			]
		}]
	}`)

	rows, err := ParseLeagueGames(env)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "0022500123", rows[0].GameID)
	assert.Equal(t, "BOS", rows[0].TeamAbbreviation)
	assert.Equal(t, "BOS vs. NYK", rows[0].Matchup)
	require.NotNil(t, rows[0].Points)
	assert.Equal(t, 112, *rows[0].Points)

	// Null score stays null rather than coercing to zero
	assert.Nil(t, rows[2].Points)
}

func TestParseLeagueGamesHeaderOrderIndependent(t *testing.T) {
	env := envelopeFromJSON(t, `{
		"resultSets": [{
			"name": "LeagueGameFinderResults",
			"headers": ["PTS", "MATCHUP", "GAME_ID", "GAME_DATE", "TEAM_ABBREVIATION", "SEASON_TYPE"],
			"rowSet": [[98, "MIA @ ORL", "0022500200", "2026-02-01", "MIA", "Regular Season"]]
		}]
	}`)

	rows, err := ParseLeagueGames(env)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0022500200", rows[0].GameID)
	assert.Equal(t, "MIA", rows[0].TeamAbbreviation)
	require.NotNil(t, rows[0].Points)
	assert.Equal(t, 98, *rows[0].Points)
}

func TestParseLeagueGamesMissingResultSet(t *testing.T) {
	env := envelopeFromJSON(t, `{"resultSets": [{"name": "SomethingElse", "headers": [], "rowSet": []}]}`)

	_, err := ParseLeagueGames(env)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LeagueGameFinderResults")
}

func TestParsePlayerGameLogsCoercesMissingStats(t *testing.T) {
	env := envelopeFromJSON(t, `{
		"resultSets": [{
			"name": "PlayerGameLogs",
			"headers": ["GAME_ID", "GAME_DATE", "PLAYER_NAME", "MIN", "PTS", "REB", "AST", "STL", "BLK", "TOV", "PF"],
			"rowSet": [
				["0022500123", "2026-01-15", "Jayson Tatum", 36, 31, 8, 5, 1, 0, 3, 2],
				["0022500123", "2026-01-15", "Jrue Holiday", null, null, 4, 7, 2, 1, null, 1]
			]
		}]
	}`)

	rows, err := ParsePlayerGameLogs(env)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Jayson Tatum", rows[0].PlayerName)
	assert.Equal(t, 31, rows[0].Points)
	assert.Equal(t, 36, rows[0].Minutes)

	// Null counting stats coerce to 0
	assert.Equal(t, 0, rows[1].Minutes)
	assert.Equal(t, 0, rows[1].Points)
	assert.Equal(t, 0, rows[1].Turnovers)
	assert.Equal(t, 7, rows[1].Assists)
}

func TestParseScoreboard(t *testing.T) {
	env := envelopeFromJSON(t, `{
		"resultSets": [{
			"name": "GameHeader",
			"headers": ["GAME_ID", "ARENA_NAME", "ATTENDANCE"],
			"rowSet": [
				["0022500123", "TD Garden", 19156],
				["0022500124", "Crypto.com Arena", null]
			]
		}]
	}`)

	games, err := ParseScoreboard(env)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "TD Garden", games[0].ArenaName)
	assert.Equal(t, 19156, games[0].Attendance)
	assert.Equal(t, 0, games[1].Attendance)
}

func TestRowReaderNumericString(t *testing.T) {
	rs := &ResultSet{
		Headers: []string{"PTS", "MIN"},
		RowSet:  [][]interface{}{{"23", " 31 "}},
	}
	reader := newRowReader(rs)

	assert.Equal(t, 23, reader.intOrZero(rs.RowSet[0], "PTS"))
	assert.Equal(t, 31, reader.intOrZero(rs.RowSet[0], "MIN"))
	assert.Equal(t, 0, reader.intOrZero(rs.RowSet[0], "REB"))
}
