package ingest

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hoophub/internal/feed"
	"github.com/courtside/hoophub/internal/retry"
	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// fakeFeed serves canned envelopes for every feed operation.
type fakeFeed struct {
	leagueGames *feed.Envelope
	gameLogs    *feed.Envelope
	scoreboards map[string]*feed.Envelope
	leagueErr   error
}

func (f *fakeFeed) LeagueGames(ctx context.Context, season string) (*feed.Envelope, error) {
	return f.leagueGames, f.leagueErr
}

func (f *fakeFeed) PlayerGameLogs(ctx context.Context, season string) (*feed.Envelope, error) {
	return f.gameLogs, nil
}

func (f *fakeFeed) Scoreboard(ctx context.Context, date string) (*feed.Envelope, error) {
	env, ok := f.scoreboards[date]
	if !ok {
		return nil, errors.New("no scoreboard")
	}
	return env, nil
}

type fakeResolverSource struct{}

func (fakeResolverSource) AbbreviationMap(ctx context.Context) (map[string]int, error) {
	return map[string]int{"BOS": 1, "NYK": 19}, nil
}

func (fakeResolverSource) VenueNameMap(ctx context.Context) (map[string]int, error) {
	return map[string]int{"TD Garden": 1}, nil
}

func (fakeResolverSource) PlayerNameMap(ctx context.Context) (map[string]int, error) {
	return map[string]int{"jayson tatum": 100, "jalen brunson": 200}, nil
}

func (fakeResolverSource) DefaultVenueID(ctx context.Context) (int, error) {
	return 1, nil
}

// fakeGameSource implements GameSource over in-memory state.
type fakeGameSource struct {
	fakeGameStore
	existing   map[int]struct{}
	unenriched []*store.Game
	attached   map[int][2]sql.NullInt32
}

func (f *fakeGameSource) ExistingIDs(ctx context.Context) (map[int]struct{}, error) {
	return f.existing, nil
}

func (f *fakeGameSource) ListUnenriched(ctx context.Context) ([]*store.Game, error) {
	return f.unenriched, nil
}

func (f *fakeGameSource) AttachVenueAttendance(ctx context.Context, gameID int, venueID, attendance sql.NullInt32) error {
	if f.attached == nil {
		f.attached = make(map[int][2]sql.NullInt32)
	}
	f.attached[gameID] = [2]sql.NullInt32{venueID, attendance}
	return nil
}

type fakeStatSource struct {
	fakeStatStore
	existing map[repository.StatKey]struct{}
}

func (f *fakeStatSource) ExistingKeys(ctx context.Context) (map[repository.StatKey]struct{}, error) {
	return f.existing, nil
}

func leagueGamesEnvelope(rows ...[]interface{}) *feed.Envelope {
	return &feed.Envelope{
		ResultSets: []feed.ResultSet{{
			Name:    "LeagueGameFinderResults",
			Headers: []string{"SEASON_TYPE", "GAME_ID", "GAME_DATE", "TEAM_ABBREVIATION", "MATCHUP", "PTS"},
			RowSet:  rows,
		}},
	}
}

func gameLogsEnvelope(rows ...[]interface{}) *feed.Envelope {
	return &feed.Envelope{
		ResultSets: []feed.ResultSet{{
			Name:    "PlayerGameLogs",
			Headers: []string{"GAME_ID", "GAME_DATE", "PLAYER_NAME", "MIN", "PTS", "REB", "AST", "STL", "BLK", "TOV", "PF"},
			RowSet:  rows,
		}},
	}
}

func TestScoresPipelineEndToEnd(t *testing.T) {
	feedSrc := &fakeFeed{
		leagueGames: leagueGamesEnvelope(
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "BOS", "BOS vs. NYK", float64(112)},
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "NYK", "NYK @ BOS", float64(104)},
		),
		scoreboards: map[string]*feed.Envelope{
			"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "TD Garden", float64(19156)}),
		},
	}
	games := &fakeGameSource{}

	p := NewScoresPipeline(feedSrc, fakeResolverSource{}, games, &fakeStatStore{}, "2025-26",
		retry.Policy{Attempts: 3, Delay: time.Millisecond})

	report, err := p.Run(context.Background(), Window{Start: "2026-01-01", End: "2026-01-31"}, VenueStrict)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	require.Len(t, games.inserted, 1)
	g := games.inserted[0]
	assert.Equal(t, 22500001, g.GameID)
	assert.Equal(t, "2026-01-15", g.GameDate)
	assert.Equal(t, 1, g.HomeTeamID)
	assert.Equal(t, 19, g.AwayTeamID)
	assert.EqualValues(t, 112, g.HomeScore.Int32)
	assert.EqualValues(t, 1, g.VenueID.Int32)
	assert.EqualValues(t, 19156, g.Attendance.Int32)
}

func TestScoresPipelineRerunIsIdempotent(t *testing.T) {
	feedSrc := &fakeFeed{
		leagueGames: leagueGamesEnvelope(
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "BOS", "BOS vs. NYK", float64(112)},
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "NYK", "NYK @ BOS", float64(104)},
		),
		scoreboards: map[string]*feed.Envelope{},
	}
	games := &fakeGameSource{existing: map[int]struct{}{22500001: {}}}

	p := NewScoresPipeline(feedSrc, fakeResolverSource{}, games, &fakeStatStore{}, "2025-26",
		retry.Policy{Attempts: 1, Delay: 0})

	report, err := p.Run(context.Background(), Window{}, VenueStrict)

	require.NoError(t, err)
	assert.Empty(t, games.inserted)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.SkippedDuplicate)
}

func TestScoresPipelineFeedFailureIsFatal(t *testing.T) {
	feedSrc := &fakeFeed{leagueErr: errors.New("feed down")}
	games := &fakeGameSource{}

	p := NewScoresPipeline(feedSrc, fakeResolverSource{}, games, &fakeStatStore{}, "2025-26",
		retry.Policy{Attempts: 1, Delay: 0})

	_, err := p.Run(context.Background(), Window{}, VenueStrict)

	require.Error(t, err)
	assert.Empty(t, games.inserted)
}

func TestScoresPipelineStrictFailsWithoutScoreboard(t *testing.T) {
	feedSrc := &fakeFeed{
		leagueGames: leagueGamesEnvelope(
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "BOS", "BOS vs. NYK", float64(112)},
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "NYK", "NYK @ BOS", float64(104)},
		),
		scoreboards: map[string]*feed.Envelope{},
	}
	games := &fakeGameSource{}

	p := NewScoresPipeline(feedSrc, fakeResolverSource{}, games, &fakeStatStore{}, "2025-26",
		retry.Policy{Attempts: 2, Delay: time.Millisecond})

	report, err := p.Run(context.Background(), Window{}, VenueStrict)

	require.Error(t, err)
	assert.Empty(t, games.inserted)
	assert.Equal(t, 1, report.Failed)
}

func TestScoresPipelineLenientSurvivesWithoutScoreboard(t *testing.T) {
	feedSrc := &fakeFeed{
		leagueGames: leagueGamesEnvelope(
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "BOS", "BOS vs. NYK", float64(112)},
			[]interface{}{"Regular Season", "0022500001", "2026-01-15", "NYK", "NYK @ BOS", float64(104)},
		),
		scoreboards: map[string]*feed.Envelope{},
	}
	games := &fakeGameSource{}

	p := NewScoresPipeline(feedSrc, fakeResolverSource{}, games, &fakeStatStore{}, "2025-26",
		retry.Policy{Attempts: 1, Delay: 0})

	report, err := p.Run(context.Background(), Window{}, VenueLenient)

	require.NoError(t, err)
	require.Len(t, games.inserted, 1)
	assert.EqualValues(t, 1, games.inserted[0].VenueID.Int32)
	assert.Equal(t, 1, report.Inserted)
}

func TestStatsPipelineEndToEnd(t *testing.T) {
	feedSrc := &fakeFeed{
		gameLogs: gameLogsEnvelope(
			[]interface{}{"0022500001", "2026-01-15", "Jayson Tatum", float64(36), float64(31), float64(8), float64(5), float64(1), float64(0), float64(3), float64(2)},
			[]interface{}{"0022500001", "2026-01-15", "Jalen Brunson", float64(38), float64(29), float64(3), float64(7), float64(2), float64(0), float64(2), float64(1)},
		),
	}
	stats := &fakeStatSource{}

	p := NewStatsPipeline(feedSrc, fakeResolverSource{}, stats, "2025-26")

	report, err := p.Run(context.Background(), Window{Start: "2026-01-15", End: "2026-01-15"})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Inserted)
	require.Len(t, stats.inserted, 2)
	assert.Equal(t, 22500001, stats.inserted[0].GameID)
}

func TestStatsPipelineUnknownPlayerAborts(t *testing.T) {
	feedSrc := &fakeFeed{
		gameLogs: gameLogsEnvelope(
			[]interface{}{"0022500001", "2026-01-15", "Jayson Tatum", float64(36), float64(31), float64(8), float64(5), float64(1), float64(0), float64(3), float64(2)},
			[]interface{}{"0022500001", "2026-01-15", "Nobody Knows", float64(12), float64(4), float64(1), float64(0), float64(0), float64(0), float64(1), float64(3)},
		),
	}
	stats := &fakeStatSource{}

	p := NewStatsPipeline(feedSrc, fakeResolverSource{}, stats, "2025-26")

	report, err := p.Run(context.Background(), Window{})

	require.Error(t, err)
	assert.Empty(t, stats.inserted)
	assert.Equal(t, []string{"Nobody Knows"}, report.UnmappedPlayers)
}

func TestAttachEnrichmentOnlyFillsUnset(t *testing.T) {
	feedSrc := &fakeFeed{
		scoreboards: map[string]*feed.Envelope{
			"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "TD Garden", float64(19156)}),
		},
	}
	games := &fakeGameSource{
		unenriched: []*store.Game{{
			GameID:   22500001,
			GameDate: "2026-01-15",
			// Venue already set, attendance missing
			VenueID: sql.NullInt32{Int32: 5, Valid: true},
		}},
	}

	p := NewScoresPipeline(feedSrc, fakeResolverSource{}, games, &fakeStatStore{}, "2025-26",
		retry.Policy{Attempts: 1, Delay: 0})

	report, err := p.AttachEnrichment(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	pair, ok := games.attached[22500001]
	require.True(t, ok)
	// Venue untouched, attendance filled
	assert.False(t, pair[0].Valid)
	assert.True(t, pair[1].Valid)
	assert.EqualValues(t, 19156, pair[1].Int32)
}
