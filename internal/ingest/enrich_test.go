package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/hoophub/internal/feed"
	"github.com/courtside/hoophub/internal/retry"
)

// fakeScoreboard serves canned scoreboard envelopes per date and can fail
// a configurable number of times first.
type fakeScoreboard struct {
	byDate   map[string]*feed.Envelope
	failures int
	calls    int
}

func (f *fakeScoreboard) Scoreboard(ctx context.Context, date string) (*feed.Envelope, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("feed flaked")
	}
	env, ok := f.byDate[date]
	if !ok {
		return nil, errors.New("no scoreboard for date")
	}
	return env, nil
}

func scoreboardEnvelope(rows ...[]interface{}) *feed.Envelope {
	return &feed.Envelope{
		ResultSets: []feed.ResultSet{{
			Name:    "GameHeader",
			Headers: []string{"GAME_ID", "ARENA_NAME", "ATTENDANCE"},
			RowSet:  rows,
		}},
	}
}

func fastPolicy() retry.Policy {
	return retry.Policy{Attempts: 3, Delay: time.Millisecond}
}

func TestEnrichAttachesVenueAndAttendance(t *testing.T) {
	source := &fakeScoreboard{byDate: map[string]*feed.Envelope{
		"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "TD Garden", float64(19156)}),
	}}
	records := []*GameRecord{{GameID: 22500001, Date: "2026-01-15"}}

	report := NewReport()
	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, report)

	require.NotNil(t, records[0].VenueID)
	assert.Equal(t, 1, *records[0].VenueID)
	require.NotNil(t, records[0].Attendance)
	assert.Equal(t, 19156, *records[0].Attendance)
	assert.Empty(t, report.MissingArenas)
}

func TestEnrichOneFetchPerDate(t *testing.T) {
	source := &fakeScoreboard{byDate: map[string]*feed.Envelope{
		"2026-01-15": scoreboardEnvelope(
			[]interface{}{"0022500001", "TD Garden", float64(19156)},
			[]interface{}{"0022500002", "TD Garden", float64(18000)},
		),
	}}
	records := []*GameRecord{
		{GameID: 22500001, Date: "2026-01-15"},
		{GameID: 22500002, Date: "2026-01-15"},
	}

	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, NewReport())

	assert.Equal(t, 1, source.calls)
	require.NotNil(t, records[1].VenueID)
}

func TestEnrichRetriesThenSucceeds(t *testing.T) {
	source := &fakeScoreboard{
		failures: 2,
		byDate: map[string]*feed.Envelope{
			"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "TD Garden", float64(100)}),
		},
	}
	records := []*GameRecord{{GameID: 22500001, Date: "2026-01-15"}}

	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, NewReport())

	assert.Equal(t, 3, source.calls)
	require.NotNil(t, records[0].VenueID)
}

func TestEnrichExhaustionDegradesQuietly(t *testing.T) {
	source := &fakeScoreboard{failures: 10}
	records := []*GameRecord{{GameID: 22500001, Date: "2026-01-15"}}

	report := NewReport()
	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, report)

	// Three attempts, then the date proceeds unenriched
	assert.Equal(t, 3, source.calls)
	assert.Nil(t, records[0].VenueID)
	assert.Nil(t, records[0].Attendance)
	assert.Equal(t, 0, report.Failed)
}

func TestEnrichUnknownArenaReported(t *testing.T) {
	source := &fakeScoreboard{byDate: map[string]*feed.Envelope{
		"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "Mystery Dome", float64(500)}),
	}}
	records := []*GameRecord{{GameID: 22500001, Date: "2026-01-15"}}

	report := NewReport()
	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, report)

	assert.Nil(t, records[0].VenueID)
	assert.Equal(t, "Mystery Dome", report.MissingArenas[22500001])
	// Attendance still attaches even when the arena has no match
	require.NotNil(t, records[0].Attendance)
	assert.Equal(t, 500, *records[0].Attendance)
}

func TestEnrichArenaNameTrimmed(t *testing.T) {
	source := &fakeScoreboard{byDate: map[string]*feed.Envelope{
		"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "  TD Garden  ", float64(0)}),
	}}
	records := []*GameRecord{{GameID: 22500001, Date: "2026-01-15"}}

	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, NewReport())

	require.NotNil(t, records[0].VenueID)
	assert.Equal(t, 1, *records[0].VenueID)
}

func TestEnrichZeroAttendanceNotAttached(t *testing.T) {
	source := &fakeScoreboard{byDate: map[string]*feed.Envelope{
		"2026-01-15": scoreboardEnvelope([]interface{}{"0022500001", "TD Garden", float64(0)}),
	}}
	records := []*GameRecord{{GameID: 22500001, Date: "2026-01-15"}}

	NewEnricher(source, testResolver(), fastPolicy()).Enrich(context.Background(), records, NewReport())

	require.NotNil(t, records[0].VenueID)
	assert.Nil(t, records[0].Attendance)
}
