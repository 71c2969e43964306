package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	return NewResolver(
		map[string]int{"BOS": 1, "NYK": 19, "LAL": 13},
		map[string]int{"TD Garden": 1},
		map[string]int{"jayson tatum": 100},
		1,
	)
}

func pts(n int) *int { return &n }

func scoreRow(gameID int, abbr, matchup string, points int) ScoreRow {
	return ScoreRow{
		GameID:       gameID,
		ExternalID:   "0022500001",
		Date:         "2026-01-15",
		Abbreviation: abbr,
		Matchup:      matchup,
		Points:       pts(points),
	}
}

func TestReconcilePairsHomeAndAway(t *testing.T) {
	rows := []ScoreRow{
		scoreRow(1, "NYK", "NYK @ BOS", 104),
		scoreRow(1, "BOS", "BOS vs. NYK", 112),
	}

	report := NewReport()
	records := NewReconciler(testResolver(), nil).Reconcile(rows, report)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, 1, rec.HomeTeamID)
	assert.Equal(t, 19, rec.AwayTeamID)
	assert.Equal(t, 112, *rec.HomeScore)
	assert.Equal(t, 104, *rec.AwayScore)
	assert.Nil(t, rec.VenueID)
	assert.Nil(t, rec.Attendance)
	assert.Equal(t, 0, report.SkippedOther)
}

func TestReconcileMatchupVariants(t *testing.T) {
	// "vs" without period and mixed case must still read as home
	variants := []string{"BOS vs NYK", "BOS VS. NYK", "BOS Vs NYK"}
	for _, matchup := range variants {
		rows := []ScoreRow{
			scoreRow(1, "BOS", matchup, 112),
			scoreRow(1, "NYK", "NYK @ BOS", 104),
		}

		records := NewReconciler(testResolver(), nil).Reconcile(rows, NewReport())
		require.Len(t, records, 1, matchup)
		assert.Equal(t, 1, records[0].HomeTeamID, matchup)
	}
}

func TestReconcileOrderIndependent(t *testing.T) {
	forward := []ScoreRow{
		scoreRow(1, "BOS", "BOS vs. NYK", 112),
		scoreRow(1, "NYK", "NYK @ BOS", 104),
	}
	reversed := []ScoreRow{forward[1], forward[0]}

	a := NewReconciler(testResolver(), nil).Reconcile(forward, NewReport())
	b := NewReconciler(testResolver(), nil).Reconcile(reversed, NewReport())

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].HomeTeamID, b[0].HomeTeamID)
	assert.Equal(t, a[0].AwayTeamID, b[0].AwayTeamID)
	assert.Equal(t, *a[0].HomeScore, *b[0].HomeScore)
}

func TestReconcileFallbackFirstRowDirects(t *testing.T) {
	// When the rows don't form a clean vs./@ pair, the first row's
	// matchup text decides which side it is.
	tests := []struct {
		name     string
		first    ScoreRow
		second   ScoreRow
		wantHome int
	}{
		{
			name:     "both away, first row @ means first is away",
			first:    scoreRow(1, "NYK", "NYK @ BOS", 104),
			second:   scoreRow(1, "BOS", "BOS @ NYK", 112),
			wantHome: 1,
		},
		{
			name:     "both home, first row vs means first is home",
			first:    scoreRow(1, "BOS", "BOS vs. NYK", 112),
			second:   scoreRow(1, "NYK", "NYK vs. BOS", 104),
			wantHome: 1,
		},
		{
			name:     "unspaced @ still places",
			first:    scoreRow(1, "NYK", "NYK@BOS", 104),
			second:   scoreRow(1, "BOS", "BOS@NYK", 112),
			wantHome: 1,
		},
		{
			name:     "unspaced vs still places",
			first:    scoreRow(1, "BOS", "BOSvs.NYK", 112),
			second:   scoreRow(1, "NYK", "NYKvs.BOS", 104),
			wantHome: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewReport()
			records := NewReconciler(testResolver(), nil).Reconcile([]ScoreRow{tt.first, tt.second}, report)

			require.Len(t, records, 1)
			assert.Equal(t, tt.wantHome, records[0].HomeTeamID)
			assert.NotEqual(t, records[0].HomeTeamID, records[0].AwayTeamID)
			assert.Equal(t, 0, report.SkippedOther)
		})
	}
}

func TestReconcileUnparseableMatchups(t *testing.T) {
	rows := []ScoreRow{
		scoreRow(1, "BOS", "BOS-NYK", 112),
		scoreRow(1, "NYK", "NYK-BOS", 104),
	}

	report := NewReport()
	records := NewReconciler(testResolver(), nil).Reconcile(rows, report)

	assert.Empty(t, records)
	assert.Equal(t, 1, report.SkippedOther)
}

func TestReconcileSingleSideSkipped(t *testing.T) {
	rows := []ScoreRow{scoreRow(1, "BOS", "BOS vs. NYK", 112)}

	report := NewReport()
	records := NewReconciler(testResolver(), nil).Reconcile(rows, report)

	assert.Empty(t, records)
	assert.Equal(t, 1, report.SkippedOther)
	assert.Equal(t, 0, report.SkippedDuplicate)
}

func TestReconcileUnknownTeamSkipped(t *testing.T) {
	rows := []ScoreRow{
		scoreRow(1, "BOS", "BOS vs. SEA", 112),
		scoreRow(1, "SEA", "SEA @ BOS", 104),
	}

	report := NewReport()
	records := NewReconciler(testResolver(), nil).Reconcile(rows, report)

	assert.Empty(t, records)
	assert.Equal(t, 1, report.SkippedOther)
}

func TestReconcileDuplicateGame(t *testing.T) {
	rows := []ScoreRow{
		scoreRow(1, "BOS", "BOS vs. NYK", 112),
		scoreRow(1, "NYK", "NYK @ BOS", 104),
		scoreRow(2, "LAL", "LAL vs. BOS", 99),
		scoreRow(2, "BOS", "BOS @ LAL", 95),
	}
	existing := map[int]struct{}{1: {}}

	report := NewReport()
	records := NewReconciler(testResolver(), existing).Reconcile(rows, report)

	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].GameID)
	assert.Equal(t, 1, report.SkippedDuplicate)
	assert.Equal(t, 0, report.SkippedOther)
}

func TestReconcileNullScoresPreserved(t *testing.T) {
	rows := []ScoreRow{
		{GameID: 3, Date: "2026-01-15", Abbreviation: "BOS", Matchup: "BOS vs. NYK"},
		{GameID: 3, Date: "2026-01-15", Abbreviation: "NYK", Matchup: "NYK @ BOS"},
	}

	records := NewReconciler(testResolver(), nil).Reconcile(rows, NewReport())

	require.Len(t, records, 1)
	assert.Nil(t, records[0].HomeScore)
	assert.Nil(t, records[0].AwayScore)
}
