package ingest

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/hoophub/internal/feed"
)

const regularSeason = "Regular Season"

// ScoreRow is one normalized team-side row from the league game finder.
type ScoreRow struct {
	GameID       int
	ExternalID   string
	Date         string // YYYY-MM-DD
	Abbreviation string
	Matchup      string
	Points       *int
}

// StatRow is one normalized player box-score line.
type StatRow struct {
	GameID     int
	ExternalID string
	Date       string
	PlayerName string
	Minutes    int
	Points     int
	Rebounds   int
	Assists    int
	Steals     int
	Blocks     int
	Turnovers  int
	Fouls      int
}

// Window is an inclusive date range, both ends YYYY-MM-DD. Zero values
// leave that end open.
type Window struct {
	Start string
	End   string
}

// Contains reports whether a YYYY-MM-DD date falls inside the window.
// The format sorts lexically, so string comparison is enough.
func (w Window) Contains(date string) bool {
	if w.Start != "" && date < w.Start {
		return false
	}
	if w.End != "" && date > w.End {
		return false
	}
	return true
}

// NormalizeGameID converts a feed game ID to its internal integer form by
// stripping leading zeros. An all-zero ID normalizes to 0.
func NormalizeGameID(external string) (int, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(external), "0")
	if trimmed == "" {
		if external == "" {
			return 0, fmt.Errorf("empty game id")
		}
		return 0, nil
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("non-numeric game id %q", external)
	}
	return id, nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"Jan 2, 2006",
}

// normalizeDate reduces the feed's assorted date formats to YYYY-MM-DD.
func normalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}

// NormalizeScores converts raw league game finder rows into score rows,
// dropping rows outside the window and rows from other season types.
// Malformed rows are logged and dropped; they never reach reconciliation.
func NormalizeScores(rows []feed.LeagueGameRow, window Window) []ScoreRow {
	out := make([]ScoreRow, 0, len(rows))
	for _, raw := range rows {
		if raw.SeasonType != "" && raw.SeasonType != regularSeason {
			continue
		}

		date, err := normalizeDate(raw.GameDate)
		if err != nil {
			log.Printf("[normalize] ⚠️ dropping score row for game %s: %v", raw.GameID, err)
			continue
		}
		if !window.Contains(date) {
			continue
		}

		id, err := NormalizeGameID(raw.GameID)
		if err != nil {
			log.Printf("[normalize] ⚠️ dropping score row: %v", err)
			continue
		}

		out = append(out, ScoreRow{
			GameID:       id,
			ExternalID:   raw.GameID,
			Date:         date,
			Abbreviation: raw.TeamAbbreviation,
			Matchup:      raw.Matchup,
			Points:       raw.Points,
		})
	}
	return out
}

// NormalizeStats converts raw player game log rows into stat rows for the
// given window. Counting stats are already zero-coerced by the parser.
func NormalizeStats(rows []feed.PlayerGameLogRow, window Window) []StatRow {
	out := make([]StatRow, 0, len(rows))
	for _, raw := range rows {
		date, err := normalizeDate(raw.GameDate)
		if err != nil {
			log.Printf("[normalize] ⚠️ dropping stat row for %q: %v", raw.PlayerName, err)
			continue
		}
		if !window.Contains(date) {
			continue
		}

		id, err := NormalizeGameID(raw.GameID)
		if err != nil {
			log.Printf("[normalize] ⚠️ dropping stat row for %q: %v", raw.PlayerName, err)
			continue
		}

		out = append(out, StatRow{
			GameID:     id,
			ExternalID: raw.GameID,
			Date:       date,
			PlayerName: raw.PlayerName,
			Minutes:    raw.Minutes,
			Points:     raw.Points,
			Rebounds:   raw.Rebounds,
			Assists:    raw.Assists,
			Steals:     raw.Steals,
			Blocks:     raw.Blocks,
			Turnovers:  raw.Turnovers,
			Fouls:      raw.Fouls,
		})
	}
	return out
}
