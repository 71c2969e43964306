package ingest

import (
	"log"
	"regexp"
	"sort"
	"strings"
)

// Home matchups read "BOS vs. NYK" (sometimes without the period), away
// matchups "NYK @ BOS". Patterns require surrounding whitespace so team
// names containing the letters can never match.
var (
	homePattern = regexp.MustCompile(`(?i)\svs\.?\s`)
	awayPattern = regexp.MustCompile(`\s@\s`)
)

// GameRecord is one reconciled game, ready for enrichment and commit.
// Venue and attendance stay unset until the enricher fills them.
type GameRecord struct {
	GameID     int
	ExternalID string
	Date       string
	HomeTeamID int
	AwayTeamID int
	HomeScore  *int
	AwayScore  *int
	Arena      string
	VenueID    *int
	Attendance *int
}

// Reconciler pairs the feed's two team-side rows per game into single game
// records, resolving identities and skipping games it cannot place.
type Reconciler struct {
	resolver *Resolver
	existing map[int]struct{}
}

// NewReconciler creates a reconciler over the run's identity resolver and
// the set of game IDs already stored.
func NewReconciler(resolver *Resolver, existing map[int]struct{}) *Reconciler {
	return &Reconciler{resolver: resolver, existing: existing}
}

// Reconcile groups score rows by game and emits one record per new game.
// Skips are tallied into report: games already stored count as duplicates,
// everything else that cannot be reconciled counts as skipped-other.
// Well-formed vs./@ pairs place the same way regardless of row order;
// ambiguous groups are directed by the first row's matchup.
func (r *Reconciler) Reconcile(rows []ScoreRow, report *Report) []*GameRecord {
	groups := make(map[int][]ScoreRow)
	for _, row := range rows {
		groups[row.GameID] = append(groups[row.GameID], row)
	}

	// Deterministic output order regardless of map iteration
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var records []*GameRecord
	for _, id := range ids {
		group := groups[id]

		if _, dup := r.existing[id]; dup {
			report.SkippedDuplicate++
			continue
		}

		if len(group) < 2 {
			log.Printf("[reconcile] skipping game %d: only %d side(s) in feed", id, len(group))
			report.SkippedOther++
			continue
		}
		if len(group) > 2 {
			log.Printf("[reconcile] skipping game %d: %d sides in feed", id, len(group))
			report.SkippedOther++
			continue
		}

		home, away, ok := splitSides(group)
		if !ok {
			log.Printf("[reconcile] skipping game %d: unparseable matchups %q / %q", id, group[0].Matchup, group[1].Matchup)
			report.SkippedOther++
			continue
		}

		homeID, homeOK := r.resolver.Team(home.Abbreviation)
		awayID, awayOK := r.resolver.Team(away.Abbreviation)
		if !homeOK || !awayOK {
			log.Printf("[reconcile] skipping game %d: team not found (%s/%s)", id, home.Abbreviation, away.Abbreviation)
			report.SkippedOther++
			continue
		}

		records = append(records, &GameRecord{
			GameID:     id,
			ExternalID: home.ExternalID,
			Date:       home.Date,
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			HomeScore:  home.Points,
			AwayScore:  away.Points,
		})
	}

	return records
}

// splitSides assigns the group's two rows to home and away. When exactly
// one row matches the home pattern and the other the away pattern the
// assignment is unambiguous; otherwise the first row's matchup text
// decides the direction, with bare substring checks so unspaced forms
// like "NYK@BOS" still place.
func splitSides(group []ScoreRow) (home, away ScoreRow, ok bool) {
	a, b := group[0], group[1]

	aHome := homePattern.MatchString(a.Matchup)
	bHome := homePattern.MatchString(b.Matchup)
	aAway := awayPattern.MatchString(a.Matchup)
	bAway := awayPattern.MatchString(b.Matchup)

	switch {
	case aHome && bAway && !aAway && !bHome:
		return a, b, true
	case bHome && aAway && !bAway && !aHome:
		return b, a, true
	}

	switch {
	case strings.Contains(a.Matchup, "@"):
		return b, a, true
	case strings.Contains(strings.ToLower(a.Matchup), "vs"):
		return a, b, true
	}

	return ScoreRow{}, ScoreRow{}, false
}
