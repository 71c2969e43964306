package repository

import (
	"context"
	"fmt"

	"github.com/courtside/hoophub/internal/store"
)

// StandingsRepository reads the standings view. Wins, losses, and win
// percentage are computed in the database, never re-derived here.
type StandingsRepository struct {
	db *store.Database
}

// NewStandingsRepository creates a new standings repository
func NewStandingsRepository(db *store.Database) *StandingsRepository {
	return &StandingsRepository{db: db}
}

// List returns standings, optionally filtered by conference or division,
// best record first.
func (r *StandingsRepository) List(ctx context.Context, conference, division string) ([]*store.StandingsRow, error) {
	query := `
		SELECT team_id, name, conference, division, wins, losses, win_pct
		FROM standings
		WHERE ($1 = '' OR conference = $1)
			AND ($2 = '' OR division = $2)
		ORDER BY win_pct DESC NULLS LAST, wins DESC, name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, conference, division)
	if err != nil {
		return nil, fmt.Errorf("querying standings: %w", err)
	}
	defer rows.Close()

	var standings []*store.StandingsRow
	for rows.Next() {
		row := &store.StandingsRow{}
		if err := rows.Scan(
			&row.TeamID, &row.Name, &row.Conference, &row.Division,
			&row.Wins, &row.Losses, &row.WinPct,
		); err != nil {
			return nil, fmt.Errorf("scanning standings row: %w", err)
		}
		standings = append(standings, row)
	}

	return standings, rows.Err()
}
