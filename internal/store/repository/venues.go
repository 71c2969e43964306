package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/courtside/hoophub/internal/store"
)

// VenueRepository handles venue data access
type VenueRepository struct {
	db *store.Database
}

// NewVenueRepository creates a new venue repository
func NewVenueRepository(db *store.Database) *VenueRepository {
	return &VenueRepository{db: db}
}

// NameMap returns trimmed venue name -> venue_id. The feed's arena names
// are matched against this verbatim after trimming, no fuzzy matching.
func (r *VenueRepository) NameMap(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.DB().QueryContext(ctx, "SELECT name, venue_id FROM venues")
	if err != nil {
		return nil, fmt.Errorf("querying venues: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var name string
		var id int
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("scanning venue: %w", err)
		}
		index[strings.TrimSpace(name)] = id
	}

	return index, rows.Err()
}

// DefaultVenueID returns the lowest venue_id, the fallback the lenient
// commit policy assigns when a game's arena has no match.
func (r *VenueRepository) DefaultVenueID(ctx context.Context) (int, error) {
	var id int
	err := r.db.DB().QueryRowContext(ctx, "SELECT MIN(venue_id) FROM venues").Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no venues found")
	}
	if err != nil {
		return 0, fmt.Errorf("querying default venue: %w", err)
	}
	return id, nil
}
