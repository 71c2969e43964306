package ingest

import (
	"context"
	"fmt"
	"strings"
)

// Resolver maps the stats feed's external identities onto database IDs.
// It is built once per ingestion run from the current contents of the
// teams, venues, and players tables.
type Resolver struct {
	teams        map[string]int // abbreviation -> team_id, exact match
	venues       map[string]int // trimmed venue name -> venue_id
	players      map[string]int // lower(first + " " + last) -> player_id
	defaultVenue int            // lowest venue_id, lenient-policy fallback
}

// ResolverSource provides the identity indexes the resolver is built from.
type ResolverSource interface {
	AbbreviationMap(ctx context.Context) (map[string]int, error)
	VenueNameMap(ctx context.Context) (map[string]int, error)
	PlayerNameMap(ctx context.Context) (map[string]int, error)
	DefaultVenueID(ctx context.Context) (int, error)
}

// BuildResolver loads all identity indexes. Any failure here is fatal for
// the run; a partial resolver would silently misattribute rows.
func BuildResolver(ctx context.Context, src ResolverSource) (*Resolver, error) {
	teams, err := src.AbbreviationMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading team index: %w", err)
	}
	venues, err := src.VenueNameMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading venue index: %w", err)
	}
	players, err := src.PlayerNameMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading player index: %w", err)
	}
	defaultVenue, err := src.DefaultVenueID(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading default venue: %w", err)
	}

	return &Resolver{
		teams:        teams,
		venues:       venues,
		players:      players,
		defaultVenue: defaultVenue,
	}, nil
}

// NewResolver builds a resolver from prepared indexes. Used by tests and
// by callers that already hold the maps.
func NewResolver(teams, venues, players map[string]int, defaultVenue int) *Resolver {
	return &Resolver{teams: teams, venues: venues, players: players, defaultVenue: defaultVenue}
}

// Team resolves a feed team abbreviation. The match is case-sensitive
// exact; the feed is consistent about casing and anything else would hide
// bad data.
func (r *Resolver) Team(abbreviation string) (int, bool) {
	id, ok := r.teams[abbreviation]
	return id, ok
}

// Venue resolves an arena name, trimmed but otherwise verbatim.
func (r *Resolver) Venue(arena string) (int, bool) {
	id, ok := r.venues[strings.TrimSpace(arena)]
	return id, ok
}

// Player resolves a feed display name against the roster index.
func (r *Resolver) Player(name string) (int, bool) {
	id, ok := r.players[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// DefaultVenue returns the fallback venue for the lenient commit policy.
func (r *Resolver) DefaultVenue() int {
	return r.defaultVenue
}
