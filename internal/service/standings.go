package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/courtside/hoophub/internal/cache"
	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// StandingsService reads the standings view, with a Redis cache in front.
// The cache is optional; without it every read goes to Postgres.
type StandingsService struct {
	standingsRepo *repository.StandingsRepository
	cache         *cache.RedisCache
	ttl           time.Duration
}

// NewStandingsService creates a new standings service. cache may be nil.
func NewStandingsService(db *store.Database, redisCache *cache.RedisCache, ttl time.Duration) *StandingsService {
	return &StandingsService{
		standingsRepo: repository.NewStandingsRepository(db),
		cache:         redisCache,
		ttl:           ttl,
	}
}

// GetStandings returns standings filtered by conference or division.
func (s *StandingsService) GetStandings(ctx context.Context, conference, division string) ([]*store.StandingsRow, error) {
	key := fmt.Sprintf("standings:%s:%s", conference, division)

	if s.cache != nil {
		var cached []*store.StandingsRow
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("[standings] ⚠️ cache read failed, falling through: %v", err)
		} else if hit {
			return cached, nil
		}
	}

	standings, err := s.standingsRepo.List(ctx, conference, division)
	if err != nil {
		return nil, fmt.Errorf("fetching standings: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, standings, s.ttl); err != nil {
			log.Printf("[standings] ⚠️ cache write failed: %v", err)
		}
	}

	return standings, nil
}

// Invalidate drops cached standings, called after ingestion writes games.
func (s *StandingsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Conference/division combinations actually served
	keys := []string{
		"standings::",
		"standings:East:", "standings:West:",
		"standings::Atlantic", "standings::Central", "standings::Southeast",
		"standings::Northwest", "standings::Pacific", "standings::Southwest",
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("[standings] ⚠️ cache invalidation failed: %v", err)
	}
}
