package service

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// GameService handles game-related business logic
type GameService struct {
	gameRepo  *repository.GameRepository
	statsRepo *repository.StatsRepository
	location  *time.Location
}

// NewGameService creates a new game service. The location decides what
// "yesterday" means for the daily scoreboard.
func NewGameService(db *store.Database, location *time.Location) *GameService {
	return &GameService{
		gameRepo:  repository.NewGameRepository(db),
		statsRepo: repository.NewStatsRepository(db),
		location:  location,
	}
}

// GetGamesByDate returns the games on a YYYY-MM-DD date.
func (s *GameService) GetGamesByDate(ctx context.Context, date string) ([]*store.GameSummary, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	games, err := s.gameRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching games: %w", err)
	}
	return games, nil
}

// GetYesterdaysGames returns the previous day's games in the configured
// timezone.
func (s *GameService) GetYesterdaysGames(ctx context.Context) ([]*store.GameSummary, error) {
	yesterday := time.Now().In(s.location).AddDate(0, 0, -1).Format("2006-01-02")
	return s.GetGamesByDate(ctx, yesterday)
}

// BoxScore is a game plus every player line, home team first.
type BoxScore struct {
	Game  *store.Game           `json:"game"`
	Lines []*store.BoxScoreLine `json:"lines"`
}

// GetBoxScore returns the full box score for one game.
func (s *GameService) GetBoxScore(ctx context.Context, gameID int) (*BoxScore, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	lines, err := s.statsRepo.BoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching box score: %w", err)
	}

	return &BoxScore{Game: game, Lines: lines}, nil
}
