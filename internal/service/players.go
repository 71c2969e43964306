package service

import (
	"context"
	"fmt"

	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// PlayerService handles player-related business logic
type PlayerService struct {
	playerRepo *repository.PlayerRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(db *store.Database) *PlayerService {
	return &PlayerService{
		playerRepo: repository.NewPlayerRepository(db),
	}
}

// ListPlayers returns all players with per-game averages, top scorers
// first.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]*store.PlayerAverages, error) {
	players, err := s.playerRepo.ListAverages(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	return players, nil
}

// PlayerDetail is a player's bio with their per-game averages.
type PlayerDetail struct {
	*store.Player
	Averages *store.PlayerAverages `json:"averages"`
}

// GetPlayer returns one player's page.
func (s *PlayerService) GetPlayer(ctx context.Context, playerID int) (*PlayerDetail, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	averages, err := s.playerRepo.GetAverages(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("fetching player averages: %w", err)
	}

	return &PlayerDetail{Player: player, Averages: averages}, nil
}

// Comparison pairs two players' averages side by side.
type Comparison struct {
	A *store.PlayerAverages `json:"a"`
	B *store.PlayerAverages `json:"b"`
}

// ComparePlayers returns two players' averages for the comparison page.
func (s *PlayerService) ComparePlayers(ctx context.Context, aID, bID int) (*Comparison, error) {
	a, err := s.playerRepo.GetAverages(ctx, aID)
	if err != nil {
		return nil, err
	}
	b, err := s.playerRepo.GetAverages(ctx, bID)
	if err != nil {
		return nil, err
	}
	return &Comparison{A: a, B: b}, nil
}

// CreatePlayer inserts a new player and returns it with its assigned ID.
func (s *PlayerService) CreatePlayer(ctx context.Context, player *store.Player) (*store.Player, error) {
	if player.FirstName == "" || player.LastName == "" {
		return nil, fmt.Errorf("first_name and last_name are required")
	}
	if player.TeamID == 0 {
		return nil, fmt.Errorf("team_id is required")
	}

	id, err := s.playerRepo.Insert(ctx, player)
	if err != nil {
		return nil, err
	}
	player.PlayerID = id
	return player, nil
}
