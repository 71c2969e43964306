package service

import (
	"context"
	"fmt"

	"github.com/courtside/hoophub/internal/store"
	"github.com/courtside/hoophub/internal/store/repository"
)

// TeamService handles team-related business logic
type TeamService struct {
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
}

// NewTeamService creates a new team service
func NewTeamService(db *store.Database) *TeamService {
	return &TeamService{
		teamRepo:   repository.NewTeamRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
	}
}

// ListTeams returns all teams.
func (s *TeamService) ListTeams(ctx context.Context) ([]*store.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	return teams, nil
}

// TeamDetail is a team bio with its overall, home, and away records.
type TeamDetail struct {
	*repository.TeamBio
	Record     *store.TeamRecord `json:"record"`
	HomeRecord *store.TeamRecord `json:"home_record"`
	AwayRecord *store.TeamRecord `json:"away_record"`
}

// GetTeam returns a team's bio page: coach, venue, and win/loss splits.
func (s *TeamService) GetTeam(ctx context.Context, teamID int) (*TeamDetail, error) {
	bio, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}

	overall, home, away, err := s.records(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamDetail{
		TeamBio:    bio,
		Record:     overall,
		HomeRecord: home,
		AwayRecord: away,
	}, nil
}

// TeamRecordSplits bundles a team's overall, home, and away records.
type TeamRecordSplits struct {
	TeamID     int               `json:"team_id"`
	Record     *store.TeamRecord `json:"record"`
	HomeRecord *store.TeamRecord `json:"home_record"`
	AwayRecord *store.TeamRecord `json:"away_record"`
}

// GetTeamRecord returns just the win/loss splits for a team.
func (s *TeamService) GetTeamRecord(ctx context.Context, teamID int) (*TeamRecordSplits, error) {
	// Verify the team exists so a bad ID is a 404, not an all-zero record
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	overall, home, away, err := s.records(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamRecordSplits{
		TeamID:     teamID,
		Record:     overall,
		HomeRecord: home,
		AwayRecord: away,
	}, nil
}

func (s *TeamService) records(ctx context.Context, teamID int) (overall, home, away *store.TeamRecord, err error) {
	overall, err = s.teamRepo.Record(ctx, teamID, false, false)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching team record: %w", err)
	}
	home, err = s.teamRepo.Record(ctx, teamID, true, false)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching home record: %w", err)
	}
	away, err = s.teamRepo.Record(ctx, teamID, false, true)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetching away record: %w", err)
	}
	return overall, home, away, nil
}

// GetRoster returns a team's players.
func (s *TeamService) GetRoster(ctx context.Context, teamID int) ([]*store.Player, error) {
	// Verify the team exists so a bad ID is a 404, not an empty list
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}
	return roster, nil
}

// HeadToHead returns the completed meetings between two teams plus each
// side's win count.
type HeadToHeadResult struct {
	TeamWins     int                  `json:"team_wins"`
	OpponentWins int                  `json:"opponent_wins"`
	Games        []*store.GameSummary `json:"games"`
}

// GetHeadToHead returns the matchup history between two teams.
func (s *TeamService) GetHeadToHead(ctx context.Context, teamID, opponentID int) (*HeadToHeadResult, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, opponentID); err != nil {
		return nil, err
	}

	games, err := s.teamRepo.HeadToHead(ctx, teamID, opponentID)
	if err != nil {
		return nil, fmt.Errorf("fetching head to head: %w", err)
	}

	result := &HeadToHeadResult{Games: games}
	for _, game := range games {
		if !game.HomeScore.Valid || !game.AwayScore.Valid {
			continue
		}
		homeWon := game.HomeScore.Int32 > game.AwayScore.Int32
		teamIsHome := game.HomeTeam == team.Name
		if homeWon == teamIsHome {
			result.TeamWins++
		} else {
			result.OpponentWins++
		}
	}

	return result, nil
}
