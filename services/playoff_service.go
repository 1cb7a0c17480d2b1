package services

import (
	"context"
	"errors"
	"fmt"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
	"confidence-pool-go/scoring"
)

// ErrPlayoffWeightsLocked signals that a participant already has a
// complete playoff submission on file. Participants cannot revise a
// complete submission; only an admin override can.
var ErrPlayoffWeightsLocked = errors.New("playoff weights are locked")

// PlayoffTeamStore persists the postseason roster
type PlayoffTeamStore interface {
	Upsert(ctx context.Context, team *models.PlayoffTeam) error
	FindBySeason(ctx context.Context, season int) ([]models.PlayoffTeam, error)
}

// PlayoffWeightStore persists participant playoff weights
type PlayoffWeightStore interface {
	ReplaceParticipant(ctx context.Context, participantID, poolID string, season int, weights []*models.PlayoffWeight) error
	FindByParticipant(ctx context.Context, participantID, poolID string, season int) ([]models.PlayoffWeight, error)
}

// PlayoffTeamEntry is one roster slot in an admin submission
type PlayoffTeamEntry struct {
	TeamName         string `json:"team_name"`
	TeamAbbreviation string `json:"team_abbreviation"`
	Conference       string `json:"conference"`
	Seed             int    `json:"seed"`
}

// PlayoffService manages the postseason roster and participant playoff
// weights. Weights are season-wide, not weekly: one weight per playoff
// team, and every postseason pick of that team is worth it.
type PlayoffService struct {
	teamRepo        PlayoffTeamStore
	weightRepo      PlayoffWeightStore
	poolRepo        PoolStore
	participantRepo ParticipantFinder
}

// NewPlayoffService creates a new playoff service
func NewPlayoffService(teamRepo PlayoffTeamStore, weightRepo PlayoffWeightStore, poolRepo PoolStore, participantRepo ParticipantFinder) *PlayoffService {
	return &PlayoffService{
		teamRepo:        teamRepo,
		weightRepo:      weightRepo,
		poolRepo:        poolRepo,
		participantRepo: participantRepo,
	}
}

// SetPlayoffTeams records the postseason roster for a season. Entries
// are validated as a batch before any slot is written; re-entering a
// (conference, seed) slot replaces the team holding it.
func (s *PlayoffService) SetPlayoffTeams(ctx context.Context, season int, entries []PlayoffTeamEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("no playoff teams supplied")
	}

	slots := make(map[string]bool, len(entries))
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.TeamName == "" {
			return fmt.Errorf("playoff team name is required")
		}
		if !models.ValidConference(e.Conference) {
			return fmt.Errorf("invalid conference %q for %s", e.Conference, e.TeamName)
		}
		if !models.ValidPlayoffSeed(e.Seed) {
			return fmt.Errorf("invalid seed %d for %s", e.Seed, e.TeamName)
		}
		slot := fmt.Sprintf("%s:%d", e.Conference, e.Seed)
		if slots[slot] {
			return fmt.Errorf("duplicate slot %s seed %d", e.Conference, e.Seed)
		}
		slots[slot] = true
		if names[e.TeamName] {
			return fmt.Errorf("duplicate playoff team %s", e.TeamName)
		}
		names[e.TeamName] = true
	}

	for _, e := range entries {
		team := &models.PlayoffTeam{
			Season:           season,
			TeamName:         e.TeamName,
			TeamAbbreviation: e.TeamAbbreviation,
			Conference:       e.Conference,
			Seed:             e.Seed,
		}
		if err := s.teamRepo.Upsert(ctx, team); err != nil {
			return fmt.Errorf("failed to store playoff team %s: %w", e.TeamName, err)
		}
	}

	logging.Infof("PlayoffService: Stored %d playoff teams for season %d", len(entries), season)
	return nil
}

// GetPlayoffTeams returns the stored roster for a season
func (s *PlayoffService) GetPlayoffTeams(ctx context.Context, season int) ([]models.PlayoffTeam, error) {
	return s.teamRepo.FindBySeason(ctx, season)
}

// SubmitWeights replaces a participant's playoff weights. The
// submission must cover the full roster with weights 1..N. Once a
// complete submission is on file the participant is locked out of
// revising it; force (the admin path) bypasses the lock.
func (s *PlayoffService) SubmitWeights(ctx context.Context, poolID, participantID string, weights map[string]int, force bool) error {
	pool, err := s.poolRepo.FindByID(ctx, poolID)
	if err != nil {
		return fmt.Errorf("pool not found: %w", err)
	}
	if !pool.IsActive {
		return fmt.Errorf("pool %s is not active", poolID)
	}

	participant, err := s.participantRepo.FindByID(ctx, participantID)
	if err != nil {
		return fmt.Errorf("participant not found: %w", err)
	}
	if participant.PoolID != poolID {
		return fmt.Errorf("participant %s does not belong to pool %s", participantID, poolID)
	}

	roster, err := s.teamRepo.FindBySeason(ctx, pool.Season)
	if err != nil {
		return fmt.Errorf("failed to load playoff teams for season %d: %w", pool.Season, err)
	}
	if len(roster) == 0 {
		return fmt.Errorf("no playoff teams recorded for season %d", pool.Season)
	}

	if !force {
		existing, err := s.weightRepo.FindByParticipant(ctx, participantID, poolID, pool.Season)
		if err != nil {
			return fmt.Errorf("failed to load stored playoff weights: %w", err)
		}
		if len(existing) > 0 && scoring.ValidatePlayoffWeights(scoring.WeightsByTeam(existing), roster) == nil {
			return fmt.Errorf("%w for participant %s", ErrPlayoffWeightsLocked, participantID)
		}
	}

	if err := scoring.ValidatePlayoffWeights(weights, roster); err != nil {
		return fmt.Errorf("invalid playoff weight assignment: %w", err)
	}

	rows := make([]*models.PlayoffWeight, 0, len(roster))
	for i := range roster {
		team := roster[i].TeamName
		rows = append(rows, models.NewPlayoffWeight(participantID, poolID, pool.Season, team, weights[team]))
	}

	if err := s.weightRepo.ReplaceParticipant(ctx, participantID, poolID, pool.Season, rows); err != nil {
		return fmt.Errorf("failed to store playoff weights: %w", err)
	}

	logging.Infof("PlayoffService: Stored %d playoff weights for participant %s in pool %s", len(rows), participantID, poolID)
	return nil
}

// GetWeights returns a participant's stored playoff weight rows
func (s *PlayoffService) GetWeights(ctx context.Context, poolID, participantID string, season int) ([]models.PlayoffWeight, error) {
	return s.weightRepo.FindByParticipant(ctx, participantID, poolID, season)
}
