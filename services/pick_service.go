package services

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
	"confidence-pool-go/scoring"
)

// PoolStore is the slice of the pool repository pick submission needs
type PoolStore interface {
	FindByID(ctx context.Context, id string) (*models.Pool, error)
}

// ParticipantFinder resolves a single participant
type ParticipantFinder interface {
	FindByID(ctx context.Context, id string) (*models.Participant, error)
}

// PickWriter persists a participant's pick set
type PickWriter interface {
	FindByParticipantWeek(ctx context.Context, participantID, poolID string, season, seasonType, week int) ([]models.Pick, error)
	ReplaceParticipantWeek(ctx context.Context, participantID, poolID string, season, seasonType, week int, picks []*models.Pick) error
}

// TieBreakerWriter persists a participant's tie-breaker answer
type TieBreakerWriter interface {
	Upsert(ctx context.Context, answer *models.TieBreakerAnswer) error
}

// PickSubmission is one pick in a submitted set
type PickSubmission struct {
	GameID           string `json:"game_id"`
	PredictedWinner  string `json:"predicted_winner"`
	ConfidencePoints int    `json:"confidence_points"`
}

// PickService validates and stores pick submissions. Regular-season
// submissions run the full confidence validation with no admin bypass;
// postseason submissions carry predicted winners only, since their
// weights live on the playoff roster.
type PickService struct {
	poolRepo        PoolStore
	participantRepo ParticipantFinder
	gameRepo        GameStore
	pickRepo        PickWriter
	tieBreakerRepo  TieBreakerWriter
	seasonType      int
}

// NewPickService creates a new pick service
func NewPickService(poolRepo PoolStore, participantRepo ParticipantFinder, gameRepo GameStore, pickRepo PickWriter, tieBreakerRepo TieBreakerWriter, seasonType int) *PickService {
	return &PickService{
		poolRepo:        poolRepo,
		participantRepo: participantRepo,
		gameRepo:        gameRepo,
		pickRepo:        pickRepo,
		tieBreakerRepo:  tieBreakerRepo,
		seasonType:      seasonType,
	}
}

// SubmitPicks replaces a participant's pick set for one week. The set
// must cover every game exactly once with confidence weights forming
// the sequence 1..N. Resubmission before kickoff is allowed and
// replaces the previous set.
func (s *PickService) SubmitPicks(ctx context.Context, poolID, participantID string, week int, submissions []PickSubmission, tieBreakerAnswer *float64) error {
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

	games, err := s.gameRepo.FindByWeek(ctx, pool.Season, s.seasonType, week)
	if err != nil {
		return fmt.Errorf("failed to load games for week %d: %w", week, err)
	}
	if len(games) == 0 {
		return fmt.Errorf("no games scheduled for week %d", week)
	}

	gamesByID := make(map[string]models.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	now := time.Now()
	weights := make([]int, 0, len(submissions))
	picked := make(map[string]bool, len(submissions))
	picks := make([]*models.Pick, 0, len(submissions))

	for _, sub := range submissions {
		game, ok := gamesByID[sub.GameID]
		if !ok {
			return fmt.Errorf("game %s is not part of week %d", sub.GameID, week)
		}
		if picked[sub.GameID] {
			return fmt.Errorf("duplicate pick for game %s", sub.GameID)
		}
		picked[sub.GameID] = true

		if game.HasStarted(now) {
			return fmt.Errorf("game %s has already started", sub.GameID)
		}
		if sub.PredictedWinner != game.HomeTeam && sub.PredictedWinner != game.AwayTeam {
			return fmt.Errorf("%s is not playing in game %s", sub.PredictedWinner, sub.GameID)
		}

		confidence := sub.ConfidencePoints
		if s.seasonType == models.SeasonTypePostseason {
			// Playoff picks earn the roster weight of the predicted
			// winner, not a per-pick weight.
			confidence = 0
		}
		weights = append(weights, sub.ConfidencePoints)
		picks = append(picks, models.NewPick(participantID, poolID, sub.GameID, sub.PredictedWinner, confidence, pool.Season, s.seasonType, week))
	}

	if s.seasonType != models.SeasonTypePostseason {
		if err := scoring.ValidateConfidencePoints(weights, len(games)); err != nil {
			return fmt.Errorf("invalid confidence assignment: %w", err)
		}
	}

	if err := s.pickRepo.ReplaceParticipantWeek(ctx, participantID, poolID, pool.Season, s.seasonType, week, picks); err != nil {
		return fmt.Errorf("failed to store picks: %w", err)
	}

	if tieBreakerAnswer != nil {
		answer := &models.TieBreakerAnswer{
			ParticipantID: participantID,
			PoolID:        poolID,
			Season:        pool.Season,
			Week:          week,
			Answer:        *tieBreakerAnswer,
		}
		if err := s.tieBreakerRepo.Upsert(ctx, answer); err != nil {
			return fmt.Errorf("failed to store tie breaker answer: %w", err)
		}
	}

	logging.Infof("PickService: Stored %d picks for participant %s in pool %s week %d", len(picks), participantID, poolID, week)
	return nil
}

// GetParticipantPicks returns a participant's stored picks for one week
func (s *PickService) GetParticipantPicks(ctx context.Context, participantID, poolID string, season, week int) ([]models.Pick, error) {
	return s.pickRepo.FindByParticipantWeek(ctx, participantID, poolID, season, s.seasonType, week)
}
