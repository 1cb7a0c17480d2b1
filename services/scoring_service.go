package services

import (
	"context"
	"fmt"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
	"confidence-pool-go/scoring"
)

// GameStore is the slice of the game repository the scoring pipeline needs
type GameStore interface {
	FindByWeek(ctx context.Context, season, seasonType, week int) ([]models.Game, error)
	FindByWeeks(ctx context.Context, season, seasonType int, weeks []int) (map[int][]models.Game, error)
}

// PickStore is the slice of the pick repository the scoring pipeline needs
type PickStore interface {
	FindByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) ([]models.Pick, error)
}

// ScoreStore persists computed weekly scores
type ScoreStore interface {
	ReplaceWeek(ctx context.Context, poolID string, season, seasonType, week int, scores []models.WeeklyScore) error
	FindByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) ([]models.WeeklyScore, error)
	FindByPoolWeeks(ctx context.Context, poolID string, season, seasonType int, weeks []int) (map[int][]models.WeeklyScore, error)
}

// ParticipantStore is the slice of the participant repository used for
// name enrichment
type ParticipantStore interface {
	FindByPool(ctx context.Context, poolID string) ([]models.Participant, error)
}

// PlayoffWeightSource supplies each participant's team-keyed playoff
// weights, consulted only when scoring postseason games
type PlayoffWeightSource interface {
	FindByPool(ctx context.Context, poolID string, season int) (map[string]map[string]int, error)
}

// ScoringService runs the weekly scoring pipeline: completion gate,
// score computation, and atomic replacement of the stored week.
type ScoringService struct {
	gameRepo        GameStore
	pickRepo        PickStore
	scoreRepo       ScoreStore
	participantRepo ParticipantStore
	playoffWeights  PlayoffWeightSource
	seasonType      int
}

// NewScoringService creates a new scoring service
func NewScoringService(gameRepo GameStore, pickRepo PickStore, scoreRepo ScoreStore, participantRepo ParticipantStore, seasonType int) *ScoringService {
	return &ScoringService{
		gameRepo:        gameRepo,
		pickRepo:        pickRepo,
		scoreRepo:       scoreRepo,
		participantRepo: participantRepo,
		seasonType:      seasonType,
	}
}

// SetPlayoffWeightSource wires the playoff weight lookup used when this
// service scores postseason games
func (s *ScoringService) SetPlayoffWeightSource(source PlayoffWeightSource) {
	s.playoffWeights = source
}

// ScoreWeek computes and stores scores for one pool-week. Returns false
// without error when the week is not yet complete; scoring never runs
// against partial results. Re-running for a complete week replaces the
// stored rows, so the operation is idempotent.
func (s *ScoringService) ScoreWeek(ctx context.Context, pool *models.Pool, week int) (bool, error) {
	games, err := s.gameRepo.FindByWeek(ctx, pool.Season, s.seasonType, week)
	if err != nil {
		return false, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}

	if !scoring.IsWeekComplete(games) {
		logging.Debugf("ScoringService: Week %d season %d not complete yet, skipping pool %s", week, pool.Season, pool.ID)
		return false, nil
	}

	picks, err := s.pickRepo.FindByPoolWeek(ctx, pool.ID, pool.Season, s.seasonType, week)
	if err != nil {
		return false, fmt.Errorf("failed to load picks for pool %s week %d: %w", pool.ID, week, err)
	}

	if s.seasonType == models.SeasonTypePostseason {
		// Postseason picks carry no per-week confidence; each pick is
		// worth the participant's roster weight for the team it backs.
		if s.playoffWeights == nil {
			logging.Warnf("ScoringService: No playoff weight source configured, pool %s week %d scores as zero", pool.ID, week)
		} else {
			weights, err := s.playoffWeights.FindByPool(ctx, pool.ID, pool.Season)
			if err != nil {
				return false, fmt.Errorf("failed to load playoff weights for pool %s: %w", pool.ID, err)
			}
			picks = scoring.ApplyPlayoffWeights(picks, weights)
		}
	} else {
		// Stored pick sets are validated on submission, so a bad set here is
		// a data-quality signal, not a reason to refuse the whole week.
		for participantID, participantPicks := range scoring.GroupPicksByParticipant(picks) {
			if err := scoring.ValidateConfidencePoints(scoring.ConfidenceWeights(participantPicks), len(games)); err != nil {
				logging.Warnf("ScoringService: Participant %s has invalid confidence set for week %d: %v", participantID, week, err)
			}
		}
	}

	scores, orphaned := scoring.ComputeWeeklyScores(picks, games)
	if orphaned > 0 {
		logging.Warnf("ScoringService: Skipped %d picks referencing unknown games in pool %s week %d", orphaned, pool.ID, week)
	}

	if err := s.enrichNames(ctx, pool.ID, scores); err != nil {
		logging.Warnf("ScoringService: Could not resolve participant names for pool %s: %v", pool.ID, err)
	}

	if err := s.scoreRepo.ReplaceWeek(ctx, pool.ID, pool.Season, s.seasonType, week, scores); err != nil {
		return false, fmt.Errorf("failed to store scores for pool %s week %d: %w", pool.ID, week, err)
	}

	logging.Infof("ScoringService: Scored pool %s week %d: %d participants, %d picks", pool.ID, week, len(scores), len(picks))
	return true, nil
}

// GetWeekScores returns the stored scores for one pool-week
func (s *ScoringService) GetWeekScores(ctx context.Context, poolID string, season, week int) ([]models.WeeklyScore, error) {
	return s.scoreRepo.FindByPoolWeek(ctx, poolID, season, s.seasonType, week)
}

// GetPeriodStandings aggregates stored weekly scores over a named period.
// It works on whatever weeks have been scored so far, so it can serve
// mid-period leaderboards; winner resolution separately enforces the
// completion gate.
func (s *ScoringService) GetPeriodStandings(ctx context.Context, poolID string, season int, periodName string) ([]scoring.PeriodTotal, error) {
	period, ok := scoring.PeriodByName(periodName)
	if !ok {
		return nil, fmt.Errorf("unknown period %q", periodName)
	}

	weeks := period.Weeks()
	scoresByWeek, err := s.scoreRepo.FindByPoolWeeks(ctx, poolID, season, s.seasonType, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for pool %s period %s: %w", poolID, periodName, err)
	}

	ordered := make([][]models.WeeklyScore, 0, len(weeks))
	for _, week := range weeks {
		if weekScores, ok := scoresByWeek[week]; ok {
			ordered = append(ordered, weekScores)
		}
	}
	return scoring.AggregatePeriod(ordered), nil
}

func (s *ScoringService) enrichNames(ctx context.Context, poolID string, scores []models.WeeklyScore) error {
	if len(scores) == 0 {
		return nil
	}

	participants, err := s.participantRepo.FindByPool(ctx, poolID)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}
	for i := range scores {
		scores[i].ParticipantName = names[scores[i].ParticipantID]
	}
	return nil
}
