package services

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
	"confidence-pool-go/scoring"

	"github.com/google/uuid"
)

// WinnerStore persists resolved period winners
type WinnerStore interface {
	Upsert(ctx context.Context, winner *models.PeriodWinner) error
	FindByPeriod(ctx context.Context, poolID string, season int, period string) (*models.PeriodWinner, error)
	FindByPool(ctx context.Context, poolID string, season int) ([]models.PeriodWinner, error)
}

// TieBreakerStore reads participant tie-breaker answers
type TieBreakerStore interface {
	FindLatestInRange(ctx context.Context, poolID string, season, startWeek, endWeek int) (map[string]float64, error)
}

// WinnerService resolves quarter and season winners once every week in
// the period is terminal and scored.
type WinnerService struct {
	gameRepo       GameStore
	scoreRepo      ScoreStore
	winnerRepo     WinnerStore
	tieBreakerRepo TieBreakerStore
	seasonType     int
}

// NewWinnerService creates a new winner resolution service
func NewWinnerService(gameRepo GameStore, scoreRepo ScoreStore, winnerRepo WinnerStore, tieBreakerRepo TieBreakerStore, seasonType int) *WinnerService {
	return &WinnerService{
		gameRepo:       gameRepo,
		scoreRepo:      scoreRepo,
		winnerRepo:     winnerRepo,
		tieBreakerRepo: tieBreakerRepo,
		seasonType:     seasonType,
	}
}

// ResolvePeriod resolves and stores the winner for one named period.
// Returns nil without error when the period is not complete yet or has
// no scored participants. Re-running overwrites the stored result, so a
// late stat correction can be absorbed by recomputing the weeks and
// resolving again.
func (s *WinnerService) ResolvePeriod(ctx context.Context, pool *models.Pool, periodName string) (*models.PeriodWinner, error) {
	period, ok := scoring.PeriodByName(periodName)
	if !ok {
		return nil, fmt.Errorf("unknown period %q", periodName)
	}

	weeks := period.Weeks()
	gamesByWeek, err := s.gameRepo.FindByWeeks(ctx, pool.Season, s.seasonType, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for period %s: %w", periodName, err)
	}

	if !scoring.IsPeriodComplete(weeks, gamesByWeek) {
		logging.Debugf("WinnerService: Period %s season %d not complete yet, skipping pool %s", periodName, pool.Season, pool.ID)
		return nil, nil
	}

	scoresByWeek, err := s.scoreRepo.FindByPoolWeeks(ctx, pool.ID, pool.Season, s.seasonType, weeks)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores for pool %s period %s: %w", pool.ID, periodName, err)
	}

	// A week with games but no stored scores has not been through the
	// scoring pipeline yet; resolving now would undercount it.
	for _, week := range weeks {
		if len(gamesByWeek[week]) > 0 && len(scoresByWeek[week]) == 0 {
			logging.Debugf("WinnerService: Week %d not scored yet for pool %s, deferring period %s", week, pool.ID, periodName)
			return nil, nil
		}
	}

	ordered := make([][]models.WeeklyScore, 0, len(weeks))
	for _, week := range weeks {
		if weekScores, ok := scoresByWeek[week]; ok {
			ordered = append(ordered, weekScores)
		}
	}

	totals := scoring.AggregatePeriod(ordered)
	if len(totals) == 0 {
		logging.Warnf("WinnerService: No scored participants in pool %s for period %s", pool.ID, periodName)
		return nil, nil
	}

	top := scoring.TopScorers(totals)

	// The answer stage only runs for pools configured to break ties
	// on the closest answer.
	var target *float64
	if pool.TieBreakerMethod == models.TieBreakerClosestAnswer && pool.HasTieBreakerTarget() {
		target = pool.TieBreakerAnswer
	}

	var answers map[string]float64
	if len(top) > 1 && target != nil {
		answers, err = s.tieBreakerRepo.FindLatestInRange(ctx, pool.ID, pool.Season, period.StartWeek, period.EndWeek)
		if err != nil {
			return nil, fmt.Errorf("failed to load tie breaker answers for pool %s: %w", pool.ID, err)
		}
	}

	result := scoring.ResolveTie(top, target, answers)

	winner := &models.PeriodWinner{
		ID:                 uuid.NewString(),
		PoolID:             pool.ID,
		Season:             pool.Season,
		PeriodName:         period.Name,
		StartWeek:          period.StartWeek,
		EndWeek:            period.EndWeek,
		TotalParticipants:  len(totals),
		TieBreakerUsed:     result.TieBreakerUsed,
		TieBreakerAnswer:   target,
		WinnerAnswer:       result.WinnerAnswer,
		AnswerDifference:   result.Difference,
		ResidualTie:        result.ResidualTie,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if result.Winner != nil {
		winner.WinnerParticipantID = result.Winner.ParticipantID
		winner.WinnerName = result.Winner.ParticipantName
		winner.WinnerPoints = result.Winner.TotalPoints
		winner.WinnerCorrectPicks = result.Winner.TotalCorrect
		winner.WinnerTotalPicks = result.Winner.TotalPicks
		winner.WeeksWon = result.Winner.WeeksWon
	}
	for _, tied := range result.Tied {
		winner.TiedParticipantIDs = append(winner.TiedParticipantIDs, tied.ParticipantID)
	}

	if err := s.winnerRepo.Upsert(ctx, winner); err != nil {
		return nil, fmt.Errorf("failed to store period winner: %w", err)
	}

	if winner.IsResolved() {
		logging.Infof("WinnerService: Pool %s period %s won by %s with %d points", pool.ID, period.Name, winner.WinnerName, winner.WinnerPoints)
	} else {
		logging.Warnf("WinnerService: Pool %s period %s ended in a residual tie between %d participants", pool.ID, period.Name, len(winner.TiedParticipantIDs))
	}
	return winner, nil
}

// ResolveDuePeriods resolves whatever periods the given week can close:
// the quarter containing it, and the season once week 18 is in. Each
// resolution independently re-checks its own completion gate.
func (s *WinnerService) ResolveDuePeriods(ctx context.Context, pool *models.Pool, week int) error {
	for _, quarter := range scoring.Quarters {
		if quarter.Contains(week) {
			if _, err := s.ResolvePeriod(ctx, pool, quarter.Name); err != nil {
				return err
			}
			break
		}
	}

	season := scoring.SeasonPeriod()
	if week == season.EndWeek {
		if _, err := s.ResolvePeriod(ctx, pool, season.Name); err != nil {
			return err
		}
	}
	return nil
}

// GetPeriodWinner returns the stored result for one period, or nil when
// resolution has not run
func (s *WinnerService) GetPeriodWinner(ctx context.Context, poolID string, season int, periodName string) (*models.PeriodWinner, error) {
	if _, ok := scoring.PeriodByName(periodName); !ok {
		return nil, fmt.Errorf("unknown period %q", periodName)
	}
	return s.winnerRepo.FindByPeriod(ctx, poolID, season, periodName)
}

// GetPoolWinners returns all stored period results for a pool season
func (s *WinnerService) GetPoolWinners(ctx context.Context, poolID string, season int) ([]models.PeriodWinner, error) {
	return s.winnerRepo.FindByPool(ctx, poolID, season)
}
