package services

import (
	"context"
	"sync"
	"time"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
)

// PoolLister enumerates the pools a scheduled run should cover
type PoolLister interface {
	FindActive(ctx context.Context, season int) ([]models.Pool, error)
}

// ScoreCheckService periodically re-runs the scoring pipeline so that
// weeks get scored shortly after their last game goes final, without
// anyone triggering it by hand.
type ScoreCheckService struct {
	gameService    *GameService
	scoringService *ScoringService
	winnerService  *WinnerService
	poolRepo       PoolLister
	currentSeason  int
	interval       time.Duration
	ticker         *time.Ticker
	stopChan       chan struct{}
	wg             sync.WaitGroup
	mu             sync.Mutex
}

// NewScoreCheckService creates a new scheduled score checker
func NewScoreCheckService(gameService *GameService, scoringService *ScoringService, winnerService *WinnerService, poolRepo PoolLister, currentSeason int, interval time.Duration) *ScoreCheckService {
	return &ScoreCheckService{
		gameService:    gameService,
		scoringService: scoringService,
		winnerService:  winnerService,
		poolRepo:       poolRepo,
		currentSeason:  currentSeason,
		interval:       interval,
		stopChan:       make(chan struct{}),
	}
}

// Start begins the periodic checks
func (s *ScoreCheckService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		logging.Warn("ScoreCheckService: Already running")
		return
	}

	// A fresh channel per Start keeps the lifecycle re-entrant:
	// Stop closed the previous one.
	s.stopChan = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)
	s.wg.Add(1)
	go s.run(s.ticker, s.stopChan)

	logging.Infof("ScoreCheckService: Started with interval %v", s.interval)
}

// Stop halts the periodic checks and waits for an in-flight run
func (s *ScoreCheckService) Stop() {
	s.mu.Lock()
	if s.ticker == nil {
		s.mu.Unlock()
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	stop := s.stopChan
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()
	logging.Info("ScoreCheckService: Stopped")
}

func (s *ScoreCheckService) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	// Initial run so a restart does not wait out a full interval.
	s.CheckNow(context.Background())

	for {
		select {
		case <-ticker.C:
			s.CheckNow(context.Background())
		case <-stop:
			return
		}
	}
}

// CheckNow runs one scoring pass over every active pool. The current
// week comes from stored kickoff data; the preceding week is checked
// too, since a week usually finishes after the schedule has already
// rolled onto the next one.
func (s *ScoreCheckService) CheckNow(ctx context.Context) {
	week, _, err := s.gameService.GetCurrentWeek(ctx, time.Now())
	if err != nil {
		logging.Errorf("ScoreCheckService: Could not resolve current week: %v", err)
		return
	}

	weeks := []int{week}
	if week > 1 {
		weeks = append(weeks, week-1)
	}

	pools, err := s.poolRepo.FindActive(ctx, s.currentSeason)
	if err != nil {
		logging.Errorf("ScoreCheckService: Could not list active pools: %v", err)
		return
	}

	for i := range pools {
		pool := &pools[i]
		for _, w := range weeks {
			scored, err := s.scoringService.ScoreWeek(ctx, pool, w)
			if err != nil {
				logging.Errorf("ScoreCheckService: Scoring pool %s week %d failed: %v", pool.ID, w, err)
				continue
			}
			if !scored {
				continue
			}
			if err := s.winnerService.ResolveDuePeriods(ctx, pool, w); err != nil {
				logging.Errorf("ScoreCheckService: Winner resolution for pool %s week %d failed: %v", pool.ID, w, err)
			}
		}
	}
}
