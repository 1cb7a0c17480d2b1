package services

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/logging"
	"confidence-pool-go/models"
	"confidence-pool-go/scoring"
)

// GameWriter is the slice of the game repository ingestion needs
type GameWriter interface {
	BulkUpsert(ctx context.Context, games []*models.Game) error
	FindByWeek(ctx context.Context, season, seasonType, week int) ([]models.Game, error)
	FindBySeason(ctx context.Context, season int) ([]models.Game, error)
}

// GameService ingests externally sourced game data and answers
// schedule queries. Scores arrive by admin upload rather than a live
// feed, so ingestion validates everything it accepts.
type GameService struct {
	gameRepo      GameWriter
	currentSeason int
	seasonType    int
	resultHook    func(ctx context.Context)
}

// NewGameService creates a new game service
func NewGameService(gameRepo GameWriter, currentSeason, seasonType int) *GameService {
	return &GameService{
		gameRepo:      gameRepo,
		currentSeason: currentSeason,
		seasonType:    seasonType,
	}
}

// SetResultHook registers a callback invoked after a stored batch
// contains scoreable results, so completed weeks get scored without
// waiting for the next scheduled check.
func (s *GameService) SetResultHook(hook func(ctx context.Context)) {
	s.resultHook = hook
}

// UpsertGames validates and stores a batch of games, returning how many
// were accepted. The batch is rejected whole on the first invalid game
// so a partial upload never mixes with stored data.
func (s *GameService) UpsertGames(ctx context.Context, games []*models.Game) (int, error) {
	for _, game := range games {
		if err := validateGame(game); err != nil {
			return 0, fmt.Errorf("game %s: %w", game.ID, err)
		}
	}

	if len(games) == 0 {
		return 0, nil
	}

	if err := s.gameRepo.BulkUpsert(ctx, games); err != nil {
		return 0, fmt.Errorf("failed to store games: %w", err)
	}

	logging.Infof("GameService: Upserted %d games", len(games))

	if s.resultHook != nil {
		for _, game := range games {
			if game.IsScoreable() {
				go s.resultHook(context.Background())
				break
			}
		}
	}
	return len(games), nil
}

func validateGame(game *models.Game) error {
	if game.ID == "" {
		return fmt.Errorf("missing game id")
	}
	if game.HomeTeam == "" || game.AwayTeam == "" {
		return fmt.Errorf("missing team names")
	}
	if game.HomeTeam == game.AwayTeam {
		return fmt.Errorf("home and away teams are identical")
	}
	if game.Week < 1 || game.Week > 18 {
		return fmt.Errorf("week %d out of range", game.Week)
	}
	if game.KickoffTime.IsZero() {
		return fmt.Errorf("missing kickoff time")
	}

	switch game.Status {
	case models.GameStatusScheduled, models.GameStatusLive, models.GameStatusFinal,
		models.GameStatusCancelled, models.GameStatusPostponed:
	default:
		return fmt.Errorf("unknown status %q", game.Status)
	}

	if game.Winner != "" && game.Winner != game.HomeTeam && game.Winner != game.AwayTeam {
		return fmt.Errorf("winner %s is not playing in this game", game.Winner)
	}
	if game.Status == models.GameStatusFinal && game.Winner == "" && game.HomeScore != game.AwayScore {
		return fmt.Errorf("final game with decisive score is missing a winner")
	}
	return nil
}

// GetWeekGames returns all games for one week ordered by kickoff
func (s *GameService) GetWeekGames(ctx context.Context, season, week int) ([]models.Game, error) {
	return s.gameRepo.FindByWeek(ctx, season, s.seasonType, week)
}

// GetCurrentWeek resolves the active week from stored kickoff data.
// With no games loaded it falls back to week 1 of the configured
// season type.
func (s *GameService) GetCurrentWeek(ctx context.Context, now time.Time) (int, int, error) {
	games, err := s.gameRepo.FindBySeason(ctx, s.currentSeason)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load season %d games: %w", s.currentSeason, err)
	}

	week, seasonType := scoring.CurrentWeek(games, now, 1, s.seasonType)
	return week, seasonType, nil
}
