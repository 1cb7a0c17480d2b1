package services

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/models"
)

// In-memory repository fakes shared by the service tests.

type fakeGameStore struct {
	byWeek map[int][]models.Game
}

func (f *fakeGameStore) FindByWeek(ctx context.Context, season, seasonType, week int) ([]models.Game, error) {
	return f.byWeek[week], nil
}

func (f *fakeGameStore) FindByWeeks(ctx context.Context, season, seasonType int, weeks []int) (map[int][]models.Game, error) {
	out := make(map[int][]models.Game)
	for _, w := range weeks {
		if games, ok := f.byWeek[w]; ok {
			out[w] = games
		}
	}
	return out, nil
}

type fakePickStore struct {
	byWeek map[int][]models.Pick
}

func (f *fakePickStore) FindByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) ([]models.Pick, error) {
	return f.byWeek[week], nil
}

type fakeScoreStore struct {
	byWeek   map[int][]models.WeeklyScore
	replaced map[int][]models.WeeklyScore
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{
		byWeek:   make(map[int][]models.WeeklyScore),
		replaced: make(map[int][]models.WeeklyScore),
	}
}

func (f *fakeScoreStore) ReplaceWeek(ctx context.Context, poolID string, season, seasonType, week int, scores []models.WeeklyScore) error {
	f.byWeek[week] = scores
	f.replaced[week] = scores
	return nil
}

func (f *fakeScoreStore) FindByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) ([]models.WeeklyScore, error) {
	return f.byWeek[week], nil
}

func (f *fakeScoreStore) FindByPoolWeeks(ctx context.Context, poolID string, season, seasonType int, weeks []int) (map[int][]models.WeeklyScore, error) {
	out := make(map[int][]models.WeeklyScore)
	for _, w := range weeks {
		if scores, ok := f.byWeek[w]; ok {
			out[w] = scores
		}
	}
	return out, nil
}

type fakeParticipantStore struct {
	participants []models.Participant
}

func (f *fakeParticipantStore) FindByPool(ctx context.Context, poolID string) ([]models.Participant, error) {
	return f.participants, nil
}

func (f *fakeParticipantStore) FindByID(ctx context.Context, id string) (*models.Participant, error) {
	for i := range f.participants {
		if f.participants[i].ID == id {
			return &f.participants[i], nil
		}
	}
	return nil, fmt.Errorf("participant %s not found", id)
}

type fakeWinnerStore struct {
	upserted []*models.PeriodWinner
}

func (f *fakeWinnerStore) Upsert(ctx context.Context, winner *models.PeriodWinner) error {
	f.upserted = append(f.upserted, winner)
	return nil
}

func (f *fakeWinnerStore) FindByPeriod(ctx context.Context, poolID string, season int, period string) (*models.PeriodWinner, error) {
	for _, w := range f.upserted {
		if w.PeriodName == period {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWinnerStore) FindByPool(ctx context.Context, poolID string, season int) ([]models.PeriodWinner, error) {
	var out []models.PeriodWinner
	for _, w := range f.upserted {
		out = append(out, *w)
	}
	return out, nil
}

type fakeTieBreakerStore struct {
	answers  map[string]float64
	upserted []*models.TieBreakerAnswer
}

func (f *fakeTieBreakerStore) FindLatestInRange(ctx context.Context, poolID string, season, startWeek, endWeek int) (map[string]float64, error) {
	return f.answers, nil
}

func (f *fakeTieBreakerStore) Upsert(ctx context.Context, answer *models.TieBreakerAnswer) error {
	f.upserted = append(f.upserted, answer)
	return nil
}

type fakePoolStore struct {
	pools map[string]*models.Pool
}

func (f *fakePoolStore) FindByID(ctx context.Context, id string) (*models.Pool, error) {
	pool, ok := f.pools[id]
	if !ok {
		return nil, fmt.Errorf("pool %s not found", id)
	}
	return pool, nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

// finalGame builds a completed game for test fixtures.
func finalGame(id string, week int, home, away, winner string) models.Game {
	return models.Game{
		ID:          id,
		Season:      2025,
		SeasonType:  models.SeasonTypeRegular,
		Week:        week,
		HomeTeam:    home,
		AwayTeam:    away,
		KickoffTime: time.Date(2025, 9, 7, 13, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7),
		Status:      models.GameStatusFinal,
		Winner:      winner,
	}
}

func weekScore(participantID string, week, points, correct, total, rank int) models.WeeklyScore {
	return models.WeeklyScore{
		ParticipantID: participantID,
		PoolID:        "pool1",
		Season:        2025,
		Week:          week,
		Points:        points,
		CorrectPicks:  correct,
		TotalPicks:    total,
		Rank:          rank,
	}
}
