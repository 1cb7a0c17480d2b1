package services

import (
	"context"
	"testing"

	"confidence-pool-go/models"
)

func testPool() *models.Pool {
	return &models.Pool{
		ID:       "pool1",
		Name:     "Office Pool",
		Season:   2025,
		IsActive: true,
	}
}

func newScoringFixture(games map[int][]models.Game, picks map[int][]models.Pick, participants []models.Participant) (*ScoringService, *fakeScoreStore) {
	scoreStore := newFakeScoreStore()
	svc := NewScoringService(
		&fakeGameStore{byWeek: games},
		&fakePickStore{byWeek: picks},
		scoreStore,
		&fakeParticipantStore{participants: participants},
		models.SeasonTypeRegular,
	)
	return svc, scoreStore
}

func TestScoreWeekSkipsIncompleteWeek(t *testing.T) {
	t.Parallel()

	live := finalGame("g1", 1, "KC", "BAL", "KC")
	live.Status = models.GameStatusLive
	live.Winner = ""

	svc, scoreStore := newScoringFixture(
		map[int][]models.Game{1: {finalGame("g2", 1, "SF", "DAL", "SF"), live}},
		nil, nil,
	)

	scored, err := svc.ScoreWeek(context.Background(), testPool(), 1)
	if err != nil {
		t.Fatalf("ScoreWeek() error = %v", err)
	}
	if scored {
		t.Fatal("ScoreWeek() = true for incomplete week, want false")
	}
	if _, ok := scoreStore.replaced[1]; ok {
		t.Fatal("scores were stored despite incomplete week")
	}
}

func TestScoreWeekStoresScoresWithNames(t *testing.T) {
	t.Parallel()

	games := map[int][]models.Game{1: {
		finalGame("g1", 1, "KC", "BAL", "KC"),
		finalGame("g2", 1, "SF", "DAL", "DAL"),
	}}
	picks := map[int][]models.Pick{1: {
		{ParticipantID: "alice", GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 2},
		{ParticipantID: "alice", GameID: "g2", PredictedWinner: "SF", ConfidencePoints: 1},
		{ParticipantID: "bob", GameID: "g1", PredictedWinner: "BAL", ConfidencePoints: 1},
		{ParticipantID: "bob", GameID: "g2", PredictedWinner: "DAL", ConfidencePoints: 2},
	}}
	participants := []models.Participant{
		{ID: "alice", PoolID: "pool1", Name: "Alice"},
		{ID: "bob", PoolID: "pool1", Name: "Bob"},
	}

	svc, scoreStore := newScoringFixture(games, picks, participants)

	scored, err := svc.ScoreWeek(context.Background(), testPool(), 1)
	if err != nil {
		t.Fatalf("ScoreWeek() error = %v", err)
	}
	if !scored {
		t.Fatal("ScoreWeek() = false for complete week, want true")
	}

	stored := scoreStore.replaced[1]
	if len(stored) != 2 {
		t.Fatalf("stored %d scores, want 2", len(stored))
	}
	// Alice and Bob both scored 2, alphabetical participant ID breaks
	// the ordering tie.
	if stored[0].ParticipantID != "alice" || stored[0].Points != 2 {
		t.Errorf("stored[0] = %s/%d, want alice/2", stored[0].ParticipantID, stored[0].Points)
	}
	if stored[0].ParticipantName != "Alice" {
		t.Errorf("stored[0].ParticipantName = %q, want Alice", stored[0].ParticipantName)
	}
	if stored[1].ParticipantID != "bob" || stored[1].Points != 2 {
		t.Errorf("stored[1] = %s/%d, want bob/2", stored[1].ParticipantID, stored[1].Points)
	}
}

type fakePlayoffWeightSource struct {
	byParticipant map[string]map[string]int
}

func (f *fakePlayoffWeightSource) FindByPool(ctx context.Context, poolID string, season int) (map[string]map[string]int, error) {
	return f.byParticipant, nil
}

func TestScoreWeekPostseasonUsesPlayoffWeights(t *testing.T) {
	t.Parallel()

	divisional := finalGame("g1", 2, "KC", "BUF", "KC")
	divisional.SeasonType = models.SeasonTypePostseason
	games := map[int][]models.Game{2: {divisional}}

	// Postseason picks carry no confidence of their own.
	picks := map[int][]models.Pick{2: {
		{ParticipantID: "alice", GameID: "g1", PredictedWinner: "KC", SeasonType: models.SeasonTypePostseason},
		{ParticipantID: "bob", GameID: "g1", PredictedWinner: "BUF", SeasonType: models.SeasonTypePostseason},
	}}

	scoreStore := newFakeScoreStore()
	svc := NewScoringService(
		&fakeGameStore{byWeek: games},
		&fakePickStore{byWeek: picks},
		scoreStore,
		&fakeParticipantStore{participants: []models.Participant{
			{ID: "alice", PoolID: "pool1", Name: "Alice"},
			{ID: "bob", PoolID: "pool1", Name: "Bob"},
		}},
		models.SeasonTypePostseason,
	)
	svc.SetPlayoffWeightSource(&fakePlayoffWeightSource{byParticipant: map[string]map[string]int{
		"alice": {"KC": 14, "BUF": 9},
		"bob":   {"KC": 3, "BUF": 11},
	}})

	scored, err := svc.ScoreWeek(context.Background(), testPool(), 2)
	if err != nil {
		t.Fatalf("ScoreWeek() error = %v", err)
	}
	if !scored {
		t.Fatal("ScoreWeek() = false for complete postseason round")
	}

	byParticipant := make(map[string]models.WeeklyScore)
	for _, s := range scoreStore.replaced[2] {
		byParticipant[s.ParticipantID] = s
	}
	// Alice backed the winner, so she earns her roster weight for KC.
	if got := byParticipant["alice"].Points; got != 14 {
		t.Errorf("alice points = %d, want 14", got)
	}
	if got := byParticipant["bob"].Points; got != 0 {
		t.Errorf("bob points = %d, want 0", got)
	}
}

func TestScoreWeekEmptyWeekIsVacuouslyComplete(t *testing.T) {
	t.Parallel()

	svc, scoreStore := newScoringFixture(map[int][]models.Game{}, nil, nil)

	scored, err := svc.ScoreWeek(context.Background(), testPool(), 7)
	if err != nil {
		t.Fatalf("ScoreWeek() error = %v", err)
	}
	if !scored {
		t.Fatal("ScoreWeek() = false for empty week, want true")
	}
	if len(scoreStore.replaced[7]) != 0 {
		t.Fatalf("stored %d scores for empty week, want 0", len(scoreStore.replaced[7]))
	}
}

func TestScoreWeekIsIdempotent(t *testing.T) {
	t.Parallel()

	games := map[int][]models.Game{1: {finalGame("g1", 1, "KC", "BAL", "KC")}}
	picks := map[int][]models.Pick{1: {
		{ParticipantID: "alice", GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 1},
	}}

	svc, scoreStore := newScoringFixture(games, picks, nil)

	pool := testPool()
	for i := 0; i < 2; i++ {
		if _, err := svc.ScoreWeek(context.Background(), pool, 1); err != nil {
			t.Fatalf("ScoreWeek() run %d error = %v", i, err)
		}
	}
	if len(scoreStore.replaced[1]) != 1 {
		t.Fatalf("stored %d scores after recompute, want 1", len(scoreStore.replaced[1]))
	}
}

func TestGetPeriodStandingsAggregatesScoredWeeks(t *testing.T) {
	t.Parallel()

	scoreStore := newFakeScoreStore()
	scoreStore.byWeek[1] = []models.WeeklyScore{
		weekScore("alice", 1, 10, 3, 4, 1),
		weekScore("bob", 1, 8, 2, 4, 2),
	}
	scoreStore.byWeek[2] = []models.WeeklyScore{
		weekScore("bob", 2, 12, 4, 4, 1),
		weekScore("alice", 2, 5, 1, 4, 2),
	}

	svc := NewScoringService(&fakeGameStore{}, &fakePickStore{}, scoreStore, &fakeParticipantStore{}, models.SeasonTypeRegular)

	totals, err := svc.GetPeriodStandings(context.Background(), "pool1", 2025, "Q1")
	if err != nil {
		t.Fatalf("GetPeriodStandings() error = %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("got %d totals, want 2", len(totals))
	}

	byID := make(map[string]int)
	for _, total := range totals {
		byID[total.ParticipantID] = total.TotalPoints
	}
	if byID["alice"] != 15 || byID["bob"] != 20 {
		t.Errorf("totals = alice:%d bob:%d, want alice:15 bob:20", byID["alice"], byID["bob"])
	}
}

func TestGetPeriodStandingsRejectsUnknownPeriod(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(&fakeGameStore{}, &fakePickStore{}, newFakeScoreStore(), &fakeParticipantStore{}, models.SeasonTypeRegular)
	if _, err := svc.GetPeriodStandings(context.Background(), "pool1", 2025, "Q5"); err == nil {
		t.Fatal("GetPeriodStandings() accepted unknown period")
	}
}
