package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"confidence-pool-go/models"
	"confidence-pool-go/scoring"
)

type fakePickWriter struct {
	stored []*models.Pick
}

func (f *fakePickWriter) FindByParticipantWeek(ctx context.Context, participantID, poolID string, season, seasonType, week int) ([]models.Pick, error) {
	var out []models.Pick
	for _, p := range f.stored {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePickWriter) ReplaceParticipantWeek(ctx context.Context, participantID, poolID string, season, seasonType, week int, picks []*models.Pick) error {
	f.stored = picks
	return nil
}

func newPickFixture(games []models.Game) (*PickService, *fakePickWriter, *fakeTieBreakerStore) {
	pickWriter := &fakePickWriter{}
	tieBreakers := &fakeTieBreakerStore{}
	svc := NewPickService(
		&fakePoolStore{pools: map[string]*models.Pool{"pool1": testPool()}},
		&fakeParticipantStore{participants: []models.Participant{{ID: "alice", PoolID: "pool1", Name: "Alice"}}},
		&fakeGameStore{byWeek: map[int][]models.Game{1: games}},
		pickWriter,
		tieBreakers,
		models.SeasonTypeRegular,
	)
	return svc, pickWriter, tieBreakers
}

// upcomingGame builds a game that has not kicked off yet.
func upcomingGame(id, home, away string) models.Game {
	return models.Game{
		ID:          id,
		Season:      2025,
		SeasonType:  models.SeasonTypeRegular,
		Week:        1,
		HomeTeam:    home,
		AwayTeam:    away,
		KickoffTime: time.Now().Add(48 * time.Hour),
		Status:      models.GameStatusScheduled,
	}
}

func TestSubmitPicksStoresValidSet(t *testing.T) {
	t.Parallel()

	svc, pickWriter, tieBreakers := newPickFixture([]models.Game{
		upcomingGame("g1", "KC", "BAL"),
		upcomingGame("g2", "SF", "DAL"),
	})

	answer := 44.5
	err := svc.SubmitPicks(context.Background(), "pool1", "alice", 1, []PickSubmission{
		{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 2},
		{GameID: "g2", PredictedWinner: "DAL", ConfidencePoints: 1},
	}, &answer)
	if err != nil {
		t.Fatalf("SubmitPicks() error = %v", err)
	}

	if len(pickWriter.stored) != 2 {
		t.Fatalf("stored %d picks, want 2", len(pickWriter.stored))
	}
	for _, pick := range pickWriter.stored {
		if pick.ParticipantID != "alice" || pick.Season != 2025 || pick.Week != 1 {
			t.Errorf("stored pick has wrong identity: %+v", pick)
		}
	}
	if len(tieBreakers.upserted) != 1 || tieBreakers.upserted[0].Answer != 44.5 {
		t.Errorf("tie breaker answer not stored: %+v", tieBreakers.upserted)
	}
}

func TestSubmitPicksRejectsInvalidConfidence(t *testing.T) {
	t.Parallel()

	games := []models.Game{
		upcomingGame("g1", "KC", "BAL"),
		upcomingGame("g2", "SF", "DAL"),
	}

	tests := []struct {
		name        string
		submissions []PickSubmission
		wantErr     error
	}{
		{
			name: "duplicate weight",
			submissions: []PickSubmission{
				{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 2},
				{GameID: "g2", PredictedWinner: "SF", ConfidencePoints: 2},
			},
			wantErr: scoring.ErrDuplicateWeight,
		},
		{
			name: "missing game",
			submissions: []PickSubmission{
				{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 2},
			},
			wantErr: scoring.ErrWrongCount,
		},
		{
			name: "zero weight",
			submissions: []PickSubmission{
				{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 0},
				{GameID: "g2", PredictedWinner: "SF", ConfidencePoints: 1},
			},
			wantErr: scoring.ErrNonPositiveWeight,
		},
		{
			name: "gap in sequence",
			submissions: []PickSubmission{
				{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 1},
				{GameID: "g2", PredictedWinner: "SF", ConfidencePoints: 3},
			},
			wantErr: scoring.ErrNotSequential,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, pickWriter, _ := newPickFixture(games)
			err := svc.SubmitPicks(context.Background(), "pool1", "alice", 1, tt.submissions, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SubmitPicks() error = %v, want %v", err, tt.wantErr)
			}
			if len(pickWriter.stored) != 0 {
				t.Fatal("invalid submission was stored")
			}
		})
	}
}

func TestSubmitPicksPostseasonSkipsConfidence(t *testing.T) {
	t.Parallel()

	wildcard := upcomingGame("g1", "KC", "BUF")
	wildcard.SeasonType = models.SeasonTypePostseason

	pickWriter := &fakePickWriter{}
	svc := NewPickService(
		&fakePoolStore{pools: map[string]*models.Pool{"pool1": testPool()}},
		&fakeParticipantStore{participants: []models.Participant{{ID: "alice", PoolID: "pool1", Name: "Alice"}}},
		&fakeGameStore{byWeek: map[int][]models.Game{1: {wildcard}}},
		pickWriter,
		&fakeTieBreakerStore{},
		models.SeasonTypePostseason,
	)

	// No confidence points supplied; playoff picks take their weight
	// from the roster at scoring time.
	err := svc.SubmitPicks(context.Background(), "pool1", "alice", 1, []PickSubmission{
		{GameID: "g1", PredictedWinner: "KC"},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitPicks() error = %v", err)
	}

	if len(pickWriter.stored) != 1 {
		t.Fatalf("stored %d picks, want 1", len(pickWriter.stored))
	}
	pick := pickWriter.stored[0]
	if pick.ConfidencePoints != 0 {
		t.Errorf("postseason pick carries confidence %d, want 0", pick.ConfidencePoints)
	}
	if pick.SeasonType != models.SeasonTypePostseason {
		t.Errorf("pick season type = %d, want postseason", pick.SeasonType)
	}
}

func TestSubmitPicksRejectsStartedGame(t *testing.T) {
	t.Parallel()

	started := upcomingGame("g1", "KC", "BAL")
	started.KickoffTime = time.Now().Add(-time.Hour)

	svc, _, _ := newPickFixture([]models.Game{started, upcomingGame("g2", "SF", "DAL")})

	err := svc.SubmitPicks(context.Background(), "pool1", "alice", 1, []PickSubmission{
		{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 2},
		{GameID: "g2", PredictedWinner: "SF", ConfidencePoints: 1},
	}, nil)
	if err == nil {
		t.Fatal("SubmitPicks() accepted a pick for a started game")
	}
}

func TestSubmitPicksRejectsWrongTeam(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPickFixture([]models.Game{upcomingGame("g1", "KC", "BAL")})

	err := svc.SubmitPicks(context.Background(), "pool1", "alice", 1, []PickSubmission{
		{GameID: "g1", PredictedWinner: "SF", ConfidencePoints: 1},
	}, nil)
	if err == nil {
		t.Fatal("SubmitPicks() accepted a team not playing in the game")
	}
}

func TestSubmitPicksRejectsDuplicateGame(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPickFixture([]models.Game{
		upcomingGame("g1", "KC", "BAL"),
		upcomingGame("g2", "SF", "DAL"),
	})

	err := svc.SubmitPicks(context.Background(), "pool1", "alice", 1, []PickSubmission{
		{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 2},
		{GameID: "g1", PredictedWinner: "BAL", ConfidencePoints: 1},
	}, nil)
	if err == nil {
		t.Fatal("SubmitPicks() accepted two picks for one game")
	}
}

func TestSubmitPicksRejectsForeignParticipant(t *testing.T) {
	t.Parallel()

	svc, _, _ := newPickFixture([]models.Game{upcomingGame("g1", "KC", "BAL")})

	err := svc.SubmitPicks(context.Background(), "pool1", "mallory", 1, []PickSubmission{
		{GameID: "g1", PredictedWinner: "KC", ConfidencePoints: 1},
	}, nil)
	if err == nil {
		t.Fatal("SubmitPicks() accepted an unknown participant")
	}
}
