package scoring

import (
	"reflect"
	"testing"

	"confidence-pool-go/models"
)

func pick(participantID, gameID, predicted string, confidence int) models.Pick {
	return models.Pick{
		ParticipantID:    participantID,
		PoolID:           "pool-1",
		GameID:           gameID,
		PredictedWinner:  predicted,
		ConfidencePoints: confidence,
		Season:           2025,
		Week:             3,
	}
}

func TestComputeWeeklyScores(t *testing.T) {
	t.Parallel()

	games := []models.Game{
		game("g1", models.GameStatusFinal, "KC"),
		game("g2", models.GameStatusFinal, "BUF"),
		game("g3", models.GameStatusLive, ""),
	}

	picks := []models.Pick{
		pick("alice", "g1", "KC", 3),  // correct
		pick("alice", "g2", "BUF", 2), // correct
		pick("alice", "g3", "DET", 1), // undecided, counts toward totals only
		pick("bob", "g1", "LV", 3),    // wrong
		pick("bob", "g2", "BUF", 2),   // correct
		pick("bob", "g3", "GB", 1),    // undecided
	}

	scores, orphaned := ComputeWeeklyScores(picks, games)
	if orphaned != 0 {
		t.Fatalf("expected no orphaned picks, got %d", orphaned)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 score rows, got %d", len(scores))
	}

	alice := scores[0]
	if alice.ParticipantID != "alice" {
		t.Fatalf("expected alice first, got %s", alice.ParticipantID)
	}
	if alice.Points != 5 || alice.CorrectPicks != 2 || alice.TotalPicks != 3 || alice.Rank != 1 {
		t.Fatalf("unexpected alice row: %+v", alice)
	}

	bob := scores[1]
	if bob.Points != 2 || bob.CorrectPicks != 1 || bob.TotalPicks != 3 || bob.Rank != 2 {
		t.Fatalf("unexpected bob row: %+v", bob)
	}
}

func TestComputeWeeklyScores_Idempotent(t *testing.T) {
	t.Parallel()

	games := []models.Game{
		game("g1", models.GameStatusFinal, "KC"),
		game("g2", models.GameStatusFinal, "BUF"),
	}
	picks := []models.Pick{
		pick("carol", "g1", "KC", 2),
		pick("carol", "g2", "MIA", 1),
		pick("dave", "g2", "BUF", 2),
		pick("dave", "g1", "KC", 1),
	}

	first, _ := ComputeWeeklyScores(picks, games)
	second, _ := ComputeWeeklyScores(picks, games)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recomputation diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeWeeklyScores_TiedPointsGetDistinctConsecutiveRanks(t *testing.T) {
	t.Parallel()

	games := []models.Game{
		game("g1", models.GameStatusFinal, "KC"),
		game("g2", models.GameStatusFinal, "BUF"),
	}
	picks := []models.Pick{
		pick("alice", "g1", "KC", 2),
		pick("alice", "g2", "BUF", 1),
		pick("bob", "g1", "KC", 1),
		pick("bob", "g2", "BUF", 2),
	}

	scores, _ := ComputeWeeklyScores(picks, games)
	if len(scores) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(scores))
	}
	if scores[0].Points != 3 || scores[1].Points != 3 {
		t.Fatalf("expected both on 3 points, got %d and %d", scores[0].Points, scores[1].Points)
	}
	// Positional ranking: equal points still get ranks 1 and 2, in
	// deterministic participant-id order. Winner determination goes
	// through the tie resolver, never through rank.
	if scores[0].Rank != 1 || scores[1].Rank != 2 {
		t.Fatalf("expected ranks 1,2, got %d,%d", scores[0].Rank, scores[1].Rank)
	}
	if scores[0].ParticipantID != "alice" || scores[1].ParticipantID != "bob" {
		t.Fatalf("expected deterministic id order, got %s,%s", scores[0].ParticipantID, scores[1].ParticipantID)
	}
}

func TestComputeWeeklyScores_OrphanedPicksSkipped(t *testing.T) {
	t.Parallel()

	games := []models.Game{
		game("g1", models.GameStatusFinal, "KC"),
	}
	picks := []models.Pick{
		pick("alice", "g1", "KC", 2),
		pick("alice", "g-unknown", "BUF", 1),
	}

	scores, orphaned := ComputeWeeklyScores(picks, games)
	if orphaned != 1 {
		t.Fatalf("expected 1 orphaned pick, got %d", orphaned)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 row, got %d", len(scores))
	}
	if scores[0].TotalPicks != 1 || scores[0].Points != 2 {
		t.Fatalf("orphaned pick leaked into totals: %+v", scores[0])
	}
}

func TestComputeWeeklyScores_NoPicksNoRow(t *testing.T) {
	t.Parallel()

	games := []models.Game{game("g1", models.GameStatusFinal, "KC")}

	scores, orphaned := ComputeWeeklyScores(nil, games)
	if len(scores) != 0 || orphaned != 0 {
		t.Fatalf("expected empty output, got %d rows, %d orphaned", len(scores), orphaned)
	}
}

func TestComputeWeeklyScores_Conservation(t *testing.T) {
	t.Parallel()

	games := []models.Game{
		game("g1", models.GameStatusFinal, "KC"),
		game("g2", models.GameStatusFinal, "BUF"),
		game("g3", models.GameStatusFinal, "DET"),
	}
	picks := []models.Pick{
		pick("erin", "g1", "KC", 3),
		pick("erin", "g2", "MIA", 2),
		pick("erin", "g3", "DET", 1),
	}

	scores, _ := ComputeWeeklyScores(picks, games)
	if len(scores) != 1 {
		t.Fatalf("expected 1 row, got %d", len(scores))
	}

	// points = sum of weights of correct picks, correct = their
	// count, total = all picks for the participant
	row := scores[0]
	if row.Points != 3+1 {
		t.Fatalf("points not conserved: got %d, want 4", row.Points)
	}
	if row.CorrectPicks != 2 {
		t.Fatalf("correct picks not conserved: got %d, want 2", row.CorrectPicks)
	}
	if row.TotalPicks != 3 {
		t.Fatalf("total picks not conserved: got %d, want 3", row.TotalPicks)
	}
}
