package scoring

import (
	"testing"
)

func candidate(id string, points, weeksWon int) PeriodTotal {
	return PeriodTotal{ParticipantID: id, ParticipantName: id, TotalPoints: points, WeeksWon: weeksWon}
}

func floatPtr(f float64) *float64 { return &f }

func TestResolveTie_SingleCandidate(t *testing.T) {
	t.Parallel()

	result := ResolveTie([]PeriodTotal{candidate("alice", 40, 2)}, nil, nil)
	if result.Winner == nil || result.Winner.ParticipantID != "alice" {
		t.Fatalf("expected alice to win outright, got %+v", result)
	}
	if result.TieBreakerUsed {
		t.Fatalf("single candidate must not mark tie breaker used")
	}
	if result.ResidualTie {
		t.Fatalf("single candidate is never a residual tie")
	}
}

func TestResolveTie_WeeksWonDecides(t *testing.T) {
	t.Parallel()

	candidates := []PeriodTotal{
		candidate("alice", 40, 2),
		candidate("bob", 40, 1),
	}

	result := ResolveTie(candidates, floatPtr(44), map[string]float64{"alice": 10, "bob": 44})
	if result.Winner == nil || result.Winner.ParticipantID != "alice" {
		t.Fatalf("expected weeks-won to decide for alice, got %+v", result)
	}
	if result.TieBreakerUsed {
		t.Fatalf("weeks-won stage must not mark tie breaker used")
	}
}

func TestResolveTie_ClosestAnswerDecides(t *testing.T) {
	t.Parallel()

	candidates := []PeriodTotal{
		candidate("alice", 40, 2),
		candidate("bob", 40, 2),
	}
	answers := map[string]float64{"alice": 47, "bob": 38}

	result := ResolveTie(candidates, floatPtr(45), answers)
	if result.Winner == nil || result.Winner.ParticipantID != "alice" {
		t.Fatalf("expected alice (diff 2) over bob (diff 7), got %+v", result)
	}
	if !result.TieBreakerUsed {
		t.Fatalf("answer stage must mark tie breaker used")
	}
	if result.WinnerAnswer == nil || *result.WinnerAnswer != 47 {
		t.Fatalf("expected winner answer 47, got %v", result.WinnerAnswer)
	}
	if result.Difference == nil || *result.Difference != 2 {
		t.Fatalf("expected difference 2, got %v", result.Difference)
	}
}

func TestResolveTie_MissingAnswerAlwaysLoses(t *testing.T) {
	t.Parallel()

	candidates := []PeriodTotal{
		candidate("alice", 40, 2),
		candidate("bob", 40, 2),
	}
	answers := map[string]float64{"bob": 100} // far off, but alice never answered

	result := ResolveTie(candidates, floatPtr(45), answers)
	if result.Winner == nil || result.Winner.ParticipantID != "bob" {
		t.Fatalf("expected bob to beat a missing answer, got %+v", result)
	}
}

func TestResolveTie_ResidualTieReported(t *testing.T) {
	t.Parallel()

	candidates := []PeriodTotal{
		candidate("alice", 40, 2),
		candidate("bob", 40, 2),
	}

	t.Run("identical answers", func(t *testing.T) {
		answers := map[string]float64{"alice": 44, "bob": 44}
		result := ResolveTie(candidates, floatPtr(45), answers)
		if !result.ResidualTie {
			t.Fatalf("expected residual tie, got %+v", result)
		}
		if result.Winner != nil {
			t.Fatalf("residual tie must never pick a winner")
		}
		if len(result.Tied) != 2 {
			t.Fatalf("expected both candidates reported, got %d", len(result.Tied))
		}
	})

	t.Run("both answers missing", func(t *testing.T) {
		result := ResolveTie(candidates, floatPtr(45), nil)
		if !result.ResidualTie || result.Winner != nil {
			t.Fatalf("expected residual tie with no winner, got %+v", result)
		}
		if len(result.Tied) != 2 {
			t.Fatalf("expected both candidates reported, got %d", len(result.Tied))
		}
	})

	t.Run("no target configured", func(t *testing.T) {
		answers := map[string]float64{"alice": 44, "bob": 12}
		result := ResolveTie(candidates, nil, answers)
		if !result.ResidualTie || result.Winner != nil {
			t.Fatalf("answers must be ignored without a target, got %+v", result)
		}
	})
}

func TestResolveTie_CascadeNarrowsBeforeAnswers(t *testing.T) {
	t.Parallel()

	// carol has fewer weeks won; her perfect answer must not matter
	candidates := []PeriodTotal{
		candidate("alice", 40, 3),
		candidate("bob", 40, 3),
		candidate("carol", 40, 1),
	}
	answers := map[string]float64{"alice": 50, "bob": 41, "carol": 45}

	result := ResolveTie(candidates, floatPtr(45), answers)
	if result.Winner == nil || result.Winner.ParticipantID != "bob" {
		t.Fatalf("expected bob after narrowing by weeks won, got %+v", result)
	}
	if !result.TieBreakerUsed {
		t.Fatalf("expected answer stage to have been used")
	}
}

func TestResolveTie_EmptyCandidates(t *testing.T) {
	t.Parallel()

	result := ResolveTie(nil, floatPtr(45), nil)
	if !result.ResidualTie || result.Winner != nil {
		t.Fatalf("expected residual tie for empty candidates, got %+v", result)
	}
}
