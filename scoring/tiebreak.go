package scoring

import (
	"math"
)

// TieResult is the outcome of resolving a tied candidate set. Exactly
// one of Winner or ResidualTie is meaningful: a residual tie is a
// valid terminal state requiring manual resolution, never an error
// and never a silently picked winner.
type TieResult struct {
	Winner         *PeriodTotal
	TieBreakerUsed bool
	WinnerAnswer   *float64
	Difference     *float64
	ResidualTie    bool
	Tied           []PeriodTotal
}

// ResolveTie applies the ordered tie-break cascade to candidates that
// all share the maximum total points, stopping at the first stage
// that yields a unique winner:
//
//  1. a single candidate wins outright;
//  2. highest weeks-won, if unique;
//  3. closest submitted answer to the pool's target (absolute
//     difference, missing answer treated as infinitely far), marking
//     TieBreakerUsed;
//  4. otherwise a residual tie reporting all remaining candidates.
//
// A nil target skips stage 3. The function never errors.
func ResolveTie(candidates []PeriodTotal, target *float64, answers map[string]float64) TieResult {
	if len(candidates) == 0 {
		return TieResult{ResidualTie: true}
	}
	if len(candidates) == 1 {
		winner := candidates[0]
		return TieResult{Winner: &winner}
	}

	remaining := byMostWeeksWon(candidates)
	if len(remaining) == 1 {
		winner := remaining[0]
		return TieResult{Winner: &winner}
	}

	if target == nil {
		return TieResult{ResidualTie: true, Tied: remaining}
	}

	return byClosestAnswer(remaining, *target, answers)
}

// byMostWeeksWon narrows candidates to those sharing the highest
// weeks-won count
func byMostWeeksWon(candidates []PeriodTotal) []PeriodTotal {
	maxWon := candidates[0].WeeksWon
	for _, c := range candidates {
		if c.WeeksWon > maxWon {
			maxWon = c.WeeksWon
		}
	}

	narrowed := make([]PeriodTotal, 0, 1)
	for _, c := range candidates {
		if c.WeeksWon == maxWon {
			narrowed = append(narrowed, c)
		}
	}
	return narrowed
}

// byClosestAnswer resolves the numeric tie-breaker stage. Candidates
// with no recorded answer always lose it.
func byClosestAnswer(candidates []PeriodTotal, target float64, answers map[string]float64) TieResult {
	differences := make([]float64, len(candidates))
	minDiff := math.Inf(1)
	for i, c := range candidates {
		diff := math.Inf(1)
		if answer, ok := answers[c.ParticipantID]; ok {
			diff = math.Abs(answer - target)
		}
		differences[i] = diff
		if diff < minDiff {
			minDiff = diff
		}
	}

	closest := make([]PeriodTotal, 0, 1)
	for i, c := range candidates {
		if differences[i] == minDiff {
			closest = append(closest, c)
		}
	}

	// Every answer missing, or the smallest difference shared:
	// nothing left to separate them automatically.
	if math.IsInf(minDiff, 1) || len(closest) > 1 {
		return TieResult{ResidualTie: true, Tied: closest}
	}

	winner := closest[0]
	answer := answers[winner.ParticipantID]
	return TieResult{
		Winner:         &winner,
		TieBreakerUsed: true,
		WinnerAnswer:   &answer,
		Difference:     &minDiff,
	}
}
