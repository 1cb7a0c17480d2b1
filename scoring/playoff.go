package scoring

import (
	"errors"
	"fmt"

	"confidence-pool-go/models"
)

// Validation failures specific to a playoff weight submission, beyond
// the shared confidence-set sentinels.
var (
	ErrUnknownPlayoffTeam = errors.New("team is not on the playoff roster")
	ErrMissingPlayoffTeam = errors.New("playoff team has no weight assigned")
)

// ValidatePlayoffWeights checks a team-keyed weight submission against
// the playoff roster: every roster team weighted exactly once, no
// weights on teams outside the roster, and the weights themselves a
// permutation of 1..len(roster). Checks run in order and short-circuit
// on the first failure.
func ValidatePlayoffWeights(weights map[string]int, roster []models.PlayoffTeam) error {
	onRoster := make(map[string]bool, len(roster))
	for i := range roster {
		onRoster[roster[i].TeamName] = true
	}

	for team := range weights {
		if !onRoster[team] {
			return fmt.Errorf("%w: %s", ErrUnknownPlayoffTeam, team)
		}
	}
	for i := range roster {
		if _, ok := weights[roster[i].TeamName]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingPlayoffTeam, roster[i].TeamName)
		}
	}

	values := make([]int, 0, len(weights))
	for _, w := range weights {
		values = append(values, w)
	}
	return ValidateConfidencePoints(values, len(roster))
}

// ApplyPlayoffWeights rewrites each pick's confidence points to the
// participant's roster weight for the team it backs. Picks whose
// participant or predicted winner has no stored weight keep their own
// confidence points (zero for stored postseason picks, so an unweighted
// team earns nothing). The input slice is not modified.
func ApplyPlayoffWeights(picks []models.Pick, weights map[string]map[string]int) []models.Pick {
	out := make([]models.Pick, len(picks))
	copy(out, picks)
	for i := range out {
		byTeam := weights[out[i].ParticipantID]
		if byTeam == nil {
			continue
		}
		if w, ok := byTeam[out[i].PredictedWinner]; ok {
			out[i].ConfidencePoints = w
		}
	}
	return out
}

// WeightsByTeam flattens stored weight rows into a team-keyed map.
func WeightsByTeam(rows []models.PlayoffWeight) map[string]int {
	out := make(map[string]int, len(rows))
	for i := range rows {
		out[rows[i].TeamName] = rows[i].Weight
	}
	return out
}
