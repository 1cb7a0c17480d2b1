package scoring

import (
	"sort"

	"confidence-pool-go/models"
)

// ComputeWeeklyScores converts a set of picks and game results into
// per-participant score rows for one week. A correct pick earns its
// confidence points; a game without a recorded winner earns nothing
// but still counts toward total picks (not yet decided, never wrong).
// Picks referencing a game absent from the supplied set are skipped
// entirely; the count of such orphaned picks is returned as a
// data-quality signal for the caller to log.
//
// Output is sorted descending by points with participant id as a
// deterministic secondary order, and rank assigned by position
// (1-based, distinct consecutive ranks even on equal points). The
// function is pure: identical inputs always yield identical rows.
func ComputeWeeklyScores(picks []models.Pick, games []models.Game) ([]models.WeeklyScore, int) {
	winnerByGame := make(map[string]string, len(games))
	for i := range games {
		winnerByGame[games[i].ID] = games[i].Winner
	}

	byParticipant := make(map[string]*models.WeeklyScore)
	order := make([]string, 0)
	orphaned := 0

	for i := range picks {
		pick := &picks[i]
		winner, known := winnerByGame[pick.GameID]
		if !known {
			orphaned++
			continue
		}

		score := byParticipant[pick.ParticipantID]
		if score == nil {
			score = &models.WeeklyScore{
				ParticipantID: pick.ParticipantID,
				PoolID:        pick.PoolID,
				Season:        pick.Season,
				Week:          pick.Week,
			}
			byParticipant[pick.ParticipantID] = score
			order = append(order, pick.ParticipantID)
		}

		score.TotalPicks++
		if winner != "" && pick.PredictedWinner == winner {
			score.Points += pick.ConfidencePoints
			score.CorrectPicks++
		}
	}

	scores := make([]models.WeeklyScore, 0, len(order))
	for _, id := range order {
		scores = append(scores, *byParticipant[id])
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].ParticipantID < scores[j].ParticipantID
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	return scores, orphaned
}

// ConfidenceWeights extracts the confidence values from one
// participant's pick set, in submission order
func ConfidenceWeights(picks []models.Pick) []int {
	weights := make([]int, len(picks))
	for i := range picks {
		weights[i] = picks[i].ConfidencePoints
	}
	return weights
}

// GroupPicksByParticipant splits a week's picks into per-participant
// sets, used for defensive validation before scoring
func GroupPicksByParticipant(picks []models.Pick) map[string][]models.Pick {
	grouped := make(map[string][]models.Pick)
	for _, pick := range picks {
		grouped[pick.ParticipantID] = append(grouped[pick.ParticipantID], pick)
	}
	return grouped
}
