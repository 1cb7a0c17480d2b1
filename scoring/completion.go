// Package scoring implements the confidence-pool scoring engine: the
// completion gate, the weekly score calculator, the period aggregator,
// the tie resolver and the confidence-points validator. Everything in
// this package is pure computation over in-memory collections; all
// I/O belongs to the callers in services and database.
package scoring

import (
	"confidence-pool-go/models"
)

// IsWeekComplete reports whether every game in the set has reached a
// terminal state with a recorded winner, so the week may be finally
// scored. An empty set is vacuously complete: absence of games must
// not stall downstream period computation.
func IsWeekComplete(games []models.Game) bool {
	for i := range games {
		if !games[i].IsScoreable() {
			return false
		}
	}
	return true
}

// IsPeriodComplete reports whether IsWeekComplete holds for every week
// in the period. Weeks missing from gamesByWeek count as empty and
// therefore complete.
func IsPeriodComplete(weeks []int, gamesByWeek map[int][]models.Game) bool {
	for _, week := range weeks {
		if !IsWeekComplete(gamesByWeek[week]) {
			return false
		}
	}
	return true
}
