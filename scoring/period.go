package scoring

import (
	"sort"

	"confidence-pool-go/models"
)

// Period is a named contiguous range of weeks scored for a standings
// prize: the four quarters plus the full season.
type Period struct {
	Name      string
	StartWeek int
	EndWeek   int
}

// SeasonPeriodName is the period covering the whole regular season
const SeasonPeriodName = "Season"

// Quarters lists the quarter periods in order. Week ranges follow the
// regular-season period markers: each quarter ends at weeks 4, 9, 14
// and 18 respectively.
var Quarters = []Period{
	{Name: "Q1", StartWeek: 1, EndWeek: 4},
	{Name: "Q2", StartWeek: 5, EndWeek: 9},
	{Name: "Q3", StartWeek: 10, EndWeek: 14},
	{Name: "Q4", StartWeek: 15, EndWeek: 18},
}

// SeasonPeriod returns the period covering the full regular season
func SeasonPeriod() Period {
	return Period{Name: SeasonPeriodName, StartWeek: 1, EndWeek: 18}
}

// PeriodByName looks up a quarter or the season period by name
func PeriodByName(name string) (Period, bool) {
	if name == SeasonPeriodName {
		return SeasonPeriod(), true
	}
	for _, p := range Quarters {
		if p.Name == name {
			return p, true
		}
	}
	return Period{}, false
}

// QuarterEndingAt returns the quarter whose final week is the given
// week, if any. The scheduled checker uses this to know when a
// quarter standings run is due.
func QuarterEndingAt(week int) (Period, bool) {
	for _, p := range Quarters {
		if p.EndWeek == week {
			return p, true
		}
	}
	return Period{}, false
}

// Weeks expands the period into its constituent week numbers
func (p Period) Weeks() []int {
	weeks := make([]int, 0, p.EndWeek-p.StartWeek+1)
	for w := p.StartWeek; w <= p.EndWeek; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}

// Contains reports whether the week falls inside the period
func (p Period) Contains(week int) bool {
	return week >= p.StartWeek && week <= p.EndWeek
}

// PeriodTotal is one participant's accumulated standing across the
// weeks of a period
type PeriodTotal struct {
	ParticipantID   string `json:"participant_id"`
	ParticipantName string `json:"participant_name"`
	TotalPoints     int    `json:"total_points"`
	TotalCorrect    int    `json:"total_correct"`
	TotalPicks      int    `json:"total_picks"`
	WeeksWon        int    `json:"weeks_won"`
}

// AggregatePeriod sums weekly score rows into period standings. Each
// element of weekScores holds one week's rows. Weeks-won counts the
// weeks in which a participant held the outright highest score; a
// week whose top score is shared awards the increment to nobody, so
// that weeks-won stays unambiguous when it is later used as a
// tie-break criterion.
//
// Output is sorted descending by total points with participant id as
// a deterministic secondary order. Rank is not assigned here: the
// top position depends on tie resolution, every other position uses
// plain positional order.
func AggregatePeriod(weekScores [][]models.WeeklyScore) []PeriodTotal {
	byParticipant := make(map[string]*PeriodTotal)
	order := make([]string, 0)

	for _, week := range weekScores {
		for i := range week {
			row := &week[i]
			total := byParticipant[row.ParticipantID]
			if total == nil {
				total = &PeriodTotal{
					ParticipantID:   row.ParticipantID,
					ParticipantName: row.ParticipantName,
				}
				byParticipant[row.ParticipantID] = total
				order = append(order, row.ParticipantID)
			}
			total.TotalPoints += row.Points
			total.TotalCorrect += row.CorrectPicks
			total.TotalPicks += row.TotalPicks
			if total.ParticipantName == "" {
				total.ParticipantName = row.ParticipantName
			}
		}

		if winnerID, ok := outrightWeekWinner(week); ok {
			byParticipant[winnerID].WeeksWon++
		}
	}

	totals := make([]PeriodTotal, 0, len(order))
	for _, id := range order {
		totals = append(totals, *byParticipant[id])
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalPoints != totals[j].TotalPoints {
			return totals[i].TotalPoints > totals[j].TotalPoints
		}
		return totals[i].ParticipantID < totals[j].ParticipantID
	})

	return totals
}

// outrightWeekWinner returns the participant holding the single
// highest score of the week, or ok=false when the top score is shared
// or the week is empty
func outrightWeekWinner(week []models.WeeklyScore) (string, bool) {
	if len(week) == 0 {
		return "", false
	}

	maxPoints := week[0].Points
	for i := range week {
		if week[i].Points > maxPoints {
			maxPoints = week[i].Points
		}
	}

	winnerID := ""
	for i := range week {
		if week[i].Points != maxPoints {
			continue
		}
		if winnerID != "" {
			return "", false
		}
		winnerID = week[i].ParticipantID
	}
	return winnerID, true
}

// TopScorers filters the standings down to the participants sharing
// the maximum total, the candidate set handed to ResolveTie
func TopScorers(totals []PeriodTotal) []PeriodTotal {
	if len(totals) == 0 {
		return nil
	}
	maxPoints := totals[0].TotalPoints
	top := make([]PeriodTotal, 0, 1)
	for _, t := range totals {
		if t.TotalPoints == maxPoints {
			top = append(top, t)
		}
	}
	return top
}
