package models

import (
	"time"
)

// PeriodWinner is the resolved result for a named period ("Q1".."Q4"
// or "Season"). Keyed uniquely by (pool, season, period); always
// upserted, never inserted twice. Only computed once every
// constituent week is terminal and fully scored.
type PeriodWinner struct {
	ID                  string    `json:"id" bson:"_id,omitempty"`
	PoolID              string    `json:"pool_id" bson:"pool_id"`
	Season              int       `json:"season" bson:"season"`
	PeriodName          string    `json:"period_name" bson:"period_name"`
	StartWeek           int       `json:"start_week" bson:"start_week"`
	EndWeek             int       `json:"end_week" bson:"end_week"`
	WinnerParticipantID string    `json:"winner_participant_id,omitempty" bson:"winner_participant_id,omitempty"`
	WinnerName          string    `json:"winner_name,omitempty" bson:"winner_name,omitempty"`
	WinnerPoints        int       `json:"winner_points" bson:"winner_points"`
	WinnerCorrectPicks  int       `json:"winner_correct_picks" bson:"winner_correct_picks"`
	WinnerTotalPicks    int       `json:"winner_total_picks" bson:"winner_total_picks"`
	WeeksWon            int       `json:"weeks_won" bson:"weeks_won"`
	TotalParticipants   int       `json:"total_participants" bson:"total_participants"`
	TieBreakerUsed      bool      `json:"tie_breaker_used" bson:"tie_breaker_used"`
	TieBreakerAnswer    *float64  `json:"tie_breaker_answer,omitempty" bson:"tie_breaker_answer,omitempty"`
	WinnerAnswer        *float64  `json:"winner_answer,omitempty" bson:"winner_answer,omitempty"`
	AnswerDifference    *float64  `json:"answer_difference,omitempty" bson:"answer_difference,omitempty"`
	ResidualTie         bool      `json:"residual_tie" bson:"residual_tie"`
	TiedParticipantIDs  []string  `json:"tied_participant_ids,omitempty" bson:"tied_participant_ids,omitempty"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" bson:"updated_at"`
}

// IsResolved returns true when the period produced a unique winner
// rather than a residual tie pending manual resolution
func (pw *PeriodWinner) IsResolved() bool {
	return !pw.ResidualTie && pw.WinnerParticipantID != ""
}
