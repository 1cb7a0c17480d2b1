package models

import (
	"time"
)

// WeeklyScore is a derived result row: one participant's total for one
// pool-week. Rows are only ever written by the scoring pipeline, which
// replaces the full (pool, week) set atomically on every recompute.
type WeeklyScore struct {
	ID              string    `json:"id" bson:"_id"`
	ParticipantID   string    `json:"participant_id" bson:"participant_id"`
	ParticipantName string    `json:"participant_name" bson:"participant_name"`
	PoolID          string    `json:"pool_id" bson:"pool_id"`
	Season          int       `json:"season" bson:"season"`
	SeasonType      int       `json:"season_type" bson:"season_type"`
	Week            int       `json:"week" bson:"week"`
	Points          int       `json:"points" bson:"points"`
	CorrectPicks    int       `json:"correct_picks" bson:"correct_picks"`
	TotalPicks      int       `json:"total_picks" bson:"total_picks"`
	Rank            int       `json:"rank" bson:"rank"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
}

// TieBreakerAnswer is a participant's numeric guess for a pool-week,
// consulted only when the primary score is tied
type TieBreakerAnswer struct {
	ID            string    `json:"id" bson:"_id"`
	ParticipantID string    `json:"participant_id" bson:"participant_id"`
	PoolID        string    `json:"pool_id" bson:"pool_id"`
	Season        int       `json:"season" bson:"season"`
	Week          int       `json:"week" bson:"week"`
	Answer        float64   `json:"answer" bson:"answer"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
