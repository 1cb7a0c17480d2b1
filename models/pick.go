package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents a participant's prediction for a single game with an
// assigned confidence weight. Within one participant's picks for a
// regular-season week the weights must form a permutation of 1..N (see
// scoring.ValidateConfidencePoints). Postseason picks carry no weight
// of their own; scoring takes it from the participant's playoff
// roster weights.
type Pick struct {
	ID               string    `json:"id" bson:"_id"`
	ParticipantID    string    `json:"participant_id" bson:"participant_id"`
	PoolID           string    `json:"pool_id" bson:"pool_id"`
	GameID           string    `json:"game_id" bson:"game_id"`
	PredictedWinner  string    `json:"predicted_winner" bson:"predicted_winner"`
	ConfidencePoints int       `json:"confidence_points" bson:"confidence_points"`
	Season           int       `json:"season" bson:"season"`
	SeasonType       int       `json:"season_type" bson:"season_type"`
	Week             int       `json:"week" bson:"week"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// NewPick creates a pick with a fresh identifier and timestamps
func NewPick(participantID, poolID, gameID, predictedWinner string, confidencePoints, season, seasonType, week int) *Pick {
	now := time.Now()
	return &Pick{
		ID:               uuid.NewString(),
		ParticipantID:    participantID,
		PoolID:           poolID,
		GameID:           gameID,
		PredictedWinner:  predictedWinner,
		ConfidencePoints: confidencePoints,
		Season:           season,
		SeasonType:       seasonType,
		Week:             week,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
