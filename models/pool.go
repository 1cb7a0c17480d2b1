package models

import (
	"time"

	"github.com/google/uuid"
)

// TieBreakerMethod identifies how a pool breaks exact-score ties after
// the weeks-won comparison
type TieBreakerMethod string

const (
	// TieBreakerClosestAnswer compares submitted numeric answers
	// against the commissioner-entered target (e.g. Monday night
	// total points); smallest absolute difference wins.
	TieBreakerClosestAnswer TieBreakerMethod = "closest_answer"
)

// Pool represents one confidence pool contest
type Pool struct {
	ID                 string           `json:"id" bson:"_id"`
	Name               string           `json:"name" bson:"name"`
	Season             int              `json:"season" bson:"season"`
	TieBreakerMethod   TieBreakerMethod `json:"tie_breaker_method" bson:"tie_breaker_method"`
	TieBreakerQuestion string           `json:"tie_breaker_question,omitempty" bson:"tie_breaker_question,omitempty"`
	TieBreakerAnswer   *float64         `json:"tie_breaker_answer,omitempty" bson:"tie_breaker_answer,omitempty"`
	IsActive           bool             `json:"is_active" bson:"is_active"`
	CreatedAt          time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" bson:"updated_at"`
}

// NewPool creates an active pool for the given season
func NewPool(name string, season int) *Pool {
	now := time.Now()
	return &Pool{
		ID:               uuid.NewString(),
		Name:             name,
		Season:           season,
		TieBreakerMethod: TieBreakerClosestAnswer,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// HasTieBreakerTarget returns true once the commissioner has entered
// the target answer for the season
func (p *Pool) HasTieBreakerTarget() bool {
	return p.TieBreakerAnswer != nil
}

// Participant represents a member of a pool
type Participant struct {
	ID        string    `json:"id" bson:"_id"`
	PoolID    string    `json:"pool_id" bson:"pool_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewParticipant creates a participant in the given pool
func NewParticipant(poolID, name, email string) *Participant {
	return &Participant{
		ID:        uuid.NewString(),
		PoolID:    poolID,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}
