package models

import (
	"strings"
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	GameStatusScheduled GameStatus = "scheduled"
	GameStatusLive      GameStatus = "live"
	GameStatusFinal     GameStatus = "final"
	GameStatusCancelled GameStatus = "cancelled"
	GameStatusPostponed GameStatus = "postponed"
)

// Season types as delivered by the results feed
const (
	SeasonTypePreseason  = 1
	SeasonTypeRegular    = 2
	SeasonTypePostseason = 3
)

// Game represents a single NFL contest. Games are written by the
// results-ingestion path and read-only everywhere else.
type Game struct {
	ID          string     `json:"id" bson:"_id"`
	Season      int        `json:"season" bson:"season"`
	SeasonType  int        `json:"season_type" bson:"season_type"`
	Week        int        `json:"week" bson:"week"`
	HomeTeam    string     `json:"home_team" bson:"home_team"`
	AwayTeam    string     `json:"away_team" bson:"away_team"`
	KickoffTime time.Time  `json:"kickoff_time" bson:"kickoff_time"`
	Status      GameStatus `json:"status" bson:"status"`
	HomeScore   int        `json:"home_score" bson:"home_score"`
	AwayScore   int        `json:"away_score" bson:"away_score"`
	Winner      string     `json:"winner,omitempty" bson:"winner,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// IsTerminal returns true if the game can no longer change outcome
func (g *Game) IsTerminal() bool {
	return g.Status == GameStatusFinal || g.Status == GameStatusCancelled
}

// HasWinner returns true if a non-empty winner has been recorded
func (g *Game) HasWinner() bool {
	return strings.TrimSpace(g.Winner) != ""
}

// IsScoreable returns true when the game contributes a decided result:
// terminal status AND a recorded winner. A cancelled game without a
// winner never becomes scoreable.
func (g *Game) IsScoreable() bool {
	return g.IsTerminal() && g.HasWinner()
}

// IsLive returns true if the game is currently being played
func (g *Game) IsLive() bool {
	return g.Status == GameStatusLive
}

// HasStarted returns true if kickoff has passed
func (g *Game) HasStarted(now time.Time) bool {
	return !now.Before(g.KickoffTime)
}
