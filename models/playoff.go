package models

import (
	"time"

	"github.com/google/uuid"
)

// NFL conferences. Each sends seeds 1-7 to the postseason.
const (
	ConferenceAFC = "AFC"
	ConferenceNFC = "NFC"
)

// PlayoffSeedMin and PlayoffSeedMax bound a playoff seed within its
// conference.
const (
	PlayoffSeedMin = 1
	PlayoffSeedMax = 7
)

// PlayoffTeam is one postseason qualifier for a season. The roster is
// keyed by (season, conference, seed), so re-entering a seed replaces
// whichever team previously held it.
type PlayoffTeam struct {
	ID               string    `json:"id" bson:"_id"`
	Season           int       `json:"season" bson:"season"`
	TeamName         string    `json:"team_name" bson:"team_name"`
	TeamAbbreviation string    `json:"team_abbreviation" bson:"team_abbreviation"`
	Conference       string    `json:"conference" bson:"conference"`
	Seed             int       `json:"seed" bson:"seed"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidConference reports whether the conference is AFC or NFC.
func ValidConference(conference string) bool {
	return conference == ConferenceAFC || conference == ConferenceNFC
}

// ValidPlayoffSeed reports whether the seed falls in the playoff range.
func ValidPlayoffSeed(seed int) bool {
	return seed >= PlayoffSeedMin && seed <= PlayoffSeedMax
}

// PlayoffWeight is one participant's confidence weight on one playoff
// team. A complete submission covers every team on the roster with the
// weights 1..N each used exactly once; every postseason pick of that
// team is then worth this weight.
type PlayoffWeight struct {
	ID            string    `json:"id" bson:"_id"`
	ParticipantID string    `json:"participant_id" bson:"participant_id"`
	PoolID        string    `json:"pool_id" bson:"pool_id"`
	Season        int       `json:"season" bson:"season"`
	TeamName      string    `json:"team_name" bson:"team_name"`
	Weight        int       `json:"weight" bson:"weight"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// NewPlayoffWeight creates one weight row of a playoff submission.
func NewPlayoffWeight(participantID, poolID string, season int, teamName string, weight int) *PlayoffWeight {
	return &PlayoffWeight{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		PoolID:        poolID,
		Season:        season,
		TeamName:      teamName,
		Weight:        weight,
		CreatedAt:     time.Now(),
	}
}
