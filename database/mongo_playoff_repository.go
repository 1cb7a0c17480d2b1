package database

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPlayoffTeamRepository stores the postseason roster per season
type MongoPlayoffTeamRepository struct {
	collection *mongo.Collection
}

// NewMongoPlayoffTeamRepository creates a new MongoDB playoff team repository
func NewMongoPlayoffTeamRepository(db *MongoDB) *MongoPlayoffTeamRepository {
	return &MongoPlayoffTeamRepository{
		collection: db.GetCollection("playoff_teams"),
	}
}

// Upsert writes one roster slot. The slot is keyed by (season,
// conference, seed), so entering a team replaces whichever team held
// that seed before.
func (r *MongoPlayoffTeamRepository) Upsert(ctx context.Context, team *models.PlayoffTeam) error {
	filter := bson.M{
		"season":     team.Season,
		"conference": team.Conference,
		"seed":       team.Seed,
	}

	update := bson.M{
		"$set": bson.M{
			"team_name":         team.TeamName,
			"team_abbreviation": team.TeamAbbreviation,
			"updated_at":        time.Now(),
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"created_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert playoff team %s seed %d: %w", team.Conference, team.Seed, err)
	}
	return nil
}

// FindBySeason returns the full roster ordered by conference and seed
func (r *MongoPlayoffTeamRepository) FindBySeason(ctx context.Context, season int) ([]models.PlayoffTeam, error) {
	filter := bson.M{"season": season}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "conference", Value: 1}, {Key: "seed", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find playoff teams for season %d: %w", season, err)
	}
	defer cursor.Close(ctx)

	var teams []models.PlayoffTeam
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode playoff teams: %w", err)
	}
	return teams, nil
}

// MongoPlayoffWeightRepository stores participant playoff weights
type MongoPlayoffWeightRepository struct {
	collection *mongo.Collection
}

// NewMongoPlayoffWeightRepository creates a new MongoDB playoff weight repository
func NewMongoPlayoffWeightRepository(db *MongoDB) *MongoPlayoffWeightRepository {
	return &MongoPlayoffWeightRepository{
		collection: db.GetCollection("playoff_weights"),
	}
}

// ReplaceParticipant removes a participant's stored weights for a
// season and inserts the replacement rows. A resubmission fully
// supersedes the previous one.
func (r *MongoPlayoffWeightRepository) ReplaceParticipant(ctx context.Context, participantID, poolID string, season int, weights []*models.PlayoffWeight) error {
	filter := bson.M{
		"participant_id": participantID,
		"pool_id":        poolID,
		"season":         season,
	}

	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete prior playoff weights for participant %s: %w", participantID, err)
	}

	if len(weights) == 0 {
		return nil
	}

	documents := make([]interface{}, len(weights))
	for i, weight := range weights {
		documents[i] = weight
	}
	if _, err := r.collection.InsertMany(ctx, documents); err != nil {
		return fmt.Errorf("failed to insert %d playoff weights: %w", len(weights), err)
	}
	return nil
}

// FindByParticipant returns one participant's stored weight rows
func (r *MongoPlayoffWeightRepository) FindByParticipant(ctx context.Context, participantID, poolID string, season int) ([]models.PlayoffWeight, error) {
	filter := bson.M{
		"participant_id": participantID,
		"pool_id":        poolID,
		"season":         season,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find playoff weights for participant %s: %w", participantID, err)
	}
	defer cursor.Close(ctx)

	var weights []models.PlayoffWeight
	if err := cursor.All(ctx, &weights); err != nil {
		return nil, fmt.Errorf("failed to decode playoff weights: %w", err)
	}
	return weights, nil
}

// FindByPool returns every participant's weights for a pool, keyed by
// participant then team. Postseason scoring reads this map to price
// each pick.
func (r *MongoPlayoffWeightRepository) FindByPool(ctx context.Context, poolID string, season int) (map[string]map[string]int, error) {
	filter := bson.M{
		"pool_id": poolID,
		"season":  season,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find playoff weights for pool %s: %w", poolID, err)
	}
	defer cursor.Close(ctx)

	var weights []models.PlayoffWeight
	if err := cursor.All(ctx, &weights); err != nil {
		return nil, fmt.Errorf("failed to decode playoff weights: %w", err)
	}

	byParticipant := make(map[string]map[string]int)
	for _, w := range weights {
		byTeam := byParticipant[w.ParticipantID]
		if byTeam == nil {
			byTeam = make(map[string]int)
			byParticipant[w.ParticipantID] = byTeam
		}
		byTeam[w.TeamName] = w.Weight
	}
	return byParticipant, nil
}
