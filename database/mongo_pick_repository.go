package database

import (
	"context"
	"fmt"

	"confidence-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPickRepository stores participant picks
type MongoPickRepository struct {
	collection *mongo.Collection
}

// NewMongoPickRepository creates a new MongoDB pick repository
func NewMongoPickRepository(db *MongoDB) *MongoPickRepository {
	return &MongoPickRepository{
		collection: db.GetCollection("picks"),
	}
}

// CreateMany inserts a batch of picks
func (r *MongoPickRepository) CreateMany(ctx context.Context, picks []*models.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	documents := make([]interface{}, len(picks))
	for i, pick := range picks {
		documents[i] = pick
	}

	if _, err := r.collection.InsertMany(ctx, documents); err != nil {
		return fmt.Errorf("failed to insert %d picks: %w", len(picks), err)
	}
	return nil
}

// FindByPoolWeek finds all picks for a pool-week across participants
func (r *MongoPickRepository) FindByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) ([]models.Pick, error) {
	filter := bson.M{
		"pool_id":     poolID,
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks for pool %s week %d: %w", poolID, week, err)
	}
	defer cursor.Close(ctx)

	var picks []models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}
	return picks, nil
}

// FindByParticipantWeek finds one participant's picks for a pool-week
func (r *MongoPickRepository) FindByParticipantWeek(ctx context.Context, participantID, poolID string, season, seasonType, week int) ([]models.Pick, error) {
	filter := bson.M{
		"participant_id": participantID,
		"pool_id":        poolID,
		"season":         season,
		"season_type":    seasonType,
		"week":           week,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find picks for participant %s week %d: %w", participantID, week, err)
	}
	defer cursor.Close(ctx)

	var picks []models.Pick
	if err := cursor.All(ctx, &picks); err != nil {
		return nil, fmt.Errorf("failed to decode picks: %w", err)
	}
	return picks, nil
}

// ReplaceParticipantWeek removes a participant's existing picks for a
// pool-week and inserts the replacement set. A weekly resubmission
// fully supersedes the previous one.
func (r *MongoPickRepository) ReplaceParticipantWeek(ctx context.Context, participantID, poolID string, season, seasonType, week int, picks []*models.Pick) error {
	filter := bson.M{
		"participant_id": participantID,
		"pool_id":        poolID,
		"season":         season,
		"season_type":    seasonType,
		"week":           week,
	}

	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete prior picks for participant %s week %d: %w", participantID, week, err)
	}

	return r.CreateMany(ctx, picks)
}

// CountByPoolWeek counts all picks for a pool-week
func (r *MongoPickRepository) CountByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) (int64, error) {
	filter := bson.M{
		"pool_id":     poolID,
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return count, nil
}
