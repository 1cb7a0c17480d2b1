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

// MongoTieBreakerRepository stores participant tie-breaker answers
type MongoTieBreakerRepository struct {
	collection *mongo.Collection
}

// NewMongoTieBreakerRepository creates a new MongoDB tie-breaker repository
func NewMongoTieBreakerRepository(db *MongoDB) *MongoTieBreakerRepository {
	return &MongoTieBreakerRepository{
		collection: db.GetCollection("tie_breaker_answers"),
	}
}

// Upsert writes a participant's answer for a pool-week. Resubmitting
// overwrites the previous answer.
func (r *MongoTieBreakerRepository) Upsert(ctx context.Context, answer *models.TieBreakerAnswer) error {
	filter := bson.M{
		"participant_id": answer.ParticipantID,
		"pool_id":        answer.PoolID,
		"season":         answer.Season,
		"week":           answer.Week,
	}

	update := bson.M{
		"$set": bson.M{
			"answer": answer.Answer,
		},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"created_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert tie breaker answer: %w", err)
	}
	return nil
}

// FindByPoolWeek returns answers keyed by participant for one pool-week
func (r *MongoTieBreakerRepository) FindByPoolWeek(ctx context.Context, poolID string, season, week int) (map[string]float64, error) {
	filter := bson.M{
		"pool_id": poolID,
		"season":  season,
		"week":    week,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find tie breaker answers for pool %s week %d: %w", poolID, week, err)
	}
	defer cursor.Close(ctx)

	var answers []models.TieBreakerAnswer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode tie breaker answers: %w", err)
	}

	byParticipant := make(map[string]float64, len(answers))
	for _, a := range answers {
		byParticipant[a.ParticipantID] = a.Answer
	}
	return byParticipant, nil
}

// FindLatestInRange returns each participant's most recent answer within a
// week range. Period resolution consults the answer from the last week a
// participant answered, not an average.
func (r *MongoTieBreakerRepository) FindLatestInRange(ctx context.Context, poolID string, season, startWeek, endWeek int) (map[string]float64, error) {
	filter := bson.M{
		"pool_id": poolID,
		"season":  season,
		"week":    bson.M{"$gte": startWeek, "$lte": endWeek},
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "week", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find tie breaker answers for pool %s weeks %d-%d: %w", poolID, startWeek, endWeek, err)
	}
	defer cursor.Close(ctx)

	var answers []models.TieBreakerAnswer
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, fmt.Errorf("failed to decode tie breaker answers: %w", err)
	}

	// Ascending week order means later weeks overwrite earlier ones.
	byParticipant := make(map[string]float64)
	for _, a := range answers {
		byParticipant[a.ParticipantID] = a.Answer
	}
	return byParticipant, nil
}
