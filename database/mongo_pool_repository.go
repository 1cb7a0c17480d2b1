package database

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPoolRepository stores pools and their tie-breaker configuration
type MongoPoolRepository struct {
	collection *mongo.Collection
}

// NewMongoPoolRepository creates a new MongoDB pool repository
func NewMongoPoolRepository(db *MongoDB) *MongoPoolRepository {
	return &MongoPoolRepository{
		collection: db.GetCollection("pools"),
	}
}

// Create inserts a new pool
func (r *MongoPoolRepository) Create(ctx context.Context, pool *models.Pool) error {
	if _, err := r.collection.InsertOne(ctx, pool); err != nil {
		return fmt.Errorf("failed to create pool: %w", err)
	}
	return nil
}

// FindByID finds a single pool
func (r *MongoPoolRepository) FindByID(ctx context.Context, id string) (*models.Pool, error) {
	var pool models.Pool
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pool)
	if err != nil {
		return nil, fmt.Errorf("failed to find pool %s: %w", id, err)
	}
	return &pool, nil
}

// FindActive finds all active pools for a season
func (r *MongoPoolRepository) FindActive(ctx context.Context, season int) ([]models.Pool, error) {
	filter := bson.M{
		"season":    season,
		"is_active": true,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find active pools: %w", err)
	}
	defer cursor.Close(ctx)

	var pools []models.Pool
	if err := cursor.All(ctx, &pools); err != nil {
		return nil, fmt.Errorf("failed to decode pools: %w", err)
	}
	return pools, nil
}

// UpdateTieBreaker sets the commissioner-entered tie-breaker question
// and target answer
func (r *MongoPoolRepository) UpdateTieBreaker(ctx context.Context, poolID, question string, answer *float64) error {
	update := bson.M{
		"$set": bson.M{
			"tie_breaker_question": question,
			"tie_breaker_answer":   answer,
			"updated_at":           time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": poolID}, update)
	if err != nil {
		return fmt.Errorf("failed to update tie breaker for pool %s: %w", poolID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pool %s not found", poolID)
	}
	return nil
}
