package database

import (
	"context"
	"fmt"

	"confidence-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoParticipantRepository stores pool members
type MongoParticipantRepository struct {
	collection *mongo.Collection
}

// NewMongoParticipantRepository creates a new MongoDB participant repository
func NewMongoParticipantRepository(db *MongoDB) *MongoParticipantRepository {
	return &MongoParticipantRepository{
		collection: db.GetCollection("participants"),
	}
}

// Create inserts a new participant
func (r *MongoParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	if _, err := r.collection.InsertOne(ctx, participant); err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// FindByID finds a single participant
func (r *MongoParticipantRepository) FindByID(ctx context.Context, id string) (*models.Participant, error) {
	var participant models.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		return nil, fmt.Errorf("failed to find participant %s: %w", id, err)
	}
	return &participant, nil
}

// FindByPool finds all participants of a pool ordered by name
func (r *MongoParticipantRepository) FindByPool(ctx context.Context, poolID string) ([]models.Participant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"pool_id": poolID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find participants for pool %s: %w", poolID, err)
	}
	defer cursor.Close(ctx)

	var participants []models.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, fmt.Errorf("failed to decode participants: %w", err)
	}
	return participants, nil
}
