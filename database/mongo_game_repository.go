package database

import (
	"context"
	"fmt"
	"time"

	"confidence-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGameRepository stores games as ingested by the results feed
type MongoGameRepository struct {
	collection *mongo.Collection
}

// NewMongoGameRepository creates a new MongoDB game repository
func NewMongoGameRepository(db *MongoDB) *MongoGameRepository {
	return &MongoGameRepository{
		collection: db.GetCollection("games"),
	}
}

// Upsert creates or updates a game keyed by its identifier
func (r *MongoGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	game.UpdatedAt = time.Now()

	filter := bson.M{"_id": game.ID}
	update := bson.M{"$set": game}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", game.ID, err)
	}
	return nil
}

// BulkUpsert upserts a batch of games in one write
func (r *MongoGameRepository) BulkUpsert(ctx context.Context, games []*models.Game) error {
	if len(games) == 0 {
		return nil
	}

	now := time.Now()
	operations := make([]mongo.WriteModel, 0, len(games))
	for _, game := range games {
		game.UpdatedAt = now
		operations = append(operations, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": game.ID}).
			SetUpdate(bson.M{"$set": game}).
			SetUpsert(true))
	}

	if _, err := r.collection.BulkWrite(ctx, operations); err != nil {
		return fmt.Errorf("failed to bulk upsert %d games: %w", len(games), err)
	}
	return nil
}

// FindByID finds a single game
func (r *MongoGameRepository) FindByID(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if err != nil {
		return nil, fmt.Errorf("failed to find game %s: %w", id, err)
	}
	return &game, nil
}

// FindByWeek finds all games for a season, season type and week,
// ordered by kickoff time
func (r *MongoGameRepository) FindByWeek(ctx context.Context, season, seasonType, week int) ([]models.Game, error) {
	filter := bson.M{
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "kickoff_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find games for week %d: %w", week, err)
	}
	defer cursor.Close(ctx)

	var games []models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}
	return games, nil
}

// FindBySeason finds all games for a season ordered by kickoff time
func (r *MongoGameRepository) FindBySeason(ctx context.Context, season int) ([]models.Game, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"season": season},
		options.Find().SetSort(bson.D{{Key: "kickoff_time", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find games for season %d: %w", season, err)
	}
	defer cursor.Close(ctx)

	var games []models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}
	return games, nil
}

// FindByWeeks finds games for a set of weeks grouped by week number,
// the shape the period completion gate consumes
func (r *MongoGameRepository) FindByWeeks(ctx context.Context, season, seasonType int, weeks []int) (map[int][]models.Game, error) {
	filter := bson.M{
		"season":      season,
		"season_type": seasonType,
		"week":        bson.M{"$in": weeks},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find games for weeks %v: %w", weeks, err)
	}
	defer cursor.Close(ctx)

	var games []models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode games: %w", err)
	}

	byWeek := make(map[int][]models.Game, len(weeks))
	for _, game := range games {
		byWeek[game.Week] = append(byWeek[game.Week], game)
	}
	return byWeek, nil
}
