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

// MongoWinnerRepository stores resolved period winners
type MongoWinnerRepository struct {
	collection *mongo.Collection
}

// NewMongoWinnerRepository creates a new MongoDB period winner repository
func NewMongoWinnerRepository(db *MongoDB) *MongoWinnerRepository {
	return &MongoWinnerRepository{
		collection: db.GetCollection("period_winners"),
	}
}

// Upsert writes a period winner keyed by (pool, season, period). Re-running
// resolution for a period overwrites the previous result.
func (r *MongoWinnerRepository) Upsert(ctx context.Context, winner *models.PeriodWinner) error {
	filter := bson.M{
		"pool_id":     winner.PoolID,
		"season":      winner.Season,
		"period_name": winner.PeriodName,
	}

	update := bson.M{
		"$set": bson.M{
			"start_week":            winner.StartWeek,
			"end_week":              winner.EndWeek,
			"winner_participant_id": winner.WinnerParticipantID,
			"winner_name":           winner.WinnerName,
			"winner_points":         winner.WinnerPoints,
			"winner_correct_picks":  winner.WinnerCorrectPicks,
			"winner_total_picks":    winner.WinnerTotalPicks,
			"weeks_won":             winner.WeeksWon,
			"total_participants":    winner.TotalParticipants,
			"tie_breaker_used":      winner.TieBreakerUsed,
			"tie_breaker_answer":    winner.TieBreakerAnswer,
			"winner_answer":         winner.WinnerAnswer,
			"answer_difference":     winner.AnswerDifference,
			"residual_tie":          winner.ResidualTie,
			"tied_participant_ids":  winner.TiedParticipantIDs,
			"updated_at":            time.Now(),
		},
		"$setOnInsert": bson.M{
			"_id":        winner.ID,
			"created_at": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert period winner: %w", err)
	}
	return nil
}

// FindByPeriod returns the resolved winner for one period, or nil when
// resolution has not run yet.
func (r *MongoWinnerRepository) FindByPeriod(ctx context.Context, poolID string, season int, period string) (*models.PeriodWinner, error) {
	filter := bson.M{
		"pool_id":     poolID,
		"season":      season,
		"period_name": period,
	}

	var winner models.PeriodWinner
	err := r.collection.FindOne(ctx, filter).Decode(&winner)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find period winner: %w", err)
	}
	return &winner, nil
}

// FindByPool returns all resolved period winners for a pool season
func (r *MongoWinnerRepository) FindByPool(ctx context.Context, poolID string, season int) ([]models.PeriodWinner, error) {
	filter := bson.M{
		"pool_id": poolID,
		"season":  season,
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_week", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find period winners for pool %s: %w", poolID, err)
	}
	defer cursor.Close(ctx)

	var winners []models.PeriodWinner
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, fmt.Errorf("failed to decode period winners: %w", err)
	}
	return winners, nil
}
