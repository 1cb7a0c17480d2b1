package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"confidence-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScoreRepository stores computed weekly scores
type MongoScoreRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoScoreRepository creates a new MongoDB score repository
func NewMongoScoreRepository(db *MongoDB) *MongoScoreRepository {
	return &MongoScoreRepository{
		client:     db.GetClient(),
		collection: db.GetCollection("weekly_scores"),
	}
}

// scoreDocID builds a stable _id so that recomputing a week replaces
// rows instead of accumulating duplicates.
func scoreDocID(poolID string, season, seasonType, week int, participantID string) string {
	return fmt.Sprintf("%s:%d:%d:%d:%s", poolID, season, seasonType, week, participantID)
}

// ReplaceWeek deletes all stored scores for a (pool, week) and inserts the
// given rows in their place. When the deployment supports sessions the two
// steps run in a transaction so readers never observe a half-replaced week;
// standalone mongod falls back to sequential delete-then-insert.
func (r *MongoScoreRepository) ReplaceWeek(ctx context.Context, poolID string, season, seasonType, week int, scores []models.WeeklyScore) error {
	now := time.Now()
	docs := make([]interface{}, 0, len(scores))
	for i := range scores {
		score := scores[i]
		score.ID = scoreDocID(poolID, season, seasonType, week, score.ParticipantID)
		score.PoolID = poolID
		score.Season = season
		score.SeasonType = seasonType
		score.Week = week
		if score.CreatedAt.IsZero() {
			score.CreatedAt = now
		}
		docs = append(docs, score)
	}

	filter := bson.M{
		"pool_id":     poolID,
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	replace := func(ctx context.Context) error {
		if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
			return fmt.Errorf("failed to delete scores for pool %s week %d: %w", poolID, week, err)
		}
		if len(docs) == 0 {
			return nil
		}
		if _, err := r.collection.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert scores for pool %s week %d: %w", poolID, week, err)
		}
		return nil
	}

	session, err := r.client.StartSession()
	if err != nil {
		return replace(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, replace(sc)
	})
	if err != nil && isTransactionUnsupported(err) {
		return replace(ctx)
	}
	return err
}

// isTransactionUnsupported detects standalone deployments where multi-document
// transactions are not available.
func isTransactionUnsupported(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "transactions are not supported")
}

// FindByPoolWeek returns stored scores for a pool week ordered by rank
func (r *MongoScoreRepository) FindByPoolWeek(ctx context.Context, poolID string, season, seasonType, week int) ([]models.WeeklyScore, error) {
	filter := bson.M{
		"pool_id":     poolID,
		"season":      season,
		"season_type": seasonType,
		"week":        week,
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "rank", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find scores for pool %s week %d: %w", poolID, week, err)
	}
	defer cursor.Close(ctx)

	var scores []models.WeeklyScore
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	return scores, nil
}

// FindByPoolWeeks returns stored scores for a set of weeks grouped by week.
// Weeks with no stored scores are absent from the result.
func (r *MongoScoreRepository) FindByPoolWeeks(ctx context.Context, poolID string, season, seasonType int, weeks []int) (map[int][]models.WeeklyScore, error) {
	filter := bson.M{
		"pool_id":     poolID,
		"season":      season,
		"season_type": seasonType,
		"week":        bson.M{"$in": weeks},
	}

	cursor, err := r.collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "week", Value: 1}, {Key: "rank", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find scores for pool %s weeks %v: %w", poolID, weeks, err)
	}
	defer cursor.Close(ctx)

	var scores []models.WeeklyScore
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}

	grouped := make(map[int][]models.WeeklyScore)
	for _, score := range scores {
		grouped[score.Week] = append(grouped[score.Week], score)
	}
	return grouped, nil
}
