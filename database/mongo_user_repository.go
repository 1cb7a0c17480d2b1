package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"confidence-pool-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrUserNotFound is returned when no user matches a lookup
var ErrUserNotFound = errors.New("user not found")

// MongoUserRepository stores application users
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *MongoDB) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.GetCollection("users"),
	}
}

// GetUserByEmail retrieves a user by their email address (case-insensitive)
func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": bson.M{"$regex": "^" + strings.ToLower(email) + "$", "$options": "i"}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}
	return &user, nil
}

// CreateUser creates a new user. Emails are stored lowercased so the
// case-insensitive lookup in GetUserByEmail stays cheap.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
