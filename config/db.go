package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	IssuesCollection   = "issues"
	VotesCollection    = "votes"
	CommentsCollection = "comments"
	FeedbackCollection = "feedback"
	ReportsCollection  = "reports"
	UsersCollection    = "users"
)

// ConnectDB connects to MongoDB and returns the named database
func ConnectDB(ctx context.Context, mongoURI, name string) (*mongo.Database, error) {
	if mongoURI == "" {
		return nil, errors.New("please define the MONGODB_URI environment variable")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Println("Connected to MongoDB!")
	return client.Database(name), nil
}

// EnsureIndexes creates the uniqueness constraints the vote ledger and feedback upserts rely on,
// plus the feed indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := models.EnsureVoteIndex(ctx, db.Collection(VotesCollection)); err != nil {
		return fmt.Errorf("vote index: %w", err)
	}
	if err := models.EnsureFeedbackIndex(ctx, db.Collection(FeedbackCollection)); err != nil {
		return fmt.Errorf("feedback index: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(IssuesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location.kebele", Value: 1}}},
		{Keys: bson.D{{Key: "urgencyCount", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("issue indexes: %w", err)
	}

	_, err = db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "department", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}

	_, err = db.Collection(CommentsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "issueId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("comment index: %w", err)
	}
	return nil
}
