package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Vote is one citizen's urgency vote on an issue. At most one exists per (issue, citizen).
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID   primitive.ObjectID `bson:"issueId" json:"issueId"`
	CitizenID primitive.ObjectID `bson:"citizenId" json:"citizenId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// VoteAction is the outcome of a toggle.
type VoteAction string

const (
	Voted   VoteAction = "voted"
	Unvoted VoteAction = "unvoted"
)

// EnsureVoteIndex creates the unique compound index for (issueId, citizenId)
func EnsureVoteIndex(ctx context.Context, collection *mongo.Collection) error {
	return ensureUniquePair(ctx, collection, "issueId", "citizenId")
}

func ensureUniquePair(ctx context.Context, collection *mongo.Collection, first, second string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: first, Value: 1}, {Key: second, Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := collection.Indexes().CreateOne(ctx, indexModel)
	return err
}
