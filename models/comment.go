package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Comment is immutable once created.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID   primitive.ObjectID `bson:"issueId" json:"issueId"`
	AuthorID  primitive.ObjectID `bson:"authorId" json:"authorId"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	Author *UserSummary `bson:"author,omitempty" json:"author,omitempty"`
}

// Feedback is a citizen's rating of how an issue was handled. One per (issue, citizen).
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID   primitive.ObjectID `bson:"issueId" json:"issueId"`
	CitizenID primitive.ObjectID `bson:"citizenId" json:"citizenId"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	MinRating = 1
	MaxRating = 5
)

func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }

// EnsureFeedbackIndex makes feedback upserts collapse onto one record per (issueId, citizenId).
func EnsureFeedbackIndex(ctx context.Context, collection *mongo.Collection) error {
	return ensureUniquePair(ctx, collection, "issueId", "citizenId")
}

// ModerationReport flags an issue as inappropriate.
type ModerationReport struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IssueID   primitive.ObjectID `bson:"issueId" json:"issueId"`
	CitizenID primitive.ObjectID `bson:"citizenId" json:"citizenId"`
	Reason    string             `bson:"reason" json:"reason"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	Reporter *UserSummary `bson:"reporter,omitempty" json:"reporter,omitempty"`
	Issue    *IssueView   `bson:"issue,omitempty" json:"issue,omitempty"`
}
