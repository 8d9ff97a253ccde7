// Package store is the MongoDB-backed Issue Store. It owns every persisted document; the services
// talk to it through narrow interfaces of their own.
package store

import (
	"errors"

	"cityfix-be/apperrors"
	"cityfix-be/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	issues   *mongo.Collection
	votes    *mongo.Collection
	comments *mongo.Collection
	feedback *mongo.Collection
	reports  *mongo.Collection
	users    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		issues:   db.Collection(config.IssuesCollection),
		votes:    db.Collection(config.VotesCollection),
		comments: db.Collection(config.CommentsCollection),
		feedback: db.Collection(config.FeedbackCollection),
		reports:  db.Collection(config.ReportsCollection),
		users:    db.Collection(config.UsersCollection),
	}
}

// wrap classifies a driver error. ErrNoDocuments becomes NotFound with the given message.
func wrap(err error, op, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) && notFound != "" {
		return apperrors.NotFound(notFound)
	}
	return apperrors.Upstream(op, err)
}

// userLookup joins a users document into field `as` and flattens it to a single sub-document.
func userLookup(localField, as string) []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         config.UsersCollection,
			"localField":   localField,
			"foreignField": "_id",
			"as":           as,
		}},
		{"$unwind": bson.M{"path": "$" + as, "preserveNullAndEmptyArrays": true}},
	}
}

func idFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id}
}
