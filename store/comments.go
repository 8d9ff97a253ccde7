package store

import (
	"context"
	"time"

	"cityfix-be/apperrors"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	comment.CreatedAt = time.Now()

	_, err := s.comments.InsertOne(ctx, comment)
	return wrap(err, "insert comment", "")
}

// IncrementCommentCount bumps the denormalized counter and returns its new value.
func (s *Store) IncrementCommentCount(ctx context.Context, issueID primitive.ObjectID) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"commentCount": 1})
	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx, idFilter(issueID),
		bson.M{"$inc": bson.M{"commentCount": 1}}, opts).Decode(&issue)
	if err != nil {
		return 0, wrap(err, "increment comment count", issueNotFound)
	}
	return issue.CommentCount, nil
}

func (s *Store) CountComments(ctx context.Context, issueID primitive.ObjectID) (int64, error) {
	n, err := s.comments.CountDocuments(ctx, bson.M{"issueId": issueID})
	return n, wrap(err, "count comments", "")
}

// ListComments returns an issue's comments oldest first, authors populated.
func (s *Store) ListComments(ctx context.Context, issueID primitive.ObjectID) ([]models.Comment, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"issueId": issueID}},
		{"$sort": bson.D{{Key: "createdAt", Value: 1}}},
	}
	pipeline = append(pipeline, userLookup("authorId", "author")...)

	cursor, err := s.comments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(err, "list comments", "")
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, wrap(err, "decode comments", "")
	}
	return comments, nil
}

// FindCommentView reloads a comment with its author populated.
func (s *Store) FindCommentView(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, userLookup("authorId", "author")...)
	cursor, err := s.comments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(err, "find comment", "")
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, wrap(err, "decode comment", "")
	}
	if len(comments) == 0 {
		return nil, apperrors.NotFound("Comment not found.")
	}
	return &comments[0], nil
}

// UpsertFeedback keeps one feedback record per (issue, citizen); later submissions overwrite.
func (s *Store) UpsertFeedback(ctx context.Context, issueID, citizenID primitive.ObjectID, rating int, comment string) (*models.Feedback, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	update := bson.M{
		"$set":         bson.M{"rating": rating, "comment": comment},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}

	var fb models.Feedback
	err := s.feedback.FindOneAndUpdate(ctx, voteKey(issueID, citizenID), update, opts).Decode(&fb)
	if mongo.IsDuplicateKeyError(err) {
		// Two first submissions raced on the upsert; the loser retries as a plain update.
		err = s.feedback.FindOneAndUpdate(ctx, voteKey(issueID, citizenID), update, opts).Decode(&fb)
	}
	if err != nil {
		return nil, wrap(err, "upsert feedback", "")
	}
	return &fb, nil
}

// FindFeedback returns the most recent feedback on an issue, or nil.
func (s *Store) FindFeedback(ctx context.Context, issueID primitive.ObjectID) (*models.Feedback, error) {
	var fb models.Feedback
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := s.feedback.FindOne(ctx, bson.M{"issueId": issueID}, opts).Decode(&fb)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "find feedback", "")
	}
	return &fb, nil
}
