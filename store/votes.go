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

func voteKey(issueID, citizenID primitive.ObjectID) bson.M {
	return bson.M{"issueId": issueID, "citizenId": citizenID}
}

// FindVote returns nil, nil when the pair has no live vote.
func (s *Store) FindVote(ctx context.Context, issueID, citizenID primitive.ObjectID) (*models.Vote, error) {
	var vote models.Vote
	err := s.votes.FindOne(ctx, voteKey(issueID, citizenID)).Decode(&vote)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "find vote", "")
	}
	return &vote, nil
}

// InsertVote relies on the unique (issueId, citizenId) index; a duplicate is a Conflict.
func (s *Store) InsertVote(ctx context.Context, vote *models.Vote) error {
	if vote.ID.IsZero() {
		vote.ID = primitive.NewObjectID()
	}
	vote.CreatedAt = time.Now()

	_, err := s.votes.InsertOne(ctx, vote)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("Vote already recorded for this issue.")
	}
	return wrap(err, "insert vote", "")
}

// DeleteVote reports whether a record was actually removed.
func (s *Store) DeleteVote(ctx context.Context, issueID, citizenID primitive.ObjectID) (bool, error) {
	res, err := s.votes.DeleteOne(ctx, voteKey(issueID, citizenID))
	if err != nil {
		return false, wrap(err, "delete vote", "")
	}
	return res.DeletedCount > 0, nil
}

// AddVoter increments the urgency counter and adds the citizen to the voter set in one
// single-document update, only if the citizen is not already in the set. It returns the counter.
func (s *Store) AddVoter(ctx context.Context, issueID, citizenID primitive.ObjectID) (int64, error) {
	return s.adjustVoters(ctx, issueID,
		bson.M{"_id": issueID, "votedUserIds": bson.M{"$ne": citizenID}},
		bson.M{
			"$inc":      bson.M{"urgencyCount": 1},
			"$addToSet": bson.M{"votedUserIds": citizenID},
		})
}

// RemoveVoter is the inverse of AddVoter, applied only if the citizen is in the set.
func (s *Store) RemoveVoter(ctx context.Context, issueID, citizenID primitive.ObjectID) (int64, error) {
	return s.adjustVoters(ctx, issueID,
		bson.M{"_id": issueID, "votedUserIds": citizenID},
		bson.M{
			"$inc":  bson.M{"urgencyCount": -1},
			"$pull": bson.M{"votedUserIds": citizenID},
		})
}

func (s *Store) adjustVoters(ctx context.Context, issueID primitive.ObjectID, filter, update bson.M) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"urgencyCount": 1})

	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx, filter, update, opts).Decode(&issue)
	if err == nil {
		return issue.UrgencyCount, nil
	}
	if err != mongo.ErrNoDocuments {
		return 0, wrap(err, "update urgency counter", "")
	}

	// Membership already matched the requested state, or the issue is gone.
	err = s.issues.FindOne(ctx, idFilter(issueID),
		options.FindOne().SetProjection(bson.M{"urgencyCount": 1})).Decode(&issue)
	if err != nil {
		return 0, wrap(err, "read urgency counter", issueNotFound)
	}
	return issue.UrgencyCount, nil
}

// Voters lists the citizens with a live vote according to the ledger.
func (s *Store) Voters(ctx context.Context, issueID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := s.votes.Find(ctx, bson.M{"issueId": issueID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, wrap(err, "list votes", "")
	}
	defer cursor.Close(ctx)

	var votes []models.Vote
	if err := cursor.All(ctx, &votes); err != nil {
		return nil, wrap(err, "decode votes", "")
	}
	voters := make([]primitive.ObjectID, 0, len(votes))
	for _, v := range votes {
		voters = append(voters, v.CitizenID)
	}
	return voters, nil
}

// ResetCounters overwrites the denormalized counters with recomputed values.
func (s *Store) ResetCounters(ctx context.Context, issueID primitive.ObjectID, voters []primitive.ObjectID, commentCount int64) (*models.Issue, error) {
	if voters == nil {
		voters = []primitive.ObjectID{}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx, idFilter(issueID), bson.M{"$set": bson.M{
		"urgencyCount": int64(len(voters)),
		"votedUserIds": voters,
		"commentCount": commentCount,
	}}, opts).Decode(&issue)
	if err != nil {
		return nil, wrap(err, "reset counters", issueNotFound)
	}
	return &issue, nil
}
