package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"cityfix-be/apperrors"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const issueNotFound = "Issue not found."

// InsertIssue stores a new issue, filling ID, counters and timestamps.
func (s *Store) InsertIssue(ctx context.Context, issue *models.Issue) error {
	now := time.Now()
	if issue.ID.IsZero() {
		issue.ID = primitive.NewObjectID()
	}
	if issue.Status == "" {
		issue.Status = models.Pending
	}
	if issue.VotedUserIDs == nil {
		issue.VotedUserIDs = []primitive.ObjectID{}
	}
	issue.CreatedAt = now
	issue.UpdatedAt = now

	_, err := s.issues.InsertOne(ctx, issue)
	return wrap(err, "insert issue", "")
}

func (s *Store) FindIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	err := s.issues.FindOne(ctx, idFilter(id)).Decode(&issue)
	if err != nil {
		return nil, wrap(err, "find issue", issueNotFound)
	}
	return &issue, nil
}

// FindIssueView returns the issue with reporter and assigned admin populated.
func (s *Store) FindIssueView(ctx context.Context, id primitive.ObjectID) (*models.IssueView, error) {
	views, err := s.issueViews(ctx, bson.M{"_id": id}, nil, 1)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperrors.NotFound(issueNotFound)
	}
	return &views[0], nil
}

func (s *Store) ListIssues(ctx context.Context, filter models.IssueFilter) ([]models.IssueView, error) {
	sort := bson.D{{Key: "createdAt", Value: -1}}
	if filter.SortUrgent {
		sort = bson.D{{Key: "urgencyCount", Value: -1}, {Key: "createdAt", Value: -1}}
	}
	return s.issueViews(ctx, issueMatch(filter), sort, 0)
}

// issueMatch translates a filter into a $match document.
func issueMatch(filter models.IssueFilter) bson.M {
	match := bson.M{}
	if filter.Kebele != "" {
		match["location.kebele"] = filter.Kebele
	}
	if filter.CitizenID != nil {
		match["citizenId"] = *filter.CitizenID
	}
	if filter.Category != nil {
		match["category"] = *filter.Category
	}
	if filter.IDs != nil {
		match["_id"] = bson.M{"$in": filter.IDs}
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		match["$or"] = []bson.M{
			{"description": pattern},
			{"category": pattern},
			{"location.kebele": pattern},
		}
	}
	return match
}

func (s *Store) issueViews(ctx context.Context, match bson.M, sort bson.D, limit int64) ([]models.IssueView, error) {
	pipeline := []bson.M{{"$match": match}}
	if sort != nil {
		pipeline = append(pipeline, bson.M{"$sort": sort})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.M{"$limit": limit})
	}
	pipeline = append(pipeline, userLookup("citizenId", "citizen")...)
	pipeline = append(pipeline, userLookup("assignedAdminId", "assignedAdmin")...)

	cursor, err := s.issues.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(err, "aggregate issues", "")
	}
	defer cursor.Close(ctx)

	views := []models.IssueView{}
	if err := cursor.All(ctx, &views); err != nil {
		return nil, wrap(err, "decode issues", "")
	}
	return views, nil
}

// UpdateIssueDetails applies a citizen edit and returns the populated issue.
func (s *Store) UpdateIssueDetails(ctx context.Context, id primitive.ObjectID, edit models.IssueEdit) (*models.IssueView, error) {
	update := bson.M{"updatedAt": time.Now()}
	if edit.Description != nil {
		update["description"] = *edit.Description
	}
	if edit.Category != nil {
		update["category"] = *edit.Category
	}
	if edit.Location != nil {
		update["location"] = edit.Location
	}

	res, err := s.issues.UpdateOne(ctx, idFilter(id), bson.M{"$set": update})
	if err != nil {
		return nil, wrap(err, "update issue", "")
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.NotFound(issueNotFound)
	}
	return s.FindIssueView(ctx, id)
}

func (s *Store) SetIssueStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx, idFilter(id),
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}, opts).Decode(&issue)
	if err != nil {
		return nil, wrap(err, "update issue status", issueNotFound)
	}
	return &issue, nil
}

// DeleteIssueCascade removes the issue and everything hanging off it. The deletes are sequential, not
// transactional: the issue goes first so readers stop seeing it, then its dependents.
func (s *Store) DeleteIssueCascade(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.issues.DeleteOne(ctx, idFilter(id)); err != nil {
		return wrap(err, "delete issue", "")
	}
	byIssue := bson.M{"issueId": id}
	for name, coll := range map[string]*mongo.Collection{
		"comments": s.comments,
		"feedback": s.feedback,
		"reports":  s.reports,
		"votes":    s.votes,
	} {
		if _, err := coll.DeleteMany(ctx, byIssue); err != nil {
			return wrap(err, fmt.Sprintf("delete %s of issue", name), "")
		}
	}
	return nil
}
