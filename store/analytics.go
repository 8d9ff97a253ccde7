package store

import (
	"context"

	"cityfix-be/config"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// scopeMatch restricts issue queries to one department, or to nothing when dept is nil.
func scopeMatch(dept *models.IssueCategory) bson.M {
	match := bson.M{}
	if dept != nil {
		match["category"] = *dept
	}
	return match
}

func countByPipeline(dept *models.IssueCategory, field string) []bson.M {
	return []bson.M{
		{"$match": scopeMatch(dept)},
		{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
	}
}

func topUrgentMatch(dept *models.IssueCategory) bson.M {
	match := scopeMatch(dept)
	match["status"] = bson.M{"$ne": models.Resolved}
	return match
}

// ratingPipeline sums feedback ratings. Feedback carries no category, so scoping joins through the issue.
func ratingPipeline(dept *models.IssueCategory) []bson.M {
	var pipeline []bson.M
	if dept != nil {
		pipeline = append(pipeline,
			bson.M{"$lookup": bson.M{
				"from":         config.IssuesCollection,
				"localField":   "issueId",
				"foreignField": "_id",
				"as":           "issue",
			}},
			bson.M{"$unwind": "$issue"},
			bson.M{"$match": bson.M{"issue.category": *dept}},
		)
	}
	return append(pipeline, bson.M{"$group": bson.M{
		"_id":   nil,
		"total": bson.M{"$sum": "$rating"},
		"count": bson.M{"$sum": 1},
	}})
}

// resolutionPipeline sums updatedAt-createdAt in milliseconds over resolved issues.
func resolutionPipeline(dept *models.IssueCategory) []bson.M {
	match := scopeMatch(dept)
	match["status"] = models.Resolved
	return []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$subtract": bson.A{"$updatedAt", "$createdAt"}}},
			"count": bson.M{"$sum": 1},
		}},
	}
}

func geoPipeline(dept *models.IssueCategory) []bson.M {
	match := scopeMatch(dept)
	match["location.latitude"] = bson.M{"$type": "number"}
	match["location.longitude"] = bson.M{"$type": "number"}
	return []bson.M{
		{"$match": match},
		{"$sort": bson.D{{Key: "createdAt", Value: -1}}},
		{"$project": bson.M{
			"latitude":  "$location.latitude",
			"longitude": "$location.longitude",
			"kebele":    "$location.kebele",
			"category":  1,
			"status":    1,
			"createdAt": 1,
		}},
	}
}

type groupCount struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func (s *Store) countBy(ctx context.Context, dept *models.IssueCategory, field string) (map[string]int64, error) {
	cursor, err := s.issues.Aggregate(ctx, countByPipeline(dept, field))
	if err != nil {
		return nil, wrap(err, "count issues by "+field, "")
	}
	defer cursor.Close(ctx)

	var groups []groupCount
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, wrap(err, "decode "+field+" counts", "")
	}
	counts := make(map[string]int64, len(groups))
	for _, g := range groups {
		counts[g.Key] = g.Count
	}
	return counts, nil
}

// StatusCounts only holds statuses that have at least one issue.
func (s *Store) StatusCounts(ctx context.Context, dept *models.IssueCategory) (map[models.IssueStatus]int64, error) {
	raw, err := s.countBy(ctx, dept, "status")
	if err != nil {
		return nil, err
	}
	counts := make(map[models.IssueStatus]int64, len(raw))
	for k, v := range raw {
		counts[models.IssueStatus(k)] = v
	}
	return counts, nil
}

func (s *Store) CategoryCounts(ctx context.Context, dept *models.IssueCategory) (map[models.IssueCategory]int64, error) {
	raw, err := s.countBy(ctx, dept, "category")
	if err != nil {
		return nil, err
	}
	counts := make(map[models.IssueCategory]int64, len(raw))
	for k, v := range raw {
		counts[models.IssueCategory(k)] = v
	}
	return counts, nil
}

// TopUrgent returns up to limit non-resolved issues, highest urgency first.
func (s *Store) TopUrgent(ctx context.Context, dept *models.IssueCategory, limit int64) ([]models.IssueView, error) {
	return s.issueViews(ctx, topUrgentMatch(dept), bson.D{{Key: "urgencyCount", Value: -1}}, limit)
}

func tally(ctx context.Context, coll *mongo.Collection, pipeline []bson.M, op string) (models.Tally, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Tally{}, wrap(err, op, "")
	}
	defer cursor.Close(ctx)

	var rows []models.Tally
	if err := cursor.All(ctx, &rows); err != nil {
		return models.Tally{}, wrap(err, "decode "+op, "")
	}
	if len(rows) == 0 {
		return models.Tally{}, nil
	}
	return rows[0], nil
}

// RatingStats sums feedback ratings over issues in scope.
func (s *Store) RatingStats(ctx context.Context, dept *models.IssueCategory) (models.Tally, error) {
	return tally(ctx, s.feedback, ratingPipeline(dept), "rating stats")
}

// ResolutionStats sums resolution times, in milliseconds, over resolved issues in scope.
func (s *Store) ResolutionStats(ctx context.Context, dept *models.IssueCategory) (models.Tally, error) {
	return tally(ctx, s.issues, resolutionPipeline(dept), "resolution stats")
}

func (s *Store) GeoPoints(ctx context.Context, dept *models.IssueCategory) ([]models.GeoPoint, error) {
	cursor, err := s.issues.Aggregate(ctx, geoPipeline(dept))
	if err != nil {
		return nil, wrap(err, "geo points", "")
	}
	defer cursor.Close(ctx)

	points := []models.GeoPoint{}
	if err := cursor.All(ctx, &points); err != nil {
		return nil, wrap(err, "decode geo points", "")
	}
	return points, nil
}
