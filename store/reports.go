package store

import (
	"context"
	"time"

	"cityfix-be/apperrors"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const reportNotFound = "Report not found."

func (s *Store) InsertReport(ctx context.Context, report *models.ModerationReport) error {
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	report.CreatedAt = time.Now()

	_, err := s.reports.InsertOne(ctx, report)
	return wrap(err, "insert report", "")
}

func (s *Store) FindReport(ctx context.Context, id primitive.ObjectID) (*models.ModerationReport, error) {
	var report models.ModerationReport
	if err := s.reports.FindOne(ctx, idFilter(id)).Decode(&report); err != nil {
		return nil, wrap(err, "find report", reportNotFound)
	}
	return &report, nil
}

// ListReports returns every report newest first, with the reporter and the issue (and its
// reporter) populated. Reports whose issue is already gone keep a nil Issue.
func (s *Store) ListReports(ctx context.Context) ([]models.ModerationReport, error) {
	return s.reportViews(ctx, bson.M{})
}

// FindReportView is FindReport with the same population as ListReports.
func (s *Store) FindReportView(ctx context.Context, id primitive.ObjectID) (*models.ModerationReport, error) {
	reports, err := s.reportViews(ctx, idFilter(id))
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, apperrors.NotFound(reportNotFound)
	}
	return &reports[0], nil
}

func (s *Store) reportViews(ctx context.Context, match bson.M) ([]models.ModerationReport, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$sort": bson.D{{Key: "createdAt", Value: -1}}},
	}
	pipeline = append(pipeline, userLookup("citizenId", "reporter")...)
	pipeline = append(pipeline,
		bson.M{"$lookup": bson.M{
			"from":         s.issues.Name(),
			"localField":   "issueId",
			"foreignField": "_id",
			"as":           "issue",
		}},
		bson.M{"$unwind": bson.M{"path": "$issue", "preserveNullAndEmptyArrays": true}},
	)
	pipeline = append(pipeline, userLookup("issue.citizenId", "issue.citizen")...)

	cursor, err := s.reports.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap(err, "list reports", "")
	}
	defer cursor.Close(ctx)

	reports := []models.ModerationReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, wrap(err, "decode reports", "")
	}
	return reports, nil
}

func (s *Store) DeleteReport(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.reports.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return wrap(err, "delete report", "")
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(reportNotFound)
	}
	return nil
}
