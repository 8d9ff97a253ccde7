package services

import (
	"context"
	"math"
	"time"

	"cityfix-be/metrics"
	"cityfix-be/models"

	"golang.org/x/sync/errgroup"
)

const (
	topUrgentLimit = 5
	msPerDay       = 24 * 60 * 60 * 1000
)

type AnalyticsStore interface {
	StatusCounts(ctx context.Context, dept *models.IssueCategory) (map[models.IssueStatus]int64, error)
	CategoryCounts(ctx context.Context, dept *models.IssueCategory) (map[models.IssueCategory]int64, error)
	TopUrgent(ctx context.Context, dept *models.IssueCategory, limit int64) ([]models.IssueView, error)
	RatingStats(ctx context.Context, dept *models.IssueCategory) (models.Tally, error)
	ResolutionStats(ctx context.Context, dept *models.IssueCategory) (models.Tally, error)
	GeoPoints(ctx context.Context, dept *models.IssueCategory) ([]models.GeoPoint, error)
}

// Analytics is the dashboard snapshot.
type Analytics struct {
	TotalIssues           int64                          `json:"totalIssues"`
	ByStatus              map[models.IssueStatus]int64   `json:"byStatus"`
	ByCategory            map[models.IssueCategory]int64 `json:"byCategory"`
	TopUrgentIssues       []models.IssueView             `json:"topUrgentIssues"`
	AverageRating         float64                        `json:"averageRating"`
	AverageResolutionDays float64                        `json:"averageResolutionDays"`
	GeoPoints             []models.GeoPoint              `json:"geoPoints"`
}

type AnalyticsAggregator struct {
	store   AnalyticsStore
	metrics *metrics.Metrics
}

func NewAnalyticsAggregator(store AnalyticsStore, m *metrics.Metrics) *AnalyticsAggregator {
	return &AnalyticsAggregator{store: store, metrics: m}
}

// GetAnalytics computes a fresh snapshot. A non-nil department scopes every figure to that category.
// The store queries run concurrently; the first failure cancels the rest and is returned.
func (a *AnalyticsAggregator) GetAnalytics(ctx context.Context, department *models.IssueCategory) (*Analytics, error) {
	defer a.metrics.ObserveAnalytics(time.Now())

	var (
		byStatus   map[models.IssueStatus]int64
		byCategory map[models.IssueCategory]int64
		topUrgent  []models.IssueView
		ratings    models.Tally
		resolution models.Tally
		geoPoints  []models.GeoPoint
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		byStatus, err = a.store.StatusCounts(ctx, department)
		return err
	})
	g.Go(func() (err error) {
		byCategory, err = a.store.CategoryCounts(ctx, department)
		return err
	})
	g.Go(func() (err error) {
		topUrgent, err = a.store.TopUrgent(ctx, department, topUrgentLimit)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = a.store.RatingStats(ctx, department)
		return err
	})
	g.Go(func() (err error) {
		resolution, err = a.store.ResolutionStats(ctx, department)
		return err
	})
	g.Go(func() (err error) {
		geoPoints, err = a.store.GeoPoints(ctx, department)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Analytics{
		ByStatus:              make(map[models.IssueStatus]int64, len(models.Statuses)),
		ByCategory:            make(map[models.IssueCategory]int64, len(models.Categories)),
		TopUrgentIssues:       topUrgent,
		AverageRating:         roundTenth(ratings.Mean()),
		AverageResolutionDays: roundTenth(resolution.Mean() / msPerDay),
		GeoPoints:             geoPoints,
	}
	for _, st := range models.Statuses {
		out.ByStatus[st] = byStatus[st]
		out.TotalIssues += byStatus[st]
	}
	if department != nil {
		out.ByCategory[*department] = byCategory[*department]
	} else {
		for _, c := range models.Categories {
			out.ByCategory[c] = byCategory[c]
		}
	}
	if out.TopUrgentIssues == nil {
		out.TopUrgentIssues = []models.IssueView{}
	}
	if out.GeoPoints == nil {
		out.GeoPoints = []models.GeoPoint{}
	}
	return out, nil
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
