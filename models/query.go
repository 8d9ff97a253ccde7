package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueFilter selects issues for feeds and admin lists. Zero fields do not filter.
type IssueFilter struct {
	Kebele     string
	Search     string
	IDs        []primitive.ObjectID
	CitizenID  *primitive.ObjectID
	Category   *IssueCategory
	SortUrgent bool
}

// IssueEdit carries the fields a citizen may change on a pending issue. Nil fields are left alone.
type IssueEdit struct {
	Description *string
	Category    *IssueCategory
	Location    *Location
}

// GeoPoint is a geo-located issue reduced to what a map marker needs.
type GeoPoint struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	Category  IssueCategory      `bson:"category" json:"category"`
	Status    IssueStatus        `bson:"status" json:"status"`
	Kebele    string             `bson:"kebele,omitempty" json:"kebele,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Tally is a running sum and the number of samples in it.
type Tally struct {
	Total float64 `bson:"total"`
	Count int64   `bson:"count"`
}

// Mean is zero when the tally is empty.
func (t Tally) Mean() float64 {
	if t.Count == 0 {
		return 0
	}
	return t.Total / float64(t.Count)
}
