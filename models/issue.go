package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum. Categories double as sector-admin departments.
type IssueCategory string

const (
	Water       IssueCategory = "Water"
	Waste       IssueCategory = "Waste"
	Road        IssueCategory = "Road"
	Electricity IssueCategory = "Electricity"
)

// Categories lists every category in display order.
var Categories = []IssueCategory{Water, Waste, Road, Electricity}

// ParseCategory returns ok=false for anything outside the enumerated set.
func ParseCategory(s string) (IssueCategory, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// IssueStatus enum, ordered Pending -> In Progress -> Resolved.
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In Progress"
	Resolved   IssueStatus = "Resolved"
)

var Statuses = []IssueStatus{Pending, InProgress, Resolved}

func ParseStatus(s string) (IssueStatus, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Location is where the citizen saw the issue. Every field is optional.
type Location struct {
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Address   string   `bson:"address,omitempty" json:"address,omitempty"`
	Kebele    string   `bson:"kebele,omitempty" json:"kebele,omitempty"`
}

// HasCoordinates reports whether the location can be put on a map.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// Issue represents a civic issue reported by a citizen.
// UrgencyCount always equals len(VotedUserIDs); CommentCount mirrors the comments collection.
type Issue struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CitizenID       primitive.ObjectID   `bson:"citizenId" json:"citizenId"`
	AssignedAdminID *primitive.ObjectID  `bson:"assignedAdminId" json:"assignedAdminId"`
	Category        IssueCategory        `bson:"category" json:"category"`
	Description     string               `bson:"description" json:"description"`
	PhotoURL        *string              `bson:"photoUrl" json:"photoUrl"`
	Location        *Location            `bson:"location,omitempty" json:"location,omitempty"`
	Status          IssueStatus          `bson:"status" json:"status"`
	UrgencyCount    int64                `bson:"urgencyCount" json:"urgencyCount"`
	VotedUserIDs    []primitive.ObjectID `bson:"votedUserIds" json:"votedUserIds"`
	CommentCount    int64                `bson:"commentCount" json:"commentCount"`
	DraftedAt       *time.Time           `bson:"draftedAt" json:"draftedAt"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the populated view of a referenced user.
type UserSummary struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Role        Role               `bson:"role,omitempty" json:"role,omitempty"`
	Department  IssueCategory      `bson:"department,omitempty" json:"department,omitempty"`
}

// IssueView is an issue with its reporter and assigned admin populated.
type IssueView struct {
	Issue         `bson:",inline"`
	Citizen       *UserSummary `bson:"citizen,omitempty" json:"citizen,omitempty"`
	AssignedAdmin *UserSummary `bson:"assignedAdmin,omitempty" json:"assignedAdmin,omitempty"`
}
