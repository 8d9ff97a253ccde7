package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleCitizen     Role = "CITIZEN"
	RoleSectorAdmin Role = "SECTOR_ADMIN"
	RoleSuperAdmin  Role = "SUPER_ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCitizen, RoleSectorAdmin, RoleSuperAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User is a registered account. Subject is the identity provider's stable uid.
// Department is required when Role is SECTOR_ADMIN.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject     string             `bson:"subject" json:"-"`
	Role        Role               `bson:"role" json:"role"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Department  IssueCategory      `bson:"department,omitempty" json:"department,omitempty"`
	FCMToken    string             `bson:"fcmToken,omitempty" json:"-"`
	IsDisabled  bool               `bson:"isDisabled" json:"isDisabled"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the role/department pairing.
func (u *User) Validate() bool {
	if _, ok := ParseRole(string(u.Role)); !ok {
		return false
	}
	if u.Role == RoleSectorAdmin {
		_, ok := ParseCategory(string(u.Department))
		return ok
	}
	return true
}
