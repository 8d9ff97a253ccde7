package services

import (
	"context"

	"cityfix-be/apperrors"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminFinder interface {
	FindSectorAdmin(ctx context.Context, department models.IssueCategory) (*models.User, error)
}

// RoutingResolver maps a category to the sector admin responsible for it.
type RoutingResolver struct {
	users AdminFinder
}

func NewRoutingResolver(users AdminFinder) *RoutingResolver {
	return &RoutingResolver{users: users}
}

// FindAdminByCategory returns nil when no enabled admin owns the department. With several, the
// earliest-created one wins.
func (r *RoutingResolver) FindAdminByCategory(ctx context.Context, category models.IssueCategory) (*primitive.ObjectID, error) {
	if _, ok := models.ParseCategory(string(category)); !ok {
		return nil, apperrors.Validation("Invalid category.")
	}
	admin, err := r.users.FindSectorAdmin(ctx, category)
	if err != nil || admin == nil {
		return nil, err
	}
	id := admin.ID
	return &id, nil
}
