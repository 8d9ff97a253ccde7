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

const userNotFound = "User not found."

// InsertUser stores a new account. The subject index makes a second registration a Conflict.
func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.Conflict("User already exists.")
	}
	return wrap(err, "insert user", "")
}

func (s *Store) FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, idFilter(id)).Decode(&user); err != nil {
		return nil, wrap(err, "find user", userNotFound)
	}
	return &user, nil
}

func (s *Store) FindUserBySubject(ctx context.Context, subject string) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"subject": subject}).Decode(&user); err != nil {
		return nil, wrap(err, "find user by subject", userNotFound)
	}
	return &user, nil
}

// FindUserByEmail returns nil, nil when no account uses the address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "find user by email", "")
	}
	return &user, nil
}

// FindSectorAdmin returns the earliest-created enabled sector admin for a department, or nil.
func (s *Store) FindSectorAdmin(ctx context.Context, department models.IssueCategory) (*models.User, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	var user models.User
	err := s.users.FindOne(ctx, bson.M{
		"role":       models.RoleSectorAdmin,
		"department": department,
		"isDisabled": bson.M{"$ne": true},
	}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err, "find sector admin", "")
	}
	return &user, nil
}

// ListUsers returns accounts with the given role, newest first.
func (s *Store) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{"role": role},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrap(err, "list users", "")
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, wrap(err, "decode users", "")
	}
	return users, nil
}

func (s *Store) updateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users.FindOneAndUpdate(ctx, idFilter(id), bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, wrap(err, "update user", userNotFound)
	}
	return &user, nil
}

func (s *Store) SetUserDisabled(ctx context.Context, id primitive.ObjectID, disabled bool) (*models.User, error) {
	return s.updateUser(ctx, id, bson.M{"isDisabled": disabled})
}

func (s *Store) SetPushToken(ctx context.Context, id primitive.ObjectID, token string) (*models.User, error) {
	return s.updateUser(ctx, id, bson.M{"fcmToken": token})
}

func (s *Store) SetFullName(ctx context.Context, id primitive.ObjectID, fullName string) (*models.User, error) {
	return s.updateUser(ctx, id, bson.M{"fullName": fullName})
}
