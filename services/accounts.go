package services

import (
	"context"
	"errors"
	"strings"

	"cityfix-be/apperrors"
	"cityfix-be/identity"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phone+password sign-ups get a placeholder address under this domain; it is never stored.
const dummyEmailDomain = "@cityfix.local"

type AccountStore interface {
	InsertUser(ctx context.Context, user *models.User) error
	FindUserBySubject(ctx context.Context, subject string) (*models.User, error)
	SetPushToken(ctx context.Context, id primitive.ObjectID, token string) (*models.User, error)
	SetFullName(ctx context.Context, id primitive.ObjectID, fullName string) (*models.User, error)
}

type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Role        string
	Department  string
}

type AccountService struct {
	store AccountStore
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{store: store}
}

// Register persists the account behind a verified identity. It is idempotent on the subject:
// created reports whether a new record was made.
func (s *AccountService) Register(ctx context.Context, id *identity.Identity, in RegisterInput) (user *models.User, created bool, err error) {
	existing, err := s.store.FindUserBySubject(ctx, id.Subject)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	role := models.RoleCitizen
	if in.Role != "" {
		r, ok := models.ParseRole(in.Role)
		if !ok || r == models.RoleSuperAdmin {
			return nil, false, apperrors.Validation("Invalid role.")
		}
		role = r
	}

	email := firstNonEmpty(id.Email, strings.TrimSpace(in.Email))
	if strings.HasSuffix(email, dummyEmailDomain) {
		email = ""
	}

	user = &models.User{
		Subject:     id.Subject,
		Role:        role,
		FullName:    strings.TrimSpace(in.FullName),
		Email:       strings.ToLower(email),
		PhoneNumber: firstNonEmpty(id.Phone, strings.TrimSpace(in.PhoneNumber)),
	}
	if role == models.RoleSectorAdmin {
		user.Department = models.IssueCategory(in.Department)
	}
	if !user.Validate() {
		return nil, false, apperrors.Validation("Sector admins need a valid department.")
	}

	if err := s.store.InsertUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// A concurrent registration for the same subject won.
			existing, findErr := s.store.FindUserBySubject(ctx, id.Subject)
			if findErr == nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return user, true, nil
}

// EnsureSuperAdmin makes sure the configured provider subject has a super admin record. Super admins
// cannot self-register, so this is how the first one appears.
func (s *AccountService) EnsureSuperAdmin(ctx context.Context, subject, email, fullName string) (*models.User, error) {
	existing, err := s.store.FindUserBySubject(ctx, subject)
	if err == nil {
		if existing.Role != models.RoleSuperAdmin {
			return nil, apperrors.Conflict("Subject is already registered with another role.")
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		Subject:  subject,
		Role:     models.RoleSuperAdmin,
		FullName: firstNonEmpty(strings.TrimSpace(fullName), "Super Admin"),
		Email:    strings.ToLower(strings.TrimSpace(email)),
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Me resolves the account behind a verified identity.
func (s *AccountService) Me(ctx context.Context, subject string) (*models.User, error) {
	return s.store.FindUserBySubject(ctx, subject)
}

func (s *AccountService) UpdatePushToken(ctx context.Context, user *models.User, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Validation("fcmToken is required.")
	}
	return s.store.SetPushToken(ctx, user.ID, token)
}

func (s *AccountService) UpdateProfile(ctx context.Context, user *models.User, fullName string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, apperrors.Validation("fullName is required.")
	}
	return s.store.SetFullName(ctx, user.ID, fullName)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
