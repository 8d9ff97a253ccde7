package services

import (
	"context"
	"log"
	"strings"

	"cityfix-be/access"
	"cityfix-be/apperrors"
	"cityfix-be/models"
	"cityfix-be/search"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminStore interface {
	FindIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	ListIssues(ctx context.Context, filter models.IssueFilter) ([]models.IssueView, error)
	SetIssueStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error)
	DeleteIssueCascade(ctx context.Context, id primitive.ObjectID) error

	InsertUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
	SetUserDisabled(ctx context.Context, id primitive.ObjectID, disabled bool) (*models.User, error)

	ListReports(ctx context.Context) ([]models.ModerationReport, error)
	FindReport(ctx context.Context, id primitive.ObjectID) (*models.ModerationReport, error)
	DeleteReport(ctx context.Context, id primitive.ObjectID) error
}

// AccountManager mirrors account changes to the identity provider.
type AccountManager interface {
	CreateAccount(ctx context.Context, email, password, displayName string, role models.Role) (string, error)
	SetDisabled(ctx context.Context, subject string, disabled bool) error
}

type NewSectorAdmin struct {
	FullName   string
	Email      string
	Password   string
	Department string
}

// SystemUsers groups accounts for the user-management screen.
type SystemUsers struct {
	Admins   []models.User `json:"admins"`
	Citizens []models.User `json:"citizens"`
}

type AdminService struct {
	store       AdminStore
	accounts    AccountManager
	ledger      *VoteLedger
	analytics   *AnalyticsAggregator
	broadcaster *Broadcaster
	notifier    *ResolutionNotifier
	index       search.IssueIndex
}

type AdminDeps struct {
	Store       AdminStore
	Accounts    AccountManager
	Ledger      *VoteLedger
	Analytics   *AnalyticsAggregator
	Broadcaster *Broadcaster
	Notifier    *ResolutionNotifier
	Index       search.IssueIndex
}

func NewAdminService(d AdminDeps) *AdminService {
	if d.Index == nil {
		d.Index = search.Noop{}
	}
	return &AdminService{
		store:       d.Store,
		accounts:    d.Accounts,
		ledger:      d.Ledger,
		analytics:   d.Analytics,
		broadcaster: d.Broadcaster,
		notifier:    d.Notifier,
		index:       d.Index,
	}
}

// departmentScope is nil for super admins and the admin's department otherwise.
func departmentScope(admin *models.User) *models.IssueCategory {
	if admin.Role == models.RoleSuperAdmin {
		return nil
	}
	dept := admin.Department
	return &dept
}

// Issues lists everything for a super admin and the department's issues for a sector admin.
func (s *AdminService) Issues(ctx context.Context, admin *models.User) ([]models.IssueView, error) {
	return s.store.ListIssues(ctx, models.IssueFilter{Category: departmentScope(admin)})
}

func (s *AdminService) UpdateStatus(ctx context.Context, admin *models.User, id primitive.ObjectID, raw string) (*models.Issue, error) {
	if admin.Role == models.RoleSuperAdmin {
		return nil, apperrors.Forbidden("Super Admins can only view issues, not edit their status. Please leave this to the assigned Sector Admin.")
	}
	status, ok := models.ParseStatus(raw)
	if !ok {
		return nil, apperrors.Validation("Invalid status. Allowed values: Pending, In Progress, Resolved.")
	}

	issue, err := s.store.FindIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	facts := access.Facts{SameDepartment: issue.Category == admin.Department}
	if !access.Can(admin.Role, access.ActionUpdateStatus, facts) {
		return nil, apperrors.NotFound("Issue not found or not assigned to you.")
	}

	updated, err := s.store.SetIssueStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if status == models.Resolved && s.notifier != nil {
		s.notifier.NotifyAsync(updated)
	}
	s.broadcaster.Emit(EventIssueStatusChanged, IssueStatusChanged{IssueID: id.Hex(), Status: updated.Status})
	return updated, nil
}

func (s *AdminService) Analytics(ctx context.Context, admin *models.User) (*Analytics, error) {
	return s.analytics.GetAnalytics(ctx, departmentScope(admin))
}

// Reconcile rebuilds an issue's denormalized counters.
func (s *AdminService) Reconcile(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	if _, err := s.store.FindIssue(ctx, id); err != nil {
		return nil, err
	}
	return s.ledger.Reconcile(ctx, id)
}

func (s *AdminService) CreateSectorAdmin(ctx context.Context, in NewSectorAdmin) (*models.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if fullName == "" || email == "" || in.Password == "" || in.Department == "" {
		return nil, apperrors.Validation("All fields are required.")
	}
	dept, ok := models.ParseCategory(in.Department)
	if !ok {
		return nil, apperrors.Validation("Invalid department.")
	}

	existing, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("User with this email already exists.")
	}

	subject, err := s.accounts.CreateAccount(ctx, email, in.Password, fullName, models.RoleSectorAdmin)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Subject:    subject,
		Role:       models.RoleSectorAdmin,
		FullName:   fullName,
		Email:      email,
		Department: dept,
	}
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("[admin] created sector admin %s for %s", user.ID.Hex(), dept)
	return user, nil
}

func (s *AdminService) Users(ctx context.Context) (*SystemUsers, error) {
	out := &SystemUsers{Admins: []models.User{}}
	for _, role := range []models.Role{models.RoleSuperAdmin, models.RoleSectorAdmin} {
		users, err := s.store.ListUsers(ctx, role)
		if err != nil {
			return nil, err
		}
		out.Admins = append(out.Admins, users...)
	}
	citizens, err := s.store.ListUsers(ctx, models.RoleCitizen)
	if err != nil {
		return nil, err
	}
	out.Citizens = citizens
	return out, nil
}

// SetUserDisabled blocks or unblocks an account. Super admins cannot be disabled.
func (s *AdminService) SetUserDisabled(ctx context.Context, id primitive.ObjectID, disabled bool) (*models.User, error) {
	user, err := s.store.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleSuperAdmin {
		return nil, apperrors.Forbidden("Cannot disable super admin.")
	}

	// Provider first; the stored flag only follows a successful change.
	if err := s.accounts.SetDisabled(ctx, user.Subject, disabled); err != nil {
		return nil, apperrors.Upstream("set disabled flag on identity provider", err)
	}
	updated, err := s.store.SetUserDisabled(ctx, id, disabled)
	if err != nil {
		if rerr := s.accounts.SetDisabled(ctx, user.Subject, user.IsDisabled); rerr != nil {
			log.Printf("[admin] could not revert provider flag for %s: %v", user.ID.Hex(), rerr)
		}
		return nil, err
	}
	return updated, nil
}

func (s *AdminService) Reports(ctx context.Context) ([]models.ModerationReport, error) {
	return s.store.ListReports(ctx)
}

// DismissReport drops a report and leaves its issue alone.
func (s *AdminService) DismissReport(ctx context.Context, id primitive.ObjectID) error {
	return s.store.DeleteReport(ctx, id)
}

// DeleteReportedIssue removes the reported issue with its comments, feedback, reports and votes.
func (s *AdminService) DeleteReportedIssue(ctx context.Context, reportID primitive.ObjectID) error {
	report, err := s.store.FindReport(ctx, reportID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIssueCascade(ctx, report.IssueID); err != nil {
		return err
	}
	if err := s.index.Delete(report.IssueID.Hex()); err != nil {
		log.Printf("[search] failed to drop issue %s from index: %v", report.IssueID.Hex(), err)
	}
	return nil
}
