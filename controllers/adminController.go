package controllers

import (
	"context"
	"net/http"
	"time"

	"cityfix-be/models"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminService interface {
	Issues(ctx context.Context, admin *models.User) ([]models.IssueView, error)
	UpdateStatus(ctx context.Context, admin *models.User, id primitive.ObjectID, status string) (*models.Issue, error)
	Analytics(ctx context.Context, admin *models.User) (*services.Analytics, error)
	Reconcile(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)

	CreateSectorAdmin(ctx context.Context, in services.NewSectorAdmin) (*models.User, error)
	Users(ctx context.Context) (*services.SystemUsers, error)
	SetUserDisabled(ctx context.Context, id primitive.ObjectID, disabled bool) (*models.User, error)

	Reports(ctx context.Context) ([]models.ModerationReport, error)
	DismissReport(ctx context.Context, id primitive.ObjectID) error
	DeleteReportedIssue(ctx context.Context, reportID primitive.ObjectID) error
}

const reportNotFound = "Report not found."

type AdminController struct {
	admin   AdminService
	timeout time.Duration
}

func NewAdminController(admin AdminService, timeout time.Duration) *AdminController {
	return &AdminController{admin: admin, timeout: timeout}
}

// GetAdminIssues lists every issue for a super admin and the department's issues for a sector admin
func (ac *AdminController) GetAdminIssues(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	issues, err := ac.admin.Issues(ctx, admin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

func (ac *AdminController) UpdateIssueStatus(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	issue, err := ac.admin.UpdateStatus(ctx, admin, id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetAdminAnalytics returns the dashboard snapshot, scoped to the caller's department for sector admins
func (ac *AdminController) GetAdminAnalytics(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	stats, err := ac.admin.Analytics(ctx, admin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ReconcileIssue rebuilds an issue's urgency and comment counters from the vote and comment records
func (ac *AdminController) ReconcileIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	issue, err := ac.admin.Reconcile(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (ac *AdminController) GetModerationReports(c *gin.Context) {
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	reports, err := ac.admin.Reports(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (ac *AdminController) DismissReport(c *gin.Context) {
	id, ok := objectIDParam(c, "id", reportNotFound)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	if err := ac.admin.DismissReport(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report dismissed."})
}

// DeleteReportedIssue removes the reported issue and everything attached to it
func (ac *AdminController) DeleteReportedIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", reportNotFound)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	if err := ac.admin.DeleteReportedIssue(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue and associated data deleted."})
}
