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

// IssueService is the citizen-facing issue workflow.
type IssueService interface {
	List(ctx context.Context, q services.FeedQuery) ([]models.IssueView, error)
	Create(ctx context.Context, citizen *models.User, in services.NewIssue) (*models.IssueView, error)
	Get(ctx context.Context, id primitive.ObjectID) (*services.IssueDetail, error)
	Vote(ctx context.Context, id primitive.ObjectID, citizen *models.User) (*services.VoteResult, error)
	AddComment(ctx context.Context, id primitive.ObjectID, author *models.User, text string) (*models.Comment, error)
	Report(ctx context.Context, id primitive.ObjectID, citizen *models.User, reason string) (*models.ModerationReport, error)
	Mine(ctx context.Context, citizen *models.User) ([]models.IssueView, error)
	SubmitFeedback(ctx context.Context, id primitive.ObjectID, citizen *models.User, in services.FeedbackInput) (*models.Feedback, error)
	Edit(ctx context.Context, id primitive.ObjectID, citizen *models.User, in services.IssueEditInput) (*models.IssueView, error)
}

const issueNotFound = "Issue not found."

type IssueController struct {
	issues  IssueService
	timeout time.Duration
}

func NewIssueController(issues IssueService, timeout time.Duration) *IssueController {
	return &IssueController{issues: issues, timeout: timeout}
}

// GetIssues serves the public feed: ?kebele=, ?search=, ?sort=urgent
func (ic *IssueController) GetIssues(c *gin.Context) {
	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	issues, err := ic.issues.List(ctx, services.FeedQuery{
		Kebele: c.Query("kebele"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// CreateIssue handles a citizen's new report
func (ic *IssueController) CreateIssue(c *gin.Context) {
	citizen, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Category    string           `json:"category" binding:"required"`
		Description string           `json:"description" binding:"required,max=2000"`
		PhotoURL    *string          `json:"photoUrl"`
		Location    *models.Location `json:"location"`
		DraftedAt   string           `json:"draftedAt"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	issue, err := ic.issues.Create(ctx, citizen, services.NewIssue{
		Category:    input.Category,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Location:    input.Location,
		DraftedAt:   input.DraftedAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// GetMyIssues lists the caller's own reports
func (ic *IssueController) GetMyIssues(c *gin.Context) {
	citizen, ok := currentUser(c)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	issues, err := ic.issues.Mine(ctx, citizen)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetIssue returns one issue with its comments and feedback
func (ic *IssueController) GetIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	detail, err := ic.issues.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateIssue lets the owner edit a pending issue
func (ic *IssueController) UpdateIssue(c *gin.Context) {
	citizen, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}

	var input struct {
		Description *string          `json:"description"`
		Category    *string          `json:"category"`
		Location    *models.Location `json:"location"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	issue, err := ic.issues.Edit(ctx, id, citizen, services.IssueEditInput{
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// VoteOnIssue toggles the caller's urgency vote
func (ic *IssueController) VoteOnIssue(c *gin.Context) {
	citizen, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}
	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	result, err := ic.issues.Vote(ctx, id, citizen)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (ic *IssueController) AddComment(c *gin.Context) {
	author, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text" binding:"required,max=1000"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	comment, err := ic.issues.AddComment(ctx, id, author, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ReportIssue flags an issue for moderation
func (ic *IssueController) ReportIssue(c *gin.Context) {
	citizen, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason" binding:"required,max=500"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	report, err := ic.issues.Report(ctx, id, citizen, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Issue reported for review.", "report": report})
}

func (ic *IssueController) SubmitFeedback(c *gin.Context) {
	citizen, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id", issueNotFound)
	if !ok {
		return
	}

	var input struct {
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment" binding:"max=1000"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ic.timeout)
	defer cancel()

	feedback, err := ic.issues.SubmitFeedback(ctx, id, citizen, services.FeedbackInput{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}
