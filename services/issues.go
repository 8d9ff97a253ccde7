package services

import (
	"context"
	"log"
	"strings"
	"time"

	"cityfix-be/access"
	"cityfix-be/apperrors"
	"cityfix-be/models"
	"cityfix-be/search"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStore is the document-store surface the issue service works against.
type IssueStore interface {
	InsertIssue(ctx context.Context, issue *models.Issue) error
	FindIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	FindIssueView(ctx context.Context, id primitive.ObjectID) (*models.IssueView, error)
	ListIssues(ctx context.Context, filter models.IssueFilter) ([]models.IssueView, error)
	UpdateIssueDetails(ctx context.Context, id primitive.ObjectID, edit models.IssueEdit) (*models.IssueView, error)

	InsertComment(ctx context.Context, comment *models.Comment) error
	IncrementCommentCount(ctx context.Context, issueID primitive.ObjectID) (int64, error)
	ListComments(ctx context.Context, issueID primitive.ObjectID) ([]models.Comment, error)
	FindCommentView(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)

	UpsertFeedback(ctx context.Context, issueID, citizenID primitive.ObjectID, rating int, comment string) (*models.Feedback, error)
	FindFeedback(ctx context.Context, issueID primitive.ObjectID) (*models.Feedback, error)

	InsertReport(ctx context.Context, report *models.ModerationReport) error
	FindReportView(ctx context.Context, id primitive.ObjectID) (*models.ModerationReport, error)
}

// FeedQuery is the public feed's query string.
type FeedQuery struct {
	Kebele string
	Search string
	Sort   string
}

const SortUrgent = "urgent"

type NewIssue struct {
	Category    string
	Description string
	PhotoURL    *string
	Location    *models.Location
	DraftedAt   string
}

type IssueEditInput struct {
	Description *string
	Category    *string
	Location    *models.Location
}

type FeedbackInput struct {
	Rating  int
	Comment string
}

// IssueDetail is an issue with its comment thread and feedback.
type IssueDetail struct {
	Issue    *models.IssueView `json:"issue"`
	Comments []models.Comment  `json:"comments"`
	Feedback *models.Feedback  `json:"feedback"`
}

type IssueService struct {
	store       IssueStore
	routing     *RoutingResolver
	ledger      *VoteLedger
	broadcaster *Broadcaster
	index       search.IssueIndex
}

func NewIssueService(store IssueStore, routing *RoutingResolver, ledger *VoteLedger, broadcaster *Broadcaster, index search.IssueIndex) *IssueService {
	if index == nil {
		index = search.Noop{}
	}
	return &IssueService{
		store:       store,
		routing:     routing,
		ledger:      ledger,
		broadcaster: broadcaster,
		index:       index,
	}
}

// List serves the public feed, newest first or most urgent first.
func (s *IssueService) List(ctx context.Context, q FeedQuery) ([]models.IssueView, error) {
	filter := models.IssueFilter{
		Kebele:     strings.TrimSpace(q.Kebele),
		SortUrgent: q.Sort == SortUrgent,
	}

	term := strings.TrimSpace(q.Search)
	if term != "" {
		if ids, ok := s.searchIndex(term, filter.Kebele); ok {
			filter.IDs = ids
		} else {
			filter.Search = term
		}
	}
	return s.store.ListIssues(ctx, filter)
}

// searchIndex asks the full-text index for ids. ok=false means the caller should fall back to the store.
func (s *IssueService) searchIndex(term, kebele string) ([]primitive.ObjectID, bool) {
	if !s.index.Healthy() {
		return nil, false
	}
	hexes, err := s.index.Search(term, kebele, 0)
	if err != nil {
		log.Printf("[search] falling back to store search: %v", err)
		return nil, false
	}
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		if id, err := primitive.ObjectIDFromHex(h); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, true
}

// Create stores a citizen's report, routed to the department's sector admin when there is one.
func (s *IssueService) Create(ctx context.Context, citizen *models.User, in NewIssue) (*models.IssueView, error) {
	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, apperrors.Validation("Invalid category.")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, apperrors.Validation("Description is required.")
	}

	issue := &models.Issue{
		CitizenID:   citizen.ID,
		Category:    category,
		Description: description,
		PhotoURL:    in.PhotoURL,
		Location:    in.Location,
	}
	if in.DraftedAt != "" {
		drafted, err := time.Parse(time.RFC3339, in.DraftedAt)
		if err != nil {
			return nil, apperrors.Validation("draftedAt must be an RFC 3339 timestamp.")
		}
		issue.DraftedAt = &drafted
	}

	adminID, err := s.routing.FindAdminByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	issue.AssignedAdminID = adminID

	if err := s.store.InsertIssue(ctx, issue); err != nil {
		return nil, err
	}
	view, err := s.store.FindIssueView(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	s.reindex(&view.Issue)
	s.broadcaster.Emit(EventNewIssue, view)
	return view, nil
}

func (s *IssueService) Get(ctx context.Context, id primitive.ObjectID) (*IssueDetail, error) {
	issue, err := s.store.FindIssueView(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}
	feedback, err := s.store.FindFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	return &IssueDetail{Issue: issue, Comments: comments, Feedback: feedback}, nil
}

// Vote toggles the citizen's urgency vote on an existing issue.
func (s *IssueService) Vote(ctx context.Context, id primitive.ObjectID, citizen *models.User) (*VoteResult, error) {
	if _, err := s.store.FindIssue(ctx, id); err != nil {
		return nil, err
	}
	return s.ledger.Toggle(ctx, id, citizen.ID)
}

func (s *IssueService) AddComment(ctx context.Context, id primitive.ObjectID, author *models.User, text string) (*models.Comment, error) {
	if _, err := s.store.FindIssue(ctx, id); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation("Comment text is required.")
	}

	comment := &models.Comment{IssueID: id, AuthorID: author.ID, Text: text}
	if err := s.store.InsertComment(ctx, comment); err != nil {
		return nil, err
	}
	count, err := s.store.IncrementCommentCount(ctx, id)
	if err != nil {
		return nil, err
	}
	view, err := s.store.FindCommentView(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.EmitToIssue(id.Hex(), EventNewComment, view)
	s.broadcaster.Emit(EventCommentCountUpdated, CommentCountUpdated{IssueID: id.Hex(), CommentCount: count})
	return view, nil
}

func (s *IssueService) Report(ctx context.Context, id primitive.ObjectID, citizen *models.User, reason string) (*models.ModerationReport, error) {
	if _, err := s.store.FindIssue(ctx, id); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.Validation("A reason is required.")
	}

	report := &models.ModerationReport{IssueID: id, CitizenID: citizen.ID, Reason: reason}
	if err := s.store.InsertReport(ctx, report); err != nil {
		return nil, err
	}
	view, err := s.store.FindReportView(ctx, report.ID)
	if err != nil {
		return nil, err
	}

	s.broadcaster.Emit(EventNewModerationReport, view)
	return view, nil
}

// Mine lists the citizen's own reports, newest first.
func (s *IssueService) Mine(ctx context.Context, citizen *models.User) ([]models.IssueView, error) {
	id := citizen.ID
	return s.store.ListIssues(ctx, models.IssueFilter{CitizenID: &id})
}

// SubmitFeedback records the citizen's rating. A second submission replaces the first.
func (s *IssueService) SubmitFeedback(ctx context.Context, id primitive.ObjectID, citizen *models.User, in FeedbackInput) (*models.Feedback, error) {
	if !models.ValidRating(in.Rating) {
		return nil, apperrors.Validation("Rating must be between 1 and 5.")
	}
	if _, err := s.store.FindIssue(ctx, id); err != nil {
		return nil, err
	}
	return s.store.UpsertFeedback(ctx, id, citizen.ID, in.Rating, strings.TrimSpace(in.Comment))
}

// Edit lets a citizen change their own issue while it is still pending. A changed category does not
// re-route the issue.
func (s *IssueService) Edit(ctx context.Context, id primitive.ObjectID, citizen *models.User, in IssueEditInput) (*models.IssueView, error) {
	issue, err := s.store.FindIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.Can(citizen.Role, access.ActionEditIssue, access.Facts{Owner: issue.CitizenID == citizen.ID}) {
		return nil, apperrors.Forbidden("Not authorized to edit this issue.")
	}
	if issue.Status != models.Pending {
		return nil, apperrors.Validation("Cannot edit an issue that is already being processed.")
	}

	edit := models.IssueEdit{Location: in.Location}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return nil, apperrors.Validation("Description cannot be empty.")
		}
		edit.Description = &d
	}
	if in.Category != nil {
		c, ok := models.ParseCategory(*in.Category)
		if !ok {
			return nil, apperrors.Validation("Invalid category.")
		}
		edit.Category = &c
	}

	view, err := s.store.UpdateIssueDetails(ctx, id, edit)
	if err != nil {
		return nil, err
	}
	s.reindex(&view.Issue)
	return view, nil
}

func (s *IssueService) reindex(issue *models.Issue) {
	if !s.index.Healthy() {
		return
	}
	if err := s.index.Index(search.NewIssueDocument(issue)); err != nil {
		log.Printf("[search] failed to index issue %s: %v", issue.ID.Hex(), err)
	}
}
