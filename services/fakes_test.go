package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cityfix-be/apperrors"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type votePair struct{ issue, citizen primitive.ObjectID }

// memStore is an in-memory stand-in for the Mongo store. It keeps the two guarantees the ledger
// relies on: pair uniqueness on insert and membership-conditional counter updates.
type memStore struct {
	mu       sync.Mutex
	issues   map[primitive.ObjectID]*models.Issue
	votes    map[votePair]models.Vote
	comments []models.Comment
	feedback map[votePair]*models.Feedback
	reports  map[primitive.ObjectID]*models.ModerationReport
	users    map[primitive.ObjectID]*models.User

	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		issues:   map[primitive.ObjectID]*models.Issue{},
		votes:    map[votePair]models.Vote{},
		feedback: map[votePair]*models.Feedback{},
		reports:  map[primitive.ObjectID]*models.ModerationReport{},
		users:    map[primitive.ObjectID]*models.User{},
	}
}

func (m *memStore) addIssue(category models.IssueCategory, status models.IssueStatus, urgency int64) *models.Issue {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue := &models.Issue{
		ID:           primitive.NewObjectID(),
		CitizenID:    primitive.NewObjectID(),
		Category:     category,
		Description:  "pothole",
		Status:       status,
		UrgencyCount: urgency,
		VotedUserIDs: []primitive.ObjectID{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.issues[issue.ID] = issue
	return issue
}

func (m *memStore) addUser(role models.Role, dept models.IssueCategory) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &models.User{
		ID:         primitive.NewObjectID(),
		Subject:    primitive.NewObjectID().Hex(),
		Role:       role,
		FullName:   string(role) + " user",
		Department: dept,
		CreatedAt:  time.Now(),
	}
	m.users[u.ID] = u
	return u
}

func (m *memStore) issue(id primitive.ObjectID) *models.Issue {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *m.issues[id]
	return &cp
}

func (m *memStore) voteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.votes)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// --- VoteStore ---

func (m *memStore) FindVote(_ context.Context, issueID, citizenID primitive.ObjectID) (*models.Vote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	v, ok := m.votes[votePair{issueID, citizenID}]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *memStore) InsertVote(_ context.Context, vote *models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := votePair{vote.IssueID, vote.CitizenID}
	if _, ok := m.votes[key]; ok {
		return apperrors.Conflict("Vote already recorded for this issue.")
	}
	vote.ID = primitive.NewObjectID()
	vote.CreatedAt = time.Now()
	m.votes[key] = *vote
	return nil
}

func (m *memStore) DeleteVote(_ context.Context, issueID, citizenID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := votePair{issueID, citizenID}
	if _, ok := m.votes[key]; !ok {
		return false, nil
	}
	delete(m.votes, key)
	return true, nil
}

func (m *memStore) AddVoter(_ context.Context, issueID, citizenID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue, ok := m.issues[issueID]
	if !ok {
		return 0, apperrors.NotFound("Issue not found.")
	}
	if !containsID(issue.VotedUserIDs, citizenID) {
		issue.VotedUserIDs = append(issue.VotedUserIDs, citizenID)
		issue.UrgencyCount++
	}
	return issue.UrgencyCount, nil
}

func (m *memStore) RemoveVoter(_ context.Context, issueID, citizenID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue, ok := m.issues[issueID]
	if !ok {
		return 0, apperrors.NotFound("Issue not found.")
	}
	for i, v := range issue.VotedUserIDs {
		if v == citizenID {
			issue.VotedUserIDs = append(issue.VotedUserIDs[:i], issue.VotedUserIDs[i+1:]...)
			issue.UrgencyCount--
			break
		}
	}
	return issue.UrgencyCount, nil
}

func (m *memStore) Voters(_ context.Context, issueID primitive.ObjectID) ([]primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []primitive.ObjectID
	for k := range m.votes {
		if k.issue == issueID {
			out = append(out, k.citizen)
		}
	}
	return out, nil
}

func (m *memStore) CountComments(_ context.Context, issueID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.comments {
		if c.IssueID == issueID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) ResetCounters(_ context.Context, issueID primitive.ObjectID, voters []primitive.ObjectID, commentCount int64) (*models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue, ok := m.issues[issueID]
	if !ok {
		return nil, apperrors.NotFound("Issue not found.")
	}
	issue.VotedUserIDs = append([]primitive.ObjectID{}, voters...)
	issue.UrgencyCount = int64(len(voters))
	issue.CommentCount = commentCount
	cp := *issue
	return &cp, nil
}

// --- users ---

func (m *memStore) FindSectorAdmin(_ context.Context, dept models.IssueCategory) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var candidates []*models.User
	for _, u := range m.users {
		if u.Role == models.RoleSectorAdmin && u.Department == dept && !u.IsDisabled {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].CreatedAt.Before(candidates[j].CreatedAt) })
	cp := *candidates[0]
	return &cp, nil
}

func (m *memStore) InsertUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Subject == user.Subject {
			return apperrors.Conflict("User already exists.")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) FindUser(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found.")
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) FindUserBySubject(_ context.Context, subject string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Subject == subject {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("User not found.")
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListUsers(_ context.Context, role models.Role) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memStore) updateUser(id primitive.ObjectID, fn func(*models.User)) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found.")
	}
	fn(u)
	cp := *u
	return &cp, nil
}

func (m *memStore) SetUserDisabled(_ context.Context, id primitive.ObjectID, disabled bool) (*models.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.updateUser(id, func(u *models.User) { u.IsDisabled = disabled })
}

func (m *memStore) SetPushToken(_ context.Context, id primitive.ObjectID, token string) (*models.User, error) {
	return m.updateUser(id, func(u *models.User) { u.FCMToken = token })
}

func (m *memStore) SetFullName(_ context.Context, id primitive.ObjectID, name string) (*models.User, error) {
	return m.updateUser(id, func(u *models.User) { u.FullName = name })
}

// --- issues ---

func (m *memStore) InsertIssue(_ context.Context, issue *models.Issue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue.ID = primitive.NewObjectID()
	issue.Status = models.Pending
	issue.VotedUserIDs = []primitive.ObjectID{}
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = issue.CreatedAt
	cp := *issue
	m.issues[issue.ID] = &cp
	return nil
}

func (m *memStore) FindIssue(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue, ok := m.issues[id]
	if !ok {
		return nil, apperrors.NotFound("Issue not found.")
	}
	cp := *issue
	return &cp, nil
}

func (m *memStore) FindIssueView(ctx context.Context, id primitive.ObjectID) (*models.IssueView, error) {
	issue, err := m.FindIssue(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.IssueView{Issue: *issue}, nil
}

func (m *memStore) ListIssues(_ context.Context, f models.IssueFilter) ([]models.IssueView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.IssueView{}
	for _, issue := range m.issues {
		if f.CitizenID != nil && issue.CitizenID != *f.CitizenID {
			continue
		}
		if f.Category != nil && issue.Category != *f.Category {
			continue
		}
		if f.IDs != nil && !containsID(f.IDs, issue.ID) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(issue.Description), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, models.IssueView{Issue: *issue})
	}
	return out, nil
}

func (m *memStore) UpdateIssueDetails(ctx context.Context, id primitive.ObjectID, edit models.IssueEdit) (*models.IssueView, error) {
	m.mu.Lock()
	issue, ok := m.issues[id]
	if ok {
		if edit.Description != nil {
			issue.Description = *edit.Description
		}
		if edit.Category != nil {
			issue.Category = *edit.Category
		}
		if edit.Location != nil {
			issue.Location = edit.Location
		}
	}
	m.mu.Unlock()
	if !ok {
		return nil, apperrors.NotFound("Issue not found.")
	}
	return m.FindIssueView(ctx, id)
}

func (m *memStore) SetIssueStatus(_ context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue, ok := m.issues[id]
	if !ok {
		return nil, apperrors.NotFound("Issue not found.")
	}
	issue.Status = status
	cp := *issue
	return &cp, nil
}

func (m *memStore) DeleteIssueCascade(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.issues, id)
	kept := m.comments[:0]
	for _, c := range m.comments {
		if c.IssueID != id {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	for k := range m.votes {
		if k.issue == id {
			delete(m.votes, k)
		}
	}
	for k := range m.feedback {
		if k.issue == id {
			delete(m.feedback, k)
		}
	}
	for rid, r := range m.reports {
		if r.IssueID == id {
			delete(m.reports, rid)
		}
	}
	return nil
}

// --- comments, feedback, reports ---

func (m *memStore) InsertComment(_ context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	m.comments = append(m.comments, *c)
	return nil
}

func (m *memStore) IncrementCommentCount(_ context.Context, issueID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	issue, ok := m.issues[issueID]
	if !ok {
		return 0, apperrors.NotFound("Issue not found.")
	}
	issue.CommentCount++
	return issue.CommentCount, nil
}

func (m *memStore) ListComments(_ context.Context, issueID primitive.ObjectID) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.IssueID == issueID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) FindCommentView(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("Comment not found.")
}

func (m *memStore) UpsertFeedback(_ context.Context, issueID, citizenID primitive.ObjectID, rating int, comment string) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := votePair{issueID, citizenID}
	fb, ok := m.feedback[key]
	if !ok {
		fb = &models.Feedback{ID: primitive.NewObjectID(), IssueID: issueID, CitizenID: citizenID, CreatedAt: time.Now()}
		m.feedback[key] = fb
	}
	fb.Rating = rating
	fb.Comment = comment
	cp := *fb
	return &cp, nil
}

func (m *memStore) FindFeedback(_ context.Context, issueID primitive.ObjectID) (*models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, fb := range m.feedback {
		if k.issue == issueID {
			cp := *fb
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertReport(_ context.Context, r *models.ModerationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = time.Now()
	cp := *r
	m.reports[r.ID] = &cp
	return nil
}

func (m *memStore) FindReport(_ context.Context, id primitive.ObjectID) (*models.ModerationReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return nil, apperrors.NotFound("Report not found.")
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) FindReportView(ctx context.Context, id primitive.ObjectID) (*models.ModerationReport, error) {
	return m.FindReport(ctx, id)
}

func (m *memStore) ListReports(_ context.Context) ([]models.ModerationReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ModerationReport{}
	for _, r := range m.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) DeleteReport(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return apperrors.NotFound("Report not found.")
	}
	delete(m.reports, id)
	return nil
}

// --- realtime ---

type sentEvent struct {
	Channel string
	Event   string
	Payload any
}

// recordingTransport captures what the broadcaster hands it.
type recordingTransport struct {
	mu     sync.Mutex
	events []sentEvent
	err    error
}

func (r *recordingTransport) Broadcast(event string, payload any) error {
	return r.record("", event, payload)
}

func (r *recordingTransport) BroadcastTo(channel, event string, payload any) error {
	return r.record(channel, event, payload)
}

func (r *recordingTransport) record(channel, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, sentEvent{Channel: channel, Event: event, Payload: payload})
	return nil
}

func (r *recordingTransport) sent() []sentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentEvent(nil), r.events...)
}

func newTestBroadcaster() (*Broadcaster, *recordingTransport) {
	t := &recordingTransport{}
	b := NewBroadcaster(nil)
	if err := b.Initialize(t); err != nil {
		panic(err)
	}
	return b, t
}
