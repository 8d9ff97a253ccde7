package services

import (
	"context"
	"errors"
	"log"

	"cityfix-be/apperrors"
	"cityfix-be/metrics"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteStore is what the ledger needs from the document store: an insert that rejects duplicate
// pairs, a delete that reports whether it removed anything, and conditional counter updates.
type VoteStore interface {
	FindVote(ctx context.Context, issueID, citizenID primitive.ObjectID) (*models.Vote, error)
	InsertVote(ctx context.Context, vote *models.Vote) error
	DeleteVote(ctx context.Context, issueID, citizenID primitive.ObjectID) (bool, error)
	AddVoter(ctx context.Context, issueID, citizenID primitive.ObjectID) (int64, error)
	RemoveVoter(ctx context.Context, issueID, citizenID primitive.ObjectID) (int64, error)

	Voters(ctx context.Context, issueID primitive.ObjectID) ([]primitive.ObjectID, error)
	CountComments(ctx context.Context, issueID primitive.ObjectID) (int64, error)
	ResetCounters(ctx context.Context, issueID primitive.ObjectID, voters []primitive.ObjectID, commentCount int64) (*models.Issue, error)
}

type VoteResult struct {
	Action       models.VoteAction `json:"action"`
	UrgencyCount int64             `json:"urgencyCount"`
}

// VoteLedger keeps one live vote per (issue, citizen) and the issue's urgency counter in step with it.
// The ledger write and the counter write are separate single-document operations; the vote records
// are the source of truth and Reconcile rebuilds the counter from them.
type VoteLedger struct {
	store       VoteStore
	broadcaster *Broadcaster
	metrics     *metrics.Metrics
}

func NewVoteLedger(store VoteStore, broadcaster *Broadcaster, m *metrics.Metrics) *VoteLedger {
	return &VoteLedger{store: store, broadcaster: broadcaster, metrics: m}
}

// Toggle casts the citizen's vote if absent and withdraws it if present. The caller has already
// checked that the issue exists. Losing a race against a concurrent toggle on the same pair is
// reported as a Conflict and leaves the counter untouched.
func (l *VoteLedger) Toggle(ctx context.Context, issueID, citizenID primitive.ObjectID) (*VoteResult, error) {
	existing, err := l.store.FindVote(ctx, issueID, citizenID)
	if err != nil {
		return nil, err
	}

	var result VoteResult
	if existing == nil {
		if err := l.store.InsertVote(ctx, &models.Vote{IssueID: issueID, CitizenID: citizenID}); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				l.metrics.VoteConflict()
			}
			return nil, err
		}
		count, err := l.store.AddVoter(ctx, issueID, citizenID)
		if err != nil {
			// The issue was deleted after the caller's check; the cascade has already passed
			// the votes collection, so the new record would be orphaned.
			if errors.Is(err, apperrors.ErrNotFound) {
				if _, derr := l.store.DeleteVote(ctx, issueID, citizenID); derr != nil {
					log.Printf("[vote] could not remove orphan vote on %s: %v", issueID.Hex(), derr)
				}
			}
			return nil, err
		}
		result = VoteResult{Action: models.Voted, UrgencyCount: count}
	} else {
		removed, err := l.store.DeleteVote(ctx, issueID, citizenID)
		if err != nil {
			return nil, err
		}
		if !removed {
			l.metrics.VoteConflict()
			return nil, apperrors.Conflict("Vote was already withdrawn.")
		}
		count, err := l.store.RemoveVoter(ctx, issueID, citizenID)
		if err != nil {
			return nil, err
		}
		result = VoteResult{Action: models.Unvoted, UrgencyCount: count}
	}

	l.metrics.Vote(string(result.Action))
	l.broadcaster.Emit(EventVoteUpdated, VoteUpdated{
		IssueID:      issueID.Hex(),
		UrgencyCount: result.UrgencyCount,
	})
	return &result, nil
}

// Reconcile recomputes the urgency counter, the voter set and the comment counter from their
// sources of truth. It is a repair tool and never runs on its own.
func (l *VoteLedger) Reconcile(ctx context.Context, issueID primitive.ObjectID) (*models.Issue, error) {
	voters, err := l.store.Voters(ctx, issueID)
	if err != nil {
		return nil, err
	}
	comments, err := l.store.CountComments(ctx, issueID)
	if err != nil {
		return nil, err
	}

	issue, err := l.store.ResetCounters(ctx, issueID, voters, comments)
	if err != nil {
		return nil, err
	}
	log.Printf("[vote] reconciled issue %s: urgency=%d comments=%d", issueID.Hex(), issue.UrgencyCount, issue.CommentCount)

	l.broadcaster.Emit(EventVoteUpdated, VoteUpdated{IssueID: issueID.Hex(), UrgencyCount: issue.UrgencyCount})
	l.broadcaster.Emit(EventCommentCountUpdated, CommentCountUpdated{IssueID: issueID.Hex(), CommentCount: issue.CommentCount})
	return issue, nil
}
