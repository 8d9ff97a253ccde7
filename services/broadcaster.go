package services

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"cityfix-be/apperrors"
	"cityfix-be/metrics"
	"cityfix-be/realtime"
)

// Event names pushed to realtime clients.
const (
	EventNewIssue            = "new_issue"
	EventIssueStatusChanged  = "issue_status_changed"
	EventNewComment          = "new_comment"
	EventCommentCountUpdated = "issue_comment_count_updated"
	EventVoteUpdated         = "vote_updated"
	EventNewModerationReport = "new_moderation_report"
)

var ErrAlreadyInitialized = errors.New("broadcaster already initialized")

// Transport delivers named events to connected clients, either all of them or one channel's members.
type Transport interface {
	Broadcast(event string, payload any) error
	BroadcastTo(channel, event string, payload any) error
}

// Broadcaster is bound to exactly one transport for the life of the process.
type Broadcaster struct {
	transport atomic.Pointer[transportRef]
	metrics   *metrics.Metrics
}

type transportRef struct{ Transport }

func NewBroadcaster(m *metrics.Metrics) *Broadcaster {
	return &Broadcaster{metrics: m}
}

// Initialize binds the transport. Only the first call succeeds.
func (b *Broadcaster) Initialize(t Transport) error {
	if t == nil {
		return errors.New("broadcaster: nil transport")
	}
	if !b.transport.CompareAndSwap(nil, &transportRef{t}) {
		return ErrAlreadyInitialized
	}
	return nil
}

func (b *Broadcaster) current() (Transport, error) {
	ref := b.transport.Load()
	if ref == nil {
		return nil, &apperrors.Error{Kind: apperrors.KindNotInitialized, Message: "realtime broadcaster not initialized"}
	}
	return ref.Transport, nil
}

// Publish sends an event to every connected client.
func (b *Broadcaster) Publish(event string, payload any) error {
	t, err := b.current()
	if err != nil {
		return err
	}
	if err := t.Broadcast(event, payload); err != nil {
		return apperrors.Upstream(fmt.Sprintf("broadcast %s", event), err)
	}
	return nil
}

// PublishToIssueChannel sends an event only to clients that joined the issue's channel.
func (b *Broadcaster) PublishToIssueChannel(issueID, event string, payload any) error {
	t, err := b.current()
	if err != nil {
		return err
	}
	if err := t.BroadcastTo(realtime.IssueChannel(issueID), event, payload); err != nil {
		return apperrors.Upstream(fmt.Sprintf("broadcast %s to issue %s", event, issueID), err)
	}
	return nil
}

// Emit publishes and logs any failure. Callers have already committed their write.
func (b *Broadcaster) Emit(event string, payload any) {
	b.record(event, b.Publish(event, payload))
}

// EmitToIssue is Emit scoped to an issue channel.
func (b *Broadcaster) EmitToIssue(issueID, event string, payload any) {
	b.record(event, b.PublishToIssueChannel(issueID, event, payload))
}

func (b *Broadcaster) record(event string, err error) {
	if err != nil {
		log.Printf("[realtime] failed to emit %s: %v", event, err)
		b.metrics.EventFailed(event)
		return
	}
	b.metrics.EventPublished(event)
}
