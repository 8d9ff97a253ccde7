package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"cityfix-be/metrics"
	"cityfix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PushMessage is one device notification.
type PushMessage struct {
	Token string
	Title string
	Body  string
	Data  map[string]string
}

// PushNotifier delivers a message to a device. Delivery is best-effort.
type PushNotifier interface {
	Send(ctx context.Context, msg PushMessage) error
}

// LogNotifier is used when no push provider is configured.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, msg PushMessage) error {
	log.Printf("[notification] push disabled, would send %q to device %s", msg.Title, tokenTail(msg.Token))
	return nil
}

func tokenTail(token string) string {
	if len(token) <= 6 {
		return token
	}
	return "..." + token[len(token)-6:]
}

type UserReader interface {
	FindUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// ResolutionNotifier tells a citizen their issue was resolved.
type ResolutionNotifier struct {
	push    PushNotifier
	users   UserReader
	metrics *metrics.Metrics
	timeout time.Duration
}

func NewResolutionNotifier(push PushNotifier, users UserReader, m *metrics.Metrics) *ResolutionNotifier {
	return &ResolutionNotifier{push: push, users: users, metrics: m, timeout: 10 * time.Second}
}

// Notify never fails: citizens without a device token are skipped, errors are logged.
func (n *ResolutionNotifier) Notify(ctx context.Context, issue *models.Issue) {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	citizen, err := n.users.FindUser(ctx, issue.CitizenID)
	if err != nil {
		log.Printf("[notification] failed to load citizen %s: %v", issue.CitizenID.Hex(), err)
		n.metrics.Push("failed")
		return
	}
	if citizen.FCMToken == "" {
		n.metrics.Push("skipped")
		return
	}

	err = n.push.Send(ctx, PushMessage{
		Token: citizen.FCMToken,
		Title: "Issue Resolved",
		Body:  fmt.Sprintf("Your %s report has been resolved. Tap to rate the service.", issue.Category),
		Data: map[string]string{
			"issueId": issue.ID.Hex(),
			"screen":  "MyReports",
		},
	})
	if err != nil {
		log.Printf("[notification] failed to send push notification: %v", err)
		n.metrics.Push("failed")
		return
	}
	log.Printf("[notification] sent resolution push to citizen %s", citizen.ID.Hex())
	n.metrics.Push("sent")
}

// NotifyAsync runs Notify detached from the request that triggered it.
func (n *ResolutionNotifier) NotifyAsync(issue *models.Issue) {
	go n.Notify(context.Background(), issue)
}
