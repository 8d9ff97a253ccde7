package services

import (
	"context"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotifier delivers push messages through Firebase Cloud Messaging.
type FCMNotifier struct {
	client *messaging.Client
}

func NewFCMNotifier(client *messaging.Client) *FCMNotifier {
	return &FCMNotifier{client: client}
}

func (n *FCMNotifier) Send(ctx context.Context, msg PushMessage) error {
	_, err := n.client.Send(ctx, fcmMessage(msg))
	return err
}

func fcmMessage(msg PushMessage) *messaging.Message {
	return &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	}
}
