package identity

import (
	"context"
	"fmt"
	"log"

	"cityfix-be/apperrors"
	"cityfix-be/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Firebase verifies Firebase ID tokens and manages Firebase Auth accounts.
type Firebase struct {
	auth      *auth.Client
	messaging *messaging.Client
}

// NewFirebase initialises the Admin SDK from a service-account file.
func NewFirebase(ctx context.Context, credentialsPath string) (*Firebase, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_PATH is not set")
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}

	log.Println("Firebase Admin SDK initialized.")
	return &Firebase{auth: authClient, messaging: messagingClient}, nil
}

// Messaging exposes the FCM client for push delivery.
func (f *Firebase) Messaging() *messaging.Client {
	return f.messaging
}

func (f *Firebase) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := f.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		log.Printf("[auth] firebase token verification error: %v", err)
		return nil, apperrors.Unauthorized("Invalid or expired token.")
	}
	email, _ := token.Claims["email"].(string)
	phone, _ := token.Claims["phone_number"].(string)
	return &Identity{Subject: token.UID, Email: email, Phone: phone}, nil
}

// CreateAccount creates an email/password account and tags it with the role claim.
func (f *Firebase) CreateAccount(ctx context.Context, email, password, displayName string, role models.Role) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.auth.CreateUser(ctx, params)
	if auth.IsEmailAlreadyExists(err) {
		return "", apperrors.Conflict("User with this email already exists.")
	}
	if err != nil {
		return "", apperrors.Upstream("create identity account", err)
	}

	if err := f.auth.SetCustomUserClaims(ctx, user.UID, map[string]interface{}{"role": string(role)}); err != nil {
		log.Printf("[auth] failed to set role claim for %s: %v", user.UID, err)
	}
	return user.UID, nil
}

func (f *Firebase) SetDisabled(ctx context.Context, subject string, disabled bool) error {
	_, err := f.auth.UpdateUser(ctx, subject, (&auth.UserToUpdate{}).Disabled(disabled))
	if err != nil {
		return apperrors.Upstream("update identity account", err)
	}
	return nil
}
