package controllers

import (
	"context"
	"net/http"
	"time"

	"cityfix-be/identity"
	"cityfix-be/middlewares"
	"cityfix-be/models"
	"cityfix-be/services"

	"github.com/gin-gonic/gin"
)

type AccountService interface {
	Register(ctx context.Context, id *identity.Identity, in services.RegisterInput) (*models.User, bool, error)
	UpdatePushToken(ctx context.Context, user *models.User, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User, fullName string) (*models.User, error)
}

type AuthController struct {
	accounts AccountService
	timeout  time.Duration
}

func NewAuthController(accounts AccountService, timeout time.Duration) *AuthController {
	return &AuthController{accounts: accounts, timeout: timeout}
}

// RegisterUser persists the account behind a verified provider token. Registering twice is not an error.
func (ac *AuthController) RegisterUser(c *gin.Context) {
	id, ok := middlewares.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		FullName    string `json:"fullName" binding:"required,max=100"`
		Email       string `json:"email"`
		PhoneNumber string `json:"phoneNumber"`
		Role        string `json:"role"`
		Department  string `json:"department"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	user, created, err := ac.accounts.Register(ctx, id, services.RegisterInput{
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Role:        input.Role,
		Department:  input.Department,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "User already registered.", "user": user})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully.", "user": user})
}

// GetMe returns the authenticated user's profile
func (ac *AuthController) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ac *AuthController) UpdateFCMToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	updated, err := ac.accounts.UpdatePushToken(ctx, user, input.FCMToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM Token updated successfully", "user": updated})
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		FullName string `json:"fullName" binding:"required,max=100"`
	}
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c, ac.timeout)
	defer cancel()

	updated, err := ac.accounts.UpdateProfile(ctx, user, input.FullName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": updated})
}
