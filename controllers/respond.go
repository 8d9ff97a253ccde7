package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"cityfix-be/apperrors"
	"cityfix-be/middlewares"
	"cityfix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultTimeout = 10 * time.Second

// requestContext bounds the store work a handler does.
func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// respondError writes the error's status and public message.
func respondError(c *gin.Context, err error) {
	status := apperrors.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": apperrors.PublicMessage(err)})
}

// bindJSON reports malformed bodies as validation failures.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// objectIDParam parses a path id. A malformed id cannot name anything, so it answers 404 with notFound.
func objectIDParam(c *gin.Context, name, notFound string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return primitive.NilObjectID, false
	}
	return id, true
}

func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return user, ok
}
